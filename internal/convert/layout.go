package convert

import (
	"fmt"
	"strings"

	"github.com/gogpu/glbridge/glcore"
)

// Signature reduces a vertex layout to a stable string usable as a
// pipeline cache key component. Identical layouts always produce identical
// signatures; any difference in stride, order, location, format, or offset
// produces a different signature.
func Signature(l glcore.VertexLayout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "s%d", l.Stride)
	for _, a := range l.Attributes {
		fmt.Fprintf(&b, ";%d:%s@%d", a.Location, a.Format, a.Offset)
	}
	return b.String()
}
