package trace

import (
	"strings"
	"testing"

	"github.com/gogpu/glbridge/backend"
	"github.com/gogpu/glbridge/glcore"
)

func TestRegistersItself(t *testing.T) {
	if !backend.IsRegistered(backend.NameTrace) {
		t.Fatal("trace backend not registered on import")
	}
	b, err := backend.Get(backend.NameTrace)
	if err != nil {
		t.Fatalf("Get(trace) error = %v", err)
	}
	if _, ok := b.(*Backend); !ok {
		t.Errorf("Get(trace) returned %T, want *trace.Backend", b)
	}
}

func TestTraceOutput(t *testing.T) {
	var out strings.Builder
	b := New(&out)

	h, err := b.CreateTexture(glcore.TextureDesc{Width: 32, Height: 32})
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if h != 1 {
		t.Errorf("first handle = %d, want 1", h)
	}

	if err := b.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	b.IssueDraw(glcore.Draw{Mode: glcore.ModeTriangles, Count: 3, InstanceCount: 1})
	if err := b.SubmitFrame(); err != nil {
		t.Fatalf("SubmitFrame() error = %v", err)
	}

	text := out.String()
	for _, want := range []string{"CreateTexture 32x32", "frame 1:", "Draw mode=0", "SubmitFrame"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if b.Commands() != 4 {
		t.Errorf("Commands() = %d, want 4", b.Commands())
	}
}

func TestHandlesNeverReused(t *testing.T) {
	b := New(&strings.Builder{})

	h1, _ := b.CreateBuffer(16, glcore.BufferUsageVertex)
	b.DestroyResource(h1)
	h2, _ := b.CreateBuffer(16, glcore.BufferUsageVertex)
	if h2 == h1 {
		t.Errorf("handle %d reused after destroy", h1)
	}
}
