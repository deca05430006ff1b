// Package trace provides a glcore.Backend that prints every translated
// command. It stands in for a real GPU backend in demos and debugging
// sessions, making the legacy-to-explicit mapping visible.
package trace

import (
	"fmt"
	"io"
	"os"

	"github.com/gogpu/glbridge/backend"
	"github.com/gogpu/glbridge/glcore"
)

// init registers the trace backend on package import.
func init() {
	backend.Register(backend.NameTrace, func() glcore.Backend {
		return New(os.Stdout)
	})
}

// Backend writes one line per received command. Native handles are issued
// sequentially from 1 and never reused.
type Backend struct {
	w          io.Writer
	nextHandle uint64
	commands   int
	frame      int
}

// New creates a trace backend writing to w.
func New(w io.Writer) *Backend {
	return &Backend{w: w}
}

// Commands returns how many commands the backend has received.
func (t *Backend) Commands() int { return t.commands }

func (t *Backend) handle() glcore.NativeHandle {
	t.nextHandle++
	return glcore.NativeHandle(t.nextHandle)
}

func (t *Backend) trace(format string, args ...any) {
	t.commands++
	fmt.Fprintf(t.w, "  [backend] "+format+"\n", args...)
}

// CreateTexture allocates a texture handle.
func (t *Backend) CreateTexture(desc glcore.TextureDesc) (glcore.NativeHandle, error) {
	h := t.handle()
	t.trace("CreateTexture %dx%d flags=%#x -> %d", desc.Width, desc.Height, desc.Flags, h)
	return h, nil
}

// UpdateTextureRegion logs a texture upload.
func (t *Backend) UpdateTextureRegion(h glcore.NativeHandle, data []byte, region glcore.Rect) error {
	t.trace("UpdateTextureRegion %d region=%dx%d+%d+%d (%d bytes)",
		h, region.W, region.H, region.X, region.Y, len(data))
	return nil
}

// CreateBuffer allocates a buffer handle.
func (t *Backend) CreateBuffer(sizeBytes int, usage glcore.BufferUsage) (glcore.NativeHandle, error) {
	h := t.handle()
	t.trace("CreateBuffer %d bytes usage=%d -> %d", sizeBytes, usage, h)
	return h, nil
}

// UpdateBufferRegion logs a buffer upload.
func (t *Backend) UpdateBufferRegion(h glcore.NativeHandle, offset int, data []byte) error {
	t.trace("UpdateBufferRegion %d offset=%d (%d bytes)", h, offset, len(data))
	return nil
}

// BindShaderResource logs a texture binding.
func (t *Backend) BindShaderResource(stageSlot int, h glcore.NativeHandle) {
	t.trace("BindShaderResource slot=%d texture=%d", stageSlot, h)
}

// SetViewport logs the viewport rectangle.
func (t *Backend) SetViewport(r glcore.Rect) {
	t.trace("SetViewport %dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Clear logs a clear command.
func (t *Backend) Clear(mask glcore.ClearMask, c glcore.Color) {
	t.trace("Clear mask=%#x color=(%.2f %.2f %.2f %.2f)", mask, c.R, c.G, c.B, c.A)
}

// IssueDraw logs one explicit draw.
func (t *Backend) IssueDraw(d glcore.Draw) {
	if d.Index.IsZero() {
		t.trace("Draw mode=%d pipeline=%d vertex=%d first=%d count=%d instances=%d",
			d.Mode, d.Pipeline, d.Vertex, d.First, d.Count, d.InstanceCount)
		return
	}
	t.trace("DrawIndexed mode=%d pipeline=%d vertex=%d index=%d first=%d count=%d instances=%d",
		d.Mode, d.Pipeline, d.Vertex, d.Index, d.First, d.Count, d.InstanceCount)
}

// BeginFrame starts a new frame section in the output.
func (t *Backend) BeginFrame() error {
	t.frame++
	t.commands++
	fmt.Fprintf(t.w, "frame %d:\n", t.frame)
	return nil
}

// SubmitFrame logs the frame submission.
func (t *Backend) SubmitFrame() error {
	t.trace("SubmitFrame")
	return nil
}

// DestroyResource logs a resource release.
func (t *Backend) DestroyResource(h glcore.NativeHandle) {
	t.trace("DestroyResource %d", h)
}

// LoadPrecompiledPipeline accepts every identifier and issues a handle.
func (t *Backend) LoadPrecompiledPipeline(identifier, layoutSignature string) (glcore.NativeHandle, bool) {
	h := t.handle()
	t.trace("LoadPrecompiledPipeline %q layout=%q -> %d", identifier, layoutSignature, h)
	return h, true
}

var _ glcore.Backend = (*Backend)(nil)
