package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glbridge"
	"github.com/gogpu/glbridge/glcore"
)

// Fallback target size used when no viewport was pushed before the first
// draw of a frame.
const (
	fallbackTargetWidth  = 640
	fallbackTargetHeight = 480
)

// renderTarget is the offscreen color attachment frames render into. It is
// recreated whenever the viewport dimensions change.
type renderTarget struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
	format gputypes.TextureFormat
}

// ensure creates or recreates the target at the given size and format.
func (t *renderTarget) ensure(device hal.Device, w, h uint32, format gputypes.TextureFormat) error {
	if t.tex != nil && t.width == w && t.height == h && t.format == format {
		return nil
	}
	t.destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "glbridge_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create target texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "glbridge_target_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return fmt.Errorf("wgpu: create target view: %w", err)
	}

	t.tex = tex
	t.view = view
	t.width = w
	t.height = h
	t.format = format
	return nil
}

func (t *renderTarget) destroy(device hal.Device) {
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
	t.width = 0
	t.height = 0
}

// frameRecorder holds the per-frame encoding state. Render passes open
// lazily so a pending clear folds into the pass load operation.
type frameRecorder struct {
	encoder hal.CommandEncoder
	pass    hal.RenderPassEncoder

	// pendingClear, when set, becomes LoadOpClear on the next pass.
	pendingClear *gputypes.Color

	// passPipeline tracks whether any pipeline was set in the open pass.
	// Draws that rely on an already-bound pipeline are dropped until one is.
	passPipeline bool

	// bindGroups created for this frame's textured draws; they must stay
	// alive until the submission completes.
	bindGroups []hal.BindGroup
}

func (f *frameRecorder) open() bool { return f.encoder != nil }

// releaseBindGroups destroys the frame's bind groups after the work using
// them is done or abandoned.
func (f *frameRecorder) releaseBindGroups(device hal.Device) {
	for _, bg := range f.bindGroups {
		device.DestroyBindGroup(bg)
	}
	f.bindGroups = nil
}

// discard abandons any in-flight encoding. Used on device teardown.
func (f *frameRecorder) discard(device hal.Device) {
	if f.pass != nil {
		f.pass.End()
		f.pass = nil
	}
	if f.encoder != nil {
		f.encoder.DiscardEncoding()
		f.encoder = nil
	}
	f.releaseBindGroups(device)
	f.pendingClear = nil
	f.passPipeline = false
}

// BeginFrame opens a command encoder for the frame.
func (d *Device) BeginFrame() error {
	if d.frame.open() {
		return fmt.Errorf("wgpu: frame already open")
	}

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "glbridge_frame",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("glbridge_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	d.frame.encoder = encoder
	d.frame.pendingClear = nil
	d.frame.passPipeline = false
	return nil
}

// Clear records a clear of the color attachment. The clear becomes the load
// operation of the next render pass; clearing mid-pass splits the pass.
// Depth bits are ignored since the target carries no depth attachment.
func (d *Device) Clear(mask glcore.ClearMask, c glcore.Color) {
	if mask&glcore.ClearColorBit == 0 {
		return
	}
	if !d.frame.open() {
		glbridge.Logger().Debug("wgpu: clear outside frame ignored")
		return
	}
	if d.frame.pass != nil {
		d.frame.pass.End()
		d.frame.pass = nil
		d.frame.passPipeline = false
	}
	d.frame.pendingClear = &gputypes.Color{
		R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A),
	}
}

// ensurePass begins the render pass on the offscreen target, applying any
// pending clear as the load op.
func (d *Device) ensurePass() error {
	if d.frame.pass != nil {
		return nil
	}
	if !d.frame.open() {
		return fmt.Errorf("wgpu: no open frame")
	}

	w, h := uint32(fallbackTargetWidth), uint32(fallbackTargetHeight)
	if d.viewport.W > 0 && d.viewport.H > 0 {
		w, h = uint32(d.viewport.W), uint32(d.viewport.H)
	}
	if err := d.target.ensure(d.device, w, h, d.format); err != nil {
		return err
	}

	attachment := hal.RenderPassColorAttachment{
		View:    d.target.view,
		LoadOp:  gputypes.LoadOpLoad,
		StoreOp: gputypes.StoreOpStore,
	}
	if d.frame.pendingClear != nil {
		attachment.LoadOp = gputypes.LoadOpClear
		attachment.ClearValue = *d.frame.pendingClear
		d.frame.pendingClear = nil
	}

	d.frame.pass = d.frame.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "glbridge_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{attachment},
	})
	d.frame.passPipeline = false
	return nil
}

// SubmitFrame closes the pass and encoder, then submits and waits on a
// fence so the frame is complete when the call returns.
func (d *Device) SubmitFrame() error {
	if !d.frame.open() {
		return fmt.Errorf("wgpu: no open frame")
	}

	// A frame that only cleared still needs a pass to realize the clear.
	if d.frame.pass == nil && d.frame.pendingClear != nil {
		if err := d.ensurePass(); err != nil {
			d.frame.discard(d.device)
			return err
		}
	}
	if d.frame.pass != nil {
		d.frame.pass.End()
		d.frame.pass = nil
	}

	cmdBuf, err := d.frame.encoder.EndEncoding()
	d.frame.encoder = nil
	d.frame.passPipeline = false
	defer d.frame.releaseBindGroups(d.device)
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	ok, err := d.device.Wait(fence, 1, submitTimeout)
	if err != nil {
		return fmt.Errorf("wgpu: wait for frame: %w", err)
	}
	if !ok {
		return fmt.Errorf("wgpu: frame fence timed out after %v", submitTimeout)
	}
	return nil
}
