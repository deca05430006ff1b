package wgpu

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glbridge"
	"github.com/gogpu/glbridge/glcore"
)

// MaxStageSlots is the number of fragment-stage texture slots the device
// tracks. Matches the shim's texture unit count.
const MaxStageSlots = 16

// submitTimeout bounds the fence wait after each frame submission.
const submitTimeout = 5 * time.Second

// Errors returned by the device.
var (
	// ErrNilDevice is returned when NewDevice receives a nil HAL device.
	ErrNilDevice = errors.New("wgpu: nil hal device")

	// ErrNilQueue is returned when NewDevice receives a nil HAL queue.
	ErrNilQueue = errors.New("wgpu: nil hal queue")

	// ErrUnknownResource is returned for operations on handles the device
	// has never issued or has already destroyed.
	ErrUnknownResource = errors.New("wgpu: unknown resource handle")

	// ErrShortUpload is returned when upload data does not cover the
	// destination region.
	ErrShortUpload = errors.New("wgpu: upload data shorter than region")
)

// texture is one device-owned texture plus its lazily created sampled view.
type texture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// buffer is one device-owned buffer.
type buffer struct {
	buf  hal.Buffer
	size uint64
}

// Device implements glcore.Backend over a HAL device and queue.
//
// The device does not create the GPU device; it receives hal.Device and
// hal.Queue from the host (directly or through a gpucontext provider, see
// provider.go). Resource maps are mutex-guarded so a device may be shared,
// but frame recording follows the glcore.Backend single-frame contract.
type Device struct {
	mu     sync.RWMutex
	device hal.Device
	queue  hal.Queue

	nextID atomic.Uint64

	textures  map[glcore.NativeHandle]*texture
	buffers   map[glcore.NativeHandle]*buffer
	pipelines map[glcore.NativeHandle]*pipelineEntry

	// Fragment-stage texture slots. Views bound here stay alive until the
	// texture is destroyed or the slot rebound.
	slots [MaxStageSlots]hal.TextureView

	// format is the color format of the render target and of pipeline
	// color attachments. Defaults to RGBA8; AdoptSurfaceFormat overrides.
	format gputypes.TextureFormat

	// sampler is the shared linear sampler for textured pipelines,
	// created on first textured draw.
	sampler hal.Sampler

	viewport glcore.Rect
	target   renderTarget
	frame    frameRecorder
}

// NewDevice wraps a HAL device and queue in a glcore.Backend.
func NewDevice(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	return &Device{
		device:    device,
		queue:     queue,
		format:    gputypes.TextureFormatRGBA8Unorm,
		textures:  make(map[glcore.NativeHandle]*texture),
		buffers:   make(map[glcore.NativeHandle]*buffer),
		pipelines: make(map[glcore.NativeHandle]*pipelineEntry),
	}, nil
}

// handle issues the next native handle. Handles start at 1 and are never
// reused.
func (d *Device) handle() glcore.NativeHandle {
	return glcore.NativeHandle(d.nextID.Add(1))
}

// CreateTexture allocates an RGBA8 texture sized per desc.
func (d *Device) CreateTexture(desc glcore.TextureDesc) (glcore.NativeHandle, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return glcore.NoNativeHandle, fmt.Errorf("wgpu: zero texture dimensions %dx%d", desc.Width, desc.Height)
	}

	usage := gputypes.TextureUsageCopyDst
	if desc.Flags&glcore.TextureFlagSampled != 0 {
		usage |= gputypes.TextureUsageTextureBinding
	}
	if desc.Flags&glcore.TextureFlagRenderTarget != 0 {
		usage |= gputypes.TextureUsageRenderAttachment
	}

	id := d.handle()
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         fmt.Sprintf("glbridge_tex_%d", id),
		Size:          hal.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         usage,
	})
	if err != nil {
		return glcore.NoNativeHandle, fmt.Errorf("wgpu: create texture: %w", err)
	}

	d.mu.Lock()
	d.textures[id] = &texture{tex: tex, width: desc.Width, height: desc.Height}
	d.mu.Unlock()
	return id, nil
}

// UpdateTextureRegion uploads tightly packed RGBA8 pixels to a sub-rectangle
// of mip level 0.
func (d *Device) UpdateTextureRegion(h glcore.NativeHandle, data []byte, region glcore.Rect) error {
	d.mu.RLock()
	t, ok := d.textures[h]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: texture %d", ErrUnknownResource, h)
	}
	if region.W <= 0 || region.H <= 0 {
		return nil
	}
	need := int(region.W) * int(region.H) * 4
	if len(data) < need {
		return fmt.Errorf("%w: have %d bytes, region needs %d", ErrShortUpload, len(data), need)
	}

	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(region.X), Y: uint32(region.Y), Z: 0},
		},
		data[:need],
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(region.W) * 4,
			RowsPerImage: uint32(region.H),
		},
		&hal.Extent3D{Width: uint32(region.W), Height: uint32(region.H), DepthOrArrayLayers: 1},
	)
	return nil
}

// CreateBuffer allocates a vertex or index buffer.
func (d *Device) CreateBuffer(sizeBytes int, usage glcore.BufferUsage) (glcore.NativeHandle, error) {
	if sizeBytes <= 0 {
		return glcore.NoNativeHandle, fmt.Errorf("wgpu: invalid buffer size %d", sizeBytes)
	}

	halUsage := gputypes.BufferUsageCopyDst
	switch usage {
	case glcore.BufferUsageIndex:
		halUsage |= gputypes.BufferUsageIndex
	default:
		halUsage |= gputypes.BufferUsageVertex
	}

	id := d.handle()
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("glbridge_buf_%d", id),
		Size:  uint64(sizeBytes),
		Usage: halUsage,
	})
	if err != nil {
		return glcore.NoNativeHandle, fmt.Errorf("wgpu: create buffer: %w", err)
	}

	d.mu.Lock()
	d.buffers[id] = &buffer{buf: buf, size: uint64(sizeBytes)}
	d.mu.Unlock()
	return id, nil
}

// UpdateBufferRegion uploads data at a byte offset within a buffer.
func (d *Device) UpdateBufferRegion(h glcore.NativeHandle, offset int, data []byte) error {
	d.mu.RLock()
	b, ok := d.buffers[h]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: buffer %d", ErrUnknownResource, h)
	}
	if offset < 0 || uint64(offset)+uint64(len(data)) > b.size {
		return fmt.Errorf("%w: write [%d,%d) exceeds buffer size %d", ErrShortUpload, offset, offset+len(data), b.size)
	}
	if len(data) == 0 {
		return nil
	}
	d.queue.WriteBuffer(b.buf, uint64(offset), data)
	return nil
}

// BindShaderResource binds a texture's sampled view to a fragment-stage
// slot. A zero handle unbinds the slot. Unknown handles and out-of-range
// slots are ignored.
func (d *Device) BindShaderResource(stageSlot int, h glcore.NativeHandle) {
	if stageSlot < 0 || stageSlot >= MaxStageSlots {
		return
	}
	if h.IsZero() {
		d.slots[stageSlot] = nil
		return
	}

	d.mu.Lock()
	t, ok := d.textures[h]
	if ok && t.view == nil {
		view, err := d.device.CreateTextureView(t.tex, &hal.TextureViewDescriptor{
			Label: fmt.Sprintf("glbridge_tex_%d_view", h),
		})
		if err != nil {
			glbridge.Logger().Warn("wgpu: create texture view failed",
				"handle", uint64(h), "error", err)
			ok = false
		} else {
			t.view = view
		}
	}
	d.mu.Unlock()

	if ok {
		d.slots[stageSlot] = t.view
	}
}

// ensureSampler creates the shared linear clamp-to-edge sampler on first use.
func (d *Device) ensureSampler() (hal.Sampler, error) {
	if d.sampler != nil {
		return d.sampler, nil
	}
	sampler, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "glbridge_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}
	d.sampler = sampler
	return sampler, nil
}

// SetViewport records the framebuffer viewport. The offscreen target is
// resized to match at the next render pass boundary.
func (d *Device) SetViewport(r glcore.Rect) {
	d.viewport = r
}

// DestroyResource releases a texture, buffer, or pipeline. Unknown handles
// are ignored.
func (d *Device) DestroyResource(h glcore.NativeHandle) {
	if h.IsZero() {
		return
	}

	d.mu.Lock()
	if t, ok := d.textures[h]; ok {
		delete(d.textures, h)
		d.mu.Unlock()
		for i := range d.slots {
			if t.view != nil && d.slots[i] == t.view {
				d.slots[i] = nil
			}
		}
		if t.view != nil {
			d.device.DestroyTextureView(t.view)
		}
		d.device.DestroyTexture(t.tex)
		return
	}
	if b, ok := d.buffers[h]; ok {
		delete(d.buffers, h)
		d.mu.Unlock()
		d.device.DestroyBuffer(b.buf)
		return
	}
	if p, ok := d.pipelines[h]; ok {
		delete(d.pipelines, h)
		d.mu.Unlock()
		p.destroy(d.device)
		return
	}
	d.mu.Unlock()
}

// Destroy releases every resource the device still owns, including the
// offscreen target. The wrapped HAL device itself belongs to the host and
// is not destroyed.
func (d *Device) Destroy() {
	d.frame.discard(d.device)

	d.mu.Lock()
	textures := d.textures
	buffers := d.buffers
	pipelines := d.pipelines
	d.textures = make(map[glcore.NativeHandle]*texture)
	d.buffers = make(map[glcore.NativeHandle]*buffer)
	d.pipelines = make(map[glcore.NativeHandle]*pipelineEntry)
	d.mu.Unlock()

	for i := range d.slots {
		d.slots[i] = nil
	}
	for _, t := range textures {
		if t.view != nil {
			d.device.DestroyTextureView(t.view)
		}
		d.device.DestroyTexture(t.tex)
	}
	for _, b := range buffers {
		d.device.DestroyBuffer(b.buf)
	}
	for _, p := range pipelines {
		p.destroy(d.device)
	}
	if d.sampler != nil {
		d.device.DestroySampler(d.sampler)
		d.sampler = nil
	}
	d.target.destroy(d.device)
}

// ResourceCounts reports how many live resources the device holds, by kind.
// Intended for tests and diagnostics.
func (d *Device) ResourceCounts() (textures, buffers, pipelines int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.textures), len(d.buffers), len(d.pipelines)
}

var _ glcore.Backend = (*Device)(nil)
