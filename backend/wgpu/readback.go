package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the row pitch WebGPU and DX12 require for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// ReadTarget copies the offscreen render target back to the CPU and returns
// the tightly packed pixel rows plus the target dimensions. Must be called
// between frames; the copy runs on its own encoder and fence.
func (d *Device) ReadTarget() ([]byte, int, int, error) {
	if d.frame.open() {
		return nil, 0, 0, fmt.Errorf("wgpu: cannot read target while a frame is open")
	}
	if d.target.tex == nil {
		return nil, 0, 0, fmt.Errorf("wgpu: no target rendered yet")
	}
	w, h := d.target.width, d.target.height

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glbridge_readback",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, 0, 0, fmt.Errorf("wgpu: create readback buffer: %w", err)
	}
	defer d.device.DestroyBuffer(staging)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "glbridge_readback",
	})
	if err != nil {
		return nil, 0, 0, fmt.Errorf("wgpu: create readback encoder: %w", err)
	}
	if err := encoder.BeginEncoding("glbridge_readback"); err != nil {
		return nil, 0, 0, fmt.Errorf("wgpu: begin readback encoding: %w", err)
	}

	encoder.CopyTextureToBuffer(d.target.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: d.target.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("wgpu: end readback encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("wgpu: create readback fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, 0, 0, fmt.Errorf("wgpu: submit readback: %w", err)
	}
	ok, err := d.device.Wait(fence, 1, submitTimeout)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("wgpu: readback fence: %w", err)
	}
	if !ok {
		return nil, 0, 0, fmt.Errorf("wgpu: readback fence timed out after %v", submitTimeout)
	}

	raw := make([]byte, stagingSize)
	if err := d.queue.ReadBuffer(staging, 0, raw); err != nil {
		return nil, 0, 0, fmt.Errorf("wgpu: read staging buffer: %w", err)
	}

	if alignedBytesPerRow == bytesPerRow {
		return raw, int(w), int(h), nil
	}

	// Strip per-row pitch padding.
	pixels := make([]byte, uint64(bytesPerRow)*uint64(h))
	for row := uint32(0); row < h; row++ {
		src := raw[uint64(row)*uint64(alignedBytesPerRow):]
		copy(pixels[uint64(row)*uint64(bytesPerRow):], src[:bytesPerRow])
	}
	return pixels, int(w), int(h), nil
}
