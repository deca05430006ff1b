package wgpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceProvider is the host-side integration point. Frameworks that own
// the GPU context (for example gogpu.App) implement this to hand the shared
// device, queue, and surface format to the backend.
//
// DeviceProvider is an alias for gpucontext.DeviceProvider so backend users
// stay compatible with the gpucontext ecosystem.
type DeviceProvider = gpucontext.DeviceProvider

// NullDeviceProvider is a DeviceProvider with no GPU behind it. Used in
// tests and CPU-only configurations.
type NullDeviceProvider struct{}

// Device returns nil for the null provider.
func (NullDeviceProvider) Device() gpucontext.Device { return nil }

// Queue returns nil for the null provider.
func (NullDeviceProvider) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null provider.
func (NullDeviceProvider) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null provider.
func (NullDeviceProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceProvider = NullDeviceProvider{}

// AdoptSurfaceFormat switches the device's render target and pipeline color
// format to the host surface's format. Providers reporting an undefined
// format leave the default RGBA8 in place. Call before the first frame;
// pipelines loaded earlier keep their original format.
func (d *Device) AdoptSurfaceFormat(p DeviceProvider) {
	if p == nil {
		return
	}
	if f := p.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		d.format = f
	}
}
