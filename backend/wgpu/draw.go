package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glbridge"
	"github.com/gogpu/glbridge/glcore"
)

// IssueDraw records one explicit draw into the open frame. Draws with no
// usable pipeline or vertex buffer are dropped; the shim already warned
// about the condition that produced them.
func (d *Device) IssueDraw(cmd glcore.Draw) {
	if err := d.ensurePass(); err != nil {
		glbridge.Logger().Debug("wgpu: draw dropped", "error", err)
		return
	}
	rp := d.frame.pass

	if !cmd.Pipeline.IsZero() {
		d.mu.Lock()
		entry, ok := d.pipelines[cmd.Pipeline]
		d.mu.Unlock()
		if !ok {
			glbridge.Logger().Debug("wgpu: draw references unknown pipeline",
				"pipeline", uint64(cmd.Pipeline))
			return
		}
		variant, err := entry.variant(d.device, topologyFor(cmd.Mode), d.format)
		if err != nil {
			glbridge.Logger().Warn("wgpu: pipeline variant creation failed",
				"pipeline", uint64(cmd.Pipeline), "error", err)
			return
		}
		rp.SetPipeline(variant)
		if entry.textured {
			if !d.bindTextureGroup(rp, entry) {
				return
			}
		}
		d.frame.passPipeline = true
	}
	if !d.frame.passPipeline {
		// Nothing bound in this pass yet; the draw cannot execute.
		glbridge.Logger().Debug("wgpu: draw dropped, no pipeline bound in pass")
		return
	}

	d.mu.RLock()
	vb, vbOK := d.buffers[cmd.Vertex]
	ib, ibOK := d.buffers[cmd.Index]
	d.mu.RUnlock()

	if !vbOK {
		glbridge.Logger().Debug("wgpu: draw references unknown vertex buffer",
			"buffer", uint64(cmd.Vertex))
		return
	}
	rp.SetVertexBuffer(0, vb.buf, 0)

	if cmd.Index.IsZero() {
		rp.Draw(cmd.Count, cmd.InstanceCount, cmd.First, 0)
		return
	}
	if !ibOK {
		glbridge.Logger().Debug("wgpu: draw references unknown index buffer",
			"buffer", uint64(cmd.Index))
		return
	}

	format := gputypes.IndexFormatUint16
	if cmd.IndexType == glcore.IndexUint32 {
		format = gputypes.IndexFormatUint32
	}
	rp.SetIndexBuffer(ib.buf, format, 0)
	rp.DrawIndexed(cmd.Count, cmd.InstanceCount, cmd.First, cmd.BaseVertex, 0)
}

// bindTextureGroup binds the view pushed to stage slot 0 and the shared
// sampler as group 0 of a textured pipeline. The bind group lives until the
// frame's submission completes. Reports whether the draw can proceed.
func (d *Device) bindTextureGroup(rp hal.RenderPassEncoder, entry *pipelineEntry) bool {
	view := d.slots[0]
	if view == nil {
		glbridge.Logger().Debug("wgpu: textured draw dropped, no texture in slot 0",
			"pipeline", entry.label)
		return false
	}
	sampler, err := d.ensureSampler()
	if err != nil {
		glbridge.Logger().Warn("wgpu: textured draw dropped", "error", err)
		return false
	}

	bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   entry.label + "_bind",
		Layout:  entry.bindLayout,
		Entries: textureBindEntries(view.NativeHandle(), sampler.NativeHandle()),
	})
	if err != nil {
		glbridge.Logger().Warn("wgpu: create bind group failed",
			"pipeline", entry.label, "error", err)
		return false
	}
	d.frame.bindGroups = append(d.frame.bindGroups, bg)
	rp.SetBindGroup(0, bg, nil)
	return true
}
