package glbridge

import (
	"log/slog"

	"github.com/gogpu/glbridge/glcore"
	"github.com/gogpu/glbridge/internal/registry"
	"github.com/gogpu/glbridge/internal/track"
)

// drawTranslator reconstructs explicit draw commands from the tracked
// implicit state: the bound vertex and index buffers are resolved through
// the registry and forwarded together with the numeric draw parameters,
// verbatim, as exactly one downstream draw per legacy draw call.
type drawTranslator struct {
	backend  glcore.Backend
	reg      *registry.Registry
	state    *track.Tracker
	frames   *frameController
	pipes    *pipelineResolver
	samplers *samplerResolver

	defaultPipeline string

	// warned tracks handles already reported as unregistered, so a
	// malformed handle logs once, not once per draw.
	warned map[glcore.Handle]bool

	drawsEmitted uint64
	drawsSkipped uint64
}

// newDrawTranslator wires a translator over the shared shim parts.
func newDrawTranslator(
	backend glcore.Backend,
	reg *registry.Registry,
	state *track.Tracker,
	frames *frameController,
	pipes *pipelineResolver,
	samplers *samplerResolver,
	defaultPipeline string,
) *drawTranslator {
	return &drawTranslator{
		backend:         backend,
		reg:             reg,
		state:           state,
		frames:          frames,
		pipes:           pipes,
		samplers:        samplers,
		defaultPipeline: defaultPipeline,
		warned:          make(map[glcore.Handle]bool),
	}
}

// resolveBuffer looks a bound buffer handle up in the registry. A handle
// with no registry entry still produces a translated draw — mirroring the
// emulated API's "undefined results, not a crash" — but is logged once.
func (d *drawTranslator) resolveBuffer(target glcore.BindTarget, h glcore.Handle) glcore.NativeHandle {
	if h == glcore.NoHandle {
		return glcore.NoNativeHandle
	}
	native, ok := d.reg.Lookup(h)
	if !ok && !d.warned[h] {
		d.warned[h] = true
		Logger().Warn("glbridge: draw references unregistered buffer",
			slog.String("target", target.String()),
			slog.Uint64("handle", uint64(h)))
	}
	return native
}

// activePipeline resolves the tracked shader program against the tracked
// vertex layout. The second result is false only when a program is bound,
// has no precompiled equivalent, and no usable default exists — the one
// case where the draw must be dropped.
func (d *drawTranslator) activePipeline() (glcore.NativeHandle, bool) {
	program := d.state.Program()
	if program == "" {
		// No program bound: forward the draw with no pipeline and let
		// the backend use whatever is current.
		return glcore.NoNativeHandle, true
	}
	layout := d.state.VertexLayoutSignature()
	if h, ok := d.pipes.resolve(program, layout); ok {
		return h, true
	}
	if d.defaultPipeline != "" && d.defaultPipeline != program {
		if h, ok := d.pipes.resolve(d.defaultPipeline, layout); ok {
			return h, true
		}
	}
	return glcore.NoNativeHandle, false
}

// emit translates one draw call. Indexed draws read the element-array
// binding; array draws leave the index handle at zero.
func (d *drawTranslator) emit(mode glcore.DrawMode, indexed bool, indexType glcore.IndexType, baseVertex int32, first, count, instances uint32) {
	if err := d.frames.ensureOpen(); err != nil {
		d.drawsSkipped++
		Logger().Warn("glbridge: begin frame failed, draw dropped", slog.Any("error", err))
		return
	}

	pipeline, ok := d.activePipeline()
	if !ok {
		d.drawsSkipped++
		return
	}

	d.samplers.pushAll(d.pipes.samplerBindings(d.state.Program()))

	if instances == 0 {
		instances = 1
	}
	draw := glcore.Draw{
		Mode:          mode,
		Pipeline:      pipeline,
		Vertex:        d.resolveBuffer(glcore.TargetArrayBuffer, d.state.BoundBuffer(glcore.TargetArrayBuffer)),
		BaseVertex:    baseVertex,
		First:         first,
		Count:         count,
		InstanceCount: instances,
	}
	if indexed {
		draw.Index = d.resolveBuffer(glcore.TargetElementArrayBuffer, d.state.BoundBuffer(glcore.TargetElementArrayBuffer))
		draw.IndexType = indexType
	}

	d.backend.IssueDraw(draw)
	d.drawsEmitted++
}

// emitBatch translates an ordered sequence of per-draw descriptors that
// share one index buffer into one explicit draw each, strictly preserving
// submission order — other state may legitimately change between entries.
func (d *drawTranslator) emitBatch(descs []glcore.DrawDescriptor, sharedIndexBuffer glcore.Handle, indexType glcore.IndexType) {
	if len(descs) == 0 {
		return
	}
	if err := d.frames.ensureOpen(); err != nil {
		d.drawsSkipped += uint64(len(descs))
		Logger().Warn("glbridge: begin frame failed, batch dropped", slog.Any("error", err))
		return
	}

	pipeline, ok := d.activePipeline()
	if !ok {
		d.drawsSkipped += uint64(len(descs))
		return
	}

	d.samplers.pushAll(d.pipes.samplerBindings(d.state.Program()))

	vertex := d.resolveBuffer(glcore.TargetArrayBuffer, d.state.BoundBuffer(glcore.TargetArrayBuffer))
	index := d.resolveBuffer(glcore.TargetElementArrayBuffer, sharedIndexBuffer)

	for _, desc := range descs {
		instances := desc.InstanceCount
		if instances == 0 {
			instances = 1
		}
		d.backend.IssueDraw(glcore.Draw{
			Mode:          desc.Mode,
			Pipeline:      pipeline,
			Vertex:        vertex,
			Index:         index,
			IndexType:     indexType,
			BaseVertex:    desc.BaseVertex,
			First:         desc.FirstIndex,
			Count:         desc.Count,
			InstanceCount: instances,
		})
		d.drawsEmitted++
	}
}
