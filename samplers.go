package glbridge

import (
	"log/slog"

	"github.com/gogpu/glbridge/glcore"
	"github.com/gogpu/glbridge/internal/registry"
	"github.com/gogpu/glbridge/internal/track"
)

// samplerResolver pushes the textures tracked as bound to the backend's
// shader-resource slots, one push per sampler declared by the active
// pipeline.
//
// An unbound unit or an unregistered handle leaves the stage slot alone —
// that is normal emulated-API behavior, counted for diagnostics rather
// than reported as an error. Re-pushing an unchanged binding is elided so
// repeated pushAll calls cost nothing downstream.
type samplerResolver struct {
	backend glcore.Backend
	reg     *registry.Registry
	state   *track.Tracker

	// pushed is what each stage slot currently holds downstream, used to
	// skip redundant binding calls within a frame.
	pushed map[int]glcore.NativeHandle

	unboundCount  uint64
	deferredCount uint64
}

// newSamplerResolver creates a resolver with no pushed bindings.
func newSamplerResolver(backend glcore.Backend, reg *registry.Registry, state *track.Tracker) *samplerResolver {
	return &samplerResolver{
		backend: backend,
		reg:     reg,
		state:   state,
		pushed:  make(map[int]glcore.NativeHandle),
	}
}

// pushAll resolves every sampler binding against the tracked state and
// issues the downstream shader-resource binds. Idempotent: bindings that
// already hold the resolved value are skipped.
func (s *samplerResolver) pushAll(bindings []glcore.SamplerBinding) {
	for _, b := range bindings {
		handle := s.state.BoundTexture(b.Unit)
		if handle == glcore.NoHandle {
			s.unboundCount++
			continue
		}
		native, ok := s.reg.Lookup(handle)
		if !ok {
			// Bound but unbacked or released: silently skip, the
			// emulated API defines this as undefined, not fatal.
			s.deferredCount++
			Logger().Debug("glbridge: sampler slot has no native resource",
				slog.String("sampler", b.Name),
				slog.Int("unit", b.Unit),
				slog.Uint64("handle", uint64(handle)))
			continue
		}
		if s.pushed[b.StageSlot] == native {
			continue
		}
		s.backend.BindShaderResource(b.StageSlot, native)
		s.pushed[b.StageSlot] = native
	}
}

// reset forgets all pushed bindings. It must run exactly once per frame
// boundary, before the new frame's first bind, so stale bindings never
// leak across frames.
func (s *samplerResolver) reset() {
	clear(s.pushed)
}
