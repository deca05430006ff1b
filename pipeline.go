package glbridge

import (
	"log/slog"

	"github.com/gogpu/glbridge/cache"
	"github.com/gogpu/glbridge/glcore"
)

// pipelineKey identifies one compiled pipeline: a shader identifier linked
// against a vertex layout signature.
type pipelineKey struct {
	identifier string
	layout     string
}

// pipelineResolver maps (shader identifier, vertex layout signature) pairs
// to compiled pipeline handles supplied by the backend.
//
// Resolution is a pure function of the key modulo memoization: identical
// pairs yield the identical handle for the process lifetime. A key with no
// precompiled equivalent resolves to absence — the caller falls back — and
// is logged once per identifier, not once per draw.
type pipelineResolver struct {
	backend glcore.Backend
	memo    *cache.Memo[pipelineKey, glcore.NativeHandle]

	// warnedMissing tracks identifiers already logged as unavailable.
	warnedMissing map[string]bool

	// samplers is the per-shader sampler binding table, fixed per
	// resolved pipeline.
	samplers map[string][]glcore.SamplerBinding

	missCount uint64
}

// newPipelineResolver creates a resolver with an empty cache.
func newPipelineResolver(backend glcore.Backend) *pipelineResolver {
	return &pipelineResolver{
		backend:       backend,
		memo:          cache.NewMemo[pipelineKey, glcore.NativeHandle](),
		warnedMissing: make(map[string]bool),
		samplers:      make(map[string][]glcore.SamplerBinding),
	}
}

// resolve returns the compiled pipeline for the pair, loading it through
// the backend on first use. The bool result is false when no precompiled
// equivalent exists; that is non-fatal and the caller must fall back.
func (p *pipelineResolver) resolve(identifier, layoutSignature string) (glcore.NativeHandle, bool) {
	if identifier == "" {
		return glcore.NoNativeHandle, false
	}
	key := pipelineKey{identifier: identifier, layout: layoutSignature}
	h, ok := p.memo.GetOrCreate(key, func() (glcore.NativeHandle, bool) {
		native, found := p.backend.LoadPrecompiledPipeline(identifier, layoutSignature)
		if !found {
			p.missCount++
			if !p.warnedMissing[identifier] {
				p.warnedMissing[identifier] = true
				Logger().Warn("glbridge: no precompiled pipeline",
					slog.String("shader", identifier),
					slog.String("layout", layoutSignature))
			}
			return glcore.NoNativeHandle, false
		}
		return native, true
	})
	return h, ok
}

// registerSamplers records the sampler binding table for a shader.
func (p *pipelineResolver) registerSamplers(identifier string, bindings []glcore.SamplerBinding) {
	p.samplers[identifier] = bindings
}

// samplerBindings returns the sampler table of a shader, or nil.
func (p *pipelineResolver) samplerBindings(identifier string) []glcore.SamplerBinding {
	return p.samplers[identifier]
}

// stats returns a snapshot of the cache counters.
func (p *pipelineResolver) stats() cache.Stats {
	return p.memo.Stats()
}
