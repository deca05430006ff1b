package glbridge

import "fmt"

// Stats contains the shim's diagnostic counters. Degraded translations
// (unbound samplers, deferred-creation uses, missing pipelines) are not
// errors in the emulated API; these counters are how they surface.
type Stats struct {
	// FramesSubmitted is the number of frames submitted downstream.
	FramesSubmitted uint64

	// DrawsEmitted is the number of explicit draws issued downstream.
	DrawsEmitted uint64

	// DrawsSkipped is the number of draws dropped for lack of a pipeline.
	DrawsSkipped uint64

	// PipelineHits and PipelineMisses are the pipeline cache counters.
	PipelineHits   uint64
	PipelineMisses uint64

	// UnboundSamplers counts sampler resolutions that found no bound
	// texture on the unit.
	UnboundSamplers uint64

	// DeferredUses counts uses of handles whose native resource did not
	// exist yet (or no longer exists).
	DeferredUses uint64

	// ArgumentClamps counts out-of-range indices forced into range.
	ArgumentClamps uint64

	// OrphansReclaimed is the number of displaced native handles
	// destroyed by maintenance sweeps.
	OrphansReclaimed uint64

	// LiveHandles, LiveTextures, and LiveBuffers describe the registry.
	LiveHandles  int
	LiveTextures int
	LiveBuffers  int
}

// String returns a human-readable summary of the counters.
func (s Stats) String() string {
	return fmt.Sprintf("Shim[%d frames, %d draws (%d skipped), pipeline %d/%d hit/miss, %d live handles, %d orphans reclaimed]",
		s.FramesSubmitted,
		s.DrawsEmitted,
		s.DrawsSkipped,
		s.PipelineHits,
		s.PipelineMisses,
		s.LiveHandles,
		s.OrphansReclaimed)
}
