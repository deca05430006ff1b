// Package wgpu implements glcore.Backend on top of gogpu/wgpu's HAL layer.
//
// The backend owns an offscreen render target sized to the current viewport
// and records each frame into a HAL command encoder. Render passes open
// lazily: the first Clear or IssueDraw of a frame begins the pass, so a
// pending clear becomes the pass's load operation instead of a separate
// command.
//
// Pipelines are precompiled from a fixed WGSL table. LoadPrecompiledPipeline
// compiles the shader through naga once per (identifier, layout signature)
// pair; topology-specialized render pipelines are then created on demand at
// draw time, since HAL bakes the primitive topology into the pipeline object.
// Pipelines whose shaders sample a texture bind the view pushed to stage
// slot 0 together with a shared linear sampler as bind group 0.
//
// The device receives its hal.Device and hal.Queue from the host application
// (see NewDevice and the gpucontext.DeviceProvider seam in provider.go); it
// never creates a GPU device of its own.
package wgpu
