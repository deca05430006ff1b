// Package glbridge translates a legacy, implicit-state graphics API into
// explicit commands for a modern, resource-handle-based backend.
//
// # Overview
//
// Client code written against a GL-style interface — generate a handle,
// bind it to a slot, set global state, draw — drives a [Shim]. The shim
// reproduces the implicit semantics of that call sequence (bind-then-use
// ordering, per-unit binding slots, state set once and silently reused) on
// top of a [glcore.Backend], where every operation is explicit and every
// handle is opaque.
//
// # Quick Start
//
//	shim, err := glbridge.New(backend)
//	if err != nil {
//		return err
//	}
//
//	tex := shim.Generate(glcore.KindTexture)
//	shim.AllocateTexture(tex, 16, 16, glcore.FormatRGBA8, pixels)
//	shim.BindTexture(0, tex)
//
//	shim.BindShaderProgram("gui")
//	shim.DrawArrays(glcore.ModeTriangles, 0, 6)
//	shim.PresentFrame()
//
// # Architecture
//
// The shim is assembled from small single-purpose parts:
//   - internal/registry: legacy handle to native handle mapping
//   - internal/track: emulated implicit binding state
//   - internal/convert: pixel/vertex format conversion
//   - sampler resolver, pipeline resolver, draw translator, and frame
//     controller in this package
//   - backend/wgpu: a real backend over gogpu/wgpu
//
// # Threading
//
// A Shim must be driven from the single thread that owns the legacy call
// sequence, matching the contract of the emulated API. The shim performs
// no internal locking; two shims never share state, so concurrent
// instances are fine.
//
// # Semantics
//
// The shim is tolerant the way the emulated API is tolerant: binding an
// unknown handle, drawing with an unbacked buffer, or resolving a shader
// with no precompiled equivalent degrades the frame (and increments a
// diagnostic counter) instead of failing. Only resource allocation errors
// from the backend propagate to the caller.
package glbridge
