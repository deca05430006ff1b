// Package glcore defines the shared types and the downstream backend
// contract used by the glbridge translation shim.
//
// This package is the seam between the legacy-facing shim and the explicit,
// handle-based graphics backend that actually executes GPU work. The shim
// core (registry, state tracker, resolvers, translator) speaks only glcore
// types; concrete backends implement [Backend]:
//   - backend/wgpu: gogpu/wgpu HAL (Pure Go WebGPU)
//   - test doubles: in-memory recording backends
//
// # Handle Model
//
// Legacy callers see small integer [Handle] values, assigned monotonically
// and never reused while live. The backend sees only [NativeHandle] values,
// opaque 64-bit identifiers it assigned itself. The shim's resource registry
// owns the mapping between the two; glcore carries no ownership semantics.
//
// # Architecture
//
//	+----------------+        +----------------+        +----------------+
//	| legacy caller  | -----> |    glbridge    | -----> | glcore.Backend |
//	| (bind/draw)    |        | (translation)  |        | (explicit API) |
//	+----------------+        +----------------+        +----------------+
//
// All glcore types are plain values with no behavior beyond formatting;
// validation happens at the point of use inside the shim, matching the
// tolerant semantics of the emulated API.
package glcore
