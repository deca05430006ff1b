// Package registry maps legacy integer handles to opaque backend resource
// handles. It is the single owner of that mapping: one live native handle
// per legacy handle at any time.
//
// The registry performs no backend calls itself. Displaced native handles
// (overwritten by Associate without an intervening Release) are parked as
// orphans and handed back through Sweep so the shim can destroy them.
//
// The registry is driven from the single thread that owns the legacy call
// sequence and carries no internal synchronization.
package registry

import (
	"fmt"

	"github.com/gogpu/glbridge/glcore"
)

// entry is one live handle mapping.
type entry struct {
	kind   glcore.ResourceKind
	native glcore.NativeHandle
}

// Registry assigns legacy handles and tracks their backend counterparts.
// Handles start at 1 and grow monotonically; zero is never assigned and
// always looks up as absent.
type Registry struct {
	next    glcore.Handle
	entries map[glcore.Handle]entry
	orphans []glcore.NativeHandle

	// Per-kind live counts for diagnostics.
	liveByKind [glcore.KindCount]int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		next:    1,
		entries: make(map[glcore.Handle]entry),
	}
}

// Generate allocates the next unused handle for a resource of the given
// kind. The returned handle has no native resource yet; Associate attaches
// one when the first allocation happens.
func (r *Registry) Generate(kind glcore.ResourceKind) glcore.Handle {
	h := r.next
	r.next++
	r.entries[h] = entry{kind: kind}
	if int(kind) < len(r.liveByKind) {
		r.liveByKind[kind]++
	}
	return h
}

// Associate records the native handle backing h, overwriting any previous
// association. A displaced, different native handle is parked as an orphan
// for the next Sweep; the registry never destroys it itself, since callers
// own the recreate-on-parameter-change decision.
//
// Associating with an unknown handle registers it as live; legacy callers
// may bind ids they never generated and the emulated API tolerates that.
func (r *Registry) Associate(h glcore.Handle, kind glcore.ResourceKind, native glcore.NativeHandle) {
	if h == glcore.NoHandle {
		return
	}
	prev, ok := r.entries[h]
	if ok && !prev.native.IsZero() && prev.native != native {
		r.orphans = append(r.orphans, prev.native)
	}
	if !ok && int(kind) < len(r.liveByKind) {
		r.liveByKind[kind]++
	}
	// An adopted id must not be reissued by Generate while live.
	if h >= r.next {
		r.next = h + 1
	}
	r.entries[h] = entry{kind: kind, native: native}
}

// Lookup returns the native handle backing h. The bool result is false when
// h is zero, unknown, or known but not yet backed by a native resource.
// Absence is a normal value, never an error.
func (r *Registry) Lookup(h glcore.Handle) (glcore.NativeHandle, bool) {
	if h == glcore.NoHandle {
		return glcore.NoNativeHandle, false
	}
	e, ok := r.entries[h]
	if !ok || e.native.IsZero() {
		return glcore.NoNativeHandle, false
	}
	return e.native, true
}

// Kind returns the registered kind of h and whether h is live.
func (r *Registry) Kind(h glcore.Handle) (glcore.ResourceKind, bool) {
	e, ok := r.entries[h]
	return e.kind, ok
}

// Release removes the mapping for h and returns the native handle it held,
// if any. Releasing an unknown or already-released handle is a no-op that
// reports absence. The caller owns destruction of the returned handle.
func (r *Registry) Release(h glcore.Handle) (glcore.NativeHandle, bool) {
	e, ok := r.entries[h]
	if !ok {
		return glcore.NoNativeHandle, false
	}
	delete(r.entries, h)
	if int(e.kind) < len(r.liveByKind) {
		r.liveByKind[e.kind]--
	}
	if e.native.IsZero() {
		return glcore.NoNativeHandle, false
	}
	return e.native, true
}

// Sweep drains and returns the orphaned native handles accumulated since
// the previous sweep. The caller destroys them; the registry only detects.
func (r *Registry) Sweep() []glcore.NativeHandle {
	if len(r.orphans) == 0 {
		return nil
	}
	out := r.orphans
	r.orphans = nil
	return out
}

// OrphanCount returns the number of native handles awaiting a sweep.
func (r *Registry) OrphanCount() int { return len(r.orphans) }

// Len returns the number of live handles.
func (r *Registry) Len() int { return len(r.entries) }

// LiveCount returns the number of live handles of one kind.
func (r *Registry) LiveCount(kind glcore.ResourceKind) int {
	if int(kind) >= len(r.liveByKind) {
		return 0
	}
	return r.liveByKind[kind]
}

// Stats contains registry usage counters.
type Stats struct {
	// Live is the number of live handles.
	Live int

	// Textures is the number of live texture handles.
	Textures int

	// Buffers is the number of live buffer handles.
	Buffers int

	// Orphans is the number of native handles awaiting a sweep.
	Orphans int
}

// String returns a human-readable summary of the stats.
func (s Stats) String() string {
	return fmt.Sprintf("Registry[%d live, %d textures, %d buffers, %d orphans]",
		s.Live, s.Textures, s.Buffers, s.Orphans)
}

// Stats returns a snapshot of the registry counters.
func (r *Registry) Stats() Stats {
	return Stats{
		Live:     len(r.entries),
		Textures: r.liveByKind[glcore.KindTexture],
		Buffers:  r.liveByKind[glcore.KindBuffer],
		Orphans:  len(r.orphans),
	}
}
