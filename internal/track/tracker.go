// Package track emulates the implicit binding state of the legacy API:
// the per-target, per-unit binding slots, capability flags, viewport,
// clear color, and pixel-store parameters.
//
// The tracker is deliberately tolerant. Bind calls overwrite slots
// unconditionally, including with zero (explicit unbind) and with handles
// that have no backing resource yet; validity surfaces only at point of
// use, never at set time. One tracker is owned per shim instance so that
// concurrent shim instances (for example under test) never interfere.
//
// The tracker is driven from the single thread that owns the legacy call
// sequence and carries no internal synchronization.
package track

import "github.com/gogpu/glbridge/glcore"

// MaxTextureUnits is the number of emulated texture units. Unit indices
// outside [0, MaxTextureUnits) are clamped into range.
const MaxTextureUnits = 16

// PixelStore holds the pixel transfer parameters applied to uploads.
type PixelStore struct {
	// RowLength is the source row length in pixels; 0 means tight rows.
	RowLength int

	// SkipRows is the number of leading source rows skipped.
	SkipRows int

	// SkipPixels is the number of leading pixels skipped per row.
	SkipPixels int

	// Alignment is the source row byte alignment (1, 2, 4, or 8).
	Alignment int
}

// Tracker holds the full emulated implicit state with deterministic
// defaults: nothing bound, unit 0 active, all capabilities off, zero
// viewport, transparent black clear color, alignment 4.
type Tracker struct {
	textures   [MaxTextureUnits]glcore.Handle
	buffers    [glcore.TargetCount]glcore.Handle
	caps       [glcore.CapabilityCount]bool
	activeUnit int
	program    string
	layoutSig  string
	viewport   glcore.Rect
	clearColor glcore.Color
	store      PixelStore

	// clamped counts unit/slot indices forced into range, for diagnostics.
	clamped int
}

// New creates a tracker with default state.
func New() *Tracker {
	return &Tracker{
		store: PixelStore{Alignment: 4},
	}
}

// clampUnit forces a unit index into the emulated range, counting every
// correction for diagnostics.
func (t *Tracker) clampUnit(unit int) int {
	if unit < 0 {
		t.clamped++
		return 0
	}
	if unit >= MaxTextureUnits {
		t.clamped++
		return MaxTextureUnits - 1
	}
	return unit
}

// SetActiveUnit sets the implicit current unit used by unit-omitting
// texture binds. Out-of-range values clamp.
func (t *Tracker) SetActiveUnit(unit int) {
	t.activeUnit = t.clampUnit(unit)
}

// ActiveUnit returns the implicit current texture unit.
func (t *Tracker) ActiveUnit() int { return t.activeUnit }

// BindTexture binds h to the 2D texture slot of the given unit.
// Binding zero is an explicit unbind; binding a handle with no registry
// entry is legal and resolves (or fails to) later.
func (t *Tracker) BindTexture(unit int, h glcore.Handle) {
	t.textures[t.clampUnit(unit)] = h
}

// BoundTexture returns the handle bound to a unit's 2D texture slot.
func (t *Tracker) BoundTexture(unit int) glcore.Handle {
	return t.textures[t.clampUnit(unit)]
}

// BindBuffer binds h to a buffer target. Texture targets are ignored here;
// they go through BindTexture.
func (t *Tracker) BindBuffer(target glcore.BindTarget, h glcore.Handle) {
	if target == glcore.TargetTexture2D || int(target) >= glcore.TargetCount {
		t.clamped++
		return
	}
	t.buffers[target] = h
}

// BoundBuffer returns the handle bound to a buffer target.
func (t *Tracker) BoundBuffer(target glcore.BindTarget) glcore.Handle {
	if int(target) >= glcore.TargetCount {
		return glcore.NoHandle
	}
	return t.buffers[target]
}

// BindProgram records the active shader identifier. Empty means none.
func (t *Tracker) BindProgram(identifier string) { t.program = identifier }

// Program returns the active shader identifier.
func (t *Tracker) Program() string { return t.program }

// SetVertexLayoutSignature records the signature of the vertex layout the
// next draws source attributes with.
func (t *Tracker) SetVertexLayoutSignature(sig string) { t.layoutSig = sig }

// VertexLayoutSignature returns the active vertex layout signature.
func (t *Tracker) VertexLayoutSignature() string { return t.layoutSig }

// SetCapability sets one capability flag. Unknown capabilities are
// counted and ignored.
func (t *Tracker) SetCapability(c glcore.Capability, enabled bool) {
	if int(c) >= glcore.CapabilityCount {
		t.clamped++
		return
	}
	t.caps[c] = enabled
}

// Capability returns one capability flag.
func (t *Tracker) Capability(c glcore.Capability) bool {
	if int(c) >= glcore.CapabilityCount {
		return false
	}
	return t.caps[c]
}

// SetViewport records the viewport rectangle.
func (t *Tracker) SetViewport(r glcore.Rect) { t.viewport = r }

// Viewport returns the tracked viewport rectangle.
func (t *Tracker) Viewport() glcore.Rect { return t.viewport }

// SetClearColor records the clear color.
func (t *Tracker) SetClearColor(c glcore.Color) { t.clearColor = c }

// ClearColor returns the tracked clear color.
func (t *Tracker) ClearColor() glcore.Color { return t.clearColor }

// SetPixelStore sets one pixel transfer parameter. Invalid alignments
// clamp to the nearest legal value; negative lengths and skips clamp to 0.
func (t *Tracker) SetPixelStore(p glcore.PixelStoreParam, value int) {
	if value < 0 {
		t.clamped++
		value = 0
	}
	switch p {
	case glcore.StoreRowLength:
		t.store.RowLength = value
	case glcore.StoreSkipRows:
		t.store.SkipRows = value
	case glcore.StoreSkipPixels:
		t.store.SkipPixels = value
	case glcore.StoreAlignment:
		switch value {
		case 1, 2, 4, 8:
			t.store.Alignment = value
		default:
			t.clamped++
			t.store.Alignment = 4
		}
	default:
		t.clamped++
	}
}

// PixelStore returns the current pixel transfer parameters.
func (t *Tracker) PixelStore() PixelStore { return t.store }

// ResetBindings clears every binding slot to zero. Capability flags,
// viewport, clear color, and pixel-store state survive; only bindings are
// frame-scoped in the emulated model.
func (t *Tracker) ResetBindings() {
	for i := range t.textures {
		t.textures[i] = glcore.NoHandle
	}
	for i := range t.buffers {
		t.buffers[i] = glcore.NoHandle
	}
}

// Clamped returns how many out-of-range indices were corrected.
func (t *Tracker) Clamped() int { return t.clamped }
