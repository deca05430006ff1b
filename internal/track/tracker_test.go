package track

import (
	"testing"

	"github.com/gogpu/glbridge/glcore"
)

func TestDefaults(t *testing.T) {
	tr := New()

	if tr.ActiveUnit() != 0 {
		t.Errorf("default active unit = %d, want 0", tr.ActiveUnit())
	}
	if tr.BoundTexture(0) != glcore.NoHandle {
		t.Error("expected no texture bound by default")
	}
	if tr.BoundBuffer(glcore.TargetArrayBuffer) != glcore.NoHandle {
		t.Error("expected no buffer bound by default")
	}
	if tr.Capability(glcore.CapDepthTest) {
		t.Error("expected capabilities off by default")
	}
	if ps := tr.PixelStore(); ps.Alignment != 4 || ps.RowLength != 0 {
		t.Errorf("unexpected default pixel store: %+v", ps)
	}
	if c := tr.ClearColor(); c != (glcore.Color{}) {
		t.Errorf("unexpected default clear color: %+v", c)
	}
}

func TestBindTextureOverwrites(t *testing.T) {
	tr := New()

	tr.BindTexture(2, 5)
	if tr.BoundTexture(2) != 5 {
		t.Fatalf("bound texture = %d, want 5", tr.BoundTexture(2))
	}

	// Unconditional overwrite, including explicit unbind with zero.
	tr.BindTexture(2, 9)
	if tr.BoundTexture(2) != 9 {
		t.Errorf("bound texture = %d, want 9", tr.BoundTexture(2))
	}
	tr.BindTexture(2, glcore.NoHandle)
	if tr.BoundTexture(2) != glcore.NoHandle {
		t.Error("expected explicit unbind to clear slot")
	}
}

func TestUnitClamping(t *testing.T) {
	tr := New()

	tr.BindTexture(-3, 7)
	if tr.BoundTexture(0) != 7 {
		t.Error("negative unit should clamp to 0")
	}
	tr.BindTexture(MaxTextureUnits+10, 8)
	if tr.BoundTexture(MaxTextureUnits-1) != 8 {
		t.Error("oversized unit should clamp to last unit")
	}
	if tr.Clamped() == 0 {
		t.Error("clamping should be counted")
	}
}

func TestActiveUnit(t *testing.T) {
	tr := New()

	tr.SetActiveUnit(3)
	if tr.ActiveUnit() != 3 {
		t.Errorf("active unit = %d, want 3", tr.ActiveUnit())
	}
	tr.SetActiveUnit(100)
	if tr.ActiveUnit() != MaxTextureUnits-1 {
		t.Errorf("active unit = %d, want %d", tr.ActiveUnit(), MaxTextureUnits-1)
	}
}

func TestBindBuffer(t *testing.T) {
	tr := New()

	tr.BindBuffer(glcore.TargetArrayBuffer, 4)
	tr.BindBuffer(glcore.TargetElementArrayBuffer, 5)
	if tr.BoundBuffer(glcore.TargetArrayBuffer) != 4 {
		t.Error("array buffer binding lost")
	}
	if tr.BoundBuffer(glcore.TargetElementArrayBuffer) != 5 {
		t.Error("element array buffer binding lost")
	}

	// Texture target is not a buffer target.
	tr.BindBuffer(glcore.TargetTexture2D, 6)
	if tr.BoundBuffer(glcore.TargetTexture2D) != glcore.NoHandle {
		t.Error("texture target must not accept buffer binds")
	}
}

func TestCapabilities(t *testing.T) {
	tr := New()

	tr.SetCapability(glcore.CapBlend, true)
	if !tr.Capability(glcore.CapBlend) {
		t.Error("blend capability not recorded")
	}
	tr.SetCapability(glcore.CapBlend, false)
	if tr.Capability(glcore.CapBlend) {
		t.Error("blend capability not cleared")
	}
}

func TestPixelStoreClamping(t *testing.T) {
	tr := New()

	tr.SetPixelStore(glcore.StoreRowLength, 128)
	tr.SetPixelStore(glcore.StoreSkipRows, 2)
	tr.SetPixelStore(glcore.StoreSkipPixels, 3)
	tr.SetPixelStore(glcore.StoreAlignment, 8)

	ps := tr.PixelStore()
	if ps.RowLength != 128 || ps.SkipRows != 2 || ps.SkipPixels != 3 || ps.Alignment != 8 {
		t.Errorf("unexpected pixel store: %+v", ps)
	}

	// Illegal alignment falls back to 4.
	tr.SetPixelStore(glcore.StoreAlignment, 3)
	if tr.PixelStore().Alignment != 4 {
		t.Errorf("alignment = %d, want 4", tr.PixelStore().Alignment)
	}

	// Negative values clamp to zero.
	tr.SetPixelStore(glcore.StoreSkipRows, -1)
	if tr.PixelStore().SkipRows != 0 {
		t.Error("negative skip rows should clamp to 0")
	}
}

func TestResetBindings(t *testing.T) {
	tr := New()

	tr.BindTexture(0, 1)
	tr.BindTexture(5, 2)
	tr.BindBuffer(glcore.TargetArrayBuffer, 3)
	tr.SetCapability(glcore.CapScissorTest, true)
	tr.SetClearColor(glcore.Color{R: 1})

	tr.ResetBindings()

	if tr.BoundTexture(0) != glcore.NoHandle || tr.BoundTexture(5) != glcore.NoHandle {
		t.Error("texture bindings survived reset")
	}
	if tr.BoundBuffer(glcore.TargetArrayBuffer) != glcore.NoHandle {
		t.Error("buffer binding survived reset")
	}

	// Non-binding state is not frame-scoped.
	if !tr.Capability(glcore.CapScissorTest) {
		t.Error("capability flag must survive reset")
	}
	if tr.ClearColor().R != 1 {
		t.Error("clear color must survive reset")
	}
}

func TestBindProgram(t *testing.T) {
	tr := New()

	tr.BindProgram("gui")
	if tr.Program() != "gui" {
		t.Errorf("program = %q, want %q", tr.Program(), "gui")
	}
}
