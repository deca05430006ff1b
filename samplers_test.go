package glbridge

import (
	"testing"

	"github.com/gogpu/glbridge/glcore"
)

// guiSampler is the single-sampler table used by most resolver tests.
var guiSampler = []glcore.SamplerBinding{{Name: "Sampler0", Unit: 0, StageSlot: 0}}

func TestSamplerResolution(t *testing.T) {
	s, b := newTestShim(t)

	tex := s.Generate(glcore.KindTexture)
	if err := s.AllocateTexture(tex, 16, 16, glcore.FormatRGBA8, nil); err != nil {
		t.Fatal(err)
	}
	s.BindTexture(0, tex)
	s.BindShaderProgram("gui")
	s.RegisterSamplerBindings("gui", guiSampler)

	s.DrawArrays(glcore.ModeTriangles, 0, 3)

	if len(b.resourceBinds) != 1 {
		t.Fatalf("resource binds = %d, want 1", len(b.resourceBinds))
	}
	bind := b.resourceBinds[0]
	if bind.Slot != 0 {
		t.Errorf("stage slot = %d, want 0", bind.Slot)
	}
	native, _ := s.reg.Lookup(tex)
	if bind.Native != native {
		t.Errorf("bound native = %d, want %d", bind.Native, native)
	}
}

func TestRepeatedPushIsDeduplicated(t *testing.T) {
	s, b := newTestShim(t)

	tex := s.Generate(glcore.KindTexture)
	s.AllocateTexture(tex, 8, 8, glcore.FormatRGBA8, nil)
	s.BindShaderProgram("gui")
	s.RegisterSamplerBindings("gui", guiSampler)

	// Binding the same handle twice and drawing twice produces exactly
	// one downstream binding call.
	s.BindTexture(0, tex)
	s.BindTexture(0, tex)
	s.DrawArrays(glcore.ModeTriangles, 0, 3)
	s.DrawArrays(glcore.ModeTriangles, 0, 3)

	if len(b.resourceBinds) != 1 {
		t.Errorf("resource binds = %d, want 1 (deduplicated)", len(b.resourceBinds))
	}
}

func TestUnboundUnitSkipped(t *testing.T) {
	s, b := newTestShim(t)

	s.BindShaderProgram("gui")
	s.RegisterSamplerBindings("gui", guiSampler)
	s.DrawArrays(glcore.ModeTriangles, 0, 3)

	if len(b.resourceBinds) != 0 {
		t.Fatalf("resource binds = %d, want 0", len(b.resourceBinds))
	}
	if s.Stats().UnboundSamplers != 1 {
		t.Errorf("unbound samplers = %d, want 1", s.Stats().UnboundSamplers)
	}
}

func TestReleasedHandleSilentlySkipped(t *testing.T) {
	s, b := newTestShim(t)

	tex := s.Generate(glcore.KindTexture)
	s.AllocateTexture(tex, 8, 8, glcore.FormatRGBA8, nil)
	s.Delete(tex)

	// The slot keeps the released handle by value; resolution finds no
	// native resource and skips the slot without a downstream call.
	s.BindTexture(0, tex)
	if got := s.state.BoundTexture(0); got != tex {
		t.Fatalf("slot = %d, want %d", got, tex)
	}

	s.BindShaderProgram("gui")
	s.RegisterSamplerBindings("gui", guiSampler)
	s.DrawArrays(glcore.ModeTriangles, 0, 3)

	if len(b.resourceBinds) != 0 {
		t.Errorf("resource binds = %d, want 0 for released handle", len(b.resourceBinds))
	}
	if s.Stats().DeferredUses == 0 {
		t.Error("released-handle use not counted")
	}
}

func TestMultipleSamplerSlots(t *testing.T) {
	s, b := newTestShim(t)

	diffuse := s.Generate(glcore.KindTexture)
	normal := s.Generate(glcore.KindTexture)
	s.AllocateTexture(diffuse, 8, 8, glcore.FormatRGBA8, nil)
	s.AllocateTexture(normal, 8, 8, glcore.FormatRGBA8, nil)

	s.BindTexture(0, diffuse)
	s.BindTexture(1, normal)
	s.BindShaderProgram("particle")
	s.RegisterSamplerBindings("particle", []glcore.SamplerBinding{
		{Name: "Diffuse", Unit: 0, StageSlot: 0},
		{Name: "Normal", Unit: 1, StageSlot: 1},
	})
	s.DrawArrays(glcore.ModeTriangles, 0, 3)

	if len(b.resourceBinds) != 2 {
		t.Fatalf("resource binds = %d, want 2", len(b.resourceBinds))
	}
	if b.resourceBinds[0].Slot != 0 || b.resourceBinds[1].Slot != 1 {
		t.Errorf("stage slots = %d, %d", b.resourceBinds[0].Slot, b.resourceBinds[1].Slot)
	}
}

func TestRebindDifferentTexturePushesAgain(t *testing.T) {
	s, b := newTestShim(t)

	t1 := s.Generate(glcore.KindTexture)
	t2 := s.Generate(glcore.KindTexture)
	s.AllocateTexture(t1, 8, 8, glcore.FormatRGBA8, nil)
	s.AllocateTexture(t2, 8, 8, glcore.FormatRGBA8, nil)

	s.BindShaderProgram("gui")
	s.RegisterSamplerBindings("gui", guiSampler)

	s.BindTexture(0, t1)
	s.DrawArrays(glcore.ModeTriangles, 0, 3)
	s.BindTexture(0, t2)
	s.DrawArrays(glcore.ModeTriangles, 0, 3)

	if len(b.resourceBinds) != 2 {
		t.Fatalf("resource binds = %d, want 2", len(b.resourceBinds))
	}
	if b.resourceBinds[0].Native == b.resourceBinds[1].Native {
		t.Error("rebind to a different texture did not push a new native handle")
	}
}
