package glbridge

import (
	"errors"

	"github.com/gogpu/glbridge/glcore"
)

// recordingBackend is a test double for glcore.Backend that logs every
// downstream call and hands out sequential native handles.
type recordingBackend struct {
	nextNative glcore.NativeHandle

	texturesCreated int
	buffersCreated  int
	textureWrites   int
	bufferWrites    int
	begins          int
	submits         int
	clears          int
	viewports       []glcore.Rect
	draws           []glcore.Draw
	destroyed       []glcore.NativeHandle

	// resourceBinds is the ordered log of BindShaderResource calls.
	resourceBinds []struct {
		Slot   int
		Native glcore.NativeHandle
	}

	// pipelines is the precompiled table: identifiers with an equivalent.
	pipelines     map[string]bool
	pipelineLoads int

	// createTextureErr forces CreateTexture to fail.
	createTextureErr error

	// createBufferUsages records the usage of every buffer created.
	createBufferUsages []glcore.BufferUsage
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{
		nextNative: 100,
		pipelines:  map[string]bool{"gui": true, "particle": true, "flat": true},
	}
}

func (b *recordingBackend) alloc() glcore.NativeHandle {
	b.nextNative++
	return b.nextNative
}

func (b *recordingBackend) CreateTexture(_ glcore.TextureDesc) (glcore.NativeHandle, error) {
	if b.createTextureErr != nil {
		return glcore.NoNativeHandle, b.createTextureErr
	}
	b.texturesCreated++
	return b.alloc(), nil
}

func (b *recordingBackend) UpdateTextureRegion(_ glcore.NativeHandle, _ []byte, _ glcore.Rect) error {
	b.textureWrites++
	return nil
}

func (b *recordingBackend) CreateBuffer(_ int, usage glcore.BufferUsage) (glcore.NativeHandle, error) {
	b.buffersCreated++
	b.createBufferUsages = append(b.createBufferUsages, usage)
	return b.alloc(), nil
}

func (b *recordingBackend) UpdateBufferRegion(_ glcore.NativeHandle, _ int, _ []byte) error {
	b.bufferWrites++
	return nil
}

func (b *recordingBackend) BindShaderResource(slot int, native glcore.NativeHandle) {
	b.resourceBinds = append(b.resourceBinds, struct {
		Slot   int
		Native glcore.NativeHandle
	}{slot, native})
}

func (b *recordingBackend) SetViewport(r glcore.Rect) {
	b.viewports = append(b.viewports, r)
}

func (b *recordingBackend) Clear(_ glcore.ClearMask, _ glcore.Color) { b.clears++ }

func (b *recordingBackend) IssueDraw(d glcore.Draw) { b.draws = append(b.draws, d) }

func (b *recordingBackend) BeginFrame() error {
	b.begins++
	return nil
}

func (b *recordingBackend) SubmitFrame() error {
	b.submits++
	return nil
}

func (b *recordingBackend) DestroyResource(h glcore.NativeHandle) {
	b.destroyed = append(b.destroyed, h)
}

func (b *recordingBackend) LoadPrecompiledPipeline(identifier, _ string) (glcore.NativeHandle, bool) {
	b.pipelineLoads++
	if !b.pipelines[identifier] {
		return glcore.NoNativeHandle, false
	}
	return b.alloc(), true
}

var errBackendRejected = errors.New("backend rejected")

var _ glcore.Backend = (*recordingBackend)(nil)
