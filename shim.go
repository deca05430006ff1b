package glbridge

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/glbridge/glcore"
	"github.com/gogpu/glbridge/internal/convert"
	"github.com/gogpu/glbridge/internal/registry"
	"github.com/gogpu/glbridge/internal/track"
)

// Shim is the legacy-facing translation facade. It accepts the implicit,
// call-sequence-based API of the emulated interface and forwards explicit
// commands to a [glcore.Backend].
//
// A Shim owns all of its state — registry, tracker, caches — so separate
// instances never interfere. It must be driven from one thread, in program
// order; calls are translated and forwarded exactly in the order received,
// never reordered or coalesced.
type Shim struct {
	backend  glcore.Backend
	reg      *registry.Registry
	state    *track.Tracker
	frames   *frameController
	pipes    *pipelineResolver
	samplers *samplerResolver
	draws    *drawTranslator

	opts options

	// texParams records best-effort per-texture sampling parameters.
	texParams map[glcore.Handle]map[glcore.TexParam]int

	deferredUses     uint64
	orphansReclaimed uint64
	framesSinceSweep int
}

// New creates a shim translating onto the given backend.
func New(backend glcore.Backend, opts ...Option) (*Shim, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	reg := registry.New()
	state := track.New()
	frames := newFrameController(backend)
	pipes := newPipelineResolver(backend)
	samplers := newSamplerResolver(backend, reg, state)

	s := &Shim{
		backend:   backend,
		reg:       reg,
		state:     state,
		frames:    frames,
		pipes:     pipes,
		samplers:  samplers,
		draws:     newDrawTranslator(backend, reg, state, frames, pipes, samplers, o.defaultPipeline),
		opts:      o,
		texParams: make(map[glcore.Handle]map[glcore.TexParam]int),
	}

	frames.onOpen = s.frameOpened
	frames.onSubmit = s.frameSubmitted
	return s, nil
}

// frameOpened pushes frame-scoped tracked state downstream right after the
// lazy begin, before the first draw or clear is forwarded.
func (s *Shim) frameOpened() {
	if v := s.state.Viewport(); v != (glcore.Rect{}) {
		s.backend.SetViewport(v)
	}
}

// frameSubmitted runs the per-frame-boundary work: binding slots reset to
// zero before the new frame's first bind, and the periodic orphan sweep.
func (s *Shim) frameSubmitted() {
	s.samplers.reset()
	s.state.ResetBindings()

	s.framesSinceSweep++
	if s.framesSinceSweep >= s.opts.sweepInterval {
		s.framesSinceSweep = 0
		s.Sweep()
	}
}

// --- Resource lifecycle ---

// Generate allocates the next unused legacy handle for a resource of the
// given kind. The native resource is created lazily by the first
// allocation call; a generated handle may live indefinitely with no
// backing resource.
func (s *Shim) Generate(kind glcore.ResourceKind) glcore.Handle {
	return s.reg.Generate(kind)
}

// Delete releases a handle and destroys its native resource, if any.
// Deleting an unknown or already-deleted handle is a no-op.
func (s *Shim) Delete(h glcore.Handle) {
	if native, ok := s.reg.Release(h); ok {
		s.backend.DestroyResource(native)
	}
	delete(s.texParams, h)
}

// AllocateTexture creates (or recreates) the native texture backing h and
// uploads the initial pixels, if any. pixels is interpreted in format
// under the current pixel-store parameters; pass nil to define storage
// without data. Reallocating over existing storage parks the displaced
// native texture for the next maintenance sweep.
//
// Allocation failures from the backend propagate to the caller.
func (s *Shim) AllocateTexture(h glcore.Handle, width, height int, format glcore.PixelFormat, pixels []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if kind, ok := s.reg.Kind(h); ok && kind != glcore.KindTexture {
		return fmt.Errorf("%w: %d is a %s", ErrUnknownHandle, h, kind)
	}

	native, err := s.backend.CreateTexture(glcore.TextureDesc{
		Width:  uint32(width),
		Height: uint32(height),
		Flags:  glcore.TextureFlagSampled,
	})
	if err != nil {
		return fmt.Errorf("glbridge: texture allocation failed: %w", err)
	}
	s.reg.Associate(h, glcore.KindTexture, native)

	if pixels == nil {
		return nil
	}
	data, err := convert.Repack(format, pixels, width, height, s.rowLayout())
	if err != nil {
		// Not a backend failure: degrade to storage-without-data, the
		// emulated API's answer to a malformed upload.
		Logger().Warn("glbridge: initial pixel upload dropped", slog.Any("error", err))
		return nil
	}
	if err := s.backend.UpdateTextureRegion(native, data, glcore.Rect{W: int32(width), H: int32(height)}); err != nil {
		Logger().Warn("glbridge: initial pixel upload rejected", slog.Any("error", err))
	}
	return nil
}

// AllocateTextureFromImage is AllocateTexture for an image.Image source.
// The image is converted to tightly packed RGBA8, ignoring pixel-store
// parameters.
func (s *Shim) AllocateTextureFromImage(h glcore.Handle, img image.Image) error {
	data, w, ht := convert.FromImage(img)
	if data == nil {
		return fmt.Errorf("%w: empty image", ErrInvalidDimensions)
	}
	if kind, ok := s.reg.Kind(h); ok && kind != glcore.KindTexture {
		return fmt.Errorf("%w: %d is a %s", ErrUnknownHandle, h, kind)
	}

	native, err := s.backend.CreateTexture(glcore.TextureDesc{
		Width:  uint32(w),
		Height: uint32(ht),
		Flags:  glcore.TextureFlagSampled,
	})
	if err != nil {
		return fmt.Errorf("glbridge: texture allocation failed: %w", err)
	}
	s.reg.Associate(h, glcore.KindTexture, native)

	if err := s.backend.UpdateTextureRegion(native, data, glcore.Rect{W: int32(w), H: int32(ht)}); err != nil {
		Logger().Warn("glbridge: image upload rejected", slog.Any("error", err))
	}
	return nil
}

// AllocateBuffer creates (or recreates) the native buffer backing h and
// uploads the initial data, if any. The buffer usage is inferred from the
// binding the handle currently occupies: a handle bound to the
// element-array target allocates as an index buffer, anything else as a
// vertex buffer.
//
// Allocation failures from the backend propagate to the caller.
func (s *Shim) AllocateBuffer(h glcore.Handle, sizeBytes int, data []byte) error {
	if sizeBytes <= 0 {
		return fmt.Errorf("%w: %d bytes", ErrInvalidSize, sizeBytes)
	}
	if kind, ok := s.reg.Kind(h); ok && kind != glcore.KindBuffer {
		return fmt.Errorf("%w: %d is a %s", ErrUnknownHandle, h, kind)
	}

	usage := glcore.BufferUsageVertex
	if s.state.BoundBuffer(glcore.TargetElementArrayBuffer) == h {
		usage = glcore.BufferUsageIndex
	}
	native, err := s.backend.CreateBuffer(sizeBytes, usage)
	if err != nil {
		return fmt.Errorf("glbridge: buffer allocation failed: %w", err)
	}
	s.reg.Associate(h, glcore.KindBuffer, native)

	if len(data) > 0 {
		if err := s.backend.UpdateBufferRegion(native, 0, data); err != nil {
			Logger().Warn("glbridge: initial buffer upload rejected", slog.Any("error", err))
		}
	}
	return nil
}

// UpdateBuffer uploads data at a byte offset into the buffer backing h.
// An unbacked handle is a deferred-creation use: silent, counted.
func (s *Shim) UpdateBuffer(h glcore.Handle, offset int, data []byte) {
	native, ok := s.reg.Lookup(h)
	if !ok {
		s.deferredUses++
		return
	}
	if err := s.backend.UpdateBufferRegion(native, offset, data); err != nil {
		Logger().Warn("glbridge: buffer update rejected", slog.Any("error", err))
	}
}

// UpdateSubRegion uploads a sub-rectangle of the texture backing h.
// pixels is interpreted in format under the current pixel-store
// parameters. An unbacked handle is a deferred-creation use: silent,
// counted, no downstream call.
func (s *Shim) UpdateSubRegion(h glcore.Handle, xOffset, yOffset, width, height int, format glcore.PixelFormat, pixels []byte) {
	native, ok := s.reg.Lookup(h)
	if !ok {
		s.deferredUses++
		return
	}
	data, err := convert.Repack(format, pixels, width, height, s.rowLayout())
	if err != nil {
		Logger().Warn("glbridge: sub-region upload dropped", slog.Any("error", err))
		return
	}
	region := glcore.Rect{X: int32(xOffset), Y: int32(yOffset), W: int32(width), H: int32(height)}
	if err := s.backend.UpdateTextureRegion(native, data, region); err != nil {
		Logger().Warn("glbridge: sub-region upload rejected", slog.Any("error", err))
	}
}

// SetTextureParameter records a best-effort sampling parameter for h.
// Parameters never fail a translation; setting one on an unbacked handle
// is a deferred-creation use, recorded for when storage appears.
func (s *Shim) SetTextureParameter(h glcore.Handle, param glcore.TexParam, value int) {
	if h == glcore.NoHandle {
		return
	}
	if _, ok := s.reg.Lookup(h); !ok {
		s.deferredUses++
	}
	params := s.texParams[h]
	if params == nil {
		params = make(map[glcore.TexParam]int)
		s.texParams[h] = params
	}
	params[param] = value
}

// TextureParameter returns a previously recorded sampling parameter.
func (s *Shim) TextureParameter(h glcore.Handle, param glcore.TexParam) (int, bool) {
	v, ok := s.texParams[h][param]
	return v, ok
}

// SetPixelStore sets one pixel transfer parameter affecting subsequent
// uploads. Invalid values clamp.
func (s *Shim) SetPixelStore(param glcore.PixelStoreParam, value int) {
	s.state.SetPixelStore(param, value)
}

// rowLayout converts the tracked pixel-store state into a converter row
// layout.
func (s *Shim) rowLayout() convert.RowLayout {
	ps := s.state.PixelStore()
	return convert.RowLayout{
		RowLengthPx: ps.RowLength,
		SkipRows:    ps.SkipRows,
		SkipPixels:  ps.SkipPixels,
		Alignment:   ps.Alignment,
	}
}

// --- Implicit state ---

// SetActiveUnit sets the implicit current texture unit used by
// [Shim.BindActiveTexture]. Out-of-range units clamp.
func (s *Shim) SetActiveUnit(unit int) {
	s.state.SetActiveUnit(unit)
}

// BindTexture binds h to the 2D texture slot of the given unit. Binding
// zero unbinds; binding an unregistered handle is legal and resolves (or
// silently fails to) at draw time.
func (s *Shim) BindTexture(unit int, h glcore.Handle) {
	s.state.BindTexture(unit, h)
}

// BindActiveTexture binds h on the implicit current unit.
func (s *Shim) BindActiveTexture(h glcore.Handle) {
	s.state.BindTexture(s.state.ActiveUnit(), h)
}

// BindBuffer binds h to a buffer target.
func (s *Shim) BindBuffer(target glcore.BindTarget, h glcore.Handle) {
	s.state.BindBuffer(target, h)
}

// BindShaderProgram sets the active shader identifier used to resolve the
// pipeline at draw time. Empty unbinds.
func (s *Shim) BindShaderProgram(identifier string) {
	s.state.BindProgram(identifier)
}

// SetVertexLayout sets the vertex layout the next draws source attributes
// with; together with the active shader identifier it selects the
// compiled pipeline.
func (s *Shim) SetVertexLayout(layout glcore.VertexLayout) {
	s.state.SetVertexLayoutSignature(convert.Signature(layout))
}

// RegisterSamplerBindings declares the sampler table of a shader: which
// shader-declared sampler names read which texture units, and which
// backend stage slots they push to. Fixed per resolved pipeline.
func (s *Shim) RegisterSamplerBindings(identifier string, bindings []glcore.SamplerBinding) {
	s.pipes.registerSamplers(identifier, bindings)
}

// Enable turns a capability flag on.
func (s *Shim) Enable(c glcore.Capability) {
	s.state.SetCapability(c, true)
}

// Disable turns a capability flag off.
func (s *Shim) Disable(c glcore.Capability) {
	s.state.SetCapability(c, false)
}

// IsEnabled reports a tracked capability flag.
func (s *Shim) IsEnabled(c glcore.Capability) bool {
	return s.state.Capability(c)
}

// SetViewport records the viewport and, when a frame is open, forwards it
// immediately so later draws in this frame see it.
func (s *Shim) SetViewport(x, y, w, h int) {
	r := glcore.Rect{X: int32(x), Y: int32(y), W: int32(w), H: int32(h)}
	s.state.SetViewport(r)
	if s.frames.isOpen() {
		s.backend.SetViewport(r)
	}
}

// SetClearColor records the color used by subsequent Clear calls.
func (s *Shim) SetClearColor(r, g, b, a float32) {
	s.state.SetClearColor(glcore.Color{R: r, G: g, B: b, A: a})
}

// --- Frame operations ---

// Clear clears the selected attachments using the tracked clear color.
// Like a draw, a clear triggers the lazy frame begin.
func (s *Shim) Clear(mask glcore.ClearMask) {
	if mask == 0 {
		return
	}
	if err := s.frames.ensureOpen(); err != nil {
		Logger().Warn("glbridge: begin frame failed, clear dropped", slog.Any("error", err))
		return
	}
	s.backend.Clear(mask, s.state.ClearColor())
}

// DrawArrays translates a non-indexed draw of count vertices starting at
// first.
func (s *Shim) DrawArrays(mode glcore.DrawMode, first, count int) {
	s.draws.emit(mode, false, 0, 0, uint32(first), uint32(count), 1)
}

// DrawIndexed translates an indexed draw of count elements. byteOffset is
// the offset into the bound element-array buffer where indices start.
func (s *Shim) DrawIndexed(mode glcore.DrawMode, count int, indexType glcore.IndexType, byteOffset int) {
	first := uint32(byteOffset / indexType.Bytes())
	s.draws.emit(mode, true, indexType, 0, first, uint32(count), 1)
}

// DrawIndexedInstanced is DrawIndexed for instanceCount instances.
func (s *Shim) DrawIndexedInstanced(mode glcore.DrawMode, count int, indexType glcore.IndexType, byteOffset, instanceCount int) {
	first := uint32(byteOffset / indexType.Bytes())
	s.draws.emit(mode, true, indexType, 0, first, uint32(count), uint32(instanceCount))
}

// BatchedDraw translates an ordered sequence of per-draw descriptors
// sharing one index buffer into one explicit draw each, preserving
// submission order.
func (s *Shim) BatchedDraw(descs []glcore.DrawDescriptor, sharedIndexBuffer glcore.Handle, indexType glcore.IndexType) {
	s.draws.emitBatch(descs, sharedIndexBuffer, indexType)
}

// PresentFrame submits the open frame. Presenting with no open frame is a
// tolerated no-op; a host may present a frame in which nothing was drawn.
func (s *Shim) PresentFrame() error {
	return s.frames.submit()
}

// Sweep destroys all native handles displaced since the previous sweep.
// It runs automatically every sweep interval of presented frames; calling
// it directly is allowed at any point between frames.
func (s *Shim) Sweep() {
	orphans := s.reg.Sweep()
	for _, native := range orphans {
		s.backend.DestroyResource(native)
	}
	if len(orphans) > 0 {
		s.orphansReclaimed += uint64(len(orphans))
		Logger().Info("glbridge: reclaimed orphaned resources", slog.Int("count", len(orphans)))
	}
}

// Stats returns a snapshot of the shim's diagnostic counters.
func (s *Shim) Stats() Stats {
	pipe := s.pipes.stats()
	reg := s.reg.Stats()
	return Stats{
		FramesSubmitted:  s.frames.framesSubmitted,
		DrawsEmitted:     s.draws.drawsEmitted,
		DrawsSkipped:     s.draws.drawsSkipped,
		PipelineHits:     pipe.Hits,
		PipelineMisses:   pipe.Misses,
		UnboundSamplers:  s.samplers.unboundCount,
		DeferredUses:     s.deferredUses + s.samplers.deferredCount,
		ArgumentClamps:   uint64(s.state.Clamped()),
		OrphansReclaimed: s.orphansReclaimed,
		LiveHandles:      reg.Live,
		LiveTextures:     reg.Textures,
		LiveBuffers:      reg.Buffers,
	}
}
