package glcore

// TextureFlags carries backend hints for texture creation.
// Flags combine with bitwise OR.
type TextureFlags uint32

// Texture creation flags.
const (
	// TextureFlagSampled marks the texture as shader-sampled.
	TextureFlagSampled TextureFlags = 1 << iota

	// TextureFlagRenderTarget marks the texture as a render attachment.
	TextureFlagRenderTarget
)

// BufferUsage identifies how a backend buffer will be consumed.
type BufferUsage uint8

// Buffer usages.
const (
	// BufferUsageVertex marks vertex attribute data.
	BufferUsageVertex BufferUsage = iota

	// BufferUsageIndex marks index data.
	BufferUsageIndex
)

// TextureDesc describes one texture to create.
type TextureDesc struct {
	Width  uint32
	Height uint32
	Flags  TextureFlags
}

// Draw is one fully explicit draw command. It is built by the shim
// immediately before submission and discarded afterwards; it owns none of
// the handles it carries.
type Draw struct {
	// Mode is the primitive topology.
	Mode DrawMode

	// Pipeline is the active compiled pipeline, or zero when the backend
	// should use whatever pipeline is already bound.
	Pipeline NativeHandle

	// Vertex is the vertex buffer to source attributes from.
	Vertex NativeHandle

	// Index is the index buffer, or zero for a non-indexed draw.
	Index NativeHandle

	// IndexType is the element width of Index; ignored for non-indexed draws.
	IndexType IndexType

	// BaseVertex is added to every index value.
	BaseVertex int32

	// First is the first index (indexed draws) or first vertex (array draws).
	First uint32

	// Count is the number of indices or vertices to draw.
	Count uint32

	// InstanceCount is the number of instances, always at least 1.
	InstanceCount uint32
}

// Backend is the explicit, handle-based graphics interface the shim
// translates to. Every operation is synchronous from the shim's point of
// view; a backend may internally queue or double-buffer across frames.
//
// Resource-creation methods report failure through an error; the shim
// propagates those to the legacy caller. All other methods are best-effort:
// a backend should tolerate handles it does not recognize.
type Backend interface {
	// CreateTexture allocates a texture and returns its handle.
	CreateTexture(desc TextureDesc) (NativeHandle, error)

	// UpdateTextureRegion uploads tightly packed RGBA8 pixels to a
	// sub-rectangle of mip level 0.
	UpdateTextureRegion(h NativeHandle, data []byte, region Rect) error

	// CreateBuffer allocates a buffer of the given size and returns its
	// handle.
	CreateBuffer(sizeBytes int, usage BufferUsage) (NativeHandle, error)

	// UpdateBufferRegion uploads data at a byte offset within a buffer.
	UpdateBufferRegion(h NativeHandle, offset int, data []byte) error

	// BindShaderResource binds a texture to a fragment-stage slot.
	// A zero handle unbinds the slot.
	BindShaderResource(stageSlot int, h NativeHandle)

	// SetViewport sets the framebuffer viewport rectangle.
	SetViewport(r Rect)

	// Clear clears the attachments selected by mask using the given color.
	Clear(mask ClearMask, c Color)

	// IssueDraw records one explicit draw into the open frame.
	IssueDraw(d Draw)

	// BeginFrame opens a frame for recording. Called at most once per
	// frame, always before any Clear or IssueDraw.
	BeginFrame() error

	// SubmitFrame submits the recorded frame for execution/presentation.
	SubmitFrame() error

	// DestroyResource releases a backend resource of any kind. Unknown
	// handles are ignored.
	DestroyResource(h NativeHandle)

	// LoadPrecompiledPipeline returns the compiled pipeline for a shader
	// identifier linked against a vertex layout signature. The bool result
	// is false when no precompiled equivalent exists; that is not an error.
	LoadPrecompiledPipeline(identifier string, layoutSignature string) (NativeHandle, bool)
}
