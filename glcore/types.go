package glcore

import "fmt"

// Resource identity
//
// Handle is the small integer identifier visible to legacy callers;
// NativeHandle is the opaque identifier a backend assigned to the real
// GPU object. The registry in the shim maps one to the other.

// Handle is a legacy-visible resource identifier. Zero means "no resource"
// (the legacy unbind value). Handles are assigned monotonically and never
// reused while live.
type Handle uint32

// NativeHandle is an opaque backend resource identifier.
// The zero value represents an absent resource.
type NativeHandle uint64

// IsZero reports whether the handle refers to no resource.
func (n NativeHandle) IsZero() bool { return n == 0 }

// NoHandle is the zero Handle, the legacy "nothing bound" value.
const NoHandle Handle = 0

// NoNativeHandle is the zero NativeHandle, representing an absent resource.
const NoNativeHandle NativeHandle = 0

// ResourceKind identifies the class of GPU object a handle refers to.
type ResourceKind uint8

// Resource kinds.
const (
	// KindTexture is a sampled 2D texture.
	KindTexture ResourceKind = iota

	// KindBuffer is a vertex or index data buffer.
	KindBuffer

	kindCount
)

// String returns the kind name for diagnostics.
func (k ResourceKind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindBuffer:
		return "buffer"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// KindCount is the number of distinct resource kinds.
const KindCount = int(kindCount)

// BindTarget identifies one class of implicit binding point in the
// emulated state model. Texture targets are additionally indexed by unit.
type BindTarget uint8

// Bind targets.
const (
	// TargetTexture2D is the per-unit 2D texture binding point.
	TargetTexture2D BindTarget = iota

	// TargetArrayBuffer is the vertex buffer binding point.
	TargetArrayBuffer

	// TargetElementArrayBuffer is the index buffer binding point.
	TargetElementArrayBuffer

	targetCount
)

// String returns the target name for diagnostics.
func (t BindTarget) String() string {
	switch t {
	case TargetTexture2D:
		return "texture2d"
	case TargetArrayBuffer:
		return "array_buffer"
	case TargetElementArrayBuffer:
		return "element_array_buffer"
	default:
		return fmt.Sprintf("target(%d)", uint8(t))
	}
}

// TargetCount is the number of distinct bind targets.
const TargetCount = int(targetCount)

// PixelFormat specifies the layout of legacy pixel upload data.
// The converter re-packs every supported format to tightly packed RGBA8
// before hand-off to the backend.
type PixelFormat uint8

// Pixel formats accepted from legacy callers.
const (
	// FormatRGBA8 is 8-bit RGBA, the canonical upload format.
	FormatRGBA8 PixelFormat = iota

	// FormatBGRA8 is 8-bit BGRA; channels are swizzled on upload.
	FormatBGRA8

	// FormatRGB8 is 8-bit RGB without alpha; expanded to opaque RGBA.
	FormatRGB8

	// FormatLuminance8 is a single 8-bit channel replicated to RGB.
	FormatLuminance8

	// FormatLuminanceAlpha8 is 8-bit luminance plus 8-bit alpha.
	FormatLuminanceAlpha8

	// FormatRGB565 is 16-bit packed 5-6-5 RGB; expanded to opaque RGBA.
	FormatRGB565
)

// BytesPerPixel returns the source stride of one pixel in the format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatRGBA8, FormatBGRA8:
		return 4
	case FormatRGB8:
		return 3
	case FormatLuminanceAlpha8, FormatRGB565:
		return 2
	case FormatLuminance8:
		return 1
	default:
		return 0
	}
}

// String returns the format name for diagnostics.
func (f PixelFormat) String() string {
	switch f {
	case FormatRGBA8:
		return "rgba8"
	case FormatBGRA8:
		return "bgra8"
	case FormatRGB8:
		return "rgb8"
	case FormatLuminance8:
		return "luminance8"
	case FormatLuminanceAlpha8:
		return "luminance_alpha8"
	case FormatRGB565:
		return "rgb565"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// DrawMode is the legacy primitive topology of a draw call.
type DrawMode uint8

// Draw modes.
const (
	// ModeTriangles draws independent triangles.
	ModeTriangles DrawMode = iota

	// ModeTriangleStrip draws a connected triangle strip.
	ModeTriangleStrip

	// ModeLines draws independent line segments.
	ModeLines

	// ModePoints draws independent points.
	ModePoints
)

// IndexType is the element width of an index buffer.
type IndexType uint8

// Index types.
const (
	// IndexUint16 is 16-bit indices.
	IndexUint16 IndexType = iota

	// IndexUint32 is 32-bit indices.
	IndexUint32
)

// Bytes returns the size of one index element.
func (t IndexType) Bytes() int {
	if t == IndexUint32 {
		return 4
	}
	return 2
}

// Capability is a legacy global enable/disable flag.
type Capability uint8

// Capabilities tracked by the shim.
const (
	// CapDepthTest enables depth testing.
	CapDepthTest Capability = iota

	// CapBlend enables alpha blending.
	CapBlend

	// CapCullFace enables back-face culling.
	CapCullFace

	// CapScissorTest enables scissor clipping.
	CapScissorTest

	capabilityCount
)

// CapabilityCount is the number of tracked capabilities.
const CapabilityCount = int(capabilityCount)

// ClearMask selects which frame attachments a clear call affects.
// Flags combine with bitwise OR.
type ClearMask uint8

// Clear mask bits.
const (
	// ClearColorBit clears the color attachment.
	ClearColorBit ClearMask = 1 << iota

	// ClearDepthBit clears the depth attachment.
	ClearDepthBit
)

// PixelStoreParam names one pixel transfer parameter affecting uploads.
type PixelStoreParam uint8

// Pixel store parameters.
const (
	// StoreRowLength is the source row length in pixels (0 = tight).
	StoreRowLength PixelStoreParam = iota

	// StoreSkipRows is the number of leading rows to skip.
	StoreSkipRows

	// StoreSkipPixels is the number of leading pixels per row to skip.
	StoreSkipPixels

	// StoreAlignment is the source row byte alignment (1, 2, 4, or 8).
	StoreAlignment
)

// TexParam names one per-texture sampling parameter.
type TexParam uint8

// Texture parameters. Filtering and wrapping are forwarded to the backend
// best-effort; they never fail a translation.
const (
	// TexParamMinFilter selects the minification filter.
	TexParamMinFilter TexParam = iota

	// TexParamMagFilter selects the magnification filter.
	TexParamMagFilter

	// TexParamWrapS selects horizontal wrap behavior.
	TexParamWrapS

	// TexParamWrapT selects vertical wrap behavior.
	TexParamWrapT
)

// Rect is an integer rectangle in framebuffer coordinates.
type Rect struct {
	X, Y, W, H int32
}

// Color is a normalized RGBA color.
type Color struct {
	R, G, B, A float32
}

// DrawDescriptor is one entry of a batched draw: the per-draw parameters
// of a single explicit draw sharing the batch's index buffer.
type DrawDescriptor struct {
	// Mode is the primitive topology.
	Mode DrawMode

	// BaseVertex is added to every index value.
	BaseVertex int32

	// FirstIndex is the offset into the shared index buffer, in elements.
	FirstIndex uint32

	// Count is the number of indices to draw.
	Count uint32

	// InstanceCount is the number of instances (0 is treated as 1).
	InstanceCount uint32
}

// SamplerBinding maps a shader-declared sampler name to the texture unit
// it reads from. The set of bindings is fixed per resolved pipeline.
type SamplerBinding struct {
	// Name is the sampler identifier declared by the shader.
	Name string

	// Unit is the legacy texture unit the sampler sources from.
	Unit int

	// StageSlot is the backend shader-resource slot the resolved texture
	// is pushed to.
	StageSlot int
}
