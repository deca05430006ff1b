package glcore

import "testing"

func TestNativeHandleIsZero(t *testing.T) {
	if !NoNativeHandle.IsZero() {
		t.Error("NoNativeHandle should be zero")
	}
	if NativeHandle(1).IsZero() {
		t.Error("nonzero handle reported zero")
	}
}

func TestPixelFormatBytesPerPixel(t *testing.T) {
	cases := []struct {
		format PixelFormat
		want   int
	}{
		{FormatRGBA8, 4},
		{FormatBGRA8, 4},
		{FormatRGB8, 3},
		{FormatLuminanceAlpha8, 2},
		{FormatRGB565, 2},
		{FormatLuminance8, 1},
	}
	for _, c := range cases {
		if got := c.format.BytesPerPixel(); got != c.want {
			t.Errorf("%s: bytes per pixel = %d, want %d", c.format, got, c.want)
		}
	}
}

func TestIndexTypeBytes(t *testing.T) {
	if IndexUint16.Bytes() != 2 {
		t.Errorf("uint16 index size = %d", IndexUint16.Bytes())
	}
	if IndexUint32.Bytes() != 4 {
		t.Errorf("uint32 index size = %d", IndexUint32.Bytes())
	}
}

func TestAttribFormatSize(t *testing.T) {
	if AttribFloat32x3.Size() != 12 {
		t.Errorf("f32x3 size = %d, want 12", AttribFloat32x3.Size())
	}
	if AttribUnorm8x4.Size() != 4 {
		t.Errorf("un8x4 size = %d, want 4", AttribUnorm8x4.Size())
	}
}

func TestStringNames(t *testing.T) {
	if KindTexture.String() != "texture" || KindBuffer.String() != "buffer" {
		t.Error("unexpected kind names")
	}
	if TargetElementArrayBuffer.String() != "element_array_buffer" {
		t.Errorf("target name = %s", TargetElementArrayBuffer)
	}
	if FormatRGB565.String() != "rgb565" {
		t.Errorf("format name = %s", FormatRGB565)
	}
}
