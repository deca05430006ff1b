package convert

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/glbridge/glcore"
)

func TestRepackRGBA8Tight(t *testing.T) {
	src := []byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	}
	got, err := Repack(glcore.FormatRGBA8, src, 2, 2, TightLayout)
	if err != nil {
		t.Fatalf("Repack: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Errorf("RGBA8 repack changed data: %v", got)
	}
}

func TestRepackBGRASwizzle(t *testing.T) {
	src := []byte{10, 20, 30, 40}
	got, err := Repack(glcore.FormatBGRA8, src, 1, 1, TightLayout)
	if err != nil {
		t.Fatalf("Repack: %v", err)
	}
	want := []byte{30, 20, 10, 40}
	if !bytes.Equal(got, want) {
		t.Errorf("BGRA swizzle = %v, want %v", got, want)
	}
}

func TestRepackRGBExpandsOpaque(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6}
	got, err := Repack(glcore.FormatRGB8, src, 2, 1, TightLayout)
	if err != nil {
		t.Fatalf("Repack: %v", err)
	}
	want := []byte{1, 2, 3, 255, 4, 5, 6, 255}
	if !bytes.Equal(got, want) {
		t.Errorf("RGB expand = %v, want %v", got, want)
	}
}

func TestRepackLuminance(t *testing.T) {
	got, err := Repack(glcore.FormatLuminance8, []byte{7}, 1, 1, TightLayout)
	if err != nil {
		t.Fatalf("Repack: %v", err)
	}
	want := []byte{7, 7, 7, 255}
	if !bytes.Equal(got, want) {
		t.Errorf("luminance expand = %v, want %v", got, want)
	}

	got, err = Repack(glcore.FormatLuminanceAlpha8, []byte{9, 100}, 1, 1, TightLayout)
	if err != nil {
		t.Fatalf("Repack: %v", err)
	}
	want = []byte{9, 9, 9, 100}
	if !bytes.Equal(got, want) {
		t.Errorf("luminance-alpha expand = %v, want %v", got, want)
	}
}

func TestRepackRGB565(t *testing.T) {
	// Pure red: 11111 000000 00000 = 0xF800.
	got, err := Repack(glcore.FormatRGB565, []byte{0x00, 0xF8}, 1, 1, TightLayout)
	if err != nil {
		t.Fatalf("Repack: %v", err)
	}
	want := []byte{255, 0, 0, 255}
	if !bytes.Equal(got, want) {
		t.Errorf("565 red = %v, want %v", got, want)
	}
}

func TestRepackRowLayout(t *testing.T) {
	// Source image is 4 pixels wide; upload the 2x2 region starting at
	// (1,1) using row length + skips.
	const srcW, regionW, regionH = 4, 2, 2
	src := make([]byte, srcW*3*4)
	for i := range src {
		src[i] = byte(i)
	}
	layout := RowLayout{RowLengthPx: srcW, SkipRows: 1, SkipPixels: 1, Alignment: 1}

	got, err := Repack(glcore.FormatRGBA8, src, regionW, regionH, layout)
	if err != nil {
		t.Fatalf("Repack: %v", err)
	}
	want := []byte{
		src[srcW*4+4], src[srcW*4+5], src[srcW*4+6], src[srcW*4+7],
		src[srcW*4+8], src[srcW*4+9], src[srcW*4+10], src[srcW*4+11],
		src[srcW*8+4], src[srcW*8+5], src[srcW*8+6], src[srcW*8+7],
		src[srcW*8+8], src[srcW*8+9], src[srcW*8+10], src[srcW*8+11],
	}
	if !bytes.Equal(got, want) {
		t.Errorf("region repack = %v, want %v", got, want)
	}
}

func TestRepackAlignment(t *testing.T) {
	// 1 pixel of RGB8 per row is 3 bytes; alignment 4 pads each row to 4.
	src := []byte{
		1, 2, 3, 0,
		4, 5, 6, 0,
	}
	got, err := Repack(glcore.FormatRGB8, src, 1, 2, RowLayout{Alignment: 4})
	if err != nil {
		t.Fatalf("Repack: %v", err)
	}
	want := []byte{1, 2, 3, 255, 4, 5, 6, 255}
	if !bytes.Equal(got, want) {
		t.Errorf("aligned repack = %v, want %v", got, want)
	}
}

func TestRepackShortData(t *testing.T) {
	_, err := Repack(glcore.FormatRGBA8, []byte{1, 2, 3}, 2, 2, TightLayout)
	if !errors.Is(err, ErrShortPixelData) {
		t.Errorf("expected ErrShortPixelData, got %v", err)
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})

	data, w, h := FromImage(img)
	if w != 2 || h != 1 {
		t.Fatalf("FromImage size = %dx%d, want 2x1", w, h)
	}
	want := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	if !bytes.Equal(data, want) {
		t.Errorf("FromImage = %v, want %v", data, want)
	}
}

func TestFromImageNonRGBA(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 128})

	data, w, h := FromImage(img)
	if w != 1 || h != 1 || len(data) != 4 {
		t.Fatalf("unexpected FromImage result: %d bytes, %dx%d", len(data), w, h)
	}
	if data[0] != 128 || data[3] != 255 {
		t.Errorf("gray conversion = %v", data)
	}
}

func TestLayoutSignatureStable(t *testing.T) {
	l := glcore.VertexLayout{
		Stride: 24,
		Attributes: []glcore.VertexAttribute{
			{Location: 0, Format: glcore.AttribFloat32x3, Offset: 0},
			{Location: 1, Format: glcore.AttribUnorm8x4, Offset: 12},
			{Location: 2, Format: glcore.AttribFloat32x2, Offset: 16},
		},
	}
	sig := Signature(l)
	want := "s24;0:f32x3@0;1:un8x4@12;2:f32x2@16"
	if sig != want {
		t.Errorf("signature = %q, want %q", sig, want)
	}
	if sig != Signature(l) {
		t.Error("signature not stable across calls")
	}
}

func TestLayoutSignatureDistinguishes(t *testing.T) {
	a := glcore.VertexLayout{Stride: 12, Attributes: []glcore.VertexAttribute{{Format: glcore.AttribFloat32x3}}}
	b := glcore.VertexLayout{Stride: 16, Attributes: []glcore.VertexAttribute{{Format: glcore.AttribFloat32x4}}}
	if Signature(a) == Signature(b) {
		t.Error("distinct layouts produced identical signatures")
	}
}

func TestRepackLargeRegionMatchesRowByRow(t *testing.T) {
	// Tall regions take the banded worker-pool path; it must produce the
	// same bytes as per-row conversion.
	const w, h = 64, parallelMinRows * 2
	src := make([]byte, w*h)
	for i := range src {
		src[i] = byte(i * 31)
	}

	got, err := Repack(glcore.FormatLuminance8, src, w, h, TightLayout)
	if err != nil {
		t.Fatalf("Repack() error = %v", err)
	}

	want := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		convertRow(glcore.FormatLuminance8, src[y*w:], want[y*w*4:], w)
	}
	if !bytes.Equal(got, want) {
		t.Error("banded conversion differs from row-by-row conversion")
	}
}
