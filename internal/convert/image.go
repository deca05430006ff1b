package convert

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// FromImage converts an arbitrary image.Image into tightly packed RGBA8
// upload bytes plus the image dimensions. Non-RGBA sources are converted
// through x/image's drawing fast paths; an *image.RGBA with a tight stride
// is copied without conversion.
func FromImage(img image.Image) (data []byte, width, height int) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, 0, 0
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == width*4 && b.Min == (image.Point{}) {
		out := make([]byte, width*height*4)
		copy(out, rgba.Pix)
		return out, width, height
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst.Pix, width, height
}
