// Package convert provides the stateless format conversion routines of the
// translation shim: legacy pixel uploads are re-packed to tightly packed
// RGBA8, and vertex layouts are reduced to stable signatures usable as
// pipeline cache keys.
//
// Conversion is row-independent, so large uploads are split into bands
// processed on a shared worker pool.
package convert

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/glbridge/glcore"
	"github.com/gogpu/glbridge/internal/parallel"
)

// Conversion errors.
var (
	// ErrShortPixelData is returned when the source buffer does not cover
	// the requested region under the given row layout.
	ErrShortPixelData = errors.New("convert: pixel data shorter than region")

	// ErrUnknownFormat is returned for a pixel format the converter does
	// not understand.
	ErrUnknownFormat = errors.New("convert: unknown pixel format")
)

// RowLayout describes how source rows are laid out in a legacy upload,
// mirroring the emulated pixel-store parameters.
type RowLayout struct {
	// RowLengthPx is the source row length in pixels; 0 means the region
	// width.
	RowLengthPx int

	// SkipRows is the number of leading rows skipped.
	SkipRows int

	// SkipPixels is the number of leading pixels skipped per row.
	SkipPixels int

	// Alignment is the byte alignment of each source row (1, 2, 4, or 8).
	Alignment int
}

// TightLayout is the layout of tightly packed data with no skips.
var TightLayout = RowLayout{Alignment: 1}

// rowStride returns the aligned byte stride of one source row.
func (l RowLayout) rowStride(widthPx, bytesPerPixel int) int {
	rowPx := l.RowLengthPx
	if rowPx <= 0 {
		rowPx = widthPx
	}
	stride := rowPx * bytesPerPixel
	align := l.Alignment
	if align <= 0 {
		align = 1
	}
	return (stride + align - 1) &^ (align - 1)
}

// Repack converts a legacy pixel upload to tightly packed RGBA8.
//
// src holds pixels in format f laid out per layout; the returned slice is
// width*height*4 bytes of RGBA8 with no row padding. Repack never modifies
// src.
func Repack(f glcore.PixelFormat, src []byte, width, height int, layout RowLayout) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("convert: invalid region %dx%d", width, height)
	}
	bpp := f.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}

	stride := layout.rowStride(width, bpp)
	base := layout.SkipRows*stride + layout.SkipPixels*bpp
	need := base + (height-1)*stride + width*bpp
	if len(src) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortPixelData, len(src), need)
	}

	dst := make([]byte, width*height*4)
	if height >= parallelMinRows && f != glcore.FormatRGBA8 {
		repackBands(f, src, dst, width, height, base, stride)
		return dst, nil
	}
	for y := 0; y < height; y++ {
		row := src[base+y*stride:]
		out := dst[y*width*4:]
		convertRow(f, row, out, width)
	}
	return dst, nil
}

// parallelMinRows is the region height above which Repack converts on the
// worker pool. RGBA8 sources are excluded: they reduce to a copy that does
// not pay for the dispatch.
const parallelMinRows = 256

var (
	poolOnce sync.Once
	pool     *parallel.WorkerPool
)

// repackBands splits the region into one band per worker and converts the
// bands concurrently. Rows never overlap, so the bands share dst safely.
func repackBands(f glcore.PixelFormat, src, dst []byte, width, height, base, stride int) {
	poolOnce.Do(func() {
		pool = parallel.NewWorkerPool(0)
	})

	workers := pool.Workers()
	bandRows := (height + workers - 1) / workers
	tasks := make([]func(), 0, workers)
	for start := 0; start < height; start += bandRows {
		end := start + bandRows
		if end > height {
			end = height
		}
		start, end := start, end
		tasks = append(tasks, func() {
			for y := start; y < end; y++ {
				convertRow(f, src[base+y*stride:], dst[y*width*4:], width)
			}
		})
	}
	pool.ExecuteAll(tasks)
}

// convertRow expands one row of width pixels from format f into RGBA8.
func convertRow(f glcore.PixelFormat, src, dst []byte, width int) {
	switch f {
	case glcore.FormatRGBA8:
		copy(dst[:width*4], src[:width*4])
	case glcore.FormatBGRA8:
		for x := 0; x < width; x++ {
			s, d := src[x*4:], dst[x*4:]
			d[0], d[1], d[2], d[3] = s[2], s[1], s[0], s[3]
		}
	case glcore.FormatRGB8:
		for x := 0; x < width; x++ {
			s, d := src[x*3:], dst[x*4:]
			d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 0xFF
		}
	case glcore.FormatLuminance8:
		for x := 0; x < width; x++ {
			l, d := src[x], dst[x*4:]
			d[0], d[1], d[2], d[3] = l, l, l, 0xFF
		}
	case glcore.FormatLuminanceAlpha8:
		for x := 0; x < width; x++ {
			s, d := src[x*2:], dst[x*4:]
			d[0], d[1], d[2], d[3] = s[0], s[0], s[0], s[1]
		}
	case glcore.FormatRGB565:
		for x := 0; x < width; x++ {
			// Little-endian 5-6-5: rrrrrggg gggbbbbb across two bytes.
			v := uint16(src[x*2]) | uint16(src[x*2+1])<<8
			r := uint8(v >> 11 & 0x1F)
			g := uint8(v >> 5 & 0x3F)
			b := uint8(v & 0x1F)
			d := dst[x*4:]
			// Expand to 8 bits replicating the high bits.
			d[0] = r<<3 | r>>2
			d[1] = g<<2 | g>>4
			d[2] = b<<3 | b>>2
			d[3] = 0xFF
		}
	}
}
