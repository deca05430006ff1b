// Command glbridgedemo drives the translation shim through a typical legacy
// frame loop and prints the explicit commands it produces.
//
// The demo uses a tracing backend that writes every translated command to
// standard output, so the generate/bind/draw to explicit-command mapping is
// visible without a GPU.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/glbridge"
	"github.com/gogpu/glbridge/backend"
	"github.com/gogpu/glbridge/backend/trace"
	"github.com/gogpu/glbridge/glcore"
)

func main() {
	var (
		frames  = flag.Int("frames", 3, "number of frames to run")
		size    = flag.Int("size", 256, "checker texture size in pixels")
		verbose = flag.Bool("verbose", false, "enable shim debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	glbridge.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	fmt.Println("registered backends:", backend.Available())
	tb := trace.New(os.Stdout)
	shim, err := glbridge.New(tb, glbridge.WithSweepInterval(2))
	if err != nil {
		log.Fatalf("create shim: %v", err)
	}

	// Legacy-style setup: generate handles first, fill them later.
	tex := shim.Generate(glcore.KindTexture)
	vbo := shim.Generate(glcore.KindBuffer)
	ibo := shim.Generate(glcore.KindBuffer)

	if err := shim.AllocateTextureFromImage(tex, checkerImage(*size)); err != nil {
		log.Fatalf("allocate texture: %v", err)
	}

	// One quad: clip-space position, premultiplied vertex color, and
	// texture coordinates, with each vertex packed as two float32
	// coordinates, four unorm8 channels, and two float32 UVs.
	var quad []byte
	quad = appendVertex(quad, -0.5, -0.5, 255, 64, 64, 255, 0, 1)
	quad = appendVertex(quad, 0.5, -0.5, 64, 255, 64, 255, 1, 1)
	quad = appendVertex(quad, 0.5, 0.5, 64, 64, 255, 255, 1, 0)
	quad = appendVertex(quad, -0.5, 0.5, 255, 255, 64, 255, 0, 0)

	if err := shim.AllocateBuffer(vbo, len(quad), quad); err != nil {
		log.Fatalf("allocate vertex buffer: %v", err)
	}

	shim.BindBuffer(glcore.TargetElementArrayBuffer, ibo)
	indices := []byte{0, 0, 1, 0, 2, 0, 0, 0, 2, 0, 3, 0} // uint16 LE: 0 1 2 0 2 3
	if err := shim.AllocateBuffer(ibo, len(indices), indices); err != nil {
		log.Fatalf("allocate index buffer: %v", err)
	}

	shim.SetVertexLayout(glcore.VertexLayout{
		Stride: 20,
		Attributes: []glcore.VertexAttribute{
			{Location: 0, Format: glcore.AttribFloat32x2, Offset: 0},
			{Location: 1, Format: glcore.AttribUnorm8x4, Offset: 8},
			{Location: 2, Format: glcore.AttribFloat32x2, Offset: 12},
		},
	})
	shim.RegisterSamplerBindings("gui", []glcore.SamplerBinding{
		{Name: "uTexture", Unit: 0, StageSlot: 0},
	})
	shim.BindShaderProgram("gui")
	shim.SetViewport(0, 0, 800, 600)

	for frame := 0; frame < *frames; frame++ {
		shim.Clear(glcore.ClearColorBit)
		shim.BindBuffer(glcore.TargetArrayBuffer, vbo)
		shim.BindBuffer(glcore.TargetElementArrayBuffer, ibo)
		shim.BindTexture(0, tex)
		shim.BindShaderProgram("gui")
		shim.DrawIndexed(glcore.ModeTriangles, 6, glcore.IndexUint16, 0)
		if err := shim.PresentFrame(); err != nil {
			log.Fatalf("present frame %d: %v", frame, err)
		}
	}

	shim.Delete(tex)
	shim.Delete(vbo)
	shim.Delete(ibo)
	shim.Sweep()

	fmt.Println()
	fmt.Println("shim:", shim.Stats())
	fmt.Printf("backend: %d commands recorded\n", tb.Commands())
}

// checkerImage builds a checkerboard test texture.
func checkerImage(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	const cell = 16
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.RGBA{40, 40, 40, 255}
			if (x/cell+y/cell)%2 == 0 {
				c = color.RGBA{220, 220, 220, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// appendVertex encodes one vertex as two float32 coordinates, four unorm8
// color channels, and two float32 texture coordinates, little-endian.
func appendVertex(buf []byte, x, y float32, r, g, b, a byte, u, v float32) []byte {
	buf = appendFloat32(buf, x)
	buf = appendFloat32(buf, y)
	buf = append(buf, r, g, b, a)
	buf = appendFloat32(buf, u)
	return appendFloat32(buf, v)
}

func appendFloat32(buf []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
}
