package wgpu

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glbridge"
	"github.com/gogpu/glbridge/glcore"
)

// Precompiled shader sources, keyed by the identifiers legacy callers bind
// through the shim. These are compiled at load time using go:embed.
var (
	//go:embed shaders/flat.wgsl
	flatShaderWGSL string

	//go:embed shaders/gui.wgsl
	guiShaderWGSL string

	//go:embed shaders/particle.wgsl
	particleShaderWGSL string
)

// shaderTable maps pipeline identifiers to WGSL sources.
var shaderTable = map[string]string{
	"flat":     flatShaderWGSL,
	"gui":      guiShaderWGSL,
	"particle": particleShaderWGSL,
}

// texturedShaders marks the identifiers whose shaders sample a texture at
// group 0. Textured pipelines read the view pushed to stage slot 0.
var texturedShaders = map[string]bool{
	"gui": true,
}

// pipelineEntry is one loaded pipeline: a compiled shader module, its
// pipeline layout, the vertex buffer layout decoded from the signature, and
// topology-specialized render pipelines created on demand. HAL bakes the
// primitive topology into the pipeline object, so one entry may hold several
// variants.
type pipelineEntry struct {
	label    string
	module   hal.ShaderModule
	layout   hal.PipelineLayout
	vertex   []gputypes.VertexBufferLayout
	variants map[gputypes.PrimitiveTopology]hal.RenderPipeline

	// textured pipelines carry a bind group layout for the sampled
	// texture and its sampler (group 0, bindings 0 and 1).
	textured   bool
	bindLayout hal.BindGroupLayout
}

func (p *pipelineEntry) destroy(device hal.Device) {
	for _, rp := range p.variants {
		device.DestroyRenderPipeline(rp)
	}
	p.variants = nil
	if p.layout != nil {
		device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.module != nil {
		device.DestroyShaderModule(p.module)
		p.module = nil
	}
}

// variant returns the render pipeline for a topology, creating it on first
// use.
func (p *pipelineEntry) variant(device hal.Device, topo gputypes.PrimitiveTopology, format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	if rp, ok := p.variants[topo]; ok {
		return rp, nil
	}

	blend := gputypes.BlendStatePremultiplied()
	rp, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s_topo%d", p.label, topo),
		Layout: p.layout,
		Vertex: hal.VertexState{
			Module:     p.module,
			EntryPoint: "vs_main",
			Buffers:    p.vertex,
		},
		Fragment: &hal.FragmentState{
			Module:     p.module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topo,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s pipeline: %w", p.label, err)
	}
	p.variants[topo] = rp
	return rp, nil
}

// LoadPrecompiledPipeline compiles the shader for identifier against the
// given vertex layout signature. Unknown identifiers return (0, false);
// compile failures are logged and also reported as absent.
func (d *Device) LoadPrecompiledPipeline(identifier, layoutSignature string) (glcore.NativeHandle, bool) {
	wgsl, ok := shaderTable[identifier]
	if !ok {
		return glcore.NoNativeHandle, false
	}

	vertex, err := parseLayoutSignature(layoutSignature)
	if err != nil {
		glbridge.Logger().Warn("wgpu: bad layout signature",
			"identifier", identifier, "signature", layoutSignature, "error", err)
		return glcore.NoNativeHandle, false
	}

	spirv, err := compileShaderToSPIRV(wgsl)
	if err != nil {
		glbridge.Logger().Warn("wgpu: shader compile failed",
			"identifier", identifier, "error", err)
		return glcore.NoNativeHandle, false
	}

	label := "glbridge_" + identifier
	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		glbridge.Logger().Warn("wgpu: create shader module failed",
			"identifier", identifier, "error", err)
		return glcore.NoNativeHandle, false
	}

	textured := texturedShaders[identifier]
	var bindLayout hal.BindGroupLayout
	var layouts []hal.BindGroupLayout
	if textured {
		bindLayout, err = d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label: label + "_bind_layout",
			Entries: []gputypes.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: gputypes.ShaderStageFragment,
					Texture: &gputypes.TextureBindingLayout{
						SampleType:    gputypes.TextureSampleTypeFloat,
						ViewDimension: gputypes.TextureViewDimension2D,
					},
				},
				{
					Binding:    1,
					Visibility: gputypes.ShaderStageFragment,
					Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
				},
			},
		})
		if err != nil {
			d.device.DestroyShaderModule(module)
			glbridge.Logger().Warn("wgpu: create bind group layout failed",
				"identifier", identifier, "error", err)
			return glcore.NoNativeHandle, false
		}
		layouts = []hal.BindGroupLayout{bindLayout}
	}

	layout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		if bindLayout != nil {
			d.device.DestroyBindGroupLayout(bindLayout)
		}
		d.device.DestroyShaderModule(module)
		glbridge.Logger().Warn("wgpu: create pipeline layout failed",
			"identifier", identifier, "error", err)
		return glcore.NoNativeHandle, false
	}

	id := d.handle()
	d.mu.Lock()
	d.pipelines[id] = &pipelineEntry{
		label:      label,
		module:     module,
		layout:     layout,
		vertex:     vertex,
		variants:   make(map[gputypes.PrimitiveTopology]hal.RenderPipeline),
		textured:   textured,
		bindLayout: bindLayout,
	}
	d.mu.Unlock()
	return id, true
}

// textureBindEntries builds the bind group entries for a textured pipeline:
// the sampled view at binding 0 and its sampler at binding 1.
func textureBindEntries(view, sampler uintptr) []gputypes.BindGroupEntry {
	return []gputypes.BindGroupEntry{
		{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: view}},
		{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: sampler}},
	}
}

// topologyFor maps a legacy draw mode onto a HAL primitive topology.
func topologyFor(mode glcore.DrawMode) gputypes.PrimitiveTopology {
	switch mode {
	case glcore.ModeTriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip
	case glcore.ModeLines:
		return gputypes.PrimitiveTopologyLineList
	case glcore.ModePoints:
		return gputypes.PrimitiveTopologyPointList
	default:
		return gputypes.PrimitiveTopologyTriangleList
	}
}

// parseLayoutSignature decodes the shim's compact vertex layout signature
// ("s24;0:f32x3@0;1:un8x4@12") into a HAL vertex buffer layout.
func parseLayoutSignature(sig string) ([]gputypes.VertexBufferLayout, error) {
	if sig == "" {
		return nil, nil
	}

	parts := strings.Split(sig, ";")
	if !strings.HasPrefix(parts[0], "s") {
		return nil, fmt.Errorf("missing stride prefix in %q", sig)
	}
	stride, err := strconv.ParseUint(parts[0][1:], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("bad stride in %q: %w", sig, err)
	}

	attrs := make([]gputypes.VertexAttribute, 0, len(parts)-1)
	for _, part := range parts[1:] {
		colon := strings.IndexByte(part, ':')
		at := strings.IndexByte(part, '@')
		if colon < 0 || at < colon {
			return nil, fmt.Errorf("bad attribute %q", part)
		}
		location, err := strconv.ParseUint(part[:colon], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad location in %q: %w", part, err)
		}
		offset, err := strconv.ParseUint(part[at+1:], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad offset in %q: %w", part, err)
		}
		format, err := vertexFormatFor(part[colon+1 : at])
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         format,
			Offset:         uint64(offset),
			ShaderLocation: uint32(location),
		})
	}

	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: stride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes:  attrs,
		},
	}, nil
}

func vertexFormatFor(token string) (gputypes.VertexFormat, error) {
	switch token {
	case "f32":
		return gputypes.VertexFormatFloat32, nil
	case "f32x2":
		return gputypes.VertexFormatFloat32x2, nil
	case "f32x3":
		return gputypes.VertexFormatFloat32x3, nil
	case "f32x4":
		return gputypes.VertexFormatFloat32x4, nil
	case "un8x4":
		return gputypes.VertexFormatUnorm8x4, nil
	case "u16x2":
		return gputypes.VertexFormatUint16x2, nil
	default:
		return 0, fmt.Errorf("unknown attribute format %q", token)
	}
}
