package pulse

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/oliverbestmann/webgpu/wgpu"
)

//go:embed sprite.wgsl
var spriteShaderCode string

// maximum number of sprites to render in one batch.
const maxSpriteInstances = 16 * 1024

type spriteBatchConfig struct {
	target     RenderTarget
	texture    *wgpu.TextureView
	filterMode wgpu.FilterMode
	blendState wgpu.BlendState
}

type spriteInstance struct {
	Color [4]float32

	UVOffset [2]float32
	UVScale  [2]float32

	// target rectangle in pixels: x, y, width, height
	Dest [4]float32
}

// SpriteCommand batches textured rectangles that share a source texture
// and draws each batch with a single instanced draw call.
type SpriteCommand struct {
	ctx *Context

	pipelineCache *PipelineCache[spritePipelineConfig]

	instances    []spriteInstance
	bufInstances *wgpu.Buffer
	bufIndices   *wgpu.Buffer
	bufUniforms  *wgpu.Buffer

	batchConfig spriteBatchConfig
}

func NewSpriteCommand(ctx *Context) (*SpriteCommand, error) {
	bufInstances, err := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Sprite.Instances",
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(spriteInstance{})) * maxSpriteInstances,
	})

	if err != nil {
		return nil, fmt.Errorf("create instance buffer: %w", err)
	}

	bufIndices, err := ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Sprite.Indices",
		Contents: wgpu.ToBytes([]uint16{2, 0, 1, 1, 3, 2}),
		Usage:    wgpu.BufferUsageIndex,
	})

	if err != nil {
		bufInstances.Release()
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	bufUniforms, err := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Sprite.Uniforms",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof([4]float32{})),
	})

	if err != nil {
		bufIndices.Release()
		bufInstances.Release()
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}

	p := &SpriteCommand{
		ctx:          ctx,
		bufInstances: bufInstances,
		bufIndices:   bufIndices,
		bufUniforms:  bufUniforms,
	}

	p.pipelineCache = NewPipelineCache[spritePipelineConfig](ctx, 8)

	return p, nil
}

type DrawSpriteOptions struct {
	// Region of the source texture to draw
	Source *Texture

	// Target rectangle in pixels
	Dest Rectf

	Color      Color
	FilterMode wgpu.FilterMode
	BlendState wgpu.BlendState
}

func (p *SpriteCommand) Draw(target RenderTarget, opts DrawSpriteOptions) error {
	if opts.Source.ToWGPUTextureView() == nil {
		return errors.New("draw released texture")
	}

	batchConfig := spriteBatchConfig{
		target:     target,
		texture:    opts.Source.ToWGPUTextureView(),
		filterMode: opts.FilterMode,
		blendState: opts.BlendState,
	}

	requireFlush := p.batchConfig != batchConfig ||
		len(p.instances)+1 > maxSpriteInstances

	if requireFlush {
		if err := p.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		p.batchConfig = batchConfig
	}

	uvOffset, uvScale := opts.Source.UV()
	x, y, w, h := opts.Dest.XYWH()

	p.instances = append(p.instances, spriteInstance{
		Color:    opts.Color.ToArray(),
		UVOffset: uvOffset,
		UVScale:  uvScale,
		Dest:     [4]float32{x, y, w, h},
	})

	return nil
}

func (p *SpriteCommand) Flush() error {
	if len(p.instances) == 0 {
		return nil
	}

	defer p.reset()

	slog.Debug("Rendering sprites", slog.Int("instanceCount", len(p.instances)))

	err := p.ctx.Queue.WriteBuffer(p.bufInstances, 0, wgpu.ToBytes(p.instances))
	if err != nil {
		return fmt.Errorf("update instance buffer: %w", err)
	}

	batchConfig := p.batchConfig

	sampler, err := p.ctx.Sampler(wgpu.SamplerDescriptor{
		Label:         "Sprite.Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     batchConfig.filterMode,
		MinFilter:     batchConfig.filterMode,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   1,
		MaxAnisotropy: 1,
	})

	if err != nil {
		return err
	}

	pipelineConfig := spritePipelineConfig{
		TargetFormat:      batchConfig.target.Format,
		TargetSampleCount: batchConfig.target.SampleCount,
		BlendState:        batchConfig.blendState,
	}

	pipeline, err := p.pipelineCache.Get(pipelineConfig)
	if err != nil {
		return fmt.Errorf("get pipeline: %w", err)
	}

	bindGroup, err := p.ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Sprite.BindGroup",
		Layout: pipeline.BindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: batchConfig.texture,
			},
			{
				Binding: 1,
				Sampler: sampler,
			},
			{
				Binding: 2,
				Buffer:  p.bufUniforms,
				Size:    wgpu.WholeSize,
			},
		},
	})

	if err != nil {
		return err
	}

	defer bindGroup.Release()

	uniforms := [4]float32{
		float32(batchConfig.target.Width),
		float32(batchConfig.target.Height),
	}

	err = p.ctx.Queue.WriteBuffer(p.bufUniforms, 0, wgpu.ToBytes(uniforms[:]))
	if err != nil {
		return fmt.Errorf("update uniform buffer: %w", err)
	}

	return p.ctx.Encode("Sprite", func(enc *wgpu.CommandEncoder) error {
		pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
			Label:            "RenderPassSprite",
			ColorAttachments: batchConfig.target.attachment(wgpu.LoadOpLoad, ColorTransparent),
		})

		defer pass.Release()

		pass.SetPipeline(pipeline.Pipeline)
		pass.SetBindGroup(0, bindGroup, nil)
		pass.SetVertexBuffer(0, p.bufInstances, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(p.bufIndices, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		pass.DrawIndexed(6, uint32(len(p.instances)), 0, 0, 0)

		return pass.End()
	})
}

// Release releases all gpu resources. Pending sprites are discarded.
func (p *SpriteCommand) Release() {
	p.reset()
	p.pipelineCache.Release()
	p.bufUniforms.Release()
	p.bufIndices.Release()
	p.bufInstances.Release()
}

type spritePipelineConfig struct {
	TargetFormat      wgpu.TextureFormat
	BlendState        wgpu.BlendState
	TargetSampleCount uint32
}

func (conf spritePipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for sprites",
		slog.Any("format", conf.TargetFormat),
		slog.Any("sampleCount", conf.TargetSampleCount),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Sprite.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: spriteShaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("compile sprite shader: %w", err)
	}

	defer shader.Release()

	desc := &wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Sprite.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(spriteInstance{})),
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{
							// color
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         uint64(unsafe.Offsetof(spriteInstance{}.Color)),
							ShaderLocation: 0,
						},
						{
							// uv pos
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(spriteInstance{}.UVOffset)),
							ShaderLocation: 1,
						},
						{
							// uv scale
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(spriteInstance{}.UVScale)),
							ShaderLocation: 2,
						},
						{
							// target rectangle
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         uint64(unsafe.Offsetof(spriteInstance{}.Dest)),
							ShaderLocation: 3,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &conf.BlendState,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  conf.TargetSampleCount,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}

	pipeline, err := dev.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("build sprite pipeline: %w", err)
	}

	return pipeline, nil
}

func (p *SpriteCommand) reset() {
	p.instances = p.instances[:0]
	p.batchConfig = spriteBatchConfig{}
}
