package pulse

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// PipelineConfig describes a render pipeline. Equal configs
// share the same pipeline.
type PipelineConfig interface {
	comparable

	Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error)
}

type CachedPipeline struct {
	Pipeline *wgpu.RenderPipeline

	// bind group layouts fetched from the pipeline, owned by the cache
	layouts map[uint32]*wgpu.BindGroupLayout
}

// BindGroupLayout returns the layout of the bind group with the given index.
// The layout is released together with the pipeline.
func (pc CachedPipeline) BindGroupLayout(idx uint32) *wgpu.BindGroupLayout {
	layout, ok := pc.layouts[idx]
	if !ok {
		layout = pc.Pipeline.GetBindGroupLayout(idx)
		pc.layouts[idx] = layout
	}

	return layout
}

func (pc CachedPipeline) release() {
	for _, layout := range pc.layouts {
		layout.Release()
	}

	clear(pc.layouts)
	pc.Pipeline.Release()
}

// PipelineCache builds render pipelines on first use and keeps
// the most recently used ones.
type PipelineCache[C PipelineConfig] struct {
	device *wgpu.Device
	cache  *lru.Cache[C, CachedPipeline]

	misses uint64
}

func NewPipelineCache[C PipelineConfig](ctx *Context, size int) *PipelineCache[C] {
	cache, err := lru.NewWithEvict(size, func(_ C, pc CachedPipeline) { pc.release() })
	if err != nil {
		// only fails for a non positive size
		panic(err)
	}

	return &PipelineCache[C]{device: ctx.Device, cache: cache}
}

func (p *PipelineCache[C]) Get(conf C) (CachedPipeline, error) {
	if cached, ok := p.cache.Get(conf); ok {
		return cached, nil
	}

	pipeline, err := conf.Specialize(p.device)
	if err != nil {
		return CachedPipeline{}, fmt.Errorf("specialize pipeline: %w", err)
	}

	p.misses++

	cached := CachedPipeline{
		Pipeline: pipeline,
		layouts:  map[uint32]*wgpu.BindGroupLayout{},
	}

	if evicted := p.cache.Add(conf, cached); evicted {
		slog.Warn("Pipeline cache too small, evicted a pipeline", slog.Uint64("misses", p.misses))
	}

	return cached, nil
}

// Release releases all cached pipelines.
func (p *PipelineCache[C]) Release() {
	p.cache.Purge()
}
