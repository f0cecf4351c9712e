package pulse

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// SamplerCache hands out samplers by their description. Samplers returned by
// the cache are owned by it, you must not call wgpu.Sampler.Release() on them.
type SamplerCache struct {
	device *wgpu.Device
	cache  *lru.Cache[wgpu.SamplerDescriptor, *wgpu.Sampler]
}

func NewSamplerCache(device *wgpu.Device, size int) *SamplerCache {
	cache, _ := lru.NewWithEvict[wgpu.SamplerDescriptor, *wgpu.Sampler](size, samplerCacheOnEvict)

	return &SamplerCache{device: device, cache: cache}
}

func samplerCacheOnEvict(key wgpu.SamplerDescriptor, value *wgpu.Sampler) {
	value.Release()
}

func (c *SamplerCache) Get(desc wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	cachedSampler, ok := c.cache.Get(desc)
	if ok {
		return cachedSampler, nil
	}

	sampler, err := c.device.CreateSampler(&desc)
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}

	c.cache.Add(desc, sampler)

	return sampler, nil
}

func (c *SamplerCache) Len() int {
	return c.cache.Len()
}

// Release releases all cached samplers.
func (c *SamplerCache) Release() {
	c.cache.Purge()
}
