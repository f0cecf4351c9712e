package pulse

import "github.com/oliverbestmann/webgpu/wgpu"

// RenderTarget is the frame a command draws into. It is only valid
// between BeginFrame and EndFrame of the Surface that produced it.
type RenderTarget struct {
	View *wgpu.TextureView

	// Set when View is multisampled. The samples are resolved into it
	// at the end of every pass.
	ResolveTarget *wgpu.TextureView

	Format      wgpu.TextureFormat
	SampleCount uint32

	Width, Height uint32
}

func (t *RenderTarget) Bounds() Rectf {
	return RectXYWH(0, 0, float32(t.Width), float32(t.Height))
}

// attachment describes the target as the only color attachment of a pass.
// With load set to wgpu.LoadOpClear the target is cleared to clearColor.
func (t *RenderTarget) attachment(load wgpu.LoadOp, clearColor Color) []wgpu.RenderPassColorAttachment {
	return []wgpu.RenderPassColorAttachment{
		{
			View:          t.View,
			ResolveTarget: t.ResolveTarget,
			LoadOp:        load,
			StoreOp:       wgpu.StoreOpStore,
			ClearValue:    clearColor.ToWGPU(),
		},
	}
}
