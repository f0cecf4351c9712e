package pulse

import (
	"github.com/oliverbestmann/webgpu/wgpu"
)

// ClearTarget fills the whole target with a color.
func (ctx *Context) ClearTarget(target *RenderTarget, color Color) error {
	return ctx.Encode("ClearTarget", func(enc *wgpu.CommandEncoder) error {
		pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
			Label:            "ClearTarget",
			ColorAttachments: target.attachment(wgpu.LoadOpClear, color),
		})

		// an empty pass, the load op does all the work
		defer pass.Release()

		return pass.End()
	})
}
