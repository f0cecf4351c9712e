package pulse

import (
	"fmt"
	"image"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
// A Texture can represent a sub region of another texture.
type Texture struct {
	// point to root Texture this texture is a part of.
	root *Texture

	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	// equal to texture.GetFormat()
	format wgpu.TextureFormat

	// sub texture
	region Rectu
}

type NewTextureOptions struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32
	Label  string
}

func NewTexture(ctx *Context, opts NewTextureOptions) (*Texture, error) {
	desc := &wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		SampleCount:   1,
		MipLevelCount: 1,

		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: 1,
		},

		// allow to do almost everything with this texture
		Usage: wgpu.TextureUsageTextureBinding |
			wgpu.TextureUsageRenderAttachment |
			wgpu.TextureUsageCopyDst |
			wgpu.TextureUsageCopySrc,
	}

	return NewTextureFromDesc(ctx, desc)
}

// NewTextureFromDesc gives you full control and creates a texture directly from
// a texture descriptor
func NewTextureFromDesc(ctx *Context, desc *wgpu.TextureDescriptor) (*Texture, error) {
	texture, err := ctx.Device.CreateTexture(desc)
	if err != nil {
		return nil, err
	}

	// now create a default texture view
	textureView, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()

		return nil, err
	}

	t := &Texture{
		texture:     texture,
		textureView: textureView,
		format:      desc.Format,
		region:      RectXYWH(0, 0, desc.Size.Width, desc.Size.Height),
	}

	// texture itself is the root
	t.root = t

	return t, nil
}

// SubTexture returns a view on a region of this texture. The region
// is relative to the region of t.
func (t *Texture) SubTexture(region Rectu) *Texture {
	sub := *t
	sub.region = region.Translate(t.region.Min).Intersect(t.region)
	return &sub
}

func (t *Texture) Root() *Texture {
	return t.root
}

func (t *Texture) IsSubTexture() bool {
	return t != t.root
}

func (t *Texture) Width() uint32 {
	return t.region.Width()
}

func (t *Texture) Height() uint32 {
	return t.region.Height()
}

func (t *Texture) Region() Rectu {
	return t.region
}

// UV returns offset and scale of the region in texture coordinates of the root texture.
func (t *Texture) UV() (offset, scale [2]float32) {
	rootWidth := float32(t.root.Width())
	rootHeight := float32(t.root.Height())

	offset = [2]float32{
		float32(t.region.Min.X) / rootWidth,
		float32(t.region.Min.Y) / rootHeight,
	}

	scale = [2]float32{
		float32(t.region.Width()) / rootWidth,
		float32(t.region.Height()) / rootHeight,
	}

	return offset, scale
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

func (t *Texture) ToWGPUTexture() *wgpu.Texture {
	return t.texture
}

func (t *Texture) ToWGPUTextureView() *wgpu.TextureView {
	return t.textureView
}

// Release releases the texture view. This only works for the root texture,
// not for a sub texture. You must be sure to not use the texture after
// calling release. It might be better to not call Release at all and let the
// garbage collector handle cleanup.
func (t *Texture) Release() {
	if t.root != t || t.texture == nil {
		return
	}

	t.textureView.Release()
	t.texture.Release()

	t.textureView = nil
	t.texture = nil
}

func (t *Texture) WritePixels(ctx *Context, pixels []byte) error {
	return t.WritePixelsToRect(ctx, WritePixelsOptions{
		Pixels: pixels,
		Region: t.region,
	})
}

type WritePixelsOptions struct {
	Pixels   []byte
	Region   Rectu
	Stride   uint32
	MipLevel uint32
}

func (t *Texture) WritePixelsToRect(ctx *Context, opts WritePixelsOptions) error {
	// fail if not in rect
	if !t.region.Contains(opts.Region) {
		return fmt.Errorf("target rect %s not in texture region %s", opts.Region, t.region)
	}

	if opts.Stride == 0 {
		opts.Stride = opts.Region.Width() * 4
	}

	if required := int(opts.Stride) * int(opts.Region.Height()); len(opts.Pixels) < required {
		return fmt.Errorf("expected %d bytes of pixel data, got %d", required, len(opts.Pixels))
	}

	layout := &wgpu.TexelCopyBufferLayout{
		Offset:       0,
		BytesPerRow:  opts.Stride,
		RowsPerImage: opts.Region.Height(),
	}

	size := &wgpu.Extent3D{
		Width:              opts.Region.Width(),
		Height:             opts.Region.Height(),
		DepthOrArrayLayers: 1,
	}

	dest := &wgpu.TexelCopyTextureInfo{
		Texture:  t.texture,
		MipLevel: opts.MipLevel,
		Origin: wgpu.Origin3D{
			X: opts.Region.Min.X,
			Y: opts.Region.Min.Y,
		},
		Aspect: wgpu.TextureAspectAll,
	}

	// send data to the gpu
	err := ctx.WriteTexture(dest, opts.Pixels, layout, size)
	if err != nil {
		return fmt.Errorf("copy image data to texture: %w", err)
	}

	return nil
}

// NewTextureFromImage uploads an image into a new rgba texture. Images larger
// than MaxTextureSize are scaled down first.
func NewTextureFromImage(ctx *Context, src image.Image) (*Texture, error) {
	rgba := toRGBA(src, MaxTextureSize)

	t, err := NewTexture(ctx, NewTextureOptions{
		Format: wgpu.TextureFormatRGBA8UnormSrgb,
		Width:  uint32(rgba.Rect.Dx()),
		Height: uint32(rgba.Rect.Dy()),
		Label:  "Image",
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	err = t.WritePixelsToRect(ctx, WritePixelsOptions{
		Pixels: rgba.Pix,
		Region: t.region,
		Stride: uint32(rgba.Stride),
	})

	if err != nil {
		t.Release()
		return nil, fmt.Errorf("upload texture: %w", err)
	}

	return t, nil
}
