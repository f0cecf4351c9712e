package pulse

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"slices"

	"github.com/oliverbestmann/webgpu/wgpu"
)

type SurfaceOptions struct {
	// Format of the surface, picked from the capabilities of the
	// adapter if not set. Srgb formats are preferred.
	Format wgpu.TextureFormat

	// PresentMode defaults to wgpu.PresentModeFifo
	PresentMode wgpu.PresentMode

	// MSAA enables 4x multisampling.
	MSAA bool

	// ClearColor is used to clear every frame in BeginFrame.
	ClearColor Color

	// DontClear keeps the content of the previous frame.
	DontClear bool

	// FilterMode used when drawing images. Defaults to linear filtering.
	FilterMode wgpu.FilterMode
}

// Surface renders into a window. It implements the render surface of an
// orion program: frames are started with BeginFrame, drawn into with
// Clear and DrawImage, and presented with EndFrame.
type Surface struct {
	ctx  *Context
	opts SurfaceOptions

	config     *wgpu.SurfaceConfiguration
	configured bool

	// only allocated if multisampling is enabled
	msaaTexture *Texture

	// texture of the frame currently being drawn
	frame     *wgpu.Texture
	frameView *wgpu.TextureView
	target    RenderTarget

	sprites *SpriteCommand
}

func NewSurface(desc *wgpu.SurfaceDescriptor, opts SurfaceOptions) (*Surface, error) {
	ctx, err := NewContext(desc)
	if err != nil {
		return nil, fmt.Errorf("create context: %w", err)
	}

	caps := ctx.Surface.GetCapabilities(ctx.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	if opts.Format == wgpu.TextureFormatUndefined {
		opts.Format = pickFormat(caps.Formats)
	}

	if opts.PresentMode == wgpu.PresentModeUndefined {
		opts.PresentMode = wgpu.PresentModeFifo
	}

	if opts.FilterMode == wgpu.FilterModeUndefined {
		opts.FilterMode = wgpu.FilterModeLinear
	}

	alphaMode := wgpu.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		alphaMode = caps.AlphaModes[0]
	}

	sprites, err := NewSpriteCommand(ctx)
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("create sprite command: %w", err)
	}

	s := &Surface{
		ctx:  ctx,
		opts: opts,
		config: &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      opts.Format,
			PresentMode: opts.PresentMode,
			AlphaMode:   alphaMode,
		},
		sprites: sprites,
	}

	return s, nil
}

func pickFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	preferred := []wgpu.TextureFormat{
		wgpu.TextureFormatBGRA8UnormSrgb,
		wgpu.TextureFormatRGBA8UnormSrgb,
	}

	for _, format := range preferred {
		if slices.Contains(formats, format) {
			return format
		}
	}

	if len(formats) > 0 {
		return formats[0]
	}

	return wgpu.TextureFormatBGRA8Unorm
}

func (s *Surface) Context() *Context {
	return s.ctx
}

func (s *Surface) sampleCount() uint32 {
	if s.opts.MSAA {
		return 4
	}

	return 1
}

// Resize configures the surface for a new size. A surface with a zero
// width or height, for example of a minimized window, skips all frames
// until it is resized again.
func (s *Surface) Resize(width, height uint32) error {
	if s.frame != nil {
		return errors.New("resize during frame")
	}

	if width == 0 || height == 0 {
		s.configured = false
		return nil
	}

	if width > MaxTextureSize || height > MaxTextureSize {
		return fmt.Errorf("surface size %dx%d exceeds %d", width, height, MaxTextureSize)
	}

	s.config.Width = width
	s.config.Height = height
	s.ctx.Surface.Configure(s.ctx.Device, s.config)

	if s.msaaTexture != nil {
		s.msaaTexture.Release()
		s.msaaTexture = nil
	}

	if s.opts.MSAA {
		msaaTexture, err := NewTextureFromDesc(s.ctx, &wgpu.TextureDescriptor{
			Label: "MultisampleRenderTarget",
			Usage: wgpu.TextureUsageRenderAttachment,
			Size: wgpu.Extent3D{
				Width:              width,
				Height:             height,
				DepthOrArrayLayers: 1,
			},
			Format:        s.config.Format,
			Dimension:     wgpu.TextureDimension2D,
			SampleCount:   s.sampleCount(),
			MipLevelCount: 1,
		})

		if err != nil {
			s.configured = false
			return fmt.Errorf("create multisample texture: %w", err)
		}

		s.msaaTexture = msaaTexture
	}

	s.configured = true

	return nil
}

// Size returns the configured size of the surface.
func (s *Surface) Size() (width, height uint32) {
	if !s.configured {
		return 0, 0
	}

	return s.config.Width, s.config.Height
}

// BeginFrame acquires the next texture of the surface and clears it.
func (s *Surface) BeginFrame() error {
	if s.frame != nil {
		return errors.New("frame already started")
	}

	if !s.configured {
		return nil
	}

	frame, err := s.ctx.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}

	frameView, err := frame.CreateView(nil)
	if err != nil {
		frame.Release()
		return fmt.Errorf("create frame view: %w", err)
	}

	s.frame = frame
	s.frameView = frameView

	s.target = RenderTarget{
		View:        frameView,
		Format:      s.config.Format,
		Width:       frame.GetWidth(),
		Height:      frame.GetHeight(),
		SampleCount: 1,
	}

	if s.msaaTexture != nil {
		s.target.View = s.msaaTexture.ToWGPUTextureView()
		s.target.ResolveTarget = frameView
		s.target.SampleCount = s.sampleCount()
	}

	if !s.opts.DontClear {
		return s.Clear(s.opts.ClearColor)
	}

	return nil
}

// EndFrame draws everything still batched and presents the frame.
func (s *Surface) EndFrame() error {
	if s.frame == nil {
		return nil
	}

	defer s.releaseFrame()

	if err := s.sprites.Flush(); err != nil {
		return fmt.Errorf("flush sprites: %w", err)
	}

	s.ctx.Surface.Present()

	// the texture is owned by the surface after it was presented
	s.frame = nil

	return nil
}

func (s *Surface) releaseFrame() {
	if s.frameView != nil {
		s.frameView.Release()
		s.frameView = nil
	}

	if s.frame != nil {
		s.frame.Release()
		s.frame = nil
	}

	s.target = RenderTarget{}
}

// Clear fills the current frame with a color.
func (s *Surface) Clear(color Color) error {
	if s.frame == nil {
		return nil
	}

	// pending sprites would be drawn on top of the cleared frame otherwise
	if err := s.sprites.Flush(); err != nil {
		return fmt.Errorf("flush sprites: %w", err)
	}

	return s.ctx.ClearTarget(&s.target, color)
}

type DrawImageOptions struct {
	// Color to tint the image with. The zero value is white.
	Color Color

	// FilterMode overwrites the filter mode of the surface.
	FilterMode wgpu.FilterMode

	// BlendState defaults to BlendStateDefault.
	BlendState *wgpu.BlendState
}

// DrawImage draws the complete image into the dest rectangle of the frame.
func (s *Surface) DrawImage(img *Texture, dest Rectf, opts *DrawImageOptions) error {
	return s.DrawImageRegion(img, RectXYWH(0, 0, img.Width(), img.Height()), dest, opts)
}

// DrawImageRegion draws the src region of the image into the dest rectangle of the frame.
func (s *Surface) DrawImageRegion(img *Texture, src Rectu, dest Rectf, opts *DrawImageOptions) error {
	if s.frame == nil {
		return nil
	}

	if opts == nil {
		opts = &DrawImageOptions{}
	}

	filterMode := opts.FilterMode
	if filterMode == wgpu.FilterModeUndefined {
		filterMode = s.opts.FilterMode
	}

	blendState := BlendStateDefault
	if opts.BlendState != nil {
		blendState = *opts.BlendState
	}

	err := s.sprites.Draw(s.target, DrawSpriteOptions{
		Source:     img.SubTexture(src),
		Dest:       dest,
		Color:      opts.Color,
		FilterMode: filterMode,
		BlendState: blendState,
	})

	if err != nil {
		return fmt.Errorf("draw image: %w", err)
	}

	return nil
}

// CreateImageFromFile loads and uploads an image file.
func (s *Surface) CreateImageFromFile(path string) (*Texture, error) {
	img, err := DecodeImageFile(path)
	if err != nil {
		return nil, err
	}

	return s.CreateImage(img)
}

// CreateImageFromReader decodes and uploads an image read from r.
func (s *Surface) CreateImageFromReader(r io.Reader) (*Texture, error) {
	img, _, err := DecodeImage(r)
	if err != nil {
		return nil, err
	}

	return s.CreateImage(img)
}

// CreateImageFromRaw uploads tightly packed srgb rgba pixels.
func (s *Surface) CreateImageFromRaw(width, height uint32, pixels []byte) (*Texture, error) {
	if int(width)*int(height)*4 != len(pixels) {
		return nil, fmt.Errorf("expected %d bytes for a %dx%d image, got %d", width*height*4, width, height, len(pixels))
	}

	img := &image.RGBA{
		Pix:    pixels,
		Stride: int(width) * 4,
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}

	return s.CreateImage(img)
}

// CreateImage uploads an image. The texture is released at the latest once it is garbage collected.
func (s *Surface) CreateImage(img image.Image) (*Texture, error) {
	texture, err := NewTextureFromImage(s.ctx, img)
	if err != nil {
		return nil, err
	}

	return releaseOnCollect(texture), nil
}

// Release releases the surface and the underlying device.
func (s *Surface) Release() {
	if s.ctx == nil {
		return
	}

	s.releaseFrame()

	if s.msaaTexture != nil {
		s.msaaTexture.Release()
		s.msaaTexture = nil
	}

	s.sprites.Release()
	s.ctx.Release()
	s.ctx = nil
}
