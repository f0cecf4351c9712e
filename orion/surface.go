package orion

import (
	"log/slog"

	"github.com/oliverbestmann/easel/glimpse"
	"github.com/oliverbestmann/easel/pulse"
)

// Surface is the render target of a Program. It is only used
// on the owning goroutine.
type Surface interface {
	BeginFrame() error

	// EndFrame presents the frame.
	EndFrame() error

	Resize(width, height uint32) error
	Release()
}

// SurfaceFactory creates the surface for a window. It is called on the
// owning goroutine once the window exists.
type SurfaceFactory func(win *glimpse.Window, opts pulse.SurfaceOptions) (Surface, error)

// NewPulseSurface creates a wgpu surface for the window. Windows that can not
// be rendered to, like the ones of the headless backend, get a surface that
// ignores all calls.
func NewPulseSurface(win *glimpse.Window, opts pulse.SurfaceOptions) (Surface, error) {
	desc := win.SurfaceDescriptor()
	if desc == nil {
		slog.Warn("Window has no drawable surface, rendering is disabled",
			slog.String("title", win.Settings().Title),
		)

		return nullSurface{}, nil
	}

	surface, err := pulse.NewSurface(desc, opts)
	if err != nil {
		return nil, err
	}

	return surface, nil
}

type nullSurface struct{}

func (nullSurface) BeginFrame() error {
	return nil
}

func (nullSurface) EndFrame() error {
	return nil
}

func (nullSurface) Resize(_, _ uint32) error {
	return nil
}

func (nullSurface) Release() {
}
