package orion

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/oliverbestmann/easel/glimpse"
)

func (p *Program) loopOnce() error {
	var phases framePhases

	frameStart := time.Now()

	// apply a resize requested by the window thread
	if size, ok := p.resize.take(); ok {
		err := p.applyResize(size)

		// always release the window thread, even if the resize failed
		p.resize.done()

		if err != nil {
			return err
		}
	}

	beginStart := time.Now()
	phases.Resize = beginStart.Sub(frameStart)

	if err := p.surface.BeginFrame(); err != nil {
		return fmt.Errorf("%w: begin frame: %w", ErrSurface, err)
	}

	updateStart := time.Now()
	phases.BeginFrame = updateStart.Sub(beginStart)

	p.nextInput()

	if p.settings.OnUpdate != nil {
		if err := p.settings.OnUpdate(p); err != nil {
			return fmt.Errorf("update program: %w", err)
		}
	}

	endStart := time.Now()
	phases.Update = endStart.Sub(updateStart)

	if err := p.surface.EndFrame(); err != nil {
		return fmt.Errorf("%w: end frame: %w", ErrSurface, err)
	}

	frameEnd := time.Now()
	phases.EndFrame = frameEnd.Sub(endStart)

	p.profiler.tick(frameEnd, phases)

	p.limitFramerate(frameStart)

	return nil
}

func (p *Program) applyResize(size glimpse.Size) error {
	slog.Debug("Resize surface",
		slog.Int("width", int(size.Width)),
		slog.Int("height", int(size.Height)),
	)

	if err := p.surface.Resize(size.Width, size.Height); err != nil {
		return fmt.Errorf("%w: resize surface to %dx%d: %w", ErrSurface, size.Width, size.Height, err)
	}

	p.surfaceSize = size

	return nil
}

// nextInput takes a snapshot of the input collected by the window thread.
func (p *Program) nextInput() {
	p.inputMu.Lock()
	defer p.inputMu.Unlock()

	p.frameInput = p.input.Clone()
	p.input.NextTick()
}

func (p *Program) limitFramerate(frameStart time.Time) {
	if p.settings.MaximumFramerate <= 0 {
		return
	}

	frameTime := time.Duration(float64(time.Second) / p.settings.MaximumFramerate)
	if remaining := frameTime - time.Since(frameStart); remaining > 0 {
		time.Sleep(remaining)
	}
}
