package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/furui/fastnoiselite-go"
	"github.com/oliverbestmann/easel/glimpse"
	"github.com/oliverbestmann/easel/orion"
	"github.com/oliverbestmann/easel/pulse"
)

const noiseSize = 256

type Demo struct {
	noise   *fastnoiselite.FastNoiseLite
	texture *pulse.Texture

	// stop after this many frames, zero runs until the window is closed
	maxFrames uint64

	started time.Time
}

func (d *Demo) Update(p *orion.Program) error {
	if d.maxFrames > 0 && p.FrameTimes().FrameCount >= d.maxFrames {
		p.Close()
	}

	if p.IsKeyJustPressed(glimpse.KeyEscape) {
		slog.Info("Escape pressed, closing window")
		p.Close()
	}

	g := p.Graphics()
	if g == nil {
		// headless backend without a gpu surface
		return nil
	}

	if d.texture == nil {
		texture, err := g.CreateImageFromRaw(noiseSize, noiseSize, d.noisePixels())
		if err != nil {
			return err
		}

		d.texture = texture
	}

	size := p.SurfaceSize()
	dest := pulse.RectXYWH(0, 0, float32(size.Width), float32(size.Height))

	phase := time.Since(d.started).Seconds()
	tint := pulse.ColorSRGBA(
		float32(0.5+0.5*math.Sin(phase)),
		float32(0.5+0.5*math.Sin(phase+2)),
		float32(0.5+0.5*math.Sin(phase+4)),
		1,
	)

	if err := g.DrawImage(d.texture, dest, &pulse.DrawImageOptions{Color: tint}); err != nil {
		return err
	}

	// the cursor follows a small patch of the noise
	x, y := p.MousePosition()
	src := pulse.RectXYWH[uint32](0, 0, noiseSize/4, noiseSize/4)
	cursor := pulse.RectXYWH(x-32, y-32, 64, 64)

	return g.DrawImageRegion(d.texture, src, cursor, nil)
}

func (d *Demo) OnEvent(p *orion.Program, ev glimpse.Event) bool {
	if ev.Kind == glimpse.EventDropFiles {
		slog.Info("Files dropped", slog.Any("paths", ev.Paths))
		return true
	}

	return false
}

func (d *Demo) noisePixels() []byte {
	pixels := make([]byte, 0, noiseSize*noiseSize*4)

	for y := range noiseSize {
		for x := range noiseSize {
			value := d.noise.GetNoise2D(
				fastnoiselite.FNLfloat(float64(x)/noiseSize),
				fastnoiselite.FNLfloat(float64(y)/noiseSize),
			)

			// noise is roughly in [-1, 1]
			gray := uint8(min(max((value+1)*127.5, 0), 255))
			pixels = append(pixels, gray, gray, gray, 255)
		}
	}

	return pixels
}

func main() {
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	title := flag.String("title", "Easel Demo", "Title of the window")
	width := flag.Int("width", glimpse.UseDefault, "Width of the window")
	height := flag.Int("height", glimpse.UseDefault, "Height of the window")
	fps := flag.Float64("fps", 0, "Maximum number of frames per second, zero is uncapped")
	frames := flag.Uint64("frames", 0, "Close the window after this many frames")
	ignoreClose := flag.Bool("ignore-close", false, "Keep the window open when it is closed, use Escape instead")
	cpuProfile := flag.Bool("cpuprofile", false, "Write a cpu profile")
	msaa := flag.Bool("msaa", false, "Enable multisampling")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{AddSource: true, Level: level})
	slog.SetDefault(slog.New(handler))

	noise := fastnoiselite.NewNoise()
	noise.SetNoiseType(fastnoiselite.NoiseTypeOpenSimplex2)
	noise.FractalType = fastnoiselite.FractalTypeFBm
	noise.Frequency = 5.0
	noise.SetFractalOctaves(3)

	demo := &Demo{
		noise:     noise,
		maxFrames: *frames,
		started:   time.Now(),
	}

	window := glimpse.DefaultWindowSettings()
	window.Title = *title
	window.Width = *width
	window.Height = *height
	window.DragAndDropFiles = true

	opts := orion.Options{
		Program: orion.Settings{
			UserData:         demo,
			IgnoreClose:      *ignoreClose,
			MaximumFramerate: *fps,
			CPUProfile:       *cpuProfile,
			OnUpdate: func(p *orion.Program) error {
				return orion.UserData[*Demo](p).Update(p)
			},
			OnEvent: demo.OnEvent,
		},
		Class: glimpse.ClassSettings{
			Name:   "EaselDemo",
			Cursor: glimpse.CursorCrosshair,
		},
		Window: window,
		Surface: pulse.SurfaceOptions{
			MSAA:       *msaa,
			ClearColor: pulse.ColorSRGBA(0.1, 0.1, 0.12, 1),
		},
	}

	program, err := orion.New(opts)
	orion.Handle(err, "create program")

	defer program.Destroy()

	err = program.Run()
	orion.Handle(err, "run program")

	times := program.FrameTimes()
	slog.Info("Demo finished",
		slog.Uint64("frames", times.FrameCount),
		slog.Float64("fps", times.FPS()),
	)
}
