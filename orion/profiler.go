package orion

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/pkg/profile"
)

const DefaultPerformanceLogInterval = 60

type FrameTimes struct {
	FrameCount      uint64
	AverageDuration time.Duration
	MaxDuration     time.Duration

	// Delta time to previous frame
	Delta time.Duration

	lastTime time.Time
}

func (t *FrameTimes) update(d time.Duration) {
	const window = 64

	t.Delta = d
	t.MaxDuration = max(t.MaxDuration, d)

	if t.FrameCount < window/2 {
		t.AverageDuration = d
	} else {
		t.AverageDuration = ((window-1)*t.AverageDuration + d) / window
	}
}

func (t *FrameTimes) FPS() float64 {
	if t.AverageDuration <= 0 {
		return 0
	}

	return 1.0 / t.AverageDuration.Seconds()
}

// Tick records the start of a new frame at the given time.
func (t *FrameTimes) Tick(now time.Time) {
	if t.FrameCount > 0 {
		t.update(now.Sub(t.lastTime))
	}

	t.lastTime = now
	t.FrameCount += 1
}

// framePhases are the durations of the parts of a single frame.
type framePhases struct {
	Resize     time.Duration
	BeginFrame time.Duration
	Update     time.Duration
	EndFrame   time.Duration
}

func (f *framePhases) add(other framePhases) {
	f.Resize += other.Resize
	f.BeginFrame += other.BeginFrame
	f.Update += other.Update
	f.EndFrame += other.EndFrame
}

// profiler counts frames and periodically logs the frame rate.
// It is owned by the owning goroutine.
type profiler struct {
	times    FrameTimes
	interval uint64
	log      bool

	// phase durations summed up since the last log line
	phases framePhases
	mem    runtime.MemStats

	cpu interface{ Stop() }
}

func newProfiler(settings Settings) *profiler {
	p := &profiler{
		interval: settings.PerformanceLogInterval,
		log:      !settings.DontLogPerformance,
	}

	if p.interval == 0 {
		p.interval = DefaultPerformanceLogInterval
	}

	if settings.CPUProfile {
		options := []func(*profile.Profile){
			profile.CPUProfile,
			profile.NoShutdownHook,
			profile.Quiet,
		}

		if settings.ProfilePath != "" {
			options = append(options, profile.ProfilePath(settings.ProfilePath))
		}

		p.cpu = profile.Start(options...)
	}

	return p
}

// tick records a finished frame. Returns true if a log line was written.
func (p *profiler) tick(now time.Time, phases framePhases) bool {
	p.times.Tick(now)
	p.phases.add(phases)

	if p.times.FrameCount%p.interval != 0 {
		return false
	}

	defer func() { p.phases = framePhases{} }()

	if !p.log {
		return false
	}

	runtime.ReadMemStats(&p.mem)

	frames := time.Duration(p.interval)

	slog.Info("Performance",
		slog.Uint64("frames", p.times.FrameCount),
		slog.Float64("fps", p.times.FPS()),
		slog.Duration("tpf", p.times.AverageDuration),
		slog.Duration("maxTpf", p.times.MaxDuration),
		slog.Duration("resize", p.phases.Resize/frames),
		slog.Duration("beginFrame", p.phases.BeginFrame/frames),
		slog.Duration("update", p.phases.Update/frames),
		slog.Duration("endFrame", p.phases.EndFrame/frames),
		slog.Uint64("heapObjects", p.mem.HeapObjects),
		slog.Uint64("gcCycles", uint64(p.mem.NumGC)),
	)

	return true
}

func (p *profiler) Times() FrameTimes {
	return p.times
}

func (p *profiler) release() {
	if p.cpu != nil {
		p.cpu.Stop()
		p.cpu = nil
	}
}
