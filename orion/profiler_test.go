package orion

import (
	"testing"
	"time"
)

func TestFrameTimes(t *testing.T) {
	var times FrameTimes

	now := time.Now()
	for range 10 {
		times.Tick(now)
		now = now.Add(20 * time.Millisecond)
	}

	if times.FrameCount != 10 {
		t.Fatalf("expected 10 frames, got %d", times.FrameCount)
	}

	if times.Delta != 20*time.Millisecond {
		t.Fatalf("unexpected delta %s", times.Delta)
	}

	if fps := times.FPS(); fps < 49.9 || fps > 50.1 {
		t.Fatalf("expected 50 fps, got %f", fps)
	}
}

func TestFrameTimesWithoutFrames(t *testing.T) {
	var times FrameTimes

	if fps := times.FPS(); fps != 0 {
		t.Fatalf("expected 0 fps, got %f", fps)
	}
}

func TestProfilerLogsEveryInterval(t *testing.T) {
	p := newProfiler(Settings{PerformanceLogInterval: 3})
	defer p.release()

	var logged []int

	now := time.Now()
	for frame := 1; frame <= 7; frame++ {
		if p.tick(now, framePhases{Update: time.Millisecond}) {
			logged = append(logged, frame)
		}

		now = now.Add(time.Millisecond)
	}

	if len(logged) != 2 || logged[0] != 3 || logged[1] != 6 {
		t.Fatalf("expected log lines at frame 3 and 6, got %v", logged)
	}

	// the phase sums restart after every log line
	if p.phases.Update != time.Millisecond {
		t.Fatalf("unexpected phase sum %s", p.phases.Update)
	}
}

func TestProfilerDontLog(t *testing.T) {
	p := newProfiler(Settings{DontLogPerformance: true})
	defer p.release()

	if p.interval != DefaultPerformanceLogInterval {
		t.Fatalf("expected default interval, got %d", p.interval)
	}

	now := time.Now()
	for range 2 * DefaultPerformanceLogInterval {
		if p.tick(now, framePhases{}) {
			t.Fatal("expected no log line")
		}
	}
}
