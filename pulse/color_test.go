package pulse

import (
	"image/color"
	"math"
	"testing"
)

func TestColorZeroValueIsWhite(t *testing.T) {
	var c Color

	if c != ColorWhite {
		t.Fatalf("expected zero color to be white, got %v", c.ToArray())
	}
}

func TestColorWithAlpha(t *testing.T) {
	c := ColorBlack.WithAlpha(0.5)

	r, g, b, a := c.Components()
	if r != 0 || g != 0 || b != 0 || a != 0.5 {
		t.Fatalf("unexpected components %v %v %v %v", r, g, b, a)
	}
}

func TestColorOfConvertsToLinear(t *testing.T) {
	tests := []struct {
		input    color.Color
		expected [4]float32
	}{
		{color.White, [4]float32{1, 1, 1, 1}},
		{color.Black, [4]float32{0, 0, 0, 1}},
		{color.NRGBA{R: 188, G: 188, B: 188, A: 255}, [4]float32{0.5, 0.5, 0.5, 1}},
		{color.Transparent, [4]float32{0, 0, 0, 0}},
	}

	for _, test := range tests {
		actual := ColorOf(test.input).ToArray()

		for idx := range actual {
			if math.Abs(float64(actual[idx]-test.expected[idx])) > 0.01 {
				t.Errorf("%v: expected %v, got %v", test.input, test.expected, actual)
				break
			}
		}
	}
}

func TestColorToWGPU(t *testing.T) {
	c := ColorLinearRGBA(0.25, 0.5, 0.75, 1).ToWGPU()

	if c.R != 0.25 || c.G != 0.5 || c.B != 0.75 || c.A != 1 {
		t.Fatalf("unexpected wgpu color %+v", c)
	}
}
