package pulse

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	return img
}

func TestDecodeImage(t *testing.T) {
	src := testImage(16, 8)

	encoders := map[string]func(buf *bytes.Buffer) error{
		"bmp":  func(buf *bytes.Buffer) error { return bmp.Encode(buf, src) },
		"tiff": func(buf *bytes.Buffer) error { return tiff.Encode(buf, src, nil) },
	}

	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encode(&buf); err != nil {
				t.Fatalf("encode: %s", err)
			}

			img, format, err := DecodeImage(&buf)
			if err != nil {
				t.Fatalf("decode: %s", err)
			}

			if format != name {
				t.Errorf("expected format %q, got %q", name, format)
			}

			if img.Bounds() != src.Bounds() {
				t.Errorf("expected bounds %v, got %v", src.Bounds(), img.Bounds())
			}
		})
	}
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	if _, _, err := DecodeImage(bytes.NewReader([]byte("no image"))); err == nil {
		t.Fatal("expected an error")
	}
}

func TestToRGBAKeepsSmallImages(t *testing.T) {
	src := testImage(4, 3)

	rgba := toRGBA(src, 16)
	if rgba.Rect != image.Rect(0, 0, 4, 3) {
		t.Fatalf("unexpected bounds %v", rgba.Rect)
	}

	if c := rgba.RGBAAt(3, 2); c != (color.RGBA{R: 3, G: 2, B: 128, A: 255}) {
		t.Fatalf("unexpected pixel %v", c)
	}
}

func TestToRGBAMovesOriginToZero(t *testing.T) {
	src := testImage(8, 8).SubImage(image.Rect(2, 2, 6, 6))

	rgba := toRGBA(src, 16)
	if rgba.Rect != image.Rect(0, 0, 4, 4) {
		t.Fatalf("unexpected bounds %v", rgba.Rect)
	}

	if c := rgba.RGBAAt(0, 0); c.R != 2 || c.G != 2 {
		t.Fatalf("unexpected pixel %v", c)
	}
}

func TestToRGBAScalesLargeImages(t *testing.T) {
	rgba := toRGBA(testImage(64, 16), 32)

	if rgba.Rect != image.Rect(0, 0, 32, 8) {
		t.Fatalf("expected image scaled to 32x8, got %v", rgba.Rect)
	}
}

func TestFitInto(t *testing.T) {
	tests := []struct {
		width, height, maxSize int
		expectedW, expectedH   int
	}{
		{10, 10, 100, 10, 10},
		{200, 100, 100, 100, 50},
		{100, 400, 100, 25, 100},
		{1000, 1, 100, 100, 1},
	}

	for _, test := range tests {
		w, h := fitInto(test.width, test.height, test.maxSize)
		if w != test.expectedW || h != test.expectedH {
			t.Errorf("fit %dx%d into %d: expected %dx%d, got %dx%d",
				test.width, test.height, test.maxSize, test.expectedW, test.expectedH, w, h)
		}
	}
}
