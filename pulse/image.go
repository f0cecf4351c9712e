package pulse

import (
	"fmt"
	"image"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxTextureSize is the largest texture dimension every webgpu
// device supports.
const MaxTextureSize = 8192

// DecodeImage decodes a png, jpeg, gif, bmp, tiff or webp image.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	return img, format, nil
}

// DecodeImageFile decodes the image stored at path.
func DecodeImageFile(path string) (image.Image, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer fp.Close()

	img, _, err := DecodeImage(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return img, nil
}

// toRGBA converts src into an rgba image with its origin at zero. The image
// is scaled down to fit into maxSize while keeping the aspect ratio.
func toRGBA(src image.Image, maxSize int) *image.RGBA {
	bounds := src.Bounds()
	width, height := fitInto(bounds.Dx(), bounds.Dy(), maxSize)

	if rgba, ok := src.(*image.RGBA); ok && bounds.Min == (image.Point{}) && width == bounds.Dx() && height == bounds.Dy() {
		return rgba
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	if width == bounds.Dx() && height == bounds.Dy() {
		draw.Copy(dst, image.Point{}, src, bounds, draw.Src, nil)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	}

	return dst
}

func fitInto(width, height, maxSize int) (int, int) {
	if width <= maxSize && height <= maxSize {
		return width, height
	}

	if width >= height {
		return maxSize, max(1, height*maxSize/width)
	}

	return max(1, width*maxSize/height), maxSize
}
