package pulse

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type numeric interface {
	constraints.Integer | constraints.Float
}

type Point[T numeric] struct {
	X, Y T
}

func (p Point[T]) Add(other Point[T]) Point[T] {
	return Point[T]{X: p.X + other.X, Y: p.Y + other.Y}
}

type Rectf = Rect[float32]
type Rectu = Rect[uint32]

// Rect is an axis aligned rectangle. Min is inclusive, Max is exclusive.
type Rect[T numeric] struct {
	Min Point[T]
	Max Point[T]
}

func RectXYWH[T numeric](x, y, width, height T) Rect[T] {
	return Rect[T]{
		Min: Point[T]{X: x, Y: y},
		Max: Point[T]{X: x + width, Y: y + height},
	}
}

func RectFromPoints[T numeric](a, b Point[T]) Rect[T] {
	return Rect[T]{
		Min: Point[T]{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Point[T]{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// ConvertRect converts the coordinates of a rectangle to another numeric type.
func ConvertRect[U, T numeric](r Rect[T]) Rect[U] {
	return Rect[U]{
		Min: Point[U]{X: U(r.Min.X), Y: U(r.Min.Y)},
		Max: Point[U]{X: U(r.Max.X), Y: U(r.Max.Y)},
	}
}

func (r Rect[T]) Width() T {
	return r.Max.X - r.Min.X
}

func (r Rect[T]) Height() T {
	return r.Max.Y - r.Min.Y
}

func (r Rect[T]) XYWH() (x, y, width, height T) {
	return r.Min.X, r.Min.Y, r.Width(), r.Height()
}

func (r Rect[T]) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Translate moves the rectangle by the given offset.
func (r Rect[T]) Translate(offset Point[T]) Rect[T] {
	return Rect[T]{Min: r.Min.Add(offset), Max: r.Max.Add(offset)}
}

// Contains returns true if other lies completely within r.
func (r Rect[T]) Contains(other Rect[T]) bool {
	return other.Min.X >= r.Min.X && other.Min.Y >= r.Min.Y &&
		other.Max.X <= r.Max.X && other.Max.Y <= r.Max.Y
}

func (r Rect[T]) Intersect(other Rect[T]) Rect[T] {
	result := Rect[T]{
		Min: Point[T]{X: max(r.Min.X, other.Min.X), Y: max(r.Min.Y, other.Min.Y)},
		Max: Point[T]{X: min(r.Max.X, other.Max.X), Y: min(r.Max.Y, other.Max.Y)},
	}

	if result.Empty() {
		return Rect[T]{}
	}

	return result
}

func (r Rect[T]) Union(other Rect[T]) Rect[T] {
	return Rect[T]{
		Min: Point[T]{X: min(r.Min.X, other.Min.X), Y: min(r.Min.Y, other.Min.Y)},
		Max: Point[T]{X: max(r.Max.X, other.Max.X), Y: max(r.Max.Y, other.Max.Y)},
	}
}

func (r Rect[T]) String() string {
	return fmt.Sprintf("Rect(%v,%v %vx%v)", r.Min.X, r.Min.Y, r.Width(), r.Height())
}
