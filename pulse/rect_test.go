package pulse

import "testing"

func TestRectXYWH(t *testing.T) {
	r := RectXYWH[uint32](10, 20, 30, 40)

	x, y, w, h := r.XYWH()
	if x != 10 || y != 20 || w != 30 || h != 40 {
		t.Fatalf("unexpected rect %s", r)
	}

	if r.Max != (Point[uint32]{X: 40, Y: 60}) {
		t.Fatalf("unexpected max %v", r.Max)
	}
}

func TestRectFromPointsNormalizes(t *testing.T) {
	r := RectFromPoints(Point[float32]{X: 5, Y: 1}, Point[float32]{X: 1, Y: 5})

	if r.Min != (Point[float32]{X: 1, Y: 1}) || r.Max != (Point[float32]{X: 5, Y: 5}) {
		t.Fatalf("unexpected rect %s", r)
	}
}

func TestRectContains(t *testing.T) {
	outer := RectXYWH[uint32](0, 0, 100, 100)

	tests := []struct {
		inner    Rectu
		expected bool
	}{
		{RectXYWH[uint32](0, 0, 100, 100), true},
		{RectXYWH[uint32](10, 10, 10, 10), true},
		{RectXYWH[uint32](90, 90, 20, 10), false},
		{RectXYWH[uint32](100, 0, 1, 1), false},
	}

	for _, test := range tests {
		if actual := outer.Contains(test.inner); actual != test.expected {
			t.Errorf("%s contains %s: expected %v", outer, test.inner, test.expected)
		}
	}
}

func TestRectIntersect(t *testing.T) {
	a := RectXYWH[float32](0, 0, 10, 10)
	b := RectXYWH[float32](5, 5, 10, 10)

	if r := a.Intersect(b); r != RectXYWH[float32](5, 5, 5, 5) {
		t.Fatalf("unexpected intersection %s", r)
	}

	c := RectXYWH[float32](20, 20, 1, 1)
	if r := a.Intersect(c); !r.Empty() {
		t.Fatalf("expected empty intersection, got %s", r)
	}
}

func TestRectUnion(t *testing.T) {
	a := RectXYWH[float32](0, 0, 1, 1)
	b := RectXYWH[float32](4, 5, 1, 1)

	if r := a.Union(b); r != RectXYWH[float32](0, 0, 5, 6) {
		t.Fatalf("unexpected union %s", r)
	}
}

func TestConvertRect(t *testing.T) {
	r := ConvertRect[float32](RectXYWH[uint32](1, 2, 3, 4))

	if r != RectXYWH[float32](1, 2, 3, 4) {
		t.Fatalf("unexpected rect %s", r)
	}
}
