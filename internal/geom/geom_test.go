package geom

import "testing"

func TestClampBounds(t *testing.T) {
	tests := []struct {
		in, want Point
	}{
		{Point{X: 400, Y: 300}, Point{X: 400, Y: 300}},
		{Point{X: 900, Y: 600}, Point{X: 740, Y: 520}},
		{Point{X: -50, Y: -50}, Point{X: 60, Y: 40}},
		{Point{X: 60, Y: 520}, Point{X: 60, Y: 520}},
	}
	for _, tt := range tests {
		got := CanvasBounds.Clamp(tt.in)
		if got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if !CanvasBounds.Contains(got) {
			t.Errorf("clamped %v not inside bounds", got)
		}
	}
}

func TestDegenerate(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{Width: 800, Height: 560}, false},
		{Rect{Width: 0, Height: 560}, true},
		{Rect{Width: 800, Height: 0}, true},
		{Rect{Width: -1, Height: 10}, true},
	}
	for _, tt := range tests {
		if got := tt.r.Degenerate(); got != tt.want {
			t.Errorf("%+v.Degenerate() = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 3, Y: 4}
	if got := p.Add(Point{X: 1, Y: 1}); got != (Point{X: 4, Y: 5}) {
		t.Errorf("Add = %v", got)
	}
	if got := p.Sub(Point{X: 3, Y: 4}); got != (Point{}) {
		t.Errorf("Sub = %v", got)
	}
	if got := p.Dist(Point{}); got != 5 {
		t.Errorf("Dist = %v, want 5", got)
	}
}
