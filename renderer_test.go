package lotmap

import (
	"image"
	"testing"
)

func TestGridRendererOrthogonal(t *testing.T) {
	r := &GridRenderer{Orientation: OrientationOrthogonal, TileWidth: 32, TileHeight: 16, MapWidth: 10, MapHeight: 10}

	if got := r.TileToPixel(2, 3, 0); got != (Vec2{X: 64, Y: 48}) {
		t.Errorf("TileToPixel = %v, want (64, 48)", got)
	}
	if got := r.PixelToTile(64, 48, 0); got != (Vec2{X: 2, Y: 3}) {
		t.Errorf("PixelToTile = %v, want (2, 3)", got)
	}
	want := Rect{X: 32, Y: 16, Width: 64, Height: 32}
	if got := r.BoundingRect(image.Rect(1, 1, 3, 3), 0); got != want {
		t.Errorf("BoundingRect = %v, want %v", got, want)
	}
	if got := r.BoundingRect(image.Rectangle{}, 0); !got.IsEmpty() {
		t.Errorf("BoundingRect(empty) = %v, want empty", got)
	}
}

func TestGridRendererLevelIsometric(t *testing.T) {
	r := &GridRenderer{Orientation: OrientationLevelIsometric, TileWidth: 64, TileHeight: 32, MapWidth: 10, MapHeight: 10, Levels: 2}

	tests := []struct {
		x, y  float64
		level int
		want  Vec2
	}{
		{0, 0, 0, Vec2{X: 320, Y: 192}},
		{0, 0, 2, Vec2{X: 320, Y: 0}},
		{1, 0, 0, Vec2{X: 352, Y: 208}},
		{0, 1, 0, Vec2{X: 288, Y: 208}},
	}
	for _, tt := range tests {
		got := r.TileToPixel(tt.x, tt.y, tt.level)
		if got != tt.want {
			t.Errorf("TileToPixel(%v, %v, %d) = %v, want %v", tt.x, tt.y, tt.level, got, tt.want)
		}
		back := r.PixelToTile(got.X, got.Y, tt.level)
		if back != (Vec2{X: tt.x, Y: tt.y}) {
			t.Errorf("PixelToTile(%v) = %v, want (%v, %v)", got, back, tt.x, tt.y)
		}
	}

	// One tile: diamond spanning 64x32.
	want := Rect{X: 288, Y: 192, Width: 64, Height: 32}
	if got := r.BoundingRect(image.Rect(0, 0, 1, 1), 0); got != want {
		t.Errorf("BoundingRect = %v, want %v", got, want)
	}
}

func TestNewGridRendererInheritsOrientation(t *testing.T) {
	m := NewMap(OrientationIsometric, 5, 6, 64, 32)
	r := NewGridRenderer(m, OrientationUnknown, 3)
	if r.Orientation != OrientationIsometric {
		t.Errorf("Orientation = %v, want isometric", r.Orientation)
	}
	if r.MaxLevel() != 3 || r.MapHeight != 6 {
		t.Errorf("MaxLevel = %d, MapHeight = %d, want 3, 6", r.MaxLevel(), r.MapHeight)
	}
}
