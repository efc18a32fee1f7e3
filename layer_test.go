package lotmap

import (
	"image"
	"testing"
)

func TestTileLayerBounds(t *testing.T) {
	l := NewTileLayer("0_Floor", 8, 8)
	if !l.IsEmpty() {
		t.Error("new layer should be empty")
	}
	if !l.Bounds().Empty() {
		t.Errorf("Bounds = %v, want empty", l.Bounds())
	}

	l.SetCell(image.Pt(2, 3), Cell{Tileset: testTileset})
	l.SetCell(image.Pt(5, 4), Cell{Tileset: testTileset})
	if want := image.Rect(2, 3, 6, 5); l.Bounds() != want {
		t.Errorf("Bounds = %v, want %v", l.Bounds(), want)
	}

	l.SetPosition(image.Pt(10, 10))
	if want := image.Rect(12, 13, 16, 15); l.Bounds() != want {
		t.Errorf("Bounds after move = %v, want %v", l.Bounds(), want)
	}
	if c := l.CellAt(image.Pt(12, 13)); c.IsEmpty() {
		t.Error("CellAt should use map-space coordinates")
	}

	l.SetCell(image.Pt(12, 13), Cell{})
	l.SetCell(image.Pt(15, 14), Cell{})
	if !l.IsEmpty() {
		t.Error("layer should be empty after clearing cells")
	}
}

func TestTileLayerOutOfRange(t *testing.T) {
	l := NewTileLayer("0_Floor", 2, 2)
	l.SetCell(image.Pt(-1, 0), Cell{Tileset: testTileset})
	l.SetCell(image.Pt(2, 0), Cell{Tileset: testTileset})
	if !l.IsEmpty() {
		t.Error("out-of-range SetCell should be ignored")
	}
	if c := l.CellAt(image.Pt(5, 5)); !c.IsEmpty() {
		t.Errorf("CellAt outside = %v, want empty", c)
	}
}

func TestTileLayerDrawMargins(t *testing.T) {
	m := NewMap(OrientationOrthogonal, 4, 4, 32, 32)
	l := NewTileLayer("0_Walls", 4, 4)
	m.AddLayer(l)

	if got, want := l.DrawMargins(), (Margins{Top: 32, Right: 32}); got != want {
		t.Errorf("DrawMargins = %+v, want %+v", got, want)
	}

	tall := &Tileset{Name: "tall", TileWidth: 48, TileHeight: 96}
	l.SetCell(image.Pt(0, 0), Cell{Tileset: tall})
	if got, want := l.DrawMargins(), (Margins{Top: 96, Right: 48}); got != want {
		t.Errorf("DrawMargins = %+v, want %+v", got, want)
	}
}

func TestLayerOpacityClamped(t *testing.T) {
	l := NewTileLayer("0_Floor", 1, 1)
	l.SetOpacity(2)
	if l.Opacity() != 1 {
		t.Errorf("Opacity = %v, want 1", l.Opacity())
	}
	l.SetOpacity(-1)
	if l.Opacity() != 0 {
		t.Errorf("Opacity = %v, want 0", l.Opacity())
	}
}

func TestMapLayers(t *testing.T) {
	m := NewMap(OrientationOrthogonal, 4, 4, 32, 32)
	floor := NewTileLayer("0_Floor", 4, 4)
	lots := NewObjectGroup("0_Lots")
	m.AddLayer(floor)
	m.InsertLayer(0, lots)

	if m.LayerCount() != 2 || m.IndexOfLayer(floor) != 1 || m.IndexOfLayer(lots) != 0 {
		t.Fatalf("layers = %v", m.Layers())
	}
	if len(m.TileLayers()) != 1 || len(m.ObjectGroups()) != 1 {
		t.Errorf("TileLayers = %d, ObjectGroups = %d, want 1, 1", len(m.TileLayers()), len(m.ObjectGroups()))
	}

	if got := m.RemoveLayerAt(0); got != Layer(lots) {
		t.Errorf("RemoveLayerAt = %v, want lots", got)
	}
	if m.IndexOfLayer(lots) != -1 {
		t.Error("removed layer still indexed")
	}
}

func TestMapInsertLayerPanics(t *testing.T) {
	m := NewMap(OrientationOrthogonal, 4, 4, 32, 32)
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on out-of-range insert")
		}
	}()
	m.InsertLayer(3, NewTileLayer("0_Floor", 1, 1))
}

func TestMapTilesets(t *testing.T) {
	m := NewMap(OrientationOrthogonal, 4, 4, 32, 32)
	l := NewTileLayer("0_Floor", 4, 4)
	m.AddLayer(l)
	m.AddTileset(testTileset)
	m.AddTileset(testTileset)
	if len(m.Tilesets()) != 1 {
		t.Errorf("Tilesets = %d, want 1", len(m.Tilesets()))
	}
	if m.IsTilesetUsed(testTileset) {
		t.Error("tileset should be unused")
	}
	l.SetCell(image.Pt(1, 1), Cell{Tileset: testTileset})
	if !m.IsTilesetUsed(testTileset) {
		t.Error("tileset should be used")
	}
	m.RemoveTileset(testTileset)
	if len(m.Tilesets()) != 0 {
		t.Errorf("Tilesets = %d, want 0", len(m.Tilesets()))
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: -5, Width: 10, Height: 10}
	if got, want := a.Union(b), (Rect{X: 0, Y: -5, Width: 15, Height: 15}); got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union(empty) = %v, want %v", got, a)
	}
	if got := (Rect{}).Union(a); got != a {
		t.Errorf("empty.Union = %v, want %v", got, a)
	}
}

func TestUnionTileRects(t *testing.T) {
	a := image.Rect(2, 2, 3, 3)
	if got := unionTileRects(image.Rectangle{}, a); got != a {
		t.Errorf("union with empty = %v, want %v", got, a)
	}
	if got, want := unionTileRects(a, image.Rect(5, 5, 6, 6)), image.Rect(2, 2, 6, 6); got != want {
		t.Errorf("union = %v, want %v", got, want)
	}
}
