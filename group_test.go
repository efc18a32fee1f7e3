package lotmap

import (
	"image"
	"testing"
)

func TestOrderedCellsAtPaintOrder(t *testing.T) {
	floor := NewTileLayer("0_Floor", 4, 4)
	floor.SetCell(image.Pt(1, 1), Cell{Tileset: testTileset, TileID: 1})
	walls := NewTileLayer("0_Walls", 4, 4)
	walls.SetCell(image.Pt(1, 1), Cell{Tileset: testTileset, TileID: 2})
	walls.SetOpacity(0.5)
	roof := NewTileLayer("0_Roof", 4, 4)
	roof.SetCell(image.Pt(1, 1), Cell{Tileset: testTileset, TileID: 3})
	mc := NewMapComposite(&MapInfo{Map: newTestMap(4, 4, floor, walls, roof)}, OrientationUnknown, Config{})
	g := mc.LayerGroupForLevel(0)

	cells := g.OrderedCellsAt(image.Pt(1, 1), nil)
	wantIDs := []int{1, 2, 3}
	wantOpacity := []float64{1, 0.5, 1}
	if len(cells) != len(wantIDs) {
		t.Fatalf("got %d cells, want %d", len(cells), len(wantIDs))
	}
	for i, c := range cells {
		if c.Cell.TileID != wantIDs[i] {
			t.Errorf("cell %d TileID = %d, want %d", i, c.Cell.TileID, wantIDs[i])
		}
		if c.Opacity != wantOpacity[i] {
			t.Errorf("cell %d Opacity = %v, want %v", i, c.Opacity, wantOpacity[i])
		}
	}

	if cells := g.OrderedCellsAt(image.Pt(2, 2), nil); len(cells) != 0 {
		t.Errorf("empty position returned %v", cells)
	}
}

func TestOrderedCellsAtSubMapPaintsOver(t *testing.T) {
	mc, _, house := newStreet()
	house.Map.LayerAt(0).(*TileLayer).SetCell(image.Pt(0, 0), Cell{Tileset: testTileset, TileID: 5})
	street := mc.Map().LayerAt(0).(*TileLayer)
	street.SetCell(image.Pt(3, 3), Cell{Tileset: testTileset, TileID: 4})
	mc.LayerGroupForLevel(0).SetNeedsSynch(true)

	cells := mc.LayerGroupForLevel(0).OrderedCellsAt(image.Pt(3, 3), nil)
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
	if cells[0].Cell.TileID != 4 || cells[1].Cell.TileID != 5 {
		t.Errorf("TileIDs = %d, %d, want 4, 5", cells[0].Cell.TileID, cells[1].Cell.TileID)
	}
}

func TestLayerOpacityClampedAndDirty(t *testing.T) {
	floor := tileLayer("0_Floor", 4, 4, image.Pt(0, 0))
	mc := NewMapComposite(&MapInfo{Map: newTestMap(4, 4, floor)}, OrientationUnknown, Config{})
	g := mc.LayerGroupForLevel(0)

	if g.SetLayerOpacity(floor, 1) {
		t.Error("unchanged opacity reported a change")
	}
	if g.NeedsSynch() {
		t.Error("unchanged opacity dirtied the group")
	}
	if g.SetLayerOpacity(floor, 3) {
		t.Error("opacity above 1 should clamp to the current 1")
	}
	if !g.SetLayerOpacity(floor, -2) {
		t.Error("opacity change not reported")
	}
	if g.LayerOpacity(0) != 0 {
		t.Errorf("LayerOpacity = %v, want 0", g.LayerOpacity(0))
	}
	if !g.NeedsSynch() {
		t.Error("opacity change should dirty the group")
	}
}

func TestHiddenLayerExcludedFromBounds(t *testing.T) {
	floor := tileLayer("0_Floor", 10, 10, image.Pt(1, 1))
	walls := tileLayer("0_Walls", 10, 10, image.Pt(8, 8))
	mc := NewMapComposite(&MapInfo{Map: newTestMap(10, 10, floor, walls)}, OrientationUnknown, Config{})
	g := mc.LayerGroupForLevel(0)

	g.SetLayerVisibility(walls, false)
	g.Synch()
	if got, want := g.Bounds(), image.Rect(1, 1, 2, 2); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
	if !g.IsLayerEmpty(1) {
		t.Error("hidden layer should count as empty")
	}

	g.SetVisible(false)
	g.Synch()
	if !g.Bounds().Empty() || g.HasVisibleContent() {
		t.Errorf("hidden group Bounds = %v, want empty", g.Bounds())
	}
}

func TestForceNonEmpty(t *testing.T) {
	brush := tileLayer("0_Brush", 4, 4)
	mc := NewMapComposite(&MapInfo{Map: newTestMap(4, 4, brush)}, OrientationUnknown, Config{})
	g := mc.LayerGroupForLevel(0)

	if !g.IsLayerEmpty(0) {
		t.Fatal("layer without cells should be empty")
	}
	if !g.SetForceNonEmpty(brush, true) {
		t.Error("SetForceNonEmpty reported no change")
	}
	if g.IsLayerEmpty(0) {
		t.Error("forced layer should not be empty")
	}
	g.Synch()
	if !g.HasVisibleContent() {
		t.Error("forced layer should count as visible content")
	}
}

func TestLayersNamed(t *testing.T) {
	a := tileLayer("0_Walls", 4, 4)
	b := tileLayer("0_Walls", 4, 4)
	mc := NewMapComposite(&MapInfo{Map: newTestMap(4, 4, a, tileLayer("0_Floor", 4, 4), b)}, OrientationUnknown, Config{})
	g := mc.LayerGroupForLevel(0)

	if got := g.LayersNamed("Walls"); len(got) != 2 {
		t.Errorf("LayersNamed(Walls) = %d layers, want 2", len(got))
	}
	if !g.SetLayerVisibilityByName("Walls", false) {
		t.Error("SetLayerVisibilityByName reported no change")
	}
	if g.IsLayerVisible(0) || !g.IsLayerVisible(1) || g.IsLayerVisible(2) {
		t.Error("only the Walls layers should be hidden")
	}
	if !g.SetLayerOpacityByName("Floor", 0.5) || g.LayerOpacity(1) != 0.5 {
		t.Errorf("LayerOpacity(Floor) = %v, want 0.5", g.LayerOpacity(1))
	}
}

func TestAddTileLayerTwicePanics(t *testing.T) {
	floor := tileLayer("0_Floor", 4, 4)
	mc := NewMapComposite(&MapInfo{Map: newTestMap(4, 4, floor)}, OrientationUnknown, Config{})
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic")
		}
	}()
	mc.LayerGroupForLevel(0).AddTileLayer(floor, 0)
}
