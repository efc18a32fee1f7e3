package paint

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lotmap"
)

func newTestTileset(name string) *lotmap.Tileset {
	return &lotmap.Tileset{Name: name, TileWidth: 32, TileHeight: 32, Columns: 4, TileCount: 16}
}

// newTestComposite builds a 4x4 orthogonal map with one "0_Floor" layer.
func newTestComposite(t *testing.T, ts *lotmap.Tileset, cells ...image.Point) (*lotmap.MapComposite, *lotmap.TileLayer) {
	t.Helper()
	m := lotmap.NewMap(lotmap.OrientationOrthogonal, 4, 4, 32, 32)
	floor := lotmap.NewTileLayer("0_Floor", 4, 4)
	for i, p := range cells {
		floor.SetCell(p, lotmap.Cell{Tileset: ts, TileID: i})
	}
	m.AddLayer(floor)
	mc := lotmap.NewMapComposite(&lotmap.MapInfo{Path: "test.json", Map: m}, lotmap.OrientationUnknown, lotmap.Config{})
	return mc, floor
}

func TestTilesetImagesSourceRect(t *testing.T) {
	ts := newTestTileset("a")
	images := TilesetImages{ts: ebiten.NewImage(128, 128)}

	_, src, ok := images.TileImage(lotmap.Cell{Tileset: ts, TileID: 5})
	if !ok {
		t.Fatal("TileImage ok = false, want true")
	}
	if want := image.Rect(32, 32, 64, 64); src != want {
		t.Errorf("src = %v, want %v", src, want)
	}

	if _, _, ok := images.TileImage(lotmap.Cell{Tileset: ts, TileID: 16}); ok {
		t.Error("tile past TileCount should not resolve")
	}
	if _, _, ok := images.TileImage(lotmap.Cell{Tileset: newTestTileset("b")}); ok {
		t.Error("unknown tileset should not resolve")
	}
}

func TestBuildOrthogonal(t *testing.T) {
	ts := newTestTileset("a")
	mc, _ := newTestComposite(t, ts, image.Pt(0, 0), image.Pt(1, 0))
	images := TilesetImages{ts: ebiten.NewImage(128, 128)}
	r := lotmap.NewGridRenderer(mc.Map(), lotmap.OrientationOrthogonal, 0)

	gp := NewGroupPainter(r, images)
	gp.Build(mc.LayerGroupForLevel(0), image.Rectangle{})

	if gp.TileCount() != 2 {
		t.Fatalf("TileCount = %d, want 2", gp.TileCount())
	}
	if gp.BatchCount() != 1 {
		t.Errorf("BatchCount = %d, want 1", gp.BatchCount())
	}
	b := gp.batches[0]
	// Second tile: left edge at x=32, spanning y 0..32.
	if b.worldX[4] != 32 || b.worldY[4] != 0 || b.worldY[6] != 32 {
		t.Errorf("tile 1 = x %v, y %v..%v, want x 32, y 0..32", b.worldX[4], b.worldY[4], b.worldY[6])
	}
	if len(gp.indices) < 12 {
		t.Errorf("indices = %d, want >= 12", len(gp.indices))
	}
}

func TestBuildArea(t *testing.T) {
	ts := newTestTileset("a")
	mc, _ := newTestComposite(t, ts, image.Pt(0, 0), image.Pt(3, 3))
	images := TilesetImages{ts: ebiten.NewImage(128, 128)}
	r := lotmap.NewGridRenderer(mc.Map(), lotmap.OrientationOrthogonal, 0)

	gp := NewGroupPainter(r, images)
	gp.Build(mc.LayerGroupForLevel(0), image.Rect(2, 2, 4, 4))
	if gp.TileCount() != 1 {
		t.Errorf("TileCount = %d, want 1", gp.TileCount())
	}
}

func TestBuildOpacity(t *testing.T) {
	ts := newTestTileset("a")
	mc, floor := newTestComposite(t, ts, image.Pt(0, 0))
	images := TilesetImages{ts: ebiten.NewImage(128, 128)}
	r := lotmap.NewGridRenderer(mc.Map(), lotmap.OrientationOrthogonal, 0)

	g := mc.LayerGroupForLevel(0)
	g.SetLayerOpacity(floor, 0.5)
	gp := NewGroupPainter(r, images)
	gp.Build(g, image.Rectangle{})

	if got := gp.batches[0].vertices[0].ColorA; got != 0.5 {
		t.Errorf("ColorA = %v, want 0.5", got)
	}
}

func TestBuildSplitsBatchesByPage(t *testing.T) {
	a := newTestTileset("a")
	b := newTestTileset("b")
	m := lotmap.NewMap(lotmap.OrientationOrthogonal, 4, 1, 32, 32)
	floor := lotmap.NewTileLayer("0_Floor", 4, 1)
	floor.SetCell(image.Pt(0, 0), lotmap.Cell{Tileset: a})
	floor.SetCell(image.Pt(1, 0), lotmap.Cell{Tileset: b})
	floor.SetCell(image.Pt(2, 0), lotmap.Cell{Tileset: a})
	m.AddLayer(floor)
	mc := lotmap.NewMapComposite(&lotmap.MapInfo{Map: m}, lotmap.OrientationUnknown, lotmap.Config{})

	images := TilesetImages{a: ebiten.NewImage(128, 128), b: ebiten.NewImage(128, 128)}
	gp := NewGroupPainter(lotmap.NewGridRenderer(m, lotmap.OrientationUnknown, 0), images)
	gp.Build(mc.LayerGroupForLevel(0), image.Rectangle{})

	if gp.BatchCount() != 3 {
		t.Errorf("BatchCount = %d, want 3", gp.BatchCount())
	}
}

func TestSetTileUVsFlipH(t *testing.T) {
	verts := make([]ebiten.Vertex, 4)
	setTileUVs(verts, image.Rect(0, 0, 32, 32), lotmap.TileFlipH)
	if verts[0].SrcX != 32 || verts[1].SrcX != 0 {
		t.Errorf("SrcX = %v,%v, want 32,0", verts[0].SrcX, verts[1].SrcX)
	}
}

func TestCompositePainterSkipsLevelsAboveRenderer(t *testing.T) {
	ts := newTestTileset("a")
	m := lotmap.NewMap(lotmap.OrientationOrthogonal, 2, 2, 32, 32)
	for _, name := range []string{"0_Floor", "1_Floor"} {
		l := lotmap.NewTileLayer(name, 2, 2)
		l.SetCell(image.Pt(0, 0), lotmap.Cell{Tileset: ts})
		m.AddLayer(l)
	}
	mc := lotmap.NewMapComposite(&lotmap.MapInfo{Map: m}, lotmap.OrientationUnknown, lotmap.Config{})

	cp := NewCompositePainter(mc, lotmap.NewGridRenderer(m, lotmap.OrientationUnknown, 0), TilesetImages{ts: ebiten.NewImage(128, 128)})
	cp.Rebuild()
	if len(cp.painters) != 1 {
		t.Errorf("painters = %d, want 1", len(cp.painters))
	}
}
