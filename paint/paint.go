// Package paint turns lotmap level groups into batched ebiten draw calls.
package paint

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lotmap"
)

// maxTilesPerDraw is the maximum number of tiles per DrawTriangles call.
// Limited by uint16 index buffer: 65535 / 4 vertices per tile = 16383.
const maxTilesPerDraw = 16383

// uvOrder defines vertex UV assignment for each combination of flip flags.
// Indexed by 3-bit flag value: (flipH << 2) | (flipV << 1) | flipD.
// Each entry contains 4 corner indices: TL=0, TR=1, BL=2, BR=3.
var uvOrder = [8][4]int{
	{0, 1, 2, 3}, // no flags
	{2, 0, 3, 1}, // D only (90° CW + H flip)
	{2, 3, 0, 1}, // V flip
	{3, 2, 1, 0}, // V+D (90° CCW)
	{1, 0, 3, 2}, // H flip
	{0, 2, 1, 3}, // H+D (90° CW)
	{3, 2, 1, 0}, // H+V
	{1, 3, 0, 2}, // H+V+D (90° CW + V flip)
}

// TileImages supplies the atlas page and source rectangle for a cell's tile.
type TileImages interface {
	TileImage(c lotmap.Cell) (page *ebiten.Image, src image.Rectangle, ok bool)
}

// TilesetImages maps each tileset to its loaded image. Tiles are laid out
// row-major with Tileset.Columns per row.
type TilesetImages map[*lotmap.Tileset]*ebiten.Image

// TileImage implements TileImages.
func (t TilesetImages) TileImage(c lotmap.Cell) (*ebiten.Image, image.Rectangle, bool) {
	ts := c.Tileset
	img := t[ts]
	if img == nil || ts.TileWidth <= 0 || ts.TileHeight <= 0 {
		return nil, image.Rectangle{}, false
	}
	cols := ts.Columns
	if cols <= 0 {
		cols = img.Bounds().Dx() / ts.TileWidth
	}
	if cols <= 0 || c.TileID < 0 || (ts.TileCount > 0 && c.TileID >= ts.TileCount) {
		return nil, image.Rectangle{}, false
	}
	x := (c.TileID % cols) * ts.TileWidth
	y := (c.TileID / cols) * ts.TileHeight
	return img, image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight), true
}

// batch is a run of consecutive tiles sharing one atlas page.
type batch struct {
	page     *ebiten.Image
	vertices []ebiten.Vertex // 4 per tile
	worldX   []float32       // per-vertex world position
	worldY   []float32
	count    int
}

// GroupPainter builds and draws the geometry of one level group. The
// geometry is rebuilt by Build, typically after the group was synched or its
// cells changed, and drawn each frame by Draw.
type GroupPainter struct {
	Renderer lotmap.Renderer
	Images   TileImages

	batches []batch
	indices []uint16 // shared; topology never changes
	cells   []lotmap.LayerCell
}

// NewGroupPainter creates a painter that places tiles with r and looks up
// tile images in images.
func NewGroupPainter(r lotmap.Renderer, images TileImages) *GroupPainter {
	return &GroupPainter{Renderer: r, Images: images}
}

// TileCount returns the number of tiles in the current geometry.
func (p *GroupPainter) TileCount() int {
	n := 0
	for i := range p.batches {
		n += p.batches[i].count
	}
	return n
}

// BatchCount returns the number of draw calls Draw will issue.
func (p *GroupPainter) BatchCount() int {
	return len(p.batches)
}

// Build regenerates the geometry for every cell of g inside area, a tile
// rectangle in g's space. An empty area means the group's whole bounds.
func (p *GroupPainter) Build(g *lotmap.CompositeLayerGroup, area image.Rectangle) {
	for i := range p.batches {
		p.batches[i].count = 0
		p.batches[i].page = nil
	}
	p.batches = p.batches[:0]

	if g.NeedsSynch() {
		g.Synch()
	}
	bounds := g.Bounds()
	if !area.Empty() {
		bounds = bounds.Intersect(area)
	}
	if bounds.Empty() {
		return
	}

	origin := g.Owner().OriginRecursive()
	level := g.AbsoluteLevel()
	tileW := g.Owner().Map().TileWidth
	tileH := g.Owner().Map().TileHeight
	iso := g.Owner().RenderOrientation() != lotmap.OrientationOrthogonal

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p.cells = g.OrderedCellsAt(image.Pt(x, y), p.cells[:0])
			if len(p.cells) == 0 {
				continue
			}
			pos := p.Renderer.TileToPixel(float64(x+origin.X), float64(y+origin.Y), level)
			left := float32(pos.X)
			if iso {
				left -= float32(tileW) / 2
			}
			bottom := float32(pos.Y) + float32(tileH)
			for _, lc := range p.cells {
				page, src, ok := p.Images.TileImage(lc.Cell)
				if !ok {
					continue
				}
				p.appendTile(page, src, lc, left, bottom)
			}
		}
	}
	p.ensureIndices()
}

// appendTile adds one tile whose image's bottom-left corner sits at
// (left, bottom) in world pixels. Oversized images grow up and right.
func (p *GroupPainter) appendTile(page *ebiten.Image, src image.Rectangle, lc lotmap.LayerCell, left, bottom float32) {
	n := len(p.batches)
	if n == 0 || p.batches[n-1].page != page || p.batches[n-1].count == maxTilesPerDraw {
		p.batches = append(p.batches, batch{page: page})
		n++
	}
	b := &p.batches[n-1]

	w := float32(src.Dx())
	h := float32(src.Dy())
	top := bottom - h
	b.worldX = append(b.worldX, left, left+w, left, left+w)
	b.worldY = append(b.worldY, top, top, bottom, bottom)

	// Premultiplied white scaled by the layer opacity.
	a := float32(lc.Opacity)
	v := ebiten.Vertex{ColorR: a, ColorG: a, ColorB: a, ColorA: a}
	b.vertices = append(b.vertices, v, v, v, v)
	setTileUVs(b.vertices[b.count*4:], src, lc.Cell.Flags)
	b.count++
}

// ensureIndices grows the shared index buffer to cover the largest batch.
func (p *GroupPainter) ensureIndices() {
	need := 0
	for i := range p.batches {
		need = max(need, p.batches[i].count)
	}
	have := len(p.indices) / 6
	if need <= have {
		return
	}
	p.indices = make([]uint16, need*6)
	for i := 0; i < need; i++ {
		base := uint16(i * 4)
		off := i * 6
		p.indices[off+0] = base + 0
		p.indices[off+1] = base + 1
		p.indices[off+2] = base + 2
		p.indices[off+3] = base + 1
		p.indices[off+4] = base + 3
		p.indices[off+5] = base + 2
	}
}

// setTileUVs sets the UV (SrcX/SrcY) coordinates for 4 vertices of a tile,
// applying flip flags via the lookup table.
func setTileUVs(verts []ebiten.Vertex, src image.Rectangle, flags uint32) {
	sx := float32(src.Min.X)
	sy := float32(src.Min.Y)
	sw := float32(src.Dx())
	sh := float32(src.Dy())

	// The four UV corners: TL(0), TR(1), BL(2), BR(3).
	uvX := [4]float32{sx, sx + sw, sx, sx + sw}
	uvY := [4]float32{sy, sy, sy + sh, sy + sh}

	flagIdx := 0
	if flags&lotmap.TileFlipH != 0 {
		flagIdx |= 4
	}
	if flags&lotmap.TileFlipV != 0 {
		flagIdx |= 2
	}
	if flags&lotmap.TileFlipD != 0 {
		flagIdx |= 1
	}
	order := uvOrder[flagIdx]

	for i := 0; i < 4; i++ {
		verts[i].SrcX = uvX[order[i]]
		verts[i].SrcY = uvY[order[i]]
	}
}

// Draw renders the current geometry onto dst, transforming world pixels by
// view (e.g. a camera's scroll and zoom).
func (p *GroupPainter) Draw(dst *ebiten.Image, view ebiten.GeoM) {
	var op ebiten.DrawTrianglesOptions
	for i := range p.batches {
		b := &p.batches[i]
		for v := 0; v < b.count*4; v++ {
			x, y := view.Apply(float64(b.worldX[v]), float64(b.worldY[v]))
			b.vertices[v].DstX = float32(x)
			b.vertices[v].DstY = float32(y)
		}
		dst.DrawTriangles(b.vertices[:b.count*4], p.indices[:b.count*6], b.page, &op)
	}
}

// CompositePainter paints every level group of a map in z-order.
type CompositePainter struct {
	Composite *lotmap.MapComposite
	painters  map[*lotmap.CompositeLayerGroup]*GroupPainter
	renderer  lotmap.Renderer
	images    TileImages
}

// NewCompositePainter creates a painter for mc.
func NewCompositePainter(mc *lotmap.MapComposite, r lotmap.Renderer, images TileImages) *CompositePainter {
	return &CompositePainter{
		Composite: mc,
		painters:  make(map[*lotmap.CompositeLayerGroup]*GroupPainter),
		renderer:  r,
		images:    images,
	}
}

// Rebuild regenerates the geometry of every group the renderer draws.
func (c *CompositePainter) Rebuild() {
	c.Composite.Synch()
	for _, g := range c.Composite.LayerGroups() {
		if g.AbsoluteLevel() > c.renderer.MaxLevel() {
			continue
		}
		gp := c.painters[g]
		if gp == nil {
			gp = NewGroupPainter(c.renderer, c.images)
			c.painters[g] = gp
		}
		gp.Build(g, image.Rectangle{})
	}
}

// Draw draws the groups built by the last Rebuild in z-order. Layers that
// are not part of a level group are not drawn.
func (c *CompositePainter) Draw(dst *ebiten.Image, view ebiten.GeoM) {
	for _, item := range c.Composite.ZOrder() {
		if item.Group == nil || !item.Group.Visible() {
			continue
		}
		if gp := c.painters[item.Group]; gp != nil {
			gp.Draw(dst, view)
		}
	}
}
