// Package overlay renders debug images of a lotmap composite: each level's
// bounding rect, each contributing lot's outline and the map grid.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/phanxgames/lotmap"
)

// ErrEmptyBounds is returned when there is nothing to draw.
var ErrEmptyBounds = errors.New("overlay: composite has empty bounds")

// Style configures colors and line widths.
type Style struct {
	Background gg.RGBA
	MapGrid    gg.RGBA
	Lot        gg.RGBA
	// Levels cycles through these colors for level bounding rects.
	Levels    []gg.RGBA
	LineWidth float64
	// Padding around the drawing, in pixels.
	Padding float64
}

// DefaultStyle returns the stock overlay colors.
func DefaultStyle() Style {
	return Style{
		Background: gg.RGB(0.1, 0.1, 0.12),
		MapGrid:    gg.RGBA2(1, 1, 1, 0.35),
		Lot:        gg.RGB(1, 0.8, 0.2),
		Levels: []gg.RGBA{
			gg.RGB(0.3, 0.7, 1),
			gg.RGB(0.4, 1, 0.5),
			gg.RGB(1, 0.45, 0.45),
			gg.RGB(0.8, 0.5, 1),
		},
		LineWidth: 2,
		Padding:   8,
	}
}

// Overlay draws debug images for one composite.
type Overlay struct {
	Composite *lotmap.MapComposite
	Renderer  lotmap.Renderer
	Style     Style
}

// New creates an Overlay with DefaultStyle.
func New(mc *lotmap.MapComposite, r lotmap.Renderer) *Overlay {
	return &Overlay{Composite: mc, Renderer: r, Style: DefaultStyle()}
}

// Render draws the overlay into a new context sized to the composite's
// bounding rect. The caller closes the context.
func (o *Overlay) Render() (*gg.Context, error) {
	bounds := o.Composite.BoundingRect(o.Renderer, true)
	if bounds.IsEmpty() {
		return nil, ErrEmptyBounds
	}
	pad := o.Style.Padding
	w := int(math.Ceil(bounds.Width + 2*pad))
	h := int(math.Ceil(bounds.Height + 2*pad))

	dc := gg.NewContext(w, h)
	if err := o.draw(dc, bounds); err != nil {
		_ = dc.Close()
		return nil, err
	}
	return dc, nil
}

func (o *Overlay) draw(dc *gg.Context, bounds lotmap.Rect) error {
	pad := o.Style.Padding
	dc.ClearWithColor(o.Style.Background)
	dc.Translate(pad-bounds.X, pad-bounds.Y)
	dc.SetLineWidth(o.Style.LineWidth)

	// Map grid on level 0.
	grid := o.Composite.Map().Size().Add(o.Composite.OriginRecursive())
	if err := o.strokeTileRect(dc, grid, o.Composite.LevelRecursive(), o.Style.MapGrid); err != nil {
		return err
	}

	for _, g := range o.Composite.LayerGroups() {
		if g.AbsoluteLevel() > o.Renderer.MaxLevel() {
			continue
		}
		if r := g.BoundingRect(o.Renderer); !r.IsEmpty() {
			c := o.levelColor(g.Level())
			dc.SetRGBA(c.R, c.G, c.B, c.A)
			dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
			if err := dc.Stroke(); err != nil {
				return fmt.Errorf("overlay: stroke level %d: %w", g.Level(), err)
			}
		}
		if err := o.strokeLots(dc, g, g.Owner().OriginRecursive()); err != nil {
			return err
		}
	}
	return nil
}

func (o *Overlay) levelColor(level int) gg.RGBA {
	if len(o.Style.Levels) == 0 {
		return gg.RGB(1, 1, 1)
	}
	return o.Style.Levels[level%len(o.Style.Levels)]
}

// strokeLots outlines every lot contributing to g, recursing into lots of
// lots. origin is g's tile origin relative to the root.
func (o *Overlay) strokeLots(dc *gg.Context, g *lotmap.CompositeLayerGroup, origin image.Point) error {
	for _, sm := range g.VisibleSubMaps() {
		if err := o.strokeTileRect(dc, sm.Bounds.Add(origin), g.AbsoluteLevel(), o.Style.Lot); err != nil {
			return err
		}
		if err := o.strokeLots(dc, sm.Group, origin.Add(sm.SubMap.Origin())); err != nil {
			return err
		}
	}
	return nil
}

// strokeTileRect outlines tile rect r on level, as a diamond on isometric
// renderers.
func (o *Overlay) strokeTileRect(dc *gg.Context, r image.Rectangle, level int, col gg.RGBA) error {
	if r.Empty() {
		return nil
	}
	corners := [4]lotmap.Vec2{
		o.Renderer.TileToPixel(float64(r.Min.X), float64(r.Min.Y), level),
		o.Renderer.TileToPixel(float64(r.Max.X), float64(r.Min.Y), level),
		o.Renderer.TileToPixel(float64(r.Max.X), float64(r.Max.Y), level),
		o.Renderer.TileToPixel(float64(r.Min.X), float64(r.Max.Y), level),
	}
	dc.SetRGBA(col.R, col.G, col.B, col.A)
	dc.MoveTo(corners[0].X, corners[0].Y)
	for _, c := range corners[1:] {
		dc.LineTo(c.X, c.Y)
	}
	dc.ClosePath()
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("overlay: stroke %v: %w", r, err)
	}
	return nil
}

// WritePNG renders the overlay and encodes it as PNG to w.
func (o *Overlay) WritePNG(w io.Writer) error {
	dc, err := o.Render()
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("overlay: encode: %w", err)
	}
	return nil
}

// SavePNG renders the overlay to a PNG file.
func (o *Overlay) SavePNG(path string) error {
	dc, err := o.Render()
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("overlay: save %s: %w", path, err)
	}
	return nil
}
