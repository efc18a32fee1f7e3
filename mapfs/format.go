package mapfs

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/phanxgames/lotmap"
)

// mapDoc is the on-disk JSON form of a map. Tile data uses Tiled-style global
// tile IDs: 0 is empty, tilesets are numbered from FirstGID, and the top three
// bits hold flip flags.
type mapDoc struct {
	Orientation string       `json:"orientation"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	TileWidth   int          `json:"tilewidth"`
	TileHeight  int          `json:"tileheight"`
	Tilesets    []tilesetDoc `json:"tilesets"`
	Layers      []layerDoc   `json:"layers"`
}

type tilesetDoc struct {
	FirstGID   uint32 `json:"firstgid"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	TileWidth  int    `json:"tilewidth"`
	TileHeight int    `json:"tileheight"`
	Columns    int    `json:"columns"`
	TileCount  int    `json:"tilecount"`
}

type layerDoc struct {
	Type    string      `json:"type"` // "tile", "objects", "image" or "path"
	Name    string      `json:"name"`
	X       int         `json:"x"`
	Y       int         `json:"y"`
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Visible *bool       `json:"visible,omitempty"`
	Opacity *float64    `json:"opacity,omitempty"`
	Data    []uint32    `json:"data,omitempty"`
	Objects []objectDoc `json:"objects,omitempty"`
	Image   string      `json:"image,omitempty"`
	Paths   [][][2]int  `json:"paths,omitempty"`
}

type objectDoc struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// gidRange maps a span of global tile IDs to a tileset.
type gidRange struct {
	first   uint32
	tileset *lotmap.Tileset
}

// Decode reads a JSON map. path locates tileset images; tilesets are shared
// through reg so every map using the same image gets the same *Tileset.
func Decode(r io.Reader, path string, reg *TilesetRegistry) (*lotmap.Map, error) {
	var doc mapDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("mapfs: decode %s: %w", path, err)
	}
	if doc.Width <= 0 || doc.Height <= 0 || doc.TileWidth <= 0 || doc.TileHeight <= 0 {
		return nil, fmt.Errorf("mapfs: %s: map and tile sizes must be positive", path)
	}

	m := lotmap.NewMap(lotmap.ParseOrientation(doc.Orientation), doc.Width, doc.Height, doc.TileWidth, doc.TileHeight)

	dir := filepath.Dir(path)
	ranges := make([]gidRange, 0, len(doc.Tilesets))
	next := uint32(1)
	for _, td := range doc.Tilesets {
		first := td.FirstGID
		if first == 0 {
			first = next
		}
		source := td.Image
		if source != "" && !filepath.IsAbs(source) {
			source = filepath.Join(dir, source)
		}
		ts := reg.Get(source, func() *lotmap.Tileset {
			return &lotmap.Tileset{
				Name:        td.Name,
				ImageSource: source,
				TileWidth:   td.TileWidth,
				TileHeight:  td.TileHeight,
				Columns:     td.Columns,
				TileCount:   td.TileCount,
			}
		})
		m.AddTileset(ts)
		ranges = append(ranges, gidRange{first: first, tileset: ts})
		next = first + uint32(max(td.TileCount, 1))
	}

	for i, ld := range doc.Layers {
		layer, err := decodeLayer(ld, ranges)
		if err != nil {
			return nil, fmt.Errorf("mapfs: %s: layer %d %q: %w", path, i, ld.Name, err)
		}
		if ld.Visible != nil {
			layer.SetVisible(*ld.Visible)
		}
		if ld.Opacity != nil {
			layer.SetOpacity(*ld.Opacity)
		}
		m.AddLayer(layer)
	}
	return m, nil
}

func decodeLayer(ld layerDoc, ranges []gidRange) (lotmap.Layer, error) {
	switch ld.Type {
	case "tile", "":
		tl := lotmap.NewTileLayer(ld.Name, ld.Width, ld.Height)
		tl.SetPosition(image.Pt(ld.X, ld.Y))
		if len(ld.Data) != 0 && len(ld.Data) != ld.Width*ld.Height {
			return nil, fmt.Errorf("data has %d cells, want %d", len(ld.Data), ld.Width*ld.Height)
		}
		for i, gid := range ld.Data {
			if gid == 0 {
				continue
			}
			c, ok := cellForGID(gid, ranges)
			if !ok {
				return nil, fmt.Errorf("gid %d matches no tileset", gid&^lotmap.TileFlagMask)
			}
			tl.SetCell(image.Pt(ld.X+i%ld.Width, ld.Y+i/ld.Width), c)
		}
		return tl, nil
	case "objects":
		og := lotmap.NewObjectGroup(ld.Name)
		for _, od := range ld.Objects {
			og.AddObject(&lotmap.MapObject{
				Name:     od.Name,
				Type:     od.Type,
				Position: image.Pt(od.X, od.Y),
				Size:     image.Pt(od.Width, od.Height),
			})
		}
		return og, nil
	case "image":
		return lotmap.NewImageLayer(ld.Name, ld.Image), nil
	case "path":
		pl := lotmap.NewPathLayer(ld.Name)
		for _, path := range ld.Paths {
			pts := make([]image.Point, len(path))
			for i, p := range path {
				pts[i] = image.Pt(p[0], p[1])
			}
			pl.Paths = append(pl.Paths, pts)
		}
		return pl, nil
	default:
		return nil, fmt.Errorf("unknown layer type %q", ld.Type)
	}
}

// cellForGID resolves a global tile ID against the tileset ranges, which are
// in ascending FirstGID order.
func cellForGID(gid uint32, ranges []gidRange) (lotmap.Cell, bool) {
	flags := gid & lotmap.TileFlagMask
	id := gid &^ lotmap.TileFlagMask
	for i := len(ranges) - 1; i >= 0; i-- {
		if id >= ranges[i].first {
			return lotmap.Cell{
				Tileset: ranges[i].tileset,
				TileID:  int(id - ranges[i].first),
				Flags:   flags,
			}, true
		}
	}
	return lotmap.Cell{}, false
}
