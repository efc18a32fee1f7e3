// Package mapfs loads lotmap maps from JSON files, resolves lots against the
// filesystem and watches map files for changes.
package mapfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/sirupsen/logrus"

	"github.com/phanxgames/lotmap"
)

// Ext is the extension added to lot names that have none.
const Ext = ".json"

// TilesetRegistry hands out one *lotmap.Tileset per image source so maps
// loaded separately share tilesets by pointer.
type TilesetRegistry struct {
	mu       sync.Mutex
	tilesets map[string]*lotmap.Tileset
}

// NewTilesetRegistry creates an empty registry.
func NewTilesetRegistry() *TilesetRegistry {
	return &TilesetRegistry{tilesets: make(map[string]*lotmap.Tileset)}
}

// Get returns the tileset registered for source, creating it with newFn on
// first use. An empty source is never shared.
func (r *TilesetRegistry) Get(source string, newFn func() *lotmap.Tileset) *lotmap.Tileset {
	if source == "" {
		return newFn()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ts, ok := r.tilesets[source]; ok {
		return ts
	}
	ts := newFn()
	r.tilesets[source] = ts
	return ts
}

// Tilesets returns every registered tileset.
func (r *TilesetRegistry) Tilesets() []*lotmap.Tileset {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*lotmap.Tileset, 0, len(r.tilesets))
	for _, ts := range r.tilesets {
		out = append(out, ts)
	}
	return out
}

// DirResolver is a lotmap.Resolver backed by JSON map files. A lot name is
// looked up next to the map that places it, then in each of SearchDirs.
// Loaded maps are cached so a lot placed many times is decoded once.
type DirResolver struct {
	// SearchDirs are tried, in order, after the placing map's directory.
	SearchDirs []string
	Tilesets   *TilesetRegistry

	cache *ristretto.Cache[string, *lotmap.MapInfo]
	log   logrus.FieldLogger
}

// NewDirResolver creates a resolver caching up to capacity maps.
func NewDirResolver(capacity int64, searchDirs ...string) (*DirResolver, error) {
	if capacity <= 0 {
		capacity = 256
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, *lotmap.MapInfo]{
		NumCounters: capacity * 10,
		MaxCost:     capacity,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("mapfs: create cache: %w", err)
	}
	return &DirResolver{
		SearchDirs: searchDirs,
		Tilesets:   NewTilesetRegistry(),
		cache:      cache,
		log:        lotmap.Logger().WithField("component", "mapfs"),
	}, nil
}

// Close releases the cache.
func (r *DirResolver) Close() {
	r.cache.Close()
}

// Resolve implements lotmap.Resolver.
func (r *DirResolver) Resolve(name, relativeTo string) (*lotmap.MapInfo, error) {
	path, err := r.locate(name, relativeTo)
	if err != nil {
		return nil, err
	}
	return r.Load(path)
}

// locate finds the file a lot name refers to.
func (r *DirResolver) locate(name, relativeTo string) (string, error) {
	if filepath.Ext(name) == "" {
		name += Ext
	}
	var candidates []string
	if filepath.IsAbs(name) {
		candidates = append(candidates, name)
	} else {
		if relativeTo != "" {
			candidates = append(candidates, filepath.Join(filepath.Dir(relativeTo), name))
		}
		for _, dir := range r.SearchDirs {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			return filepath.Clean(c), nil
		}
	}
	return "", fmt.Errorf("mapfs: %s: %w", name, lotmap.ErrMapNotFound)
}

// Load returns the MapInfo for the map file at path, decoding it unless it
// is cached.
func (r *DirResolver) Load(path string) (*lotmap.MapInfo, error) {
	path = filepath.Clean(path)
	if info, ok := r.cache.Get(path); ok {
		return info, nil
	}
	m, err := r.decodeFile(path)
	if err != nil {
		return nil, err
	}
	info := &lotmap.MapInfo{Path: path, Map: m}
	r.cache.Set(path, info, 1)
	r.cache.Wait()
	r.log.WithField("path", path).Debug("mapfs: loaded map")
	return info, nil
}

// Reload decodes path again without touching any MapInfo. The caller swaps
// the result into the MapInfo values it holds, bracketed by
// MapComposite.MapAboutToChange and MapComposite.MapChanged.
func (r *DirResolver) Reload(path string) (*lotmap.Map, error) {
	path = filepath.Clean(path)
	m, err := r.decodeFile(path)
	if err != nil {
		return nil, err
	}
	// Cached MapInfo values may be held by other composites; drop the entry
	// rather than mutating it behind their backs.
	r.cache.Del(path)
	r.cache.Wait()
	return m, nil
}

func (r *DirResolver) decodeFile(path string) (*lotmap.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("mapfs: %s: %w", path, lotmap.ErrMapNotFound)
		}
		return nil, fmt.Errorf("mapfs: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, path, r.Tilesets)
}

// ReloadInto reloads path and swaps the new map into every MapInfo for path
// in mc's tree, notifying mc around each swap. Returns the number of MapInfo
// values updated.
func (r *DirResolver) ReloadInto(mc *lotmap.MapComposite, path string) (int, error) {
	path = filepath.Clean(path)
	infos := mc.MapInfosForPath(path)
	if len(infos) == 0 {
		return 0, nil
	}
	m, err := r.Reload(path)
	if err != nil {
		return 0, err
	}
	for _, info := range infos {
		mc.MapAboutToChange(info)
		info.Map = m
		mc.MapChanged(info)
	}
	return len(infos), nil
}
