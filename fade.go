package lotmap

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LevelFade animates the opacity of every layer in one level group toward a
// target, e.g. to dim the levels above the one being edited. Call Update(dt)
// each frame until Done.
//
// There is no global fade manager; callers drive Update themselves.
type LevelFade struct {
	group    *CompositeLayerGroup
	progress *gween.Tween
	from     []float64
	to       float64
	Done     bool
}

// FadeLevel creates a LevelFade taking every member of g from its current
// opacity to the target over duration seconds.
func FadeLevel(g *CompositeLayerGroup, to float64, duration float32, fn ease.TweenFunc) *LevelFade {
	f := &LevelFade{
		group:    g,
		progress: gween.New(0, 1, duration, fn),
		from:     make([]float64, g.LayerCount()),
		to:       clampOpacity(to),
	}
	for i := range f.from {
		f.from[i] = g.LayerOpacity(i)
	}
	return f
}

// Update advances the fade by dt seconds and applies the new opacities.
// Returns whether any opacity changed, i.e. whether a redraw is due.
func (f *LevelFade) Update(dt float32) bool {
	if f.Done {
		return false
	}
	// Members added or removed mid-fade end it.
	if len(f.from) != f.group.LayerCount() {
		f.Done = true
		return false
	}
	p, finished := f.progress.Update(dt)
	changed := false
	for i, from := range f.from {
		v := from + (f.to-from)*float64(p)
		if finished {
			v = f.to
		}
		if f.group.setOpacityAt(i, v) {
			changed = true
		}
	}
	f.Done = finished
	return changed
}
