package lotmap

import (
	"image"
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestLevelFade(t *testing.T) {
	floor := tileLayer("1_Floor", 4, 4, image.Pt(0, 0))
	walls := tileLayer("1_Walls", 4, 4, image.Pt(0, 0))
	mc := NewMapComposite(&MapInfo{Map: newTestMap(4, 4, floor, walls)}, OrientationUnknown, Config{})
	g := mc.LayerGroupForLevel(1)

	f := FadeLevel(g, 0, 1, ease.Linear)
	if !f.Update(0.5) {
		t.Error("Update should report a change")
	}
	for i := 0; i < g.LayerCount(); i++ {
		if got := g.LayerOpacity(i); math.Abs(got-0.5) > 1e-6 {
			t.Errorf("LayerOpacity(%d) = %v, want 0.5", i, got)
		}
	}
	if f.Done {
		t.Error("fade finished early")
	}
	if !g.NeedsSynch() {
		t.Error("fading should dirty the group")
	}

	f.Update(0.6)
	if !f.Done {
		t.Error("fade should be done")
	}
	for i := 0; i < g.LayerCount(); i++ {
		if got := g.LayerOpacity(i); got != 0 {
			t.Errorf("LayerOpacity(%d) = %v, want 0", i, got)
		}
	}
	if f.Update(1) {
		t.Error("Update after Done should report no change")
	}
}

func TestLevelFadeEndsWhenMembersChange(t *testing.T) {
	floor := tileLayer("0_Floor", 4, 4, image.Pt(0, 0))
	m := newTestMap(4, 4, floor)
	mc := NewMapComposite(&MapInfo{Map: m}, OrientationUnknown, Config{})
	g := mc.LayerGroupForLevel(0)

	f := FadeLevel(g, 0.2, 1, ease.Linear)
	m.AddLayer(tileLayer("0_Walls", 4, 4))
	mc.LayerAdded(1)

	if f.Update(0.5) {
		t.Error("Update should not change opacities after membership changed")
	}
	if !f.Done {
		t.Error("fade should end when the group changes")
	}
	if g.LayerOpacity(0) != 1 {
		t.Errorf("LayerOpacity = %v, want 1", g.LayerOpacity(0))
	}
}
