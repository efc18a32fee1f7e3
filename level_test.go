package lotmap

import "testing"

func TestLevelForName(t *testing.T) {
	tests := []struct {
		name      string
		wantLevel int
		wantOK    bool
	}{
		{"0_Floor", 0, true},
		{"12_Walls", 12, true},
		{" 2_Roof ", 2, true},
		{"1_Walls_Overlay", 1, true},
		{"Floor", 0, false},
		{"_Floor", 0, false},
		{"1_", 0, false},
		{"-1_Floor", 0, false},
		{"+1_Floor", 0, false},
		{"x_Floor", 0, false},
		{"99999999999_Floor", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, ok := LevelForName(tt.name)
			if level != tt.wantLevel || ok != tt.wantOK {
				t.Errorf("LevelForName(%q) = (%d, %t), want (%d, %t)", tt.name, level, ok, tt.wantLevel, tt.wantOK)
			}
		})
	}
}

func TestLayerNameWithoutPrefix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"0_Floor", "Floor"},
		{"3_Floor", "Floor"},
		{"1_Walls_Overlay", "Walls_Overlay"},
		{"Floor", "Floor"},
	}
	for _, tt := range tests {
		if got := LayerNameWithoutPrefix(tt.name); got != tt.want {
			t.Errorf("LayerNameWithoutPrefix(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLevelForLayer(t *testing.T) {
	og := NewObjectGroup("2_Lots")
	if level, ok := LevelForLayer(og); !ok || level != 2 {
		t.Errorf("LevelForLayer = (%d, %t), want (2, true)", level, ok)
	}
}
