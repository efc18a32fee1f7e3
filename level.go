package lotmap

import (
	"strconv"
	"strings"
)

// LevelForName parses the level prefix of a layer name of the form
// "<n>_<rest>". It returns false when the name has no such prefix or <rest>
// is empty.
func LevelForName(name string) (int, bool) {
	prefix, rest, ok := strings.Cut(strings.TrimSpace(name), "_")
	if !ok || rest == "" {
		return 0, false
	}
	// ParseUint rejects signs, so "-1_Floor" and "+1_Floor" have no level.
	n, err := strconv.ParseUint(prefix, 10, 31)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// LevelForLayer is LevelForName applied to layer's name.
func LevelForLayer(layer Layer) (int, bool) {
	return LevelForName(layer.Name())
}

// LayerNameWithoutPrefix strips everything up to and including the first
// underscore. This is the key used to match equivalently named layers across
// maps ("0_Floor" and "3_Floor" both match as "Floor").
func LayerNameWithoutPrefix(name string) string {
	if i := strings.IndexByte(name, '_'); i >= 0 {
		return name[i+1:]
	}
	return name
}
