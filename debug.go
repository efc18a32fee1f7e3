package lotmap

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// SetDebugMode enables or disables extra consistency checks, such as
// warnings on deeply nested lots.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

var globalDebug bool

// debugCheckLotDepth warns if lots nest deeper than the threshold.
const debugMaxLotDepth = 16

func debugCheckLotDepth(mc *MapComposite) {
	depth := 0
	for p := mc; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxLotDepth {
		logger.WithFields(logrus.Fields{
			"depth": depth,
			"max":   debugMaxLotDepth,
			"map":   mc.mapInfo.Path,
		}).Warn("lotmap: lot nesting is deep")
	}
}

// DumpTree writes a human-readable outline of the composite tree: one line
// per map and per level group with its cached bounds.
func DumpTree(w io.Writer, mc *MapComposite) error {
	return dumpTree(w, mc, 0)
}

func dumpTree(w io.Writer, mc *MapComposite, depth int) error {
	indent := strings.Repeat("  ", depth)
	_, err := fmt.Fprintf(w, "%smap %q origin=%v level=%d visible=%t levels=[%d,%d]\n",
		indent, mc.mapInfo.Path, mc.origin, mc.levelOffset, mc.visible && mc.groupVisible,
		mc.minLevel, mc.maxLevel)
	if err != nil {
		return err
	}
	for _, g := range mc.sortedGroups {
		dirty := ""
		if g.needsSynch {
			dirty = " dirty"
		}
		_, err = fmt.Fprintf(w, "%s  level %d layers=%d bounds=%v margins=%+v%s\n",
			indent, g.level, len(g.layers), g.Bounds(), g.drawMargins, dirty)
		if err != nil {
			return err
		}
	}
	for _, sub := range mc.subMaps {
		if err := dumpTree(w, sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}
