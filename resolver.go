package lotmap

import "errors"

var (
	// ErrMapNotFound is returned by a Resolver when a lot names a map that
	// cannot be located.
	ErrMapNotFound = errors.New("lotmap: map not found")
	// ErrLotCycle reports a lot that refers back to one of its ancestors.
	ErrLotCycle = errors.New("lotmap: lot refers to an ancestor map")
)

// Resolver locates and loads the map a lot refers to. relativeTo is the path
// of the map containing the lot; implementations resolve name against its
// directory. Loading and tileset reference counting are the resolver's
// business, not the composite's.
type Resolver interface {
	Resolve(name, relativeTo string) (*MapInfo, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(name, relativeTo string) (*MapInfo, error)

// Resolve calls f(name, relativeTo).
func (f ResolverFunc) Resolve(name, relativeTo string) (*MapInfo, error) {
	return f(name, relativeTo)
}

// Config configures a root MapComposite. Sub-maps share their root's config.
type Config struct {
	// Resolver loads lots. Nil disables lot loading.
	Resolver Resolver
	// Events receives structural notifications. Nil discards them.
	Events EventSink
}
