// Package resource enumerates the finite resource classes served by the CDN.
package resource

import "fmt"

// Resource is a closed tag namespacing stored artifacts and routes.
type Resource int

const (
	Avatars Resource = iota
	Icons
)

// All lists every known resource in route-mount order.
func All() []Resource {
	return []Resource{Avatars, Icons}
}

func (r Resource) String() string {
	switch r {
	case Avatars:
		return "avatars"
	case Icons:
		return "icons"
	default:
		return "unknown"
	}
}

// Singleton reports whether at most one file may exist per (class, id) pair.
// Both current resource classes are singleton: a write purges prior files.
func (r Resource) Singleton() bool {
	switch r {
	case Avatars, Icons:
		return true
	default:
		return false
	}
}

// Parse resolves a path segment into a Resource, mirroring the router's
// per-class scope mounting.
func Parse(segment string) (Resource, error) {
	for _, r := range All() {
		if r.String() == segment {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown resource specified: %q", segment)
}
