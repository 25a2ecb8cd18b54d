// Package resolver determines the effective source file for a managed
// dotfile by consulting an ordered list of layer directories. The
// first layer containing the file wins, so a "personal" layer
// overrides "default" without any special casing.
package resolver

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
)

var log = logging.GetLogger("resolver")

// Resolver resolves logical dotfile names against layered source directories
type Resolver struct {
	// layers are absolute directories in priority order, highest first
	layers []string
}

// New creates a resolver over the given layer directories. The order
// of the slice is the resolution priority.
func New(layers []string) *Resolver {
	return &Resolver{layers: layers}
}

// Layers returns the layer directories in priority order
func (r *Resolver) Layers() []string {
	return r.layers
}

// Resolve returns the effective source path for a logical name.
// Resolution is deterministic and side-effect free; a name present in
// no layer yields a SOURCE_NOT_FOUND error.
func (r *Resolver) Resolve(name string) (string, error) {
	for _, layer := range r.layers {
		candidate := filepath.Join(layer, name)
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			log.Trace().Str("name", name).Str("source", candidate).Msg("Resolved source")
			return candidate, nil
		}
	}
	return "", errors.Newf(errors.ErrSourceNotFound, "no source found for %q in any layer", name).
		WithDetail("layers", r.layers)
}

// KnownSources returns every existing candidate path for a name across
// all layers, not just the winning one. The backup manager uses this
// to recognize symlinks that already point at a managed source.
func (r *Resolver) KnownSources(name string) []string {
	var sources []string
	for _, layer := range r.layers {
		candidate := filepath.Join(layer, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			sources = append(sources, candidate)
		}
	}
	return sources
}
