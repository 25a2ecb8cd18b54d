// Package installer defines the contract every rigup component
// satisfies: detect presence, install, update, uninstall. Concrete
// installers live in subpackages; a Registry holds them in
// installation order.
package installer

import (
	"github.com/arthur-debert/rigup/pkg/errors"
)

// Installer is the uniform capability set of a managed component.
//
// IsInstalled must be side-effect free and safe to call repeatedly.
// Install must be idempotent: calling it on an installed component
// refreshes safely or no-ops. Update returns a NOT_INSTALLED error
// when the component has never been installed. Uninstall returns a
// PARTIAL_UNINSTALL error when some artifacts could not be removed.
type Installer interface {
	Name() string
	Description() string
	IsInstalled() bool
	Install() error
	Update() error
	Uninstall() error
}

// Registry holds installers in dependency order. Installation order
// matters: the shell framework comes before the dotfiles that
// reference it.
type Registry struct {
	order  []string
	byName map[string]Installer
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Installer)}
}

// Register adds an installer. Registering the same name twice
// replaces the earlier entry but keeps its position.
func (r *Registry) Register(i Installer) {
	name := i.Name()
	if _, exists := r.byName[name]; !exists {
		r.order = append(r.order, name)
	}
	r.byName[name] = i
}

// Get returns the installer for a component name
func (r *Registry) Get(name string) (Installer, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, errors.Newf(errors.ErrComponentUnknown, "unknown component: %s", name)
	}
	return i, nil
}

// Names returns the registered component names in installation order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns the installers in installation order
func (r *Registry) All() []Installer {
	installers := make([]Installer, 0, len(r.order))
	for _, name := range r.order {
		installers = append(installers, r.byName[name])
	}
	return installers
}
