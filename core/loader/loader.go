package loader

import (
	"context"
	"fmt"
	"sort"
)

// Feature is one ingestible dataset.
type Feature interface {
	// Name is the dataset name used on the command line.
	Name() string
	// Run ingests the dataset once.
	Run(ctx context.Context) error
}

// Manager holds the registry of available datasets.
type Manager struct {
	features map[string]Feature
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{features: make(map[string]Feature)}
}

// Register adds a feature. A later registration with the same name replaces the earlier one.
func (m *Manager) Register(f Feature) {
	m.features[f.Name()] = f
}

// Names returns the registered names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.features))
	for name := range m.features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run runs the named feature.
func (m *Manager) Run(ctx context.Context, name string) error {
	f, ok := m.features[name]
	if !ok {
		return fmt.Errorf("unknown dataset %q (available: %v)", name, m.Names())
	}
	return f.Run(ctx)
}
