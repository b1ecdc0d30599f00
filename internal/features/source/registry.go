package source

import (
	"errors"
	"fmt"
)

// ErrUnknownSource signals a configuration error: callers must not retry.
var ErrUnknownSource = errors.New("unknown data source")

// Registry is the immutable catalog of reportable data sources. It is fixed
// at deployment; end users never alter it.
type Registry struct {
	sources []DataSourceDefinition
	byKey   map[string]*DataSourceDefinition
}

func NewRegistry() *Registry {
	sources := Catalog()
	byKey := make(map[string]*DataSourceDefinition, len(sources))
	for i := range sources {
		byKey[sources[i].Key] = &sources[i]
	}
	return &Registry{sources: sources, byKey: byKey}
}

// Get resolves a source key. Unknown keys are a configuration error.
func (r *Registry) Get(key string) (*DataSourceDefinition, error) {
	def, ok := r.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, key)
	}
	return def, nil
}

// List returns every source definition for selection UIs.
func (r *Registry) List() []DataSourceDefinition {
	return r.sources
}
