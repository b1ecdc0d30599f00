package report

import (
	"fmt"

	"go-events/internal/features/source"
)

// Builder holds the in-memory configuration state while a report is being
// put together. Every mutation is validated against the registry; no I/O.
type Builder struct {
	registry *source.Registry
	cfg      Configuration
}

func NewBuilder(registry *source.Registry) *Builder {
	return &Builder{
		registry: registry,
		cfg: Configuration{
			Filters: map[string]any{},
			GroupBy: source.GroupNone,
		},
	}
}

// Configuration returns a copy of the current state.
func (b *Builder) Configuration() Configuration {
	cfg := b.cfg
	cfg.Fields = append([]string(nil), b.cfg.Fields...)
	cfg.Filters = make(map[string]any, len(b.cfg.Filters))
	for k, v := range b.cfg.Filters {
		cfg.Filters[k] = v
	}
	return cfg
}

// SetDataSource switches sources and resets every downstream dimension: the
// source defines the vocabulary of fields, filters, groupings and sort, so
// selections from the previous source are unsafe to keep.
func (b *Builder) SetDataSource(key string) error {
	if _, err := b.registry.Get(key); err != nil {
		return err
	}
	b.cfg = Configuration{
		DataSource: key,
		Filters:    map[string]any{},
		GroupBy:    source.GroupNone,
	}
	return nil
}

// ToggleField adds the field if absent, removes it if present. Removing the
// field that is the current sort key also clears the sort.
func (b *Builder) ToggleField(key string) error {
	def, err := b.registry.Get(b.cfg.DataSource)
	if err != nil {
		return err
	}
	if _, ok := def.Field(key); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidField, key)
	}

	for i, f := range b.cfg.Fields {
		if f == key {
			b.cfg.Fields = append(b.cfg.Fields[:i], b.cfg.Fields[i+1:]...)
			if b.cfg.SortBy == key {
				b.cfg.SortBy = ""
				b.cfg.SortDirection = ""
			}
			return nil
		}
	}
	b.cfg.Fields = append(b.cfg.Fields, key)
	return nil
}

// ReorderField swaps the field with its neighbor. A swap past either end, or
// on an unselected field, is a no-op.
func (b *Builder) ReorderField(key string, up bool) {
	for i, f := range b.cfg.Fields {
		if f != key {
			continue
		}
		j := i + 1
		if up {
			j = i - 1
		}
		if j < 0 || j >= len(b.cfg.Fields) {
			return
		}
		b.cfg.Fields[i], b.cfg.Fields[j] = b.cfg.Fields[j], b.cfg.Fields[i]
		return
	}
}

// SetFilter stores a filter value; an empty value clears the key so
// execution treats the filter as unconstrained.
func (b *Builder) SetFilter(key string, value any) error {
	def, err := b.registry.Get(b.cfg.DataSource)
	if err != nil {
		return err
	}
	if _, ok := def.Filter(key); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, key)
	}
	if emptyFilterValue(value) {
		delete(b.cfg.Filters, key)
		return nil
	}
	b.cfg.Filters[key] = value
	return nil
}

func (b *Builder) SetGroupBy(key string) error {
	def, err := b.registry.Get(b.cfg.DataSource)
	if err != nil {
		return err
	}
	if _, ok := def.Grouping(key); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidGrouping, key)
	}
	b.cfg.GroupBy = key
	return nil
}

// SetSortBy sets the sort key; it must be one of the selected fields. An
// empty key restores the store's natural order.
func (b *Builder) SetSortBy(key string, dir Direction) error {
	if key == "" {
		b.cfg.SortBy = ""
		b.cfg.SortDirection = ""
		return nil
	}
	if !b.cfg.HasField(key) {
		return fmt.Errorf("%w: %q", ErrInvalidSort, key)
	}
	if dir != Desc {
		dir = Asc
	}
	b.cfg.SortBy = key
	b.cfg.SortDirection = dir
	return nil
}

// Ready reports whether the configuration may be executed.
func (b *Builder) Ready() bool {
	return b.cfg.DataSource != "" && len(b.cfg.Fields) > 0
}

func emptyFilterValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

// ValidateConfiguration checks a configuration against its source definition
// before execution or save. Configuration errors are rejected here, before
// any store round-trip.
func ValidateConfiguration(cfg Configuration, def *source.DataSourceDefinition) error {
	if len(cfg.Fields) == 0 {
		return ErrEmptyFields
	}
	seen := make(map[string]bool, len(cfg.Fields))
	for _, key := range cfg.Fields {
		if _, ok := def.Field(key); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidField, key)
		}
		if seen[key] {
			return fmt.Errorf("%w: %q", ErrDuplicateField, key)
		}
		seen[key] = true
	}
	for key := range cfg.Filters {
		if _, ok := def.Filter(key); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidFilter, key)
		}
	}
	if cfg.GroupBy != "" && cfg.GroupBy != source.GroupNone {
		if _, ok := def.Grouping(cfg.GroupBy); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidGrouping, cfg.GroupBy)
		}
	}
	if cfg.SortBy != "" && !cfg.HasField(cfg.SortBy) {
		return fmt.Errorf("%w: %q", ErrInvalidSort, cfg.SortBy)
	}
	return nil
}
