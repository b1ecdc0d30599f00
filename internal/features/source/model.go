package source

type FilterKind string

const (
	FilterSelect      FilterKind = "select"
	FilterMultiSelect FilterKind = "multiselect"
	FilterText        FilterKind = "text"
	FilterBoolean     FilterKind = "boolean"
	FilterDateRange   FilterKind = "daterange"
)

type MatchMode string

const (
	MatchContains MatchMode = "contains"
	MatchExact    MatchMode = "exact"
)

// SelectAll is the select-filter sentinel meaning "no constraint".
const SelectAll = "all"

// GroupNone is the grouping sentinel meaning "flat result".
const GroupNone = "none"

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldDefinition describes one reportable attribute. Key is a dot-path into
// a row. A non-empty Expr marks a computed field: the expression is evaluated
// per row at execution time instead of being read from the store.
type FieldDefinition struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Category string `json:"category"`
	Expr     string `json:"expr,omitempty"`
}

// FilterDefinition describes one predicate a source supports. Field is the
// dot-path the predicate applies to; MatchMode is meaningful for text filters
// only, Options for select/multiselect only.
type FilterDefinition struct {
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Kind      FilterKind `json:"kind"`
	Field     string     `json:"field"`
	MatchMode MatchMode  `json:"match_mode,omitempty"`
	Options   []Option   `json:"options,omitempty"`
}

// Grouping describes a partitioning key. The catalog always includes the
// GroupNone sentinel with an empty Field.
type Grouping struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Field string `json:"field,omitempty"`
}

type DataSourceDefinition struct {
	Key         string             `json:"key"`
	Label       string             `json:"label"`
	Description string             `json:"description"`
	Fields      []FieldDefinition  `json:"fields"`
	Filters     []FilterDefinition `json:"filters"`
	Groupings   []Grouping         `json:"groupings"`
}

// Field looks up a field definition by key.
func (d *DataSourceDefinition) Field(key string) (FieldDefinition, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// Filter looks up a filter definition by key.
func (d *DataSourceDefinition) Filter(key string) (FilterDefinition, bool) {
	for _, f := range d.Filters {
		if f.Key == key {
			return f, true
		}
	}
	return FilterDefinition{}, false
}

// Grouping looks up a grouping by key. GroupNone is always present.
func (d *DataSourceDefinition) Grouping(key string) (Grouping, bool) {
	for _, g := range d.Groupings {
		if g.Key == key {
			return g, true
		}
	}
	return Grouping{}, false
}
