package report

import (
	"encoding/json"
	"errors"
	"time"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Configuration errors. These are caller mistakes: the action is blocked
// locally and never reaches the store.
var (
	ErrEmptyFields     = errors.New("no fields selected")
	ErrInvalidField    = errors.New("field not available on data source")
	ErrDuplicateField  = errors.New("duplicate field selection")
	ErrInvalidFilter   = errors.New("filter not available on data source")
	ErrInvalidGrouping = errors.New("grouping not available on data source")
	ErrInvalidSort     = errors.New("sort field must be a selected field")
	ErrSuperseded      = errors.New("run superseded by a newer request")
)

// Row is one result row. Only the dot-paths named in the configuration's
// field list are guaranteed meaningful.
type Row = map[string]any

// DateRange bounds a daterange filter; either side may be open.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Configuration is the complete user-editable description of a report.
type Configuration struct {
	DataSource    string         `json:"data_source" bson:"data_source"`
	Fields        []string       `json:"fields" bson:"fields"`
	Filters       map[string]any `json:"filters" bson:"filters"`
	GroupBy       string         `json:"group_by" bson:"group_by"`
	SortBy        string         `json:"sort_by" bson:"sort_by"`
	SortDirection Direction      `json:"sort_direction" bson:"sort_direction"`
}

// HasField reports whether key is among the selected fields.
func (c Configuration) HasField(key string) bool {
	for _, f := range c.Fields {
		if f == key {
			return true
		}
	}
	return false
}

type Group struct {
	GroupKey string `json:"group_key"`
	Items    []Row  `json:"items"`
}

// Result is constructed fresh on every execution and never mutated in place.
type Result struct {
	Grouped     bool
	Rows        []Row
	Groups      []Group
	TotalCount  int
	GeneratedAt time.Time
}

// MarshalJSON emits the wire shape {data, grouped, total_count, generated_at}
// where data is a flat row list or a group list.
func (r Result) MarshalJSON() ([]byte, error) {
	payload := struct {
		Grouped     bool      `json:"grouped"`
		Data        any       `json:"data"`
		TotalCount  int       `json:"total_count"`
		GeneratedAt time.Time `json:"generated_at"`
	}{
		Grouped:     r.Grouped,
		TotalCount:  r.TotalCount,
		GeneratedAt: r.GeneratedAt,
	}
	if r.Grouped {
		payload.Data = r.Groups
	} else {
		payload.Data = r.Rows
	}
	return json.Marshal(payload)
}

// FlatRow is a result row with its group key attached, used by renderers
// that flatten grouped results group by group.
type FlatRow struct {
	GroupKey string
	Row      Row
}

// Flatten returns the result rows in render order, each retaining its group
// key when the result is grouped.
func (r *Result) Flatten() []FlatRow {
	if !r.Grouped {
		flat := make([]FlatRow, 0, len(r.Rows))
		for _, row := range r.Rows {
			flat = append(flat, FlatRow{Row: row})
		}
		return flat
	}
	var flat []FlatRow
	for _, g := range r.Groups {
		for _, row := range g.Items {
			flat = append(flat, FlatRow{GroupKey: g.GroupKey, Row: row})
		}
	}
	return flat
}
