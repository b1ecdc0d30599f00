package report

import (
	"errors"
	"testing"

	"go-events/internal/features/source"
)

func TestBuilderSourceSwitchResetsEverything(t *testing.T) {
	b := NewBuilder(source.NewRegistry())

	if err := b.SetDataSource("participants"); err != nil {
		t.Fatal(err)
	}
	if err := b.ToggleField("firstName"); err != nil {
		t.Fatal(err)
	}
	if err := b.ToggleField("lastName"); err != nil {
		t.Fatal(err)
	}
	if err := b.SetFilter("diocese", []string{"Austin"}); err != nil {
		t.Fatal(err)
	}
	if err := b.SetGroupBy("diocese"); err != nil {
		t.Fatal(err)
	}
	if err := b.SetSortBy("lastName", Asc); err != nil {
		t.Fatal(err)
	}

	if err := b.SetDataSource("incidents"); err != nil {
		t.Fatal(err)
	}

	cfg := b.Configuration()
	if cfg.DataSource != "incidents" {
		t.Errorf("DataSource = %q", cfg.DataSource)
	}
	if len(cfg.Fields) != 0 {
		t.Errorf("Fields = %v, want empty", cfg.Fields)
	}
	if len(cfg.Filters) != 0 {
		t.Errorf("Filters = %v, want empty", cfg.Filters)
	}
	if cfg.GroupBy != source.GroupNone {
		t.Errorf("GroupBy = %q, want %q", cfg.GroupBy, source.GroupNone)
	}
	if cfg.SortBy != "" || cfg.SortDirection != "" {
		t.Errorf("sort = %q/%q, want cleared", cfg.SortBy, cfg.SortDirection)
	}
	if b.Ready() {
		t.Error("builder should not be ready with no fields selected")
	}
}

func TestBuilderToggleField(t *testing.T) {
	b := NewBuilder(source.NewRegistry())
	if err := b.SetDataSource("participants"); err != nil {
		t.Fatal(err)
	}

	if err := b.ToggleField("unknownField"); !errors.Is(err, ErrInvalidField) {
		t.Errorf("ToggleField(unknownField) error = %v, want ErrInvalidField", err)
	}

	b.ToggleField("firstName")
	b.ToggleField("lastName")
	if err := b.SetSortBy("lastName", Desc); err != nil {
		t.Fatal(err)
	}

	// Removing the sorted field clears the sort.
	b.ToggleField("lastName")
	cfg := b.Configuration()
	if len(cfg.Fields) != 1 || cfg.Fields[0] != "firstName" {
		t.Errorf("Fields = %v", cfg.Fields)
	}
	if cfg.SortBy != "" || cfg.SortDirection != "" {
		t.Errorf("sort = %q/%q, want cleared", cfg.SortBy, cfg.SortDirection)
	}
}

func TestBuilderReorderField(t *testing.T) {
	b := NewBuilder(source.NewRegistry())
	if err := b.SetDataSource("participants"); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"firstName", "lastName", "diocese"} {
		if err := b.ToggleField(f); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		key  string
		up   bool
		want []string
	}{
		{name: "Move middle up", key: "lastName", up: true, want: []string{"lastName", "firstName", "diocese"}},
		{name: "Move first up is a no-op", key: "lastName", up: true, want: []string{"lastName", "firstName", "diocese"}},
		{name: "Move first down", key: "lastName", up: false, want: []string{"firstName", "lastName", "diocese"}},
		{name: "Move last down is a no-op", key: "diocese", up: false, want: []string{"firstName", "lastName", "diocese"}},
		{name: "Unselected field is a no-op", key: "parish", up: true, want: []string{"firstName", "lastName", "diocese"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.ReorderField(tt.key, tt.up)
			got := b.Configuration().Fields
			if len(got) != len(tt.want) {
				t.Fatalf("Fields = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Fields = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestBuilderSetFilter(t *testing.T) {
	b := NewBuilder(source.NewRegistry())
	if err := b.SetDataSource("participants"); err != nil {
		t.Fatal(err)
	}

	if err := b.SetFilter("nope", "x"); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("SetFilter(nope) error = %v, want ErrInvalidFilter", err)
	}

	if err := b.SetFilter("lastName", "smith"); err != nil {
		t.Fatal(err)
	}
	if got := b.Configuration().Filters["lastName"]; got != "smith" {
		t.Errorf("Filters[lastName] = %v", got)
	}

	// Empty value clears the key entirely.
	if err := b.SetFilter("lastName", ""); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Configuration().Filters["lastName"]; ok {
		t.Error("empty filter value should clear the key")
	}

	if err := b.SetFilter("diocese", []string{}); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Configuration().Filters["diocese"]; ok {
		t.Error("empty multiselect should clear the key")
	}
}

func TestBuilderSetSortBy(t *testing.T) {
	b := NewBuilder(source.NewRegistry())
	if err := b.SetDataSource("participants"); err != nil {
		t.Fatal(err)
	}
	b.ToggleField("lastName")

	if err := b.SetSortBy("firstName", Asc); !errors.Is(err, ErrInvalidSort) {
		t.Errorf("sort on unselected field: error = %v, want ErrInvalidSort", err)
	}
	if err := b.SetSortBy("lastName", "sideways"); err != nil {
		t.Fatal(err)
	}
	if got := b.Configuration().SortDirection; got != Asc {
		t.Errorf("invalid direction should default to asc, got %q", got)
	}
	if err := b.SetSortBy("", Asc); err != nil {
		t.Fatal(err)
	}
	if got := b.Configuration().SortBy; got != "" {
		t.Errorf("SortBy = %q, want cleared", got)
	}
}

func TestValidateConfiguration(t *testing.T) {
	registry := source.NewRegistry()
	def, err := registry.Get("participants")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cfg     Configuration
		wantErr error
	}{
		{
			name:    "No fields",
			cfg:     Configuration{DataSource: "participants"},
			wantErr: ErrEmptyFields,
		},
		{
			name:    "Unknown field",
			cfg:     Configuration{DataSource: "participants", Fields: []string{"ssn"}},
			wantErr: ErrInvalidField,
		},
		{
			name:    "Duplicate field",
			cfg:     Configuration{DataSource: "participants", Fields: []string{"lastName", "lastName"}},
			wantErr: ErrDuplicateField,
		},
		{
			name: "Unknown filter",
			cfg: Configuration{
				DataSource: "participants",
				Fields:     []string{"lastName"},
				Filters:    map[string]any{"age": 21},
			},
			wantErr: ErrInvalidFilter,
		},
		{
			name: "Unknown grouping",
			cfg: Configuration{
				DataSource: "participants",
				Fields:     []string{"lastName"},
				GroupBy:    "age",
			},
			wantErr: ErrInvalidGrouping,
		},
		{
			name: "Sort outside selection",
			cfg: Configuration{
				DataSource: "participants",
				Fields:     []string{"lastName"},
				SortBy:     "firstName",
			},
			wantErr: ErrInvalidSort,
		},
		{
			name: "Valid",
			cfg: Configuration{
				DataSource: "participants",
				Fields:     []string{"lastName", "diocese"},
				Filters:    map[string]any{"diocese": []string{"Austin"}},
				GroupBy:    "diocese",
				SortBy:     "lastName",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfiguration(tt.cfg, def)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateConfiguration() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateConfiguration() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
