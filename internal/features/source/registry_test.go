package source

import (
	"errors"
	"testing"
)

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "Participants", key: "participants"},
		{name: "Incidents", key: "incidents"},
		{name: "Financial", key: "financial"},
		{name: "Unknown", key: "volunteers", wantErr: true},
		{name: "Empty", key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := registry.Get(tt.key)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSource) {
					t.Errorf("Get(%q) error = %v, want ErrUnknownSource", tt.key, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.key, err)
			}
			if def.Key != tt.key {
				t.Errorf("Get(%q).Key = %q", tt.key, def.Key)
			}
			if len(def.Fields) == 0 {
				t.Errorf("Get(%q) has no fields", tt.key)
			}
		})
	}
}

func TestRegistryList(t *testing.T) {
	registry := NewRegistry()

	list := registry.List()
	if len(list) != 3 {
		t.Fatalf("List() returned %d sources, want 3", len(list))
	}
	for _, def := range list {
		if _, ok := def.Grouping(GroupNone); !ok {
			t.Errorf("source %q is missing the %q grouping", def.Key, GroupNone)
		}
	}
}

func TestDefinitionLookups(t *testing.T) {
	registry := NewRegistry()
	def, err := registry.Get("participants")
	if err != nil {
		t.Fatal(err)
	}

	if fd, ok := def.Field("liabilityForm.allergies"); !ok || fd.Label != "Allergies" {
		t.Errorf("Field(liabilityForm.allergies) = %+v, %v", fd, ok)
	}
	if _, ok := def.Field("liabilityForm"); ok {
		t.Error("partial path should not resolve to a field")
	}
	if fd, ok := def.Filter("hasMedicalNeeds"); !ok || fd.Kind != FilterBoolean {
		t.Errorf("Filter(hasMedicalNeeds) = %+v, %v", fd, ok)
	}
	if g, ok := def.Grouping("diocese"); !ok || g.Field != "diocese" {
		t.Errorf("Grouping(diocese) = %+v, %v", g, ok)
	}
}

func TestComputedFieldsCarryExpressions(t *testing.T) {
	registry := NewRegistry()

	checks := []struct {
		source string
		field  string
	}{
		{source: "participants", field: "fullName"},
		{source: "financial", field: "balance"},
	}
	for _, c := range checks {
		def, err := registry.Get(c.source)
		if err != nil {
			t.Fatal(err)
		}
		fd, ok := def.Field(c.field)
		if !ok {
			t.Fatalf("%s: missing field %q", c.source, c.field)
		}
		if fd.Expr == "" {
			t.Errorf("%s.%s: expected a computed expression", c.source, c.field)
		}
	}
}
