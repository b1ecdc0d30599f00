package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"go-events/internal/features/source"
)

func participantsDef(t *testing.T) *source.DataSourceDefinition {
	t.Helper()
	def, err := source.NewRegistry().Get("participants")
	if err != nil {
		t.Fatal(err)
	}
	return def
}

func TestBuildPreviewFlat(t *testing.T) {
	def := participantsDef(t)
	cfg := Configuration{DataSource: "participants", Fields: []string{"lastName", "checkIn.checkedIn"}}

	res := &Result{
		Rows: []Row{
			{"lastName": "Abbott", "checkIn": map[string]any{"checkedIn": true}},
			{"lastName": "baker"},
		},
		TotalCount: 2,
	}

	p := BuildPreview(res, cfg, def)

	wantCols := []string{"Last Name", "Checked In"}
	if len(p.Columns) != len(wantCols) || p.Columns[0] != wantCols[0] || p.Columns[1] != wantCols[1] {
		t.Errorf("Columns = %v, want %v", p.Columns, wantCols)
	}
	if p.Rows[0][1] != "Yes" {
		t.Errorf("boolean cell = %q, want Yes", p.Rows[0][1])
	}
	if p.Rows[1][1] != "-" {
		t.Errorf("missing cell = %q, want -", p.Rows[1][1])
	}
	if p.Truncated {
		t.Error("small result should not be truncated")
	}
}

func TestBuildPreviewGroupedAndTruncated(t *testing.T) {
	def := participantsDef(t)
	cfg := Configuration{DataSource: "participants", Fields: []string{"lastName"}, GroupBy: "diocese"}

	var items []Row
	for i := 0; i < PreviewLimit+50; i++ {
		items = append(items, Row{"lastName": fmt.Sprintf("p%03d", i)})
	}
	res := &Result{
		Grouped:    true,
		Groups:     []Group{{GroupKey: "Austin", Items: items}},
		TotalCount: len(items),
	}

	p := BuildPreview(res, cfg, def)

	if p.Columns[0] != "Group" {
		t.Errorf("first column = %q, want Group", p.Columns[0])
	}
	if len(p.Rows) != PreviewLimit {
		t.Errorf("preview has %d rows, want %d", len(p.Rows), PreviewLimit)
	}
	if !p.Truncated {
		t.Error("oversized result should be marked truncated")
	}
	if p.TotalCount != PreviewLimit+50 {
		t.Errorf("TotalCount = %d, want full count", p.TotalCount)
	}
	if p.Rows[0][0] != "Austin" {
		t.Errorf("group cell = %q", p.Rows[0][0])
	}
}

func TestWriteCSV(t *testing.T) {
	cfg := Configuration{DataSource: "participants", Fields: []string{"lastName", "liabilityForm.allergies"}}

	res := &Result{
		Grouped: true,
		Groups: []Group{
			{GroupKey: "Austin", Items: []Row{
				{"lastName": `Abbott, "Anna"`, "liabilityForm": map[string]any{"allergies": "peanuts"}},
			}},
			{GroupKey: "N/A", Items: []Row{
				{"lastName": "Dawson"},
			}},
		},
		TotalCount: 2,
	}

	data, err := WriteCSV(res, cfg)
	if err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	wantHeader := []string{"group", "lastName", "liabilityForm.allergies"}
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Errorf("header = %v, want %v", records[0], wantHeader)
		}
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	// Quoting survives a round-trip through a standards CSV reader.
	if records[1][1] != `Abbott, "Anna"` {
		t.Errorf("quoted cell = %q", records[1][1])
	}
	if records[2][2] != "" {
		t.Errorf("missing cell = %q, want empty", records[2][2])
	}
}

func TestWriteCSVFlatHasNoGroupColumn(t *testing.T) {
	cfg := Configuration{DataSource: "participants", Fields: []string{"lastName"}}
	res := &Result{Rows: []Row{{"lastName": "Abbott"}}, TotalCount: 1}

	data, err := WriteCSV(res, cfg)
	if err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records[0]) != 1 || records[0][0] != "lastName" {
		t.Errorf("header = %v", records[0])
	}
}

func TestCSVFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Simple", in: "participants", want: "participants-report.csv"},
		{name: "Spaces and case", in: "My Check-In List", want: "my-check-in-list-report.csv"},
		{name: "Punctuation", in: "Balance (Q3)!", want: "balance-q3-report.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CSVFilename(tt.in); got != tt.want {
				t.Errorf("CSVFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatCell(t *testing.T) {
	when := time.Date(2026, 7, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		v     any
		found bool
		want  string
	}{
		{name: "Missing", v: nil, found: false, want: "-"},
		{name: "Null", v: nil, found: true, want: "-"},
		{name: "String", v: "Austin", found: true, want: "Austin"},
		{name: "True", v: true, found: true, want: "Yes"},
		{name: "False", v: false, found: true, want: "No"},
		{name: "Time", v: when, found: true, want: "2026-07-10 09:30:00"},
		{name: "Float", v: 12.5, found: true, want: "12.5"},
		{name: "Int", v: int64(42), found: true, want: "42"},
		{name: "Slice", v: []any{"a", "b"}, found: true, want: "a; b"},
		{name: "Map", v: map[string]any{"b": "2", "a": "1"}, found: true, want: "a: 1; b: 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCell(tt.v, tt.found, "-"); got != tt.want {
				t.Errorf("formatCell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWritePrint(t *testing.T) {
	def := participantsDef(t)
	cfg := Configuration{DataSource: "participants", Fields: []string{"lastName"}}
	res := &Result{
		Grouped: true,
		Groups: []Group{
			{GroupKey: "Austin", Items: []Row{{"lastName": "Abbott"}}},
		},
		TotalCount:  1,
		GeneratedAt: time.Date(2026, 7, 10, 9, 30, 0, 0, time.UTC),
	}

	data, err := WritePrint(res, cfg, def, "Check-In List", "Summer Camp 2026")
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)

	for _, want := range []string{"<html", "Check-In List", "Summer Camp 2026", "Austin", "Abbott", "Last Name"} {
		if !strings.Contains(html, want) {
			t.Errorf("print output missing %q", want)
		}
	}
}
