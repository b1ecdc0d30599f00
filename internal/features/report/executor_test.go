package report

import (
	"context"
	"errors"
	"testing"
	"time"

	common_models "go-events/internal/common/models"
	"go-events/internal/features/source"

	"go.uber.org/zap"
)

type stubRows struct {
	rows     []Row
	err      error
	gotPaths []string
}

func (s *stubRows) FetchRows(ctx context.Context, scope common_models.Scope, sourceKey string, paths []string) ([]Row, error) {
	s.gotPaths = paths
	return s.rows, s.err
}

var testScope = common_models.Scope{TenantID: "t1", EventID: "e1", UserID: "u1"}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Five participants: two with allergies set, one with an empty allergy
// string, two with no liability form at all.
func participantRows() []Row {
	return []Row{
		{
			"firstName": "Anna", "lastName": "Abbott",
			"participantType": "youth", "diocese": "Austin",
			"liabilityForm": map[string]any{"allergies": "peanuts"},
			"registeredAt":  date(2026, 5, 1),
		},
		{
			"firstName": "ben", "lastName": "baker",
			"participantType": "chaperone", "diocese": "Dallas",
			"liabilityForm": map[string]any{"allergies": ""},
			"registeredAt":  date(2026, 5, 10),
		},
		{
			"firstName": "Cara", "lastName": "Carson",
			"participantType": "youth", "diocese": "Austin",
			"liabilityForm": map[string]any{"allergies": "dairy"},
			"registeredAt":  date(2026, 6, 1),
		},
		{
			"firstName": "Dan", "lastName": "Dawson",
			"participantType": "volunteer",
			"registeredAt":    date(2026, 6, 15),
		},
		{
			"firstName": "Eve", "lastName": "Ellison",
			"participantType": "youth", "diocese": "Dallas",
			"registeredAt":    date(2026, 7, 1),
		},
	}
}

func newTestExecutor(rows []Row) *Executor {
	return NewExecutor(source.NewRegistry(), &stubRows{rows: rows}, zap.NewNop())
}

func lastNames(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		v, _ := lookupPath(r, "lastName")
		s, _ := v.(string)
		out = append(out, s)
	}
	return out
}

func TestExecutorFilters(t *testing.T) {
	exec := newTestExecutor(participantRows())

	tests := []struct {
		name    string
		filters map[string]any
		want    []string
	}{
		{
			name:    "No filters",
			filters: nil,
			want:    []string{"Abbott", "baker", "Carson", "Dawson", "Ellison"},
		},
		{
			name:    "Select all sentinel",
			filters: map[string]any{"participantType": "all"},
			want:    []string{"Abbott", "baker", "Carson", "Dawson", "Ellison"},
		},
		{
			name:    "Select one type",
			filters: map[string]any{"participantType": "youth"},
			want:    []string{"Abbott", "Carson", "Ellison"},
		},
		{
			name:    "Select is case-insensitive",
			filters: map[string]any{"participantType": "YOUTH"},
			want:    []string{"Abbott", "Carson", "Ellison"},
		},
		{
			name:    "Multiselect",
			filters: map[string]any{"diocese": []any{"austin"}},
			want:    []string{"Abbott", "Carson"},
		},
		{
			name:    "Multiselect empty means unconstrained",
			filters: map[string]any{"diocese": []any{}},
			want:    []string{"Abbott", "baker", "Carson", "Dawson", "Ellison"},
		},
		{
			name:    "Text contains",
			filters: map[string]any{"lastName": "SON"},
			want:    []string{"Carson", "Dawson", "Ellison"},
		},
		{
			name:    "Boolean true counts only non-empty values",
			filters: map[string]any{"hasMedicalNeeds": true},
			want:    []string{"Abbott", "Carson"},
		},
		{
			name:    "Boolean false includes empty and missing",
			filters: map[string]any{"hasMedicalNeeds": false},
			want:    []string{"baker", "Dawson", "Ellison"},
		},
		{
			name: "Date range is inclusive",
			filters: map[string]any{"registeredBetween": map[string]any{
				"start": "2026-05-10", "end": "2026-06-15",
			}},
			want: []string{"baker", "Carson", "Dawson"},
		},
		{
			name: "Open-ended date range",
			filters: map[string]any{"registeredBetween": map[string]any{
				"start": "2026-06-01",
			}},
			want: []string{"Carson", "Dawson", "Ellison"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Configuration{
				DataSource: "participants",
				Fields:     []string{"lastName"},
				Filters:    tt.filters,
				SortBy:     "lastName",
			}
			res, err := exec.Run(context.Background(), testScope, cfg)
			if err != nil {
				t.Fatal(err)
			}
			got := lastNames(res.Rows)
			if len(got) != len(tt.want) {
				t.Fatalf("rows = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("rows = %v, want %v", got, tt.want)
				}
			}
			if res.TotalCount != len(tt.want) {
				t.Errorf("TotalCount = %d, want %d", res.TotalCount, len(tt.want))
			}
		})
	}
}

func TestExecutorProjectionNeverLeaks(t *testing.T) {
	exec := newTestExecutor(participantRows())

	cfg := Configuration{
		DataSource: "participants",
		Fields:     []string{"lastName", "diocese"},
		Filters:    map[string]any{"hasMedicalNeeds": true},
	}
	res, err := exec.Run(context.Background(), testScope, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for _, row := range res.Rows {
		if _, ok := row["liabilityForm"]; ok {
			t.Errorf("row %v leaked the filter path", row)
		}
		if _, ok := row["firstName"]; ok {
			t.Errorf("row %v carries an unselected field", row)
		}
		if _, ok := row["lastName"]; !ok {
			t.Errorf("row %v is missing a selected field", row)
		}
	}
}

func TestExecutorComputedFields(t *testing.T) {
	exec := newTestExecutor(participantRows())

	cfg := Configuration{
		DataSource: "participants",
		Fields:     []string{"fullName"},
		SortBy:     "fullName",
	}
	res, err := exec.Run(context.Background(), testScope, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rows) != 5 {
		t.Fatalf("got %d rows", len(res.Rows))
	}
	if v, _ := lookupPath(res.Rows[0], "fullName"); v != "Anna Abbott" {
		t.Errorf("fullName = %v, want Anna Abbott", v)
	}

	finExec := newTestExecutor([]Row{
		{"invoiceNumber": "INV-1", "amountDue": 600.0, "amountPaid": 200.0},
	})
	finCfg := Configuration{
		DataSource: "financial",
		Fields:     []string{"invoiceNumber", "balance"},
	}
	finRes, err := finExec.Run(context.Background(), testScope, finCfg)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := lookupPath(finRes.Rows[0], "balance"); v != 400.0 {
		t.Errorf("balance = %v, want 400", v)
	}
}

func TestExecutorComputedFieldDisablesProjection(t *testing.T) {
	stub := &stubRows{rows: participantRows()}
	exec := NewExecutor(source.NewRegistry(), stub, zap.NewNop())

	cfg := Configuration{DataSource: "participants", Fields: []string{"lastName"}}
	if _, err := exec.Run(context.Background(), testScope, cfg); err != nil {
		t.Fatal(err)
	}
	if len(stub.gotPaths) == 0 {
		t.Error("plain fields should request a projection")
	}

	cfg.Fields = []string{"lastName", "fullName"}
	if _, err := exec.Run(context.Background(), testScope, cfg); err != nil {
		t.Fatal(err)
	}
	if stub.gotPaths != nil {
		t.Errorf("computed field should request full rows, got projection %v", stub.gotPaths)
	}
}

func TestExecutorGrouping(t *testing.T) {
	exec := newTestExecutor(participantRows())

	cfg := Configuration{
		DataSource: "participants",
		Fields:     []string{"lastName"},
		GroupBy:    "diocese",
		SortBy:     "lastName",
	}
	res, err := exec.Run(context.Background(), testScope, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Grouped {
		t.Fatal("result should be grouped")
	}

	wantKeys := []string{"Austin", "Dallas", "N/A"}
	if len(res.Groups) != len(wantKeys) {
		t.Fatalf("got %d groups, want %d", len(res.Groups), len(wantKeys))
	}
	for i, g := range res.Groups {
		if g.GroupKey != wantKeys[i] {
			t.Errorf("group %d key = %q, want %q", i, g.GroupKey, wantKeys[i])
		}
	}
	if got := lastNames(res.Groups[0].Items); got[0] != "Abbott" || got[1] != "Carson" {
		t.Errorf("Austin group = %v", got)
	}
	if res.TotalCount != 5 {
		t.Errorf("TotalCount = %d, want 5", res.TotalCount)
	}
}

func TestExecutorGroupNoneIsFlat(t *testing.T) {
	exec := newTestExecutor(participantRows())

	cfg := Configuration{
		DataSource: "participants",
		Fields:     []string{"lastName"},
		GroupBy:    source.GroupNone,
	}
	res, err := exec.Run(context.Background(), testScope, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Grouped || res.Groups != nil {
		t.Error("group 'none' must produce a flat result")
	}
	if len(res.Rows) != 5 {
		t.Errorf("got %d rows", len(res.Rows))
	}
}

func TestExecutorSort(t *testing.T) {
	tests := []struct {
		name string
		cfg  Configuration
		rows []Row
		want []string
		path string
	}{
		{
			name: "String case-insensitive asc",
			cfg: Configuration{
				DataSource: "participants",
				Fields:     []string{"lastName"},
				SortBy:     "lastName", SortDirection: Asc,
			},
			rows: participantRows(),
			path: "lastName",
			want: []string{"Abbott", "baker", "Carson", "Dawson", "Ellison"},
		},
		{
			name: "String desc",
			cfg: Configuration{
				DataSource: "participants",
				Fields:     []string{"lastName"},
				SortBy:     "lastName", SortDirection: Desc,
			},
			rows: participantRows(),
			path: "lastName",
			want: []string{"Ellison", "Dawson", "Carson", "baker", "Abbott"},
		},
		{
			name: "Missing sort key goes last even desc",
			cfg: Configuration{
				DataSource: "participants",
				Fields:     []string{"lastName", "diocese"},
				SortBy:     "diocese", SortDirection: Desc,
			},
			rows: participantRows(),
			path: "lastName",
			want: []string{"baker", "Ellison", "Abbott", "Carson", "Dawson"},
		},
		{
			name: "Numbers sort numerically",
			cfg: Configuration{
				DataSource: "financial",
				Fields:     []string{"invoiceNumber", "amountDue"},
				SortBy:     "amountDue", SortDirection: Asc,
			},
			rows: []Row{
				{"invoiceNumber": "A", "amountDue": 100.0},
				{"invoiceNumber": "B", "amountDue": 20.0},
				{"invoiceNumber": "C", "amountDue": 3.0},
			},
			path: "invoiceNumber",
			want: []string{"C", "B", "A"},
		},
		{
			name: "Dates sort chronologically",
			cfg: Configuration{
				DataSource: "participants",
				Fields:     []string{"lastName", "registeredAt"},
				SortBy:     "registeredAt", SortDirection: Desc,
			},
			rows: participantRows(),
			path: "lastName",
			want: []string{"Ellison", "Dawson", "Carson", "baker", "Abbott"},
		},
		{
			name: "Booleans sort false before true",
			cfg: Configuration{
				DataSource: "participants",
				Fields:     []string{"lastName", "checkIn.checkedIn"},
				SortBy:     "checkIn.checkedIn", SortDirection: Asc,
			},
			rows: []Row{
				{"lastName": "A", "checkIn": map[string]any{"checkedIn": true}},
				{"lastName": "B", "checkIn": map[string]any{"checkedIn": false}},
				{"lastName": "C", "checkIn": map[string]any{"checkedIn": true}},
			},
			path: "lastName",
			want: []string{"B", "A", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := newTestExecutor(tt.rows)
			res, err := exec.Run(context.Background(), testScope, tt.cfg)
			if err != nil {
				t.Fatal(err)
			}
			for i, row := range res.Rows {
				v, _ := lookupPath(row, tt.path)
				if v != tt.want[i] {
					t.Fatalf("order = %v, want %v", lastNames(res.Rows), tt.want)
				}
			}
		})
	}
}

// Three of five participants have non-empty allergies; a medical-needs report
// must return exactly those three, sorted, carrying only the requested fields.
func TestMedicalNeedsReportScenario(t *testing.T) {
	rows := []Row{
		{"firstName": "Anna", "lastName": "Abbott", "participantType": "youth",
			"diocese":       "Austin",
			"liabilityForm": map[string]any{"allergies": "peanuts"}},
		{"firstName": "Ben", "lastName": "Baker", "participantType": "chaperone",
			"diocese":       "Dallas",
			"liabilityForm": map[string]any{"allergies": ""}},
		{"firstName": "Cara", "lastName": "Carson", "participantType": "youth",
			"diocese":       "Austin",
			"liabilityForm": map[string]any{"allergies": "dairy"}},
		{"firstName": "Dan", "lastName": "Dawson", "participantType": "volunteer",
			"liabilityForm": map[string]any{"allergies": "bee stings"}},
		{"firstName": "Eve", "lastName": "Ellison", "participantType": "youth",
			"diocese": "Dallas"},
	}
	exec := newTestExecutor(rows)

	cfg := Configuration{
		DataSource:    "participants",
		Fields:        []string{"firstName", "lastName", "liabilityForm.allergies"},
		Filters:       map[string]any{"hasMedicalNeeds": true},
		GroupBy:       source.GroupNone,
		SortBy:        "lastName",
		SortDirection: Asc,
	}

	res, err := exec.Run(context.Background(), testScope, cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Abbott", "Carson", "Dawson"}
	got := lastNames(res.Rows)
	if len(got) != 3 {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rows = %v, want %v", got, want)
		}
	}
	for _, row := range res.Rows {
		if len(row) != 3 {
			t.Errorf("row %v must expose exactly the 3 requested top-level keys", row)
		}
		if _, ok := lookupPath(row, "liabilityForm.allergies"); !ok {
			t.Errorf("row %v is missing the allergies path", row)
		}
		if _, ok := row["participantType"]; ok {
			t.Errorf("row %v carries an unselected field", row)
		}
	}

	// The same configuration grouped by participant type partitions the 3 rows.
	cfg.GroupBy = "participantType"
	grouped, err := exec.Run(context.Background(), testScope, cfg)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	seen := map[string]bool{}
	for _, g := range grouped.Groups {
		if seen[g.GroupKey] {
			t.Errorf("duplicate group %q", g.GroupKey)
		}
		seen[g.GroupKey] = true
		total += len(g.Items)
	}
	if total != 3 {
		t.Errorf("group sizes sum to %d, want 3", total)
	}
	if !seen["youth"] || !seen["volunteer"] {
		t.Errorf("groups = %v, want youth and volunteer", seen)
	}
}

func TestExecutorRejectsBadInput(t *testing.T) {
	exec := newTestExecutor(participantRows())
	ctx := context.Background()

	if _, err := exec.Run(ctx, testScope, Configuration{DataSource: "nope", Fields: []string{"x"}}); !errors.Is(err, source.ErrUnknownSource) {
		t.Errorf("unknown source: error = %v", err)
	}
	if _, err := exec.Run(ctx, testScope, Configuration{DataSource: "participants"}); !errors.Is(err, ErrEmptyFields) {
		t.Errorf("empty fields: error = %v", err)
	}

	badScope := common_models.Scope{TenantID: "t1"}
	cfg := Configuration{DataSource: "participants", Fields: []string{"lastName"}}
	if _, err := exec.Run(ctx, badScope, cfg); !errors.Is(err, common_models.ErrInvalidScope) {
		t.Errorf("incomplete scope: error = %v", err)
	}
}

func TestExecutorSurfacesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection reset")
	exec := NewExecutor(source.NewRegistry(), &stubRows{err: storeErr}, zap.NewNop())

	cfg := Configuration{DataSource: "participants", Fields: []string{"lastName"}}
	if _, err := exec.Run(context.Background(), testScope, cfg); !errors.Is(err, storeErr) {
		t.Errorf("store error = %v, want wrapped %v", err, storeErr)
	}
}
