package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	common_models "go-events/internal/common/models"
	"go-events/internal/features/source"

	"go.uber.org/zap"
)

// RowSource supplies the rows a report runs over. The implementation owns
// the tenant/event boundary: it must reject, not silently narrow, a query
// whose scope is incomplete. An empty paths slice means "full rows".
type RowSource interface {
	FetchRows(ctx context.Context, scope common_models.Scope, sourceKey string, paths []string) ([]Row, error)
}

// Executor turns a valid configuration into a result: scope-bounded fetch,
// filter predicates, grouping partition, typed sort, projection to the
// selected field paths.
type Executor struct {
	registry *source.Registry
	rows     RowSource
	log      *zap.Logger
}

func NewExecutor(registry *source.Registry, rows RowSource, log *zap.Logger) *Executor {
	return &Executor{registry: registry, rows: rows, log: log}
}

func (e *Executor) Run(ctx context.Context, scope common_models.Scope, cfg Configuration) (*Result, error) {
	def, err := e.registry.Get(cfg.DataSource)
	if err != nil {
		return nil, err
	}
	if err := ValidateConfiguration(cfg, def); err != nil {
		return nil, err
	}
	if !scope.Valid() {
		return nil, common_models.ErrInvalidScope
	}

	raw, err := e.rows.FetchRows(ctx, scope, cfg.DataSource, requiredPaths(cfg, def))
	if err != nil {
		// Store failures are surfaced verbatim; never retried here.
		return nil, fmt.Errorf("fetch %s rows: %w", cfg.DataSource, err)
	}

	var filtered []Row
	for _, row := range raw {
		if matchesFilters(row, cfg, def) {
			filtered = append(filtered, row)
		}
	}

	result := &Result{
		TotalCount:  len(filtered),
		GeneratedAt: time.Now().UTC(),
	}

	grouping, grouped := activeGrouping(cfg, def)
	if grouped {
		result.Grouped = true
		result.Groups = e.buildGroups(ctx, filtered, grouping.Field, cfg, def)
		for i := range result.Groups {
			sortRows(result.Groups[i].Items, cfg.SortBy, cfg.SortDirection)
		}
	} else {
		rows := make([]Row, 0, len(filtered))
		for _, row := range filtered {
			rows = append(rows, e.projectRow(ctx, row, cfg, def))
		}
		sortRows(rows, cfg.SortBy, cfg.SortDirection)
		result.Rows = rows
	}

	e.log.Debug("report executed",
		zap.String("source", cfg.DataSource),
		zap.String("tenant", scope.TenantID),
		zap.Int("rows", result.TotalCount),
	)
	return result, nil
}

// requiredPaths is the projection handed to the store: the selected fields
// plus the paths filters and grouping touch even when not displayed. A
// computed field needs the whole row, which disables projection.
func requiredPaths(cfg Configuration, def *source.DataSourceDefinition) []string {
	paths := make([]string, 0, len(cfg.Fields)+len(cfg.Filters)+1)
	seen := map[string]bool{}
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, key := range cfg.Fields {
		fd, _ := def.Field(key)
		if fd.Expr != "" {
			return nil
		}
		add(key)
	}
	for key := range cfg.Filters {
		if fd, ok := def.Filter(key); ok {
			add(fd.Field)
		}
	}
	if g, ok := activeGrouping(cfg, def); ok {
		add(g.Field)
	}
	return paths
}

func activeGrouping(cfg Configuration, def *source.DataSourceDefinition) (source.Grouping, bool) {
	if cfg.GroupBy == "" || cfg.GroupBy == source.GroupNone {
		return source.Grouping{}, false
	}
	g, ok := def.Grouping(cfg.GroupBy)
	if !ok || g.Field == "" {
		return source.Grouping{}, false
	}
	return g, true
}

// buildGroups partitions the filtered rows by the grouping path. Groups are
// ordered case-insensitively by key so repeated runs over unchanged data are
// byte-stable.
func (e *Executor) buildGroups(ctx context.Context, rows []Row, path string, cfg Configuration, def *source.DataSourceDefinition) []Group {
	buckets := map[string][]Row{}
	var keys []string
	for _, row := range rows {
		key := "N/A"
		if v, ok := lookupPath(row, path); ok && v != nil {
			key = scalarString(v)
		}
		if _, exists := buckets[key]; !exists {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], e.projectRow(ctx, row, cfg, def))
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := strings.ToLower(keys[i]), strings.ToLower(keys[j])
		if a == b {
			return keys[i] < keys[j]
		}
		return a < b
	})

	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, Group{GroupKey: key, Items: buckets[key]})
	}
	return groups
}

// projectRow copies exactly the selected field paths onto a fresh row, so
// unselected data (medical fields and the like) never leaks into a result.
func (e *Executor) projectRow(ctx context.Context, row Row, cfg Configuration, def *source.DataSourceDefinition) Row {
	out := Row{}
	for _, key := range cfg.Fields {
		fd, _ := def.Field(key)
		if fd.Expr != "" {
			if v, ok := source.Evaluate(ctx, fd.Expr, row); ok {
				setPath(out, key, v)
			}
			continue
		}
		if v, ok := lookupPath(row, key); ok {
			setPath(out, key, v)
		}
	}
	return out
}

func matchesFilters(row Row, cfg Configuration, def *source.DataSourceDefinition) bool {
	for key, value := range cfg.Filters {
		fd, ok := def.Filter(key)
		if !ok {
			continue
		}
		if !matchFilter(row, fd, value) {
			return false
		}
	}
	return true
}

func matchFilter(row Row, fd source.FilterDefinition, value any) bool {
	cell, found := lookupPath(row, fd.Field)

	switch fd.Kind {
	case source.FilterSelect:
		want, _ := value.(string)
		if want == "" || want == source.SelectAll {
			return true
		}
		return found && strings.EqualFold(scalarString(cell), want)

	case source.FilterMultiSelect:
		wanted := stringSlice(value)
		if len(wanted) == 0 {
			return true
		}
		if !found {
			return false
		}
		have := scalarString(cell)
		for _, w := range wanted {
			if strings.EqualFold(have, w) {
				return true
			}
		}
		return false

	case source.FilterText:
		want := strings.TrimSpace(scalarString(value))
		if want == "" {
			return true
		}
		if !found {
			return false
		}
		have := scalarString(cell)
		if fd.MatchMode == source.MatchExact {
			return strings.EqualFold(have, want)
		}
		return strings.Contains(strings.ToLower(have), strings.ToLower(want))

	case source.FilterBoolean:
		want, ok := value.(bool)
		if !ok {
			return true
		}
		return truthy(cell, found) == want

	case source.FilterDateRange:
		start, end, ok := dateRangeBounds(value)
		if !ok {
			return true
		}
		t, tok := toTime(cell)
		if !found || !tok {
			return false
		}
		if start != nil && t.Before(*start) {
			return false
		}
		if end != nil && t.After(*end) {
			return false
		}
		return true
	}
	return true
}

// truthy implements boolean-filter semantics: true booleans, non-empty
// strings, non-zero numbers and non-empty collections count as set.
func truthy(v any, found bool) bool {
	if !found || v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.TrimSpace(val) != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	case time.Time:
		return !val.IsZero()
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	return true
}

func stringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := scalarString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

func dateRangeBounds(value any) (start, end *time.Time, ok bool) {
	switch v := value.(type) {
	case DateRange:
		return v.Start, v.End, v.Start != nil || v.End != nil
	case map[string]any:
		if t, tok := toTime(v["start"]); tok {
			start = &t
		}
		if t, tok := toTime(v["end"]); tok {
			end = &t
		}
		return start, end, start != nil || end != nil
	}
	return nil, nil, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse("2006-01-02", t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case time.Time:
		return s.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprintf("%v", v)
}

// sortRows orders rows in place by the named field: strings
// case-insensitive, numbers numeric, dates chronological, booleans
// false-before-true. Rows missing the sort key sort last. Stable, so ties
// keep the store's natural order.
func sortRows(rows []Row, path string, dir Direction) {
	if path == "" {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		av, aok := lookupPath(rows[i], path)
		bv, bok := lookupPath(rows[j], path)
		aMissing := !aok || av == nil
		bMissing := !bok || bv == nil
		if aMissing || bMissing {
			// Missing sorts last in either direction.
			return !aMissing && bMissing
		}
		cmp := compareCells(av, bv)
		if dir == Desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareCells(av, bv any) int {
	if af, ok := toFloat(av); ok {
		if bf, ok := toFloat(bv); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	if at, ok := toTime(av); ok {
		if bt, ok := toTime(bv); ok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			}
			return 0
		}
	}
	if ab, ok := av.(bool); ok {
		if bb, ok := bv.(bool); ok {
			switch {
			case !ab && bb:
				return -1
			case ab && !bb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(strings.ToLower(scalarString(av)), strings.ToLower(scalarString(bv)))
}
