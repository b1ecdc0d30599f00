package report

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"
	"time"

	"go-events/internal/features/source"
	"go-events/pkg/utils"
)

// PreviewLimit caps the on-screen preview; exports are never truncated.
const PreviewLimit = 100

// Preview is the tabular on-screen rendering of a result.
type Preview struct {
	Columns    []string   `json:"columns"`
	Rows       [][]string `json:"rows"`
	Grouped    bool       `json:"grouped"`
	Truncated  bool       `json:"truncated"`
	TotalCount int        `json:"total_count"`
}

// BuildPreview renders up to PreviewLimit rows. Grouped results are
// flattened group by group with a leading group column; headers use the
// source labels in the configured field order.
func BuildPreview(res *Result, cfg Configuration, def *source.DataSourceDefinition) *Preview {
	p := &Preview{
		Grouped:    res.Grouped,
		TotalCount: res.TotalCount,
	}

	if res.Grouped {
		p.Columns = append(p.Columns, "Group")
	}
	for _, key := range cfg.Fields {
		fd, _ := def.Field(key)
		p.Columns = append(p.Columns, fd.Label)
	}

	flat := res.Flatten()
	if len(flat) > PreviewLimit {
		flat = flat[:PreviewLimit]
		p.Truncated = true
	}

	for _, fr := range flat {
		row := make([]string, 0, len(p.Columns))
		if res.Grouped {
			row = append(row, fr.GroupKey)
		}
		for _, key := range cfg.Fields {
			v, ok := lookupPath(fr.Row, key)
			row = append(row, formatCell(v, ok, "-"))
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}

// WriteCSV serializes the full result. The header row carries raw field keys
// (flattened dot-paths); grouped results get an extra leading group column.
// Quoting is RFC4180 via encoding/csv.
func WriteCSV(res *Result, cfg Configuration) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := make([]string, 0, len(cfg.Fields)+1)
	if res.Grouped {
		header = append(header, "group")
	}
	header = append(header, cfg.Fields...)
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, fr := range res.Flatten() {
		row := make([]string, 0, len(header))
		if res.Grouped {
			row = append(row, fr.GroupKey)
		}
		for _, key := range cfg.Fields {
			v, ok := lookupPath(fr.Row, key)
			row = append(row, formatCell(v, ok, ""))
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVFilename follows the <template-name-or-source>-report.csv pattern.
func CSVFilename(name string) string {
	return utils.Slugify(name) + "-report.csv"
}

// formatCell renders one value for tabular output. Missing and null both
// collapse to the placeholder; nested values flatten to readable joins.
func formatCell(v any, found bool, missing string) string {
	if !found || v == nil {
		return missing
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatCell(item, true, missing))
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+formatCell(val[k], true, missing))
		}
		return strings.Join(parts, "; ")
	}
	return scalarString(v)
}
