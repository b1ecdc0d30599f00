package report

import (
	"bytes"
	"html/template"
	"time"

	"go-events/internal/features/source"
	"go-events/pkg/utils"

	"github.com/xuri/excelize/v2"
)

// WriteExcel serializes the full result to a spreadsheet: bold header row
// using source labels, leading group column when grouped, same cell
// formatting as the preview.
func WriteExcel(res *Result, cfg Configuration, def *source.DataSourceDefinition, name string) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Report"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	var columns []string
	if res.Grouped {
		columns = append(columns, "Group")
	}
	for _, key := range cfg.Fields {
		fd, _ := def.Field(key)
		columns = append(columns, fd.Label)
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, fr := range res.Flatten() {
		colIdx := 0
		if res.Grouped {
			cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
			f.SetCellValue(sheetName, cell, fr.GroupKey)
			colIdx = 1
		}
		for _, key := range cfg.Fields {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			v, ok := lookupPath(fr.Row, key)
			switch val := v.(type) {
			case time.Time:
				f.SetCellValue(sheetName, cell, val.Format("2006-01-02 15:04:05"))
			case float64, int, int32, int64, bool:
				if ok {
					f.SetCellValue(sheetName, cell, val)
				}
			default:
				f.SetCellValue(sheetName, cell, formatCell(v, ok, ""))
			}
			colIdx++
		}
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 15)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buffer.Bytes(), utils.Slugify(name) + "-report.xlsx", nil
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h1 { margin-bottom: 0; }
.subtitle { color: #555; margin-top: 0.25em; }
h2 { margin-top: 1.5em; }
table { border-collapse: collapse; width: 100%; margin-top: 0.5em; }
th, td { border: 1px solid #999; padding: 4px 8px; text-align: left; }
th { background: #eee; }
section { page-break-inside: avoid; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="subtitle">{{.EventName}} &mdash; generated {{.GeneratedAt}}</p>
{{range .Sections}}<section>
{{if .Heading}}<h2>{{.Heading}}</h2>{{end}}
<table>
<tr>{{range $.Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</section>
{{end}}</body>
</html>
`))

type printSection struct {
	Heading string
	Rows    [][]string
}

// WritePrint renders a self-contained printable document: one table per
// group when grouped, a single table otherwise. No row cap.
func WritePrint(res *Result, cfg Configuration, def *source.DataSourceDefinition, title, eventName string) ([]byte, error) {
	columns := make([]string, 0, len(cfg.Fields))
	for _, key := range cfg.Fields {
		fd, _ := def.Field(key)
		columns = append(columns, fd.Label)
	}

	renderRows := func(rows []Row) [][]string {
		out := make([][]string, 0, len(rows))
		for _, row := range rows {
			cells := make([]string, 0, len(cfg.Fields))
			for _, key := range cfg.Fields {
				v, ok := lookupPath(row, key)
				cells = append(cells, formatCell(v, ok, "-"))
			}
			out = append(out, cells)
		}
		return out
	}

	var sections []printSection
	if res.Grouped {
		for _, g := range res.Groups {
			sections = append(sections, printSection{Heading: g.GroupKey, Rows: renderRows(g.Items)})
		}
	} else {
		sections = append(sections, printSection{Rows: renderRows(res.Rows)})
	}

	var buf bytes.Buffer
	err := printTemplate.Execute(&buf, struct {
		Title       string
		EventName   string
		GeneratedAt string
		Columns     []string
		Sections    []printSection
	}{
		Title:       title,
		EventName:   eventName,
		GeneratedAt: res.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		Columns:     columns,
		Sections:    sections,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
