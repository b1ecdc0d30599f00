package report

import (
	"context"
	"fmt"

	common_models "go-events/internal/common/models"
	"go-events/internal/features/source"
)

// ExportFormat selects the export artifact.
type ExportFormat string

const (
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "xlsx"
	FormatPrint ExportFormat = "print"
)

// Export is a rendered artifact ready to hand to the client.
type Export struct {
	Data        []byte
	Filename    string
	ContentType string
	RowCount    int
}

type ReportService interface {
	// Run executes a configuration for the caller's open builder. If a newer
	// run for the same builder is issued while this one is in flight, the
	// stale result is rejected with ErrSuperseded instead of being returned.
	Run(ctx context.Context, scope common_models.Scope, cfg Configuration) (*Result, error)
	Preview(ctx context.Context, scope common_models.Scope, cfg Configuration) (*Preview, error)
	Export(ctx context.Context, scope common_models.Scope, cfg Configuration, format ExportFormat, name, eventName string) (*Export, error)
}

type ReportServiceImpl struct {
	Registry *source.Registry
	Executor *Executor
	seqs     *sequencerSet
}

func NewReportService(registry *source.Registry, executor *Executor) ReportService {
	return &ReportServiceImpl{
		Registry: registry,
		Executor: executor,
		seqs:     newSequencerSet(),
	}
}

func (s *ReportServiceImpl) Run(ctx context.Context, scope common_models.Scope, cfg Configuration) (*Result, error) {
	seq := s.seqs.get(scope.Key())
	token := seq.Next()

	result, err := s.Executor.Run(ctx, scope, cfg)
	if err != nil {
		return nil, err
	}
	if seq.Stale(token) {
		return nil, ErrSuperseded
	}
	return result, nil
}

func (s *ReportServiceImpl) Preview(ctx context.Context, scope common_models.Scope, cfg Configuration) (*Preview, error) {
	result, err := s.Run(ctx, scope, cfg)
	if err != nil {
		return nil, err
	}
	def, err := s.Registry.Get(cfg.DataSource)
	if err != nil {
		return nil, err
	}
	return BuildPreview(result, cfg, def), nil
}

// Export runs the configuration and renders the requested artifact. Exports
// bypass the supersede guard: a download is explicit and never raced against
// a preview refresh.
func (s *ReportServiceImpl) Export(ctx context.Context, scope common_models.Scope, cfg Configuration, format ExportFormat, name, eventName string) (*Export, error) {
	result, err := s.Executor.Run(ctx, scope, cfg)
	if err != nil {
		return nil, err
	}
	def, err := s.Registry.Get(cfg.DataSource)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = cfg.DataSource
	}

	switch format {
	case FormatCSV:
		data, err := WriteCSV(result, cfg)
		if err != nil {
			return nil, err
		}
		return &Export{
			Data:        data,
			Filename:    CSVFilename(name),
			ContentType: "text/csv; charset=utf-8",
			RowCount:    result.TotalCount,
		}, nil

	case FormatExcel:
		data, filename, err := WriteExcel(result, cfg, def, name)
		if err != nil {
			return nil, err
		}
		return &Export{
			Data:        data,
			Filename:    filename,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			RowCount:    result.TotalCount,
		}, nil

	case FormatPrint:
		data, err := WritePrint(result, cfg, def, name, eventName)
		if err != nil {
			return nil, err
		}
		return &Export{
			Data:        data,
			Filename:    name + ".html",
			ContentType: "text/html; charset=utf-8",
			RowCount:    result.TotalCount,
		}, nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}
