package template

import (
	"context"
	"errors"
	"fmt"
	"strings"

	common_models "go-events/internal/common/models"
	"go-events/internal/features/report"
	"go-events/internal/features/source"
)

var (
	ErrEmptyName   = errors.New("template name is required")
	ErrNotOwner    = errors.New("only the owner may modify this template")
	ErrWrongTenant = errors.New("template belongs to another tenant")
	ErrNotShared   = errors.New("template is not shared")
)

type TemplateService interface {
	// Save creates the template, or re-saves under the same id when ID is
	// set. Empty name or empty field list is rejected before any store call.
	Save(ctx context.Context, scope common_models.Scope, createdBy string, tpl *Template) error
	Get(ctx context.Context, scope common_models.Scope, id string) (*LoadedTemplate, error)
	List(ctx context.Context, scope common_models.Scope) ([]Template, error)
	Delete(ctx context.Context, scope common_models.Scope, id string) error
}

type TemplateServiceImpl struct {
	TemplateRepo TemplateRepository
	Registry     *source.Registry
}

func NewTemplateService(templateRepo TemplateRepository, registry *source.Registry) TemplateService {
	return &TemplateServiceImpl{
		TemplateRepo: templateRepo,
		Registry:     registry,
	}
}

func (s *TemplateServiceImpl) Save(ctx context.Context, scope common_models.Scope, createdBy string, tpl *Template) error {
	if !scope.Valid() {
		return common_models.ErrInvalidScope
	}
	if strings.TrimSpace(tpl.Name) == "" {
		return ErrEmptyName
	}
	if len(tpl.Configuration.Fields) == 0 {
		return report.ErrEmptyFields
	}
	if _, err := s.Registry.Get(tpl.Configuration.DataSource); err != nil {
		return err
	}

	tpl.ReportType = tpl.Configuration.DataSource
	tpl.TenantID = scope.TenantID

	if tpl.ID.IsZero() {
		tpl.OwnerID = scope.UserID
		tpl.CreatedBy = createdBy
		return s.TemplateRepo.Create(ctx, tpl)
	}

	existing, err := s.TemplateRepo.Get(ctx, tpl.ID.Hex())
	if err != nil {
		return err
	}
	if existing.TenantID != scope.TenantID {
		return ErrWrongTenant
	}
	if existing.OwnerID != scope.UserID {
		return ErrNotOwner
	}
	tpl.OwnerID = existing.OwnerID
	tpl.CreatedBy = existing.CreatedBy
	tpl.CreatedAt = existing.CreatedAt
	return s.TemplateRepo.Update(ctx, tpl.ID.Hex(), tpl)
}

// Get loads a template and flags any configuration fields that are no longer
// in the source catalog. The configuration itself is returned intact.
func (s *TemplateServiceImpl) Get(ctx context.Context, scope common_models.Scope, id string) (*LoadedTemplate, error) {
	if !scope.Valid() {
		return nil, common_models.ErrInvalidScope
	}
	tpl, err := s.TemplateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if tpl.TenantID != scope.TenantID {
		return nil, ErrWrongTenant
	}
	if !tpl.IsPublic && tpl.OwnerID != scope.UserID {
		return nil, ErrNotShared
	}

	return &LoadedTemplate{
		Template:    tpl,
		StaleFields: s.staleFields(tpl.Configuration),
	}, nil
}

func (s *TemplateServiceImpl) List(ctx context.Context, scope common_models.Scope) ([]Template, error) {
	if !scope.Valid() {
		return nil, common_models.ErrInvalidScope
	}
	return s.TemplateRepo.List(ctx, scope.TenantID, scope.UserID)
}

func (s *TemplateServiceImpl) Delete(ctx context.Context, scope common_models.Scope, id string) error {
	if !scope.Valid() {
		return common_models.ErrInvalidScope
	}
	tpl, err := s.TemplateRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if tpl.TenantID != scope.TenantID {
		return ErrWrongTenant
	}
	if tpl.OwnerID != scope.UserID {
		return fmt.Errorf("%w: %s", ErrNotOwner, id)
	}
	return s.TemplateRepo.Delete(ctx, id)
}

// staleFields returns the saved field and sort keys the current catalog no
// longer defines. An unknown data source marks every field stale.
func (s *TemplateServiceImpl) staleFields(cfg report.Configuration) []string {
	def, err := s.Registry.Get(cfg.DataSource)
	if err != nil {
		return append([]string(nil), cfg.Fields...)
	}

	var stale []string
	for _, key := range cfg.Fields {
		if _, ok := def.Field(key); !ok {
			stale = append(stale, key)
		}
	}
	if cfg.SortBy != "" {
		if _, ok := def.Field(cfg.SortBy); !ok && !contains(stale, cfg.SortBy) {
			stale = append(stale, cfg.SortBy)
		}
	}
	return stale
}

func contains(list []string, key string) bool {
	for _, item := range list {
		if item == key {
			return true
		}
	}
	return false
}
