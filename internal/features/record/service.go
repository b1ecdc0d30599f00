package record

import (
	"context"

	common_models "go-events/internal/common/models"
	"go-events/internal/features/source"
)

// RecordService is the scoped row store: registration and incident intake
// write through it, and report execution reads from it. It doubles as the
// executor's row source.
type RecordService interface {
	Create(ctx context.Context, scope common_models.Scope, sourceKey string, doc map[string]any) (string, error)
	List(ctx context.Context, scope common_models.Scope, sourceKey string, page, limit int64) ([]map[string]any, int64, error)
	Update(ctx context.Context, scope common_models.Scope, sourceKey, id string, doc map[string]any) error
	Delete(ctx context.Context, scope common_models.Scope, sourceKey, id string) error
	Upsert(ctx context.Context, scope common_models.Scope, sourceKey, keyField string, doc map[string]any) error
	FetchRows(ctx context.Context, scope common_models.Scope, sourceKey string, paths []string) ([]map[string]any, error)
}

type RecordServiceImpl struct {
	RecordRepo RecordRepository
	Registry   *source.Registry
}

func NewRecordService(recordRepo RecordRepository, registry *source.Registry) RecordService {
	return &RecordServiceImpl{
		RecordRepo: recordRepo,
		Registry:   registry,
	}
}

func (s *RecordServiceImpl) check(scope common_models.Scope, sourceKey string) error {
	if !scope.Valid() {
		return common_models.ErrInvalidScope
	}
	_, err := s.Registry.Get(sourceKey)
	return err
}

func (s *RecordServiceImpl) Create(ctx context.Context, scope common_models.Scope, sourceKey string, doc map[string]any) (string, error) {
	if err := s.check(scope, sourceKey); err != nil {
		return "", err
	}
	return s.RecordRepo.Insert(ctx, scope, sourceKey, doc)
}

func (s *RecordServiceImpl) List(ctx context.Context, scope common_models.Scope, sourceKey string, page, limit int64) ([]map[string]any, int64, error) {
	if err := s.check(scope, sourceKey); err != nil {
		return nil, 0, err
	}
	return s.RecordRepo.List(ctx, scope, sourceKey, page, limit)
}

func (s *RecordServiceImpl) Update(ctx context.Context, scope common_models.Scope, sourceKey, id string, doc map[string]any) error {
	if err := s.check(scope, sourceKey); err != nil {
		return err
	}
	return s.RecordRepo.Update(ctx, scope, sourceKey, id, doc)
}

func (s *RecordServiceImpl) Delete(ctx context.Context, scope common_models.Scope, sourceKey, id string) error {
	if err := s.check(scope, sourceKey); err != nil {
		return err
	}
	return s.RecordRepo.Delete(ctx, scope, sourceKey, id)
}

func (s *RecordServiceImpl) Upsert(ctx context.Context, scope common_models.Scope, sourceKey, keyField string, doc map[string]any) error {
	if err := s.check(scope, sourceKey); err != nil {
		return err
	}
	return s.RecordRepo.UpsertByKey(ctx, scope, sourceKey, keyField, doc)
}

// FetchRows implements the report executor's row source. Scope is enforced
// here and in the repository filter; an incomplete scope is an error, never
// an unbounded query.
func (s *RecordServiceImpl) FetchRows(ctx context.Context, scope common_models.Scope, sourceKey string, paths []string) ([]map[string]any, error) {
	if err := s.check(scope, sourceKey); err != nil {
		return nil, err
	}
	return s.RecordRepo.Find(ctx, scope, sourceKey, paths)
}
