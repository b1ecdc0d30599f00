package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	common_models "go-events/internal/common/models"
	"go-events/internal/features/report"
	"go-events/internal/features/template"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrWrongTenant      = errors.New("schedule belongs to another tenant")
)

type ScheduleService interface {
	Create(ctx context.Context, scope common_models.Scope, createdBy string, sched *Schedule) error
	Get(ctx context.Context, scope common_models.Scope, id string) (*Schedule, error)
	List(ctx context.Context, scope common_models.Scope) ([]Schedule, error)
	Update(ctx context.Context, scope common_models.Scope, sched *Schedule) error
	Delete(ctx context.Context, scope common_models.Scope, id string) error
	RunNow(ctx context.Context, scope common_models.Scope, id string) error
	Logs(ctx context.Context, scope common_models.Scope, id string, limit int) ([]RunLog, error)

	InitializeScheduler(ctx context.Context) error
	StopScheduler() error
	RegisterJob(sched *Schedule) error
	UnregisterJob(id string) error
}

type ScheduleServiceImpl struct {
	repo      ScheduleRepository
	templates template.TemplateService
	reports   report.ReportService
	log       *zap.Logger

	scheduler  *cron.Cron
	jobEntries map[string]cron.EntryID
	mu         sync.RWMutex
}

func NewScheduleService(
	repo ScheduleRepository,
	templates template.TemplateService,
	reports report.ReportService,
	log *zap.Logger,
) ScheduleService {
	return &ScheduleServiceImpl{
		repo:       repo,
		templates:  templates,
		reports:    reports,
		log:        log,
		jobEntries: make(map[string]cron.EntryID),
	}
}

func (s *ScheduleServiceImpl) Create(ctx context.Context, scope common_models.Scope, createdBy string, sched *Schedule) error {
	if !scope.Valid() {
		return common_models.ErrInvalidScope
	}
	if strings.TrimSpace(sched.Name) == "" {
		return errors.New("schedule name is required")
	}
	schedule, err := cron.ParseStandard(sched.Spec)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	if sched.Format == "" {
		sched.Format = report.FormatCSV
	}

	sched.TenantID = scope.TenantID
	sched.EventID = scope.EventID
	sched.OwnerID = scope.UserID
	sched.CreatedBy = createdBy

	nextRun := schedule.Next(time.Now())
	sched.NextRun = &nextRun

	if err := s.repo.Create(ctx, sched); err != nil {
		return err
	}

	if sched.Active && s.scheduler != nil {
		if err := s.RegisterJob(sched); err != nil {
			s.log.Warn("failed to register schedule", zap.String("id", sched.ID.Hex()), zap.Error(err))
		}
	}

	return nil
}

func (s *ScheduleServiceImpl) Get(ctx context.Context, scope common_models.Scope, id string) (*Schedule, error) {
	if !scope.Valid() {
		return nil, common_models.ErrInvalidScope
	}
	sched, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, ErrScheduleNotFound
	}
	if sched.TenantID != scope.TenantID {
		return nil, ErrWrongTenant
	}
	return sched, nil
}

func (s *ScheduleServiceImpl) List(ctx context.Context, scope common_models.Scope) ([]Schedule, error) {
	if !scope.Valid() {
		return nil, common_models.ErrInvalidScope
	}
	return s.repo.List(ctx, scope.TenantID)
}

func (s *ScheduleServiceImpl) Update(ctx context.Context, scope common_models.Scope, sched *Schedule) error {
	existing, err := s.Get(ctx, scope, sched.ID.Hex())
	if err != nil {
		return err
	}
	schedule, err := cron.ParseStandard(sched.Spec)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	if sched.Format == "" {
		sched.Format = report.FormatCSV
	}

	sched.TenantID = existing.TenantID
	sched.EventID = existing.EventID
	sched.OwnerID = existing.OwnerID
	sched.CreatedBy = existing.CreatedBy
	sched.CreatedAt = existing.CreatedAt

	nextRun := schedule.Next(time.Now())
	sched.NextRun = &nextRun

	if err := s.repo.Update(ctx, sched); err != nil {
		return err
	}

	s.UnregisterJob(sched.ID.Hex())

	if sched.Active && s.scheduler != nil {
		if err := s.RegisterJob(sched); err != nil {
			s.log.Warn("failed to register updated schedule", zap.String("id", sched.ID.Hex()), zap.Error(err))
		}
	}

	return nil
}

func (s *ScheduleServiceImpl) Delete(ctx context.Context, scope common_models.Scope, id string) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}
	s.UnregisterJob(id)
	return s.repo.Delete(ctx, id)
}

func (s *ScheduleServiceImpl) RunNow(ctx context.Context, scope common_models.Scope, id string) error {
	sched, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	return s.execute(ctx, sched)
}

func (s *ScheduleServiceImpl) Logs(ctx context.Context, scope common_models.Scope, id string, limit int) ([]RunLog, error) {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.GetLogs(ctx, id, limit)
}

// execute loads the schedule's template and renders the report under the
// owner's scope, recording the outcome as a run log.
func (s *ScheduleServiceImpl) execute(ctx context.Context, sched *Schedule) error {
	startTime := time.Now()

	logEntry := &RunLog{
		ScheduleID:   sched.ID,
		ScheduleName: sched.Name,
		StartTime:    startTime,
		Status:       "running",
	}
	if err := s.repo.CreateLog(ctx, logEntry); err != nil {
		s.log.Warn("failed to create run log", zap.String("schedule", sched.ID.Hex()), zap.Error(err))
	}

	scope := common_models.Scope{
		TenantID: sched.TenantID,
		EventID:  sched.EventID,
		UserID:   sched.OwnerID,
	}

	execErr := func() error {
		loaded, err := s.templates.Get(ctx, scope, sched.TemplateID.Hex())
		if err != nil {
			return err
		}
		export, err := s.reports.Export(ctx, scope, loaded.Template.Configuration, sched.Format, loaded.Template.Name, "")
		if err != nil {
			return err
		}
		logEntry.RowCount = export.RowCount
		logEntry.ByteSize = len(export.Data)
		logEntry.Filename = export.Filename
		return nil
	}()

	endTime := time.Now()
	logEntry.EndTime = &endTime
	if execErr != nil {
		logEntry.Status = "failed"
		logEntry.Error = execErr.Error()
	} else {
		logEntry.Status = "success"
	}

	if err := s.repo.UpdateLog(ctx, logEntry); err != nil {
		s.log.Warn("failed to update run log", zap.String("schedule", sched.ID.Hex()), zap.Error(err))
	}

	if schedule, err := cron.ParseStandard(sched.Spec); err == nil {
		nextRun := schedule.Next(time.Now())
		if err := s.repo.UpdateLastRun(ctx, sched.ID.Hex(), startTime, &nextRun); err != nil {
			s.log.Warn("failed to update last run", zap.String("schedule", sched.ID.Hex()), zap.Error(err))
		}
	}

	return execErr
}

func (s *ScheduleServiceImpl) InitializeScheduler(ctx context.Context) error {
	s.log.Info("initializing report scheduler")
	s.scheduler = cron.New()

	schedules, err := s.repo.GetActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active schedules: %w", err)
	}

	for i := range schedules {
		if err := s.RegisterJob(&schedules[i]); err != nil {
			s.log.Warn("failed to register schedule", zap.String("id", schedules[i].ID.Hex()), zap.Error(err))
		}
	}

	s.scheduler.Start()
	return nil
}

func (s *ScheduleServiceImpl) StopScheduler() error {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}

func (s *ScheduleServiceImpl) RegisterJob(sched *Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler == nil {
		return fmt.Errorf("scheduler not initialized")
	}

	scheduleID := sched.ID.Hex()
	jobFunc := func() {
		ctx := context.Background()
		latest, err := s.repo.GetByID(ctx, scheduleID)
		if err != nil || latest == nil || !latest.Active {
			return
		}
		s.execute(ctx, latest)
	}

	entryID, err := s.scheduler.AddFunc(sched.Spec, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add schedule to scheduler: %w", err)
	}

	s.jobEntries[scheduleID] = entryID
	return nil
}

func (s *ScheduleServiceImpl) UnregisterJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, exists := s.jobEntries[id]; exists {
		s.scheduler.Remove(entryID)
		delete(s.jobEntries, id)
	}
	return nil
}
