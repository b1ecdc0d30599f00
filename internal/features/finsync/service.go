package finsync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	common_models "go-events/internal/common/models"
	"go-events/internal/config"
	"go-events/internal/features/record"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("payments database is not configured")

// SyncResult summarizes one import run against the payments database.
type SyncResult struct {
	Processed int       `json:"processed"`
	Upserted  int       `json:"upserted"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
}

// FinSyncService imports invoices from the external payments Postgres into
// the financial row store, keyed by invoice number so reruns are idempotent.
type FinSyncService interface {
	Run(ctx context.Context, scope common_models.Scope) (*SyncResult, error)
}

type FinSyncServiceImpl struct {
	Config  *config.Config
	Records record.RecordService
	Log     *zap.Logger
}

func NewFinSyncService(cfg *config.Config, records record.RecordService, log *zap.Logger) FinSyncService {
	return &FinSyncServiceImpl{
		Config:  cfg,
		Records: records,
		Log:     log,
	}
}

const invoiceQuery = `
SELECT invoice_number, payer_name, payer_email, payer_diocese,
       amount_due, amount_paid, status, method, paid_at
FROM invoices
WHERE tenant_id = $1 AND event_id = $2`

func (s *FinSyncServiceImpl) Run(ctx context.Context, scope common_models.Scope) (*SyncResult, error) {
	if !scope.Valid() {
		return nil, common_models.ErrInvalidScope
	}
	if s.Config.PaymentsDSN == "" {
		return nil, ErrNotConfigured
	}

	start := time.Now()

	db, err := sql.Open("postgres", s.Config.PaymentsDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open payments database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach payments database: %w", err)
	}

	rows, err := db.QueryContext(ctx, invoiceQuery, scope.TenantID, scope.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	result := &SyncResult{StartedAt: start}

	for rows.Next() {
		var (
			invoiceNumber, status, method    string
			payerName, payerEmail, payerDioc sql.NullString
			amountDue, amountPaid            float64
			paidAt                           sql.NullTime
		)
		if err := rows.Scan(
			&invoiceNumber, &payerName, &payerEmail, &payerDioc,
			&amountDue, &amountPaid, &status, &method, &paidAt,
		); err != nil {
			return result, fmt.Errorf("failed to scan invoice: %w", err)
		}
		result.Processed++

		doc := map[string]any{
			"invoiceNumber": invoiceNumber,
			"payer": map[string]any{
				"name":    payerName.String,
				"email":   payerEmail.String,
				"diocese": payerDioc.String,
			},
			"amountDue":  amountDue,
			"amountPaid": amountPaid,
			"status":     status,
			"method":     method,
		}
		if paidAt.Valid {
			doc["paidAt"] = paidAt.Time
		}

		if err := s.Records.Upsert(ctx, scope, "financial", "invoiceNumber", doc); err != nil {
			s.Log.Warn("failed to upsert invoice",
				zap.String("invoice", invoiceNumber),
				zap.String("tenant", scope.TenantID),
				zap.Error(err))
			continue
		}
		result.Upserted++
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	result.Duration = time.Since(start).String()
	s.Log.Info("payments import complete",
		zap.String("tenant", scope.TenantID),
		zap.String("event", scope.EventID),
		zap.Int("processed", result.Processed),
		zap.Int("upserted", result.Upserted))

	return result, nil
}
