package schedule

import (
	"time"

	"go-events/internal/features/report"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule runs a saved template on a cron expression and records each run.
type Schedule struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name       string              `json:"name" bson:"name"`
	TemplateID primitive.ObjectID  `json:"template_id" bson:"template_id"`
	Spec       string              `json:"spec" bson:"spec"`
	Format     report.ExportFormat `json:"format" bson:"format"`
	TenantID   string              `json:"tenant_id" bson:"tenant_id"`
	EventID    string              `json:"event_id" bson:"event_id"`
	OwnerID    string              `json:"owner_id" bson:"owner_id"`
	Active     bool                `json:"active" bson:"active"`
	LastRun    *time.Time          `json:"last_run,omitempty" bson:"last_run,omitempty"`
	NextRun    *time.Time          `json:"next_run,omitempty" bson:"next_run,omitempty"`
	CreatedBy  string              `json:"created_by" bson:"created_by"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at"`
}

// RunLog is a single execution of a schedule.
type RunLog struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ScheduleID   primitive.ObjectID `json:"schedule_id" bson:"schedule_id"`
	ScheduleName string             `json:"schedule_name" bson:"schedule_name"`
	StartTime    time.Time          `json:"start_time" bson:"start_time"`
	EndTime      *time.Time         `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Status       string             `json:"status" bson:"status"` // "success", "failed", "running"
	RowCount     int                `json:"row_count" bson:"row_count"`
	ByteSize     int                `json:"byte_size" bson:"byte_size"`
	Filename     string             `json:"filename,omitempty" bson:"filename,omitempty"`
	Error        string             `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
