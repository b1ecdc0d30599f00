package template

import (
	"time"

	"go-events/internal/features/report"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template is a persisted, named report configuration, optionally shared
// within the tenant. Deleted only by explicit owner action.
type Template struct {
	ID            primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name          string               `json:"name" bson:"name"`
	Description   string               `json:"description,omitempty" bson:"description,omitempty"`
	ReportType    string               `json:"report_type" bson:"report_type"` // data source at save time
	Configuration report.Configuration `json:"configuration" bson:"configuration"`
	IsPublic      bool                 `json:"is_public" bson:"is_public"`
	CreatedBy     string               `json:"created_by" bson:"created_by"` // display identity
	OwnerID       string               `json:"owner_id" bson:"owner_id"`
	TenantID      string               `json:"tenant_id" bson:"tenant_id"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updated_at"`
}

// LoadedTemplate pairs a template with the field keys of its configuration
// that no longer exist in the current source catalog. Stale fields are
// flagged, never silently dropped.
type LoadedTemplate struct {
	Template    *Template `json:"template"`
	StaleFields []string  `json:"stale_fields,omitempty"`
}
