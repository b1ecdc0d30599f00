package models

import (
	"errors"
	"time"
)

// ErrInvalidScope is returned when a store operation is attempted without a
// complete tenant/event boundary. Queries never fall back to "all rows".
var ErrInvalidScope = errors.New("missing tenant or event scope")

// Scope is the tenant/event boundary that constrains which rows any query may
// touch. It is threaded explicitly through every store call rather than read
// from ambient session state.
type Scope struct {
	TenantID string `json:"tenant_id" bson:"tenant_id"`
	EventID  string `json:"event_id" bson:"event_id"`
	UserID   string `json:"user_id,omitempty" bson:"user_id,omitempty"`
}

func (s Scope) Valid() bool {
	return s.TenantID != "" && s.EventID != ""
}

// Key is a stable identifier for one user's open report builder within a scope.
func (s Scope) Key() string {
	return s.TenantID + "/" + s.EventID + "/" + s.UserID
}

// Log is the shape persisted by the async zap log writer.
type Log struct {
	Message      string    `bson:"message"`
	Caller       string    `bson:"caller"`
	TenantId     string    `bson:"tenant_id,omitempty"`
	LogLevelId   int       `bson:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}
