package logger

import (
	"context"
	"fmt"
	"time"

	common_models "go-events/internal/common/models"
	"go-events/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to the background worker
type LogEntry struct {
	Level    zapcore.Level
	Message  string
	TenantID string
	Caller   string // Function name
}

// MongoLogWriter handles the async writing
type MongoLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
}

// NewMongoLogWriter initializes the worker
func NewMongoLogWriter(mongodb *database.MongodbDB) *MongoLogWriter {
	writer := &MongoLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000),
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by the Zap core hook
func (w *MongoLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		// Channel full: drop rather than block the request path
		fmt.Println("Log channel full! Dropping log:", entry.Message)
	}
}

func (w *MongoLogWriter) processLogs() {
	for entry := range w.logChan {
		logRecord := common_models.Log{
			Message:      entry.Message,
			Caller:       entry.Caller,
			TenantId:     entry.TenantID,
			LogLevelId:   mapLevelToInt(entry.Level),
			CreatedOnUtc: time.Now().UTC(),
		}

		// Insert errors are swallowed so logging can never take the app down
		w.db.Collection("app_logs").InsertOne(context.Background(), logRecord)
	}
}

func mapLevelToInt(l zapcore.Level) int {
	switch l {
	case zapcore.DebugLevel:
		return 10
	case zapcore.InfoLevel:
		return 20
	case zapcore.WarnLevel:
		return 30
	case zapcore.ErrorLevel:
		return 40
	case zapcore.FatalLevel:
		return 50
	default:
		return 20
	}
}
