package logger

import (
	"go.uber.org/zap/zapcore"
)

// MongoCore is a Zap Core that tees log entries to the async Mongo writer
// while the wrapped core keeps printing to the console.
type MongoCore struct {
	zapcore.Core
	writer *MongoLogWriter
}

func NewMongoCore(baseCore zapcore.Core, writer *MongoLogWriter) zapcore.Core {
	return &MongoCore{
		Core:   baseCore,
		writer: writer,
	}
}

// Write is called for every log entry
func (c *MongoCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	var tenantID string

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
		if f.Key == "tenant" {
			tenantID = f.String
		}
	}

	c.writer.AddLog(LogEntry{
		Level:    entry.Level,
		Message:  entry.Message,
		TenantID: tenantID,
		Caller:   entry.Caller.Function,
	})

	return c.Core.Write(entry, fields)
}

// Check decides if we should log this level
func (c *MongoCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
