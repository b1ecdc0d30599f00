package logger

import (
	"go-events/internal/config"
	"go-events/internal/database"

	"go.uber.org/zap"
)

// NewLogger builds the application logger. Log entries go to the console and,
// through the async writer, to the app_logs collection.
func NewLogger(cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Enable Caller so log records carry the function name
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	writer := NewMongoLogWriter(mongodb)

	finalCore := NewMongoCore(baseLogger.Core(), writer)

	return zap.New(finalCore, zap.AddCaller()), nil
}
