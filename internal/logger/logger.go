package logger

import "go.uber.org/zap"

// New builds the production logger used across the service.
func New() *zap.Logger {
	return zap.Must(zap.NewProduction())
}
