package observability

import (
	"context"

	"github.com/matynz/danger/internal/adapter/httpclient"
	"github.com/matynz/danger/internal/usecase/report"
)

// ReportLogger adapts httpclient.EventLogger to report.Logger so the
// orchestrator shares the same structured logging infrastructure as the
// API client.
type ReportLogger struct {
	logger httpclient.EventLogger
}

// NewReportLogger creates a new report logger adapter.
func NewReportLogger(logger httpclient.EventLogger) report.Logger {
	return &ReportLogger{logger: logger}
}

// LogInfo logs an informational message with structured fields.
func (l *ReportLogger) LogInfo(ctx context.Context, message string, fields map[string]interface{}) {
	l.logger.LogInfo(ctx, message, fields)
}
