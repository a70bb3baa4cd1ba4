package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/confdesk/confreg-backend/internal/model"
)

// ClientInfo carries the request attribution recorded with every
// activity log entry.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// ActivityWriter appends entries to the activity trail.
type ActivityWriter interface {
	Insert(ctx context.Context, e *model.ActivityLogEntry) error
}

// ActivityLogger records admin and system actions. Writes are
// best-effort: a failed insert is logged at warn level and swallowed so
// it can never mask the outcome of the operation being recorded.
type ActivityLogger struct {
	repo ActivityWriter
	log  zerolog.Logger
}

// NewActivityLogger creates a new ActivityLogger.
func NewActivityLogger(repo ActivityWriter, log zerolog.Logger) *ActivityLogger {
	return &ActivityLogger{repo: repo, log: log}
}

// Record appends one activity entry.
func (l *ActivityLogger) Record(ctx context.Context, action, details string, client ClientInfo) {
	entry := &model.ActivityLogEntry{
		Action:    action,
		Details:   details,
		IPAddress: client.IP,
		UserAgent: client.UserAgent,
	}
	if err := l.repo.Insert(ctx, entry); err != nil {
		l.log.Warn().
			Err(err).
			Str("action", action).
			Msg("Activity log write failed")
	}
}
