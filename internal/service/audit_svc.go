package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
	"github.com/orbitx-mcn/orbitx-go/internal/repository"
)

// MaxAuditEntries bounds the audit trail; older entries are evicted.
const MaxAuditEntries = 100

// auditTimeFormat matches JavaScript's Date.toISOString output.
const auditTimeFormat = "2006-01-02T15:04:05.000Z"

// AuditLogger records creator mutations as a bounded, newest-first trail.
type AuditLogger struct {
	repo   repository.AuditRepository
	user   string
	logger zerolog.Logger

	now   func() time.Time
	newID func() string
}

func NewAuditLogger(repo repository.AuditRepository, user string, logger zerolog.Logger) *AuditLogger {
	return &AuditLogger{
		repo:   repo,
		user:   user,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Log appends one entry and persists the truncated trail. details is stored
// verbatim.
func (a *AuditLogger) Log(ctx context.Context, action, details string) (*model.AuditLogEntry, error) {
	entry := model.AuditLogEntry{
		ID:        a.newID(),
		Timestamp: a.now().UTC().Format(auditTimeFormat),
		Action:    action,
		Details:   details,
		User:      a.user,
	}

	if err := a.repo.Append(ctx, entry, MaxAuditEntries); err != nil {
		return nil, fmt.Errorf("append audit entry: %w", err)
	}

	a.logger.Debug().Str("action", action).Str("entry_id", entry.ID).Msg("audit entry recorded")
	return &entry, nil
}

// List returns the trail, newest first.
func (a *AuditLogger) List(ctx context.Context) ([]model.AuditLogEntry, error) {
	return a.repo.List(ctx)
}
