package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
)

// AuditRepository stores the bounded, newest-first audit trail.
type AuditRepository interface {
	// Append stores e as the newest entry and evicts the oldest entries so
	// that at most limit remain.
	Append(ctx context.Context, e model.AuditLogEntry, limit int) error
	// List returns entries newest first.
	List(ctx context.Context) ([]model.AuditLogEntry, error)
}

// LogSaver persists a full snapshot of the audit log.
type LogSaver interface {
	SaveLogs(logs []model.AuditLogEntry) error
}

// MemoryAuditRepo keeps the audit log in memory and rewrites the whole list
// through its saver after every append.
type MemoryAuditRepo struct {
	mu    sync.RWMutex
	logs  []model.AuditLogEntry
	saver LogSaver
}

func NewMemoryAuditRepo(initial []model.AuditLogEntry, saver LogSaver) *MemoryAuditRepo {
	logs := make([]model.AuditLogEntry, len(initial))
	copy(logs, initial)
	return &MemoryAuditRepo{logs: logs, saver: saver}
}

func (r *MemoryAuditRepo) Append(_ context.Context, e model.AuditLogEntry, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs := make([]model.AuditLogEntry, 0, len(r.logs)+1)
	logs = append(logs, e)
	logs = append(logs, r.logs...)
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	r.logs = logs

	if r.saver == nil {
		return nil
	}
	if err := r.saver.SaveLogs(r.copyLogs()); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}
	return nil
}

func (r *MemoryAuditRepo) List(_ context.Context) ([]model.AuditLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.copyLogs(), nil
}

func (r *MemoryAuditRepo) copyLogs() []model.AuditLogEntry {
	out := make([]model.AuditLogEntry, len(r.logs))
	copy(out, r.logs)
	return out
}
