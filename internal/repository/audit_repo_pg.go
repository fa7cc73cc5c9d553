package repository

import (
	"context"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
)

type PostgresAuditRepo struct {
	pool PgxPool
}

func NewPostgresAuditRepo(pool PgxPool) *PostgresAuditRepo {
	return &PostgresAuditRepo{pool: pool}
}

// Append inserts the entry and trims the table to the newest limit rows in
// the same transaction.
func (r *PostgresAuditRepo) Append(ctx context.Context, e model.AuditLogEntry, limit int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO audit_logs (id, logged_at, action, details, actor)
		VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Timestamp, e.Action, e.Details, e.User)
	if err != nil {
		return err
	}

	if limit > 0 {
		_, err = tx.Exec(ctx, `
			DELETE FROM audit_logs
			WHERE seq NOT IN (
				SELECT seq FROM audit_logs ORDER BY seq DESC LIMIT $1
			)`, limit)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// List returns entries newest first.
func (r *PostgresAuditRepo) List(ctx context.Context) ([]model.AuditLogEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, logged_at, action, details, actor
		FROM audit_logs
		ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []model.AuditLogEntry{}
	for rows.Next() {
		var e model.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Action, &e.Details, &e.User); err != nil {
			return nil, err
		}
		logs = append(logs, e)
	}
	return logs, rows.Err()
}
