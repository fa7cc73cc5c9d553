package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
)

func TestPostgresAuditRepo_AppendTrimsInSameTx(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPostgresAuditRepo(mock)
	e := model.AuditLogEntry{ID: "a1", Timestamp: "2026-01-01T00:00:00.000Z", Action: model.ActionCreatorAdded, Details: "d", User: "Admin"}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO audit_logs`).
		WithArgs(e.ID, e.Timestamp, e.Action, e.Details, e.User).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM audit_logs\s+WHERE seq NOT IN \(\s+SELECT seq FROM audit_logs ORDER BY seq DESC LIMIT \$1`).
		WithArgs(100).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Append(context.Background(), e, 100))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAuditRepo_AppendFailureRollsBack(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPostgresAuditRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO audit_logs`).WillReturnError(errors.New("unique violation"))
	mock.ExpectRollback()

	assert.Error(t, repo.Append(context.Background(), model.AuditLogEntry{ID: "a1"}, 100))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAuditRepo_ListNewestFirst(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPostgresAuditRepo(mock)

	mock.ExpectQuery(`FROM audit_logs\s+ORDER BY seq DESC`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "logged_at", "action", "details", "actor"}).
			AddRow("e2", "t2", model.ActionCreatorUpdated, "second", "Admin").
			AddRow("e1", "t1", model.ActionCreatorAdded, "first", "Admin"))

	logs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "e2", logs[0].ID)
	assert.Equal(t, "e1", logs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
