package db

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func TestMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS creators`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	if err := Migrate(context.Background(), mock); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	mock.ExpectExec(`CREATE TABLE`).WillReturnError(errors.New("permission denied"))
	if err := Migrate(context.Background(), mock); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
