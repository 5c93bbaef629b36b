package migrations

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestApplyExecutesAllMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	// One exec for the ledger plus statement and ledger insert per migration.
	execs := 1 + 2*len(all)
	for i := 0; i < execs; i++ {
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := Apply(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestApplyStopsOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(".*").WillReturnError(context.DeadlineExceeded)

	if err := Apply(context.Background(), db); err == nil {
		t.Fatalf("expected apply to fail")
	}
}

func TestStatusReportsPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"version", "applied_at"}).
		AddRow(all[0].Version, time.Now().UTC())
	mock.ExpectQuery("SELECT version, applied_at").WillReturnRows(rows)

	applied, pending, err := Status(context.Background(), db)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(applied) != 1 || applied[0].Version != all[0].Version {
		t.Fatalf("unexpected applied set: %#v", applied)
	}
	if len(pending) != len(all)-1 {
		t.Fatalf("expected %d pending, got %d", len(all)-1, len(pending))
	}
}
