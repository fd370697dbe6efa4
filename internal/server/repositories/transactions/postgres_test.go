package transactions

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "date"}).AddRow(100, time.Now())
	mock.ExpectQuery(`INSERT\s+INTO\s+transactions`).
		WithArgs(int64(11), int64(7), "IN", int64(20), "delivery").
		WillReturnRows(rows)

	tr := &models.Transaction{ProductID: 11, UserID: 7, Type: "IN", Quantity: 20, Notes: "delivery"}
	got, err := repo.Create(context.Background(), tr)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 100 {
		t.Fatalf("unexpected transaction: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+transactions`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Transaction{ProductID: 1, UserID: 1, Type: "IN", Quantity: 1})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestList_Filters(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	countRows := sqlmock.NewRows([]string{"count"}).AddRow(1)
	mock.ExpectQuery(`SELECT\s+count\(\*\)\s+FROM\s+transactions\s+t\s+WHERE\s+t\.type\s*=\s*\$1\s+AND\s+t\.product_id\s*=\s*\$2`).
		WithArgs("OUT", int64(11)).
		WillReturnRows(countRows)

	rows := sqlmock.NewRows([]string{"id", "product_id", "user_id", "type", "quantity", "notes", "date", "product_name", "username"}).
		AddRow(100, 11, 7, "OUT", 5, "", time.Now(), "Milk 1L", "alice")
	mock.ExpectQuery(`SELECT\s+t\.id.*WHERE\s+t\.type.*ORDER\s+BY\s+t\.date\s+DESC\s+LIMIT\s+\$3\s+OFFSET\s+\$4`).
		WithArgs("OUT", int64(11), 20, 0).
		WillReturnRows(rows)

	items, total, err := repo.List(context.Background(), ListFilter{Type: "OUT", ProductID: 11})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("unexpected result: total=%d items=%+v", total, items)
	}
	if items[0].ProductName != "Milk 1L" || items[0].Username != "alice" {
		t.Fatalf("joined names missing: %+v", items[0])
	}
}

func TestStats(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	from := time.Now().AddDate(0, 0, -30)
	to := time.Now()
	rows := sqlmock.NewRows([]string{"in", "out", "qin", "qout"}).AddRow(3, 2, 120, 45)
	mock.ExpectQuery(`SELECT\s+count\(\*\)\s+FILTER`).
		WithArgs(from, to).
		WillReturnRows(rows)

	stats, err := repo.Stats(context.Background(), from, to)
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.TotalIn != 3 || stats.TotalOut != 2 || stats.QuantityIn != 120 || stats.QuantityOut != 45 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
