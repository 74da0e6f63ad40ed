package sessions

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bankd/internal/common"
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

	q := `(?s)^INSERT\s+INTO\s+sessions\s*\(token,\s*user_id,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*$`

	exp := time.Now().Add(time.Hour).UTC()
	mock.ExpectExec(q).
		WithArgs("tok-1", "u-1", exp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), "u-1", "tok-1", exp); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestFind_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+token,\s*user_id,\s*expires_at\s+FROM\s+sessions\s+WHERE\s+token\s*=\s*\$1\s*$`

	exp := time.Now().Add(time.Hour).UTC()
	rows := sqlmock.NewRows([]string{"token", "user_id", "expires_at"}).
		AddRow("tok-1", "u-1", exp)
	mock.ExpectQuery(q).WithArgs("tok-1").WillReturnRows(rows)

	got, err := repo.Find(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if got.Token != "tok-1" || got.UserID != "u-1" || !got.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+token,\s*user_id,\s*expires_at\s+FROM\s+sessions\s+WHERE\s+token\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_ReportsWhetherRowExisted(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+sessions\s+WHERE\s+token\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("tok-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("tok-1").WillReturnResult(sqlmock.NewResult(0, 0))

	existed, err := repo.Delete(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if !existed {
		t.Fatalf("first delete should report an existing row")
	}

	existed, err = repo.Delete(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if existed {
		t.Fatalf("second delete should report no row")
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+sessions\s+WHERE\s+token\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("tok-1").WillReturnError(errors.New("db err"))

	_, err := repo.Delete(context.Background(), "tok-1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDeleteAllForUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+sessions\s+WHERE\s+user_id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.DeleteAllForUser(context.Background(), "u-1"); err != nil {
		t.Fatalf("DeleteAllForUser error: %v", err)
	}
}

func TestDeleteExpiredForUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+sessions\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+expires_at\s*<=\s*\$2\s*$`

	now := time.Now().UTC()
	mock.ExpectExec(q).WithArgs("u-1", now).WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.DeleteExpiredForUser(context.Background(), "u-1", now); err != nil {
		t.Fatalf("DeleteExpiredForUser error: %v", err)
	}
}
