package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/useradmin/internal/datamodels/author"
	"github.com/example/useradmin/internal/errs"
)

func TestAuthorGetByUsernameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuthorRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `authors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}))

	_, err := repo.GetByUsername(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAuthorGetByUsernameFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuthorRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `authors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "email"}).
			AddRow(1, "admin_1", "$2a$10$hash", "admin@example.com"))

	a, err := repo.GetByUsername(context.Background(), "admin_1")
	require.NoError(t, err)
	assert.Equal(t, "admin_1", a.Username)
	assert.Equal(t, "$2a$10$hash", a.Password)
}

func TestAuthorCreateDuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuthorRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `authors`").
		WillReturnError(&mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry 'admin_1'"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &author.Author{Username: "admin_1", Password: "$2a$10$hash"})
	ce, ok := errs.AsConflict(err)
	require.True(t, ok, "expected conflict, got %v", err)
	assert.Equal(t, "username", ce.Field)
}
