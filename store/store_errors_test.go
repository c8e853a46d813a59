package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestProjectStore_ResolveGroups_QueryFailure(t *testing.T) {
	db, mock := openMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "doc_groups"`).
		WillReturnError(errors.New("connection reset"))

	s := NewProjectStore(db, nil)
	_, _, err := s.ResolveGroups(context.Background(), "bio200")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bio200")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStore_Stats_QueryFailure(t *testing.T) {
	db, mock := openMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "documents"`).
		WillReturnError(errors.New("relation does not exist"))

	s := NewProjectStore(db, nil)
	_, err := s.Stats(context.Background(), "bio200")

	assert.Error(t, err)
}
