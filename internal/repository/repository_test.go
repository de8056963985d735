package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var (
	dealColumns = []string{
		"id", "title", "description", "deal_price", "part_price", "max_participants",
		"start_date", "end_date", "status", "creator_id", "category_id", "city", "created_at", "updated_at",
	}
	imageColumns = []string{
		"id", "owner_id", "storage_key", "is_primary", "upload_status", "created_at", "updated_at",
	}
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}
