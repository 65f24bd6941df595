package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startupops-api/internal/domain/entity"
)

func newMockRepo(t *testing.T) (*HistoryRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHistoryRepository(NewClientFromSQL(db)), mock
}

func historyColumns() []string {
	return []string{"id", "startup_id", "type", "subtype", "content", "metadata", "created_by", "created_at"}
}

func TestHistoryRepositoryCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO ai_history`).
		WithArgs("startup-1", "insight", "general", "Focus on retention.", sqlmock.AnyArg(), "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("hist-1", createdAt))

	record := entity.NewHistoryRecord("startup-1", entity.HistoryTypeInsight, "general", "Focus on retention.", "user-1",
		entity.HistoryMetadata{"model": "gemini-2.5-flash"})

	err := repo.Create(context.Background(), record)

	require.NoError(t, err)
	assert.Equal(t, "hist-1", record.ID)
	assert.Equal(t, createdAt, record.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepositoryCreateError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO ai_history`).
		WillReturnError(assert.AnError)

	err := repo.Create(context.Background(), entity.NewHistoryRecord("startup-1", entity.HistoryTypePitch, "", "{}", "user-1", nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create history record")
}

func TestHistoryRepositoryGetByStartupAndID(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, startup_id, type, subtype, content, metadata, created_by, created_at\s+FROM ai_history\s+WHERE id = \$1 AND startup_id = \$2`).
		WithArgs("hist-1", "startup-1").
		WillReturnRows(sqlmock.NewRows(historyColumns()).
			AddRow("hist-1", "startup-1", "pitch", nil, `{"title":"Deck"}`, []byte(`{"slide_count":5}`), "user-1", createdAt))

	record, err := repo.GetByStartupAndID(context.Background(), "startup-1", "hist-1")

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, entity.HistoryTypePitch, record.Type)
	// NULL subtype 映射为空字符串
	assert.Equal(t, "", record.Subtype)
	assert.Equal(t, float64(5), record.Metadata["slide_count"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, startup_id, type, subtype, content, metadata, created_by, created_at\s+FROM ai_history\s+WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(historyColumns()))

	record, err := repo.GetByID(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestHistoryRepositoryListByStartup(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(historyColumns()).
		AddRow("hist-2", "startup-1", "insight", "tasks", "Ship faster.", nil, "user-1", createdAt.Add(time.Hour)).
		AddRow("hist-1", "startup-1", "insight", "general", "Focus.", nil, "user-1", createdAt)

	mock.ExpectQuery(`FROM ai_history\s+WHERE startup_id = \$1 AND type = ANY\(\$2\)\s+ORDER BY created_at DESC\s+LIMIT \$3`).
		WithArgs("startup-1", pq.Array([]string{"insight"}), 20).
		WillReturnRows(rows)

	records, err := repo.ListByStartup(context.Background(), "startup-1", []entity.HistoryType{entity.HistoryTypeInsight}, 20)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "hist-2", records[0].ID)
	assert.Equal(t, "tasks", records[0].Subtype)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepositoryListByStartupNoFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM ai_history\s+WHERE startup_id = \$1\s+ORDER BY created_at DESC\s+LIMIT \$2`).
		WithArgs("startup-1", 50).
		WillReturnRows(sqlmock.NewRows(historyColumns()))

	records, err := repo.ListByStartup(context.Background(), "startup-1", nil, 50)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepositoryDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM ai_history WHERE id = \$1`).
		WithArgs("hist-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "hist-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
