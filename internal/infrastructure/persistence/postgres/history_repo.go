// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"startupops-api/internal/domain/entity"
)

// HistoryRepository AI 生成历史仓储实现
type HistoryRepository struct {
	client *Client
}

// NewHistoryRepository 创建生成历史仓储
func NewHistoryRepository(client *Client) *HistoryRepository {
	return &HistoryRepository{client: client}
}

// Create 创建历史记录
func (r *HistoryRepository) Create(ctx context.Context, record *entity.HistoryRecord) error {
	ctx, span := tracer.Start(ctx, "postgres.HistoryRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		INSERT INTO ai_history (id, startup_id, type, subtype, content, metadata, created_by, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
		record.StartupID, record.Type, record.Subtype, record.Content, record.Metadata, record.CreatedBy,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create history record: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取历史记录
func (r *HistoryRepository) GetByID(ctx context.Context, id string) (*entity.HistoryRecord, error) {
	ctx, span := tracer.Start(ctx, "postgres.HistoryRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT id, startup_id, type, subtype, content, metadata, created_by, created_at
		FROM ai_history
		WHERE id = $1
	`

	return r.scanRecord(q.QueryRowContext(ctx, query, id))
}

// GetByStartupAndID 获取指定项目下的历史记录
func (r *HistoryRepository) GetByStartupAndID(ctx context.Context, startupID, id string) (*entity.HistoryRecord, error) {
	ctx, span := tracer.Start(ctx, "postgres.HistoryRepository.GetByStartupAndID")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT id, startup_id, type, subtype, content, metadata, created_by, created_at
		FROM ai_history
		WHERE id = $1 AND startup_id = $2
	`

	return r.scanRecord(q.QueryRowContext(ctx, query, id, startupID))
}

// ListByStartup 获取项目历史记录, 创建时间倒序
func (r *HistoryRepository) ListByStartup(ctx context.Context, startupID string, types []entity.HistoryType, limit int) ([]*entity.HistoryRecord, error) {
	ctx, span := tracer.Start(ctx, "postgres.HistoryRepository.ListByStartup")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	// 构建查询条件
	whereClause := "startup_id = $1"
	args := []interface{}{startupID}
	argIdx := 2

	if len(types) > 0 {
		typeNames := make([]string, len(types))
		for i, t := range types {
			typeNames[i] = string(t)
		}
		whereClause += fmt.Sprintf(" AND type = ANY($%d)", argIdx)
		args = append(args, pq.Array(typeNames))
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT id, startup_id, type, subtype, content, metadata, created_by, created_at
		FROM ai_history
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d
	`, whereClause, argIdx)

	args = append(args, limit)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list history records: %w", err)
	}
	defer rows.Close()

	var records []*entity.HistoryRecord
	for rows.Next() {
		rec, err := r.scanRecordFromRows(rows)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// Delete 删除历史记录
func (r *HistoryRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.HistoryRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `DELETE FROM ai_history WHERE id = $1`
	_, err := q.ExecContext(ctx, query, id)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete history record: %w", err)
	}

	return nil
}

// scanRecord 扫描单行历史记录
func (r *HistoryRepository) scanRecord(row *sql.Row) (*entity.HistoryRecord, error) {
	var rec entity.HistoryRecord
	var subtype sql.NullString

	err := row.Scan(
		&rec.ID, &rec.StartupID, &rec.Type, &subtype, &rec.Content, &rec.Metadata, &rec.CreatedBy, &rec.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan history record: %w", err)
	}

	if subtype.Valid {
		rec.Subtype = subtype.String
	}

	return &rec, nil
}

// scanRecordFromRows 从多行结果扫描
func (r *HistoryRepository) scanRecordFromRows(rows *sql.Rows) (*entity.HistoryRecord, error) {
	var rec entity.HistoryRecord
	var subtype sql.NullString

	err := rows.Scan(
		&rec.ID, &rec.StartupID, &rec.Type, &subtype, &rec.Content, &rec.Metadata, &rec.CreatedBy, &rec.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to scan history record: %w", err)
	}

	if subtype.Valid {
		rec.Subtype = subtype.String
	}

	return &rec, nil
}
