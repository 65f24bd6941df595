// Package entity 定义领域实体
package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// HistoryType AI 生成记录类型
type HistoryType string

const (
	HistoryTypeInsight HistoryType = "insight"
	HistoryTypePitch   HistoryType = "pitch"
)

// HistoryMetadata 用于 JSONB 序列化的元数据映射
type HistoryMetadata map[string]interface{}

// Value 实现 driver.Valuer 接口
func (m HistoryMetadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan 实现 sql.Scanner 接口
func (m *HistoryMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return json.Unmarshal(nil, m)
	}
}

// PreviewLength 历史列表中内容摘要的最大字符数
const PreviewLength = 100

// HistoryRecord AI 生成历史记录，仅追加
type HistoryRecord struct {
	ID        string          `json:"id"`
	StartupID string          `json:"startup_id"`
	Type      HistoryType     `json:"type"`
	Subtype   string          `json:"subtype"`
	Content   string          `json:"content"`
	Metadata  HistoryMetadata `json:"metadata"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewHistoryRecord 创建历史记录
func NewHistoryRecord(startupID string, typ HistoryType, subtype, content, createdBy string, metadata HistoryMetadata) *HistoryRecord {
	return &HistoryRecord{
		StartupID: startupID,
		Type:      typ,
		Subtype:   subtype,
		Content:   content,
		Metadata:  metadata,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
}

// Preview 返回内容摘要：超过 PreviewLength 个字符时截断并追加省略号
func (h *HistoryRecord) Preview() string {
	runes := []rune(h.Content)
	if len(runes) <= PreviewLength {
		return h.Content
	}
	return string(runes[:PreviewLength]) + "..."
}
