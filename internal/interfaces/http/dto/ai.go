// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"startupops-api/internal/domain/entity"
	wfmodel "startupops-api/internal/workflow/model"
)

// InsightRequest AI 洞察生成请求
type InsightRequest struct {
	StartupID    string `json:"startup_id" binding:"required"`
	PromptType   string `json:"prompt_type"`
	CustomPrompt string `json:"custom_prompt"`
}

// InsightResponse AI 洞察生成响应
type InsightResponse struct {
	Insights   string `json:"insights"`
	PromptType string `json:"prompt_type"`
}

// PitchRequest 路演文稿生成请求
type PitchRequest struct {
	StartupID    string `json:"startup_id" binding:"required"`
	CustomPrompt string `json:"custom_prompt"`
}

// PitchResponse 路演文稿生成响应
// Pitch 为完整文稿 JSON, Slides 为解析后的幻灯片列表
type PitchResponse struct {
	Pitch       string          `json:"pitch"`
	StartupName string          `json:"startup_name"`
	Slides      []wfmodel.Slide `json:"slides"`
	Format      string          `json:"format"`
}

// SaveHistoryRequest 保存生成历史请求
type SaveHistoryRequest struct {
	StartupID string                 `json:"startup_id" binding:"required"`
	Type      string                 `json:"type" binding:"required"`
	Subtype   string                 `json:"subtype"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// SaveHistoryResponse 保存生成历史响应
type SaveHistoryResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// HistoryItem 历史列表项, 内容只保留摘要
type HistoryItem struct {
	ID        string                 `json:"id"`
	Type      entity.HistoryType     `json:"type"`
	Subtype   string                 `json:"subtype"`
	CreatedAt time.Time              `json:"created_at"`
	Preview   string                 `json:"preview"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// HistoryListResponse 历史列表响应
type HistoryListResponse struct {
	History []HistoryItem `json:"history"`
}

// HistoryDetail 历史详情, 返回完整内容
type HistoryDetail struct {
	ID        string                 `json:"id"`
	Type      entity.HistoryType     `json:"type"`
	Subtype   string                 `json:"subtype"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

// ToHistoryItem 构建历史列表项
func ToHistoryItem(record *entity.HistoryRecord) HistoryItem {
	return HistoryItem{
		ID:        record.ID,
		Type:      record.Type,
		Subtype:   record.Subtype,
		CreatedAt: record.CreatedAt,
		Preview:   record.Preview(),
		Metadata:  record.Metadata,
	}
}

// ToHistoryListResponse 构建历史列表响应
func ToHistoryListResponse(records []*entity.HistoryRecord) *HistoryListResponse {
	items := make([]HistoryItem, 0, len(records))
	for _, record := range records {
		items = append(items, ToHistoryItem(record))
	}
	return &HistoryListResponse{History: items}
}

// ToHistoryDetail 构建历史详情
func ToHistoryDetail(record *entity.HistoryRecord) *HistoryDetail {
	return &HistoryDetail{
		ID:        record.ID,
		Type:      record.Type,
		Subtype:   record.Subtype,
		Content:   record.Content,
		Metadata:  record.Metadata,
		CreatedAt: record.CreatedAt,
	}
}
