// Package dto 提供 HTTP 层数据传输对象
package dto

// CreateFeedbackRequest 创建反馈请求
type CreateFeedbackRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Rating   *int   `json:"rating"`
	Source   string `json:"source"`
}
