// Package dto 提供 HTTP 层数据传输对象
package dto

// UpdateSubscriptionRequest 更新订阅请求
type UpdateSubscriptionRequest struct {
	Plan string `json:"plan" binding:"required"`
}
