// Package dto 提供 HTTP 层数据传输对象
package dto

// SignupRequest 注册请求
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
}

// SignupResponse 注册响应
type SignupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// ProfileSyncRequest 档案同步请求
type ProfileSyncRequest struct {
	FullName string `json:"full_name"`
}

// ProfileUpdateRequest 档案更新请求
type ProfileUpdateRequest struct {
	FullName string `json:"full_name"`
}
