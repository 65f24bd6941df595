// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"startupops-api/internal/domain/entity"
)

// CreateStartupRequest 创建项目请求
type CreateStartupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Industry    string `json:"industry"`
	Stage       string `json:"stage"`
	Website     string `json:"website"`
	InitialRole string `json:"initial_role"`
}

// UpdateStartupRequest 更新项目请求, 缺省字段不修改
type UpdateStartupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Industry    *string `json:"industry"`
	Stage       *string `json:"stage"`
	Website     *string `json:"website"`
}

// ApplyToStartup 将请求字段应用到项目实体
func (r *UpdateStartupRequest) ApplyToStartup(s *entity.Startup) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.Industry != nil {
		s.Industry = *r.Industry
	}
	if r.Stage != nil {
		s.Stage = entity.StartupStage(*r.Stage)
	}
	if r.Website != nil {
		s.Website = *r.Website
	}
}

// JoinStartupRequest 加入项目请求
type JoinStartupRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// StartupWithRole 附带当前用户角色的项目响应
type StartupWithRole struct {
	*entity.Startup
	UserRole entity.MemberRole `json:"user_role"`
}

// ToStartupWithRole 构建带角色的项目响应
func ToStartupWithRole(s *entity.Startup, role entity.MemberRole) *StartupWithRole {
	return &StartupWithRole{Startup: s, UserRole: role}
}
