// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"startupops-api/internal/domain/entity"
)

// MemberResponse 团队成员响应, 合并用户档案字段
type MemberResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Role      entity.MemberRole `json:"role"`
	JoinedAt  time.Time         `json:"joined_at"`
	Email     string            `json:"email"`
	FullName  string            `json:"full_name"`
	AvatarURL string            `json:"avatar_url"`
}

// ToMemberResponse 构建成员响应, 档案缺失时联系字段为空
func ToMemberResponse(member *entity.StartupMember, profile *entity.Profile) MemberResponse {
	resp := MemberResponse{
		ID:       member.ID,
		UserID:   member.UserID,
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
	if profile != nil {
		resp.Email = profile.Email
		resp.FullName = profile.FullName
		resp.AvatarURL = profile.AvatarURL
	}
	return resp
}

// UpdateMemberRoleRequest 更新成员角色请求
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateMemberRoleResponse 更新成员角色响应
type UpdateMemberRoleResponse struct {
	Success bool              `json:"success"`
	Role    entity.MemberRole `json:"role"`
}

// InviteCodeResponse 邀请码响应
type InviteCodeResponse struct {
	InviteCode string `json:"invite_code"`
}

// InvestorMember 项目投资人响应
type InvestorMember struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}

// InvestorListResponse 项目投资人列表响应
type InvestorListResponse struct {
	Investors      []InvestorMember `json:"investors"`
	PendingInvites []InvestorMember `json:"pending_invites"`
}
