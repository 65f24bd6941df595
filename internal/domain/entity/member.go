// Package entity 定义领域实体
package entity

import (
	"time"
)

// MemberRole 团队成员角色
type MemberRole string

const (
	MemberRoleFounder  MemberRole = "founder"
	MemberRoleManager  MemberRole = "manager"
	MemberRoleMember   MemberRole = "member"
	MemberRoleInvestor MemberRole = "investor"
)

// IsAssignableRole 检查角色是否允许通过角色变更接口设置
// founder 角色不可通过该接口授予或回收
func IsAssignableRole(role MemberRole) bool {
	switch role {
	case MemberRoleManager, MemberRoleMember, MemberRoleInvestor:
		return true
	default:
		return false
	}
}

// StartupMember 创业项目成员关系
type StartupMember struct {
	ID        string     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartupID string     `json:"startup_id" gorm:"type:uuid;index:idx_members_startup_user,unique;not null"`
	UserID    string     `json:"user_id" gorm:"type:uuid;index:idx_members_startup_user,unique;not null"`
	Role      MemberRole `json:"role" gorm:"type:varchar(50);default:'member'"`
	JoinedAt  time.Time  `json:"joined_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (StartupMember) TableName() string {
	return "startup_members"
}

// NewStartupMember 创建成员关系
func NewStartupMember(startupID, userID string, role MemberRole) *StartupMember {
	if role == "" {
		role = MemberRoleMember
	}
	return &StartupMember{
		StartupID: startupID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
}

// IsFounder 检查是否为创始人
func (m *StartupMember) IsFounder() bool {
	return m.Role == MemberRoleFounder
}

// CanManage 检查是否具备管理权限（创始人或管理者）
func (m *StartupMember) CanManage() bool {
	return m.Role == MemberRoleFounder || m.Role == MemberRoleManager
}

// CanRecordInvestment 检查是否可录入投资记录
func (m *StartupMember) CanRecordInvestment() bool {
	return m.Role == MemberRoleFounder || m.Role == MemberRoleInvestor
}
