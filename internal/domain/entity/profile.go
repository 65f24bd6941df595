// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"
)

// Profile 用户档案，主键与身份提供商的用户 ID 一致
type Profile struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName  string    `json:"full_name" gorm:"type:varchar(255)"`
	AvatarURL string    `json:"avatar_url,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}

// NewProfile 创建用户档案，姓名缺省时回退为邮箱前缀
func NewProfile(id, email, fullName string) *Profile {
	if fullName == "" {
		fullName = FallbackName(email)
	}
	now := time.Now()
	return &Profile{
		ID:        id,
		Email:     email,
		FullName:  fullName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FallbackName 从邮箱派生显示名
func FallbackName(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
