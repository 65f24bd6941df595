// Package entity 定义领域实体
package entity

// Principal 身份提供商验证后的用户身份，不落库
type Principal struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// FullName 从用户元数据取显示名，缺省时回退为邮箱前缀
func (p *Principal) FullName() string {
	if p.UserMetadata != nil {
		if name, ok := p.UserMetadata["full_name"].(string); ok && name != "" {
			return name
		}
	}
	return FallbackName(p.Email)
}

// AvatarURL 从用户元数据取头像地址
func (p *Principal) AvatarURL() string {
	if p.UserMetadata != nil {
		if url, ok := p.UserMetadata["avatar_url"].(string); ok {
			return url
		}
	}
	return ""
}
