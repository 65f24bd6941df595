// Package utils 提供通用工具函数
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken 表示令牌无法按 JWT 结构解析
var ErrInvalidToken = errors.New("invalid token")

// UnverifiedClaims 访问令牌中的声明
// 令牌由外部身份服务签发, 本服务不持有签名密钥, 只做未验签的声明提取
type UnverifiedClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseUnverifiedClaims 不验签解析令牌声明, 用于在调用身份服务前廉价预检
func ParseUnverifiedClaims(tokenString string) (*UnverifiedClaims, error) {
	parser := jwt.NewParser()

	claims := &UnverifiedClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// IsExpired 判断声明中的过期时间是否早于给定时刻
// 未携带 exp 的令牌交由身份服务裁决
func (c *UnverifiedClaims) IsExpired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return now.After(c.ExpiresAt.Time)
}

// Subject 返回令牌主体 (用户 ID)
func (c *UnverifiedClaims) Subject() string {
	return c.RegisteredClaims.Subject
}
