// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/infrastructure/identity"
	"startupops-api/pkg/logger"
	"startupops-api/pkg/utils"
)

// Gin Context 中的用户信息键
const (
	// UserIDContextKey 用户 ID 键
	UserIDContextKey = "user_id"
	// PrincipalContextKey 用户身份键
	PrincipalContextKey = "principal"
)

// TokenVerifier 校验访问令牌并返回用户身份
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*entity.Principal, error)
}

// Auth 认证中间件
// 校验顺序: 令牌字面值 -> 不验签的过期预检 -> 进程内缓存 -> 身份服务
// 身份服务校验通过后写回缓存, 后续 60 秒内同令牌不再外呼
func Auth(verifier TokenVerifier, cache *identity.TokenCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			logger.Warn(c.Request.Context(), "missing or invalid authorization header format")
			abortUnauthorized(c, "Not authenticated")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		// 前端未登录时可能把 undefined/null 字符串拼进 Header
		if token == "" || token == "undefined" || token == "null" {
			abortUnauthorized(c, "No valid token provided")
			return
		}

		// 不验签提取 exp, 已过期的令牌省掉一次身份服务往返
		if claims, err := utils.ParseUnverifiedClaims(token); err == nil && claims.IsExpired(time.Now()) {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		principal, ok := cache.Get(token)
		if !ok {
			var err error
			principal, err = verifier.VerifyToken(c.Request.Context(), token)
			if err != nil || principal == nil {
				logger.Error(c.Request.Context(), "token verification failed", err)
				abortUnauthorized(c, "Invalid or expired token")
				return
			}
			cache.Put(token, principal)
		}

		// 注入用户信息到 Gin Context 与请求 Context
		c.Set(UserIDContextKey, principal.ID)
		c.Set(PrincipalContextKey, principal)

		ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, principal.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// abortUnauthorized 终止请求并返回 401
func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":     401,
		"message":  msg,
		"trace_id": c.GetString("trace_id"),
	})
}

// GetUserIDFromGin 从 Gin Context 中获取用户 ID
func GetUserIDFromGin(c *gin.Context) string {
	return c.GetString(UserIDContextKey)
}

// GetPrincipalFromGin 从 Gin Context 中获取用户身份
func GetPrincipalFromGin(c *gin.Context) *entity.Principal {
	if v, ok := c.Get(PrincipalContextKey); ok {
		if p, ok := v.(*entity.Principal); ok {
			return p
		}
	}
	return nil
}
