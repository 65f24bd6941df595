// Package identity 提供身份认证服务的 REST 客户端与令牌缓存
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"startupops-api/internal/config"
	"startupops-api/internal/domain/entity"
	"startupops-api/pkg/errors"
)

var tracer = otel.Tracer("identity")

// Client GoTrue 风格认证服务客户端
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

// NewClient 创建认证服务客户端
func NewClient(cfg *config.IdentityConfig) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// identityUser 认证服务返回的用户结构
type identityUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// identityError 认证服务返回的错误结构
type identityError struct {
	Code      int    `json:"code"`
	ErrorCode string `json:"error_code"`
	Msg       string `json:"msg"`
	Message   string `json:"message"`
}

// adminCreateUserRequest 管理端创建用户请求体
type adminCreateUserRequest struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// VerifyToken 校验访问令牌并返回用户身份
func (c *Client) VerifyToken(ctx context.Context, token string) (*entity.Principal, error) {
	ctx, span := tracer.Start(ctx, "identity.Client.VerifyToken")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		span.RecordError(err)
		return nil, errors.ErrIdentityProviderError.WithError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, errors.ErrIdentityProviderError.WithError(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("identity.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusOK:
		var user identityUser
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			span.RecordError(err)
			return nil, errors.ErrIdentityProviderError.WithError(err)
		}
		if user.ID == "" {
			return nil, errors.ErrTokenInvalid
		}
		return &entity.Principal{
			ID:           user.ID,
			Email:        user.Email,
			UserMetadata: user.UserMetadata,
		}, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.ErrTokenInvalid

	default:
		err := fmt.Errorf("identity provider returned status %d", resp.StatusCode)
		span.RecordError(err)
		return nil, errors.ErrIdentityProviderError.WithError(err)
	}
}

// AdminCreateUser 以服务密钥创建用户并自动确认邮箱
func (c *Client) AdminCreateUser(ctx context.Context, email, password, fullName string) (*entity.Principal, error) {
	ctx, span := tracer.Start(ctx, "identity.Client.AdminCreateUser")
	defer span.End()

	if fullName == "" {
		fullName = entity.FallbackName(email)
	}

	body, err := json.Marshal(adminCreateUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{"full_name": fullName},
	})
	if err != nil {
		span.RecordError(err)
		return nil, errors.ErrIdentityProviderError.WithError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/admin/users", bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return nil, errors.ErrIdentityProviderError.WithError(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, errors.ErrIdentityProviderError.WithError(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("identity.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		var user identityUser
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			span.RecordError(err)
			return nil, errors.ErrIdentityProviderError.WithError(err)
		}
		return &entity.Principal{
			ID:           user.ID,
			Email:        user.Email,
			UserMetadata: user.UserMetadata,
		}, nil
	}

	var ie identityError
	_ = json.NewDecoder(resp.Body).Decode(&ie)

	if isDuplicateEmail(resp.StatusCode, &ie) {
		return nil, errors.ErrEmailRegistered
	}

	err = fmt.Errorf("identity provider returned status %d: %s", resp.StatusCode, ie.errorMessage())
	span.RecordError(err)
	return nil, errors.ErrIdentityProviderError.WithError(err)
}

// isDuplicateEmail 判断创建用户失败是否因邮箱已注册
func isDuplicateEmail(status int, ie *identityError) bool {
	if ie.ErrorCode == "email_exists" {
		return true
	}
	msg := ie.errorMessage()
	if strings.Contains(msg, "already been registered") || strings.Contains(msg, "already exists") {
		return true
	}
	return status == http.StatusConflict
}

// errorMessage 返回错误结构中的可读消息
func (e *identityError) errorMessage() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Message
}
