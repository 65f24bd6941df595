// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeUnauthorized       ErrorCode = "1002"
	CodeForbidden          ErrorCode = "1003"
	CodeNotFound           ErrorCode = "1004"
	CodeConflict           ErrorCode = "1005"
	CodeTooManyRequests    ErrorCode = "1006"
	CodeInternalError      ErrorCode = "1007"
	CodeServiceUnavailable ErrorCode = "1008"

	// 认证授权错误 (2xxx)
	CodeTokenExpired     ErrorCode = "2001"
	CodeTokenInvalid     ErrorCode = "2002"
	CodeTokenMissing     ErrorCode = "2003"
	CodePermissionDenied ErrorCode = "2004"

	// 资源错误 (3xxx)
	CodeStartupNotFound   ErrorCode = "3001"
	CodeTaskNotFound      ErrorCode = "3002"
	CodeMilestoneNotFound ErrorCode = "3003"
	CodeMemberNotFound    ErrorCode = "3004"
	CodeHistoryNotFound   ErrorCode = "3005"
	CodeProfileNotFound   ErrorCode = "3006"

	// 业务错误 (4xxx)
	CodeGenerationFailed   ErrorCode = "4001"
	CodeRenderFailed       ErrorCode = "4002"
	CodeNotMember          ErrorCode = "4003"
	CodeAlreadyMember      ErrorCode = "4004"
	CodeTeamLimitReached   ErrorCode = "4005"
	CodeInviteCodeInvalid  ErrorCode = "4006"
	CodeEmailRegistered    ErrorCode = "4007"
	CodeHistoryWriteFailed ErrorCode = "4008"

	// 外部服务错误 (5xxx)
	CodeDatabaseError         ErrorCode = "5001"
	CodeCacheError            ErrorCode = "5002"
	CodeIdentityProviderError ErrorCode = "5003"
	CodeLLMProviderError      ErrorCode = "5005"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeAlreadyMember, CodeTeamLimitReached:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeTokenExpired, CodeTokenInvalid, CodeTokenMissing:
		return http.StatusUnauthorized
	case CodeForbidden, CodePermissionDenied, CodeNotMember:
		return http.StatusForbidden
	case CodeNotFound, CodeStartupNotFound, CodeTaskNotFound, CodeMilestoneNotFound,
		CodeMemberNotFound, CodeHistoryNotFound, CodeProfileNotFound, CodeInviteCodeInvalid:
		return http.StatusNotFound
	case CodeConflict, CodeEmailRegistered:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable, CodeIdentityProviderError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// 基础设施与生成链路抛出的预定义错误
// 处理器层的常规 4xx 直接走响应信封, 不经过这里
var (
	ErrTokenInvalid    = New(CodeTokenInvalid, "token invalid")
	ErrEmailRegistered = New(CodeEmailRegistered, "user with this email already exists")

	ErrGenerationFailed = New(CodeGenerationFailed, "AI generation failed")
	ErrRenderFailed     = New(CodeRenderFailed, "presentation render failed")
	ErrLLMProviderError = New(CodeLLMProviderError, "LLM provider error")

	ErrIdentityProviderError = New(CodeIdentityProviderError, "identity provider unavailable")
)

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
