package handler

import (
	"github.com/gin-gonic/gin"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/internal/interfaces/http/middleware"
	"startupops-api/pkg/logger"
)

// requireMember 校验当前用户是该创业团队的成员
// 校验失败时写出响应并返回 nil, 调用方直接 return
func requireMember(c *gin.Context, memberRepo repository.MemberRepository, startupID, message string) *entity.StartupMember {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	member, err := memberRepo.GetByStartupAndUser(ctx, startupID, userID)
	if err != nil {
		logger.Error(ctx, "failed to check membership", err, "startup_id", startupID)
		dto.InternalError(c, "failed to check membership")
		return nil
	}
	if member == nil {
		dto.Forbidden(c, message)
		return nil
	}
	return member
}

// requireFounder 校验当前用户是该创业团队的创始人
// 非成员与非创始人返回同一条 403 消息
func requireFounder(c *gin.Context, memberRepo repository.MemberRepository, startupID, message string) *entity.StartupMember {
	member := requireMember(c, memberRepo, startupID, message)
	if member == nil {
		return nil
	}
	if !member.IsFounder() {
		dto.Forbidden(c, message)
		return nil
	}
	return member
}

// requireManager 校验当前用户是创始人或管理者
func requireManager(c *gin.Context, memberRepo repository.MemberRepository, startupID, message string) *entity.StartupMember {
	member := requireMember(c, memberRepo, startupID, message)
	if member == nil {
		return nil
	}
	if !member.CanManage() {
		dto.Forbidden(c, message)
		return nil
	}
	return member
}
