// Package handler 提供 HTTP 请求处理器
package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
	"startupops-api/internal/interfaces/http/dto"
	"startupops-api/internal/interfaces/http/middleware"
	"startupops-api/pkg/logger"
)

// TaskHandler 任务处理器
type TaskHandler struct {
	taskRepo   repository.TaskRepository
	memberRepo repository.MemberRepository
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(taskRepo repository.TaskRepository, memberRepo repository.MemberRepository) *TaskHandler {
	return &TaskHandler{
		taskRepo:   taskRepo,
		memberRepo: memberRepo,
	}
}

// Create 创建任务
// @Summary 创建任务
// @Description 在项目下创建任务, 仅限团队成员
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "项目 ID"
// @Param body body dto.CreateTaskRequest true "任务信息"
// @Success 200 {object} dto.Response[entity.Task]
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/startups/{id}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)
	userID := middleware.GetUserIDFromGin(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if requireMember(c, h.memberRepo, startupID, "Not a member") == nil {
		return
	}

	task := entity.NewTask(startupID, req.Title, userID)
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.Status != "" {
		task.Status = entity.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		task.Priority = entity.TaskPriority(req.Priority)
	}
	if req.AssignedTo != "" {
		task.AssignedTo = &req.AssignedTo
	}
	if req.MilestoneID != "" {
		task.MilestoneID = &req.MilestoneID
	}
	if req.DueDate != "" {
		d, err := entity.ParseDate(req.DueDate)
		if err != nil {
			dto.BadRequest(c, "invalid due_date: "+err.Error())
			return
		}
		task.DueDate = &d
	}

	if err := h.taskRepo.Create(ctx, task); err != nil {
		logger.Error(ctx, "failed to create task", err, "startup_id", startupID)
		dto.InternalError(c, "failed to create task")
		return
	}

	dto.Success(c, task)
}

// List 获取项目任务列表
func (h *TaskHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	startupID := dto.BindStartupID(c)

	if requireMember(c, h.memberRepo, startupID, "Not a member") == nil {
		return
	}

	tasks, err := h.taskRepo.ListByStartup(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "failed to list tasks", err, "startup_id", startupID)
		dto.InternalError(c, "failed to list tasks")
		return
	}

	dto.Success(c, tasks)
}

// Update 更新任务
func (h *TaskHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	taskID := c.Param("id")

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	task, err := h.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		logger.Error(ctx, "failed to get task", err, "task_id", taskID)
		dto.InternalError(c, "failed to update task")
		return
	}
	if task == nil {
		dto.NotFound(c, "Task not found")
		return
	}

	if requireMember(c, h.memberRepo, task.StartupID, "Not a member") == nil {
		return
	}

	if err := req.ApplyToTask(task); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}
	task.UpdatedAt = time.Now()

	if err := h.taskRepo.Update(ctx, task); err != nil {
		logger.Error(ctx, "failed to update task", err, "task_id", taskID)
		dto.InternalError(c, "failed to update task")
		return
	}

	dto.Success(c, task)
}

// Delete 删除任务
func (h *TaskHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	taskID := c.Param("id")

	task, err := h.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		logger.Error(ctx, "failed to get task", err, "task_id", taskID)
		dto.InternalError(c, "failed to delete task")
		return
	}
	if task == nil {
		dto.NotFound(c, "Task not found")
		return
	}

	if requireMember(c, h.memberRepo, task.StartupID, "Not a member") == nil {
		return
	}

	if err := h.taskRepo.Delete(ctx, taskID); err != nil {
		logger.Error(ctx, "failed to delete task", err, "task_id", taskID)
		dto.InternalError(c, "failed to delete task")
		return
	}

	dto.Success(c, gin.H{"success": true})
}

// UpdateStatus 更新任务状态
// 普通成员只能改自己名下任务, 创始人与管理者不受限
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()
	taskID := c.Param("id")
	userID := middleware.GetUserIDFromGin(c)

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	task, err := h.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		logger.Error(ctx, "failed to get task", err, "task_id", taskID)
		dto.InternalError(c, "failed to update task status")
		return
	}
	if task == nil {
		dto.NotFound(c, "Task not found")
		return
	}

	member := requireMember(c, h.memberRepo, task.StartupID, "Not a member")
	if member == nil {
		return
	}

	if !task.IsAssignedTo(userID) && !member.CanManage() {
		dto.Forbidden(c, "You can only update status of tasks assigned to you")
		return
	}

	status := entity.TaskStatus(req.Status)
	if !entity.IsValidTaskStatus(status) {
		dto.BadRequest(c, "Invalid status. Must be one of: ['todo', 'in_progress', 'review', 'done']")
		return
	}

	task.Status = status
	task.UpdatedAt = time.Now()

	if err := h.taskRepo.Update(ctx, task); err != nil {
		logger.Error(ctx, "failed to update task status", err, "task_id", taskID)
		dto.InternalError(c, "failed to update task status")
		return
	}

	dto.Success(c, task)
}
