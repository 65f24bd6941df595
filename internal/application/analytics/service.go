// Package analytics 提供项目运营数据的聚合统计
package analytics

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
)

// Snapshot 项目运营数据快照
// 字段命名与对外 JSON 响应保持一致
type Snapshot struct {
	TotalTasks         int            `json:"total_tasks"`
	CompletedTasks     int            `json:"completed_tasks"`
	CompletionRate     int            `json:"completion_rate"`
	TaskStats          map[string]int `json:"task_stats"`
	PriorityStats      map[string]int `json:"priority_stats"`
	TotalMilestones    int            `json:"total_milestones"`
	MilestoneStats     map[string]int `json:"milestone_stats"`
	TotalFeedback      int            `json:"total_feedback"`
	FeedbackByCategory map[string]int `json:"feedback_by_category"`
	AvgRating          float64        `json:"avg_rating"`
	TeamSize           int            `json:"team_size"`
}

// TasksInProgress 进行中任务数
func (s *Snapshot) TasksInProgress() int {
	return s.TaskStats["in_progress"]
}

// MilestonesCompleted 已完成里程碑数
func (s *Snapshot) MilestonesCompleted() int {
	return s.MilestoneStats["completed"]
}

// Service 运营数据聚合服务
type Service struct {
	taskRepo      repository.TaskRepository
	milestoneRepo repository.MilestoneRepository
	feedbackRepo  repository.FeedbackRepository
	memberRepo    repository.MemberRepository
}

// NewService 创建运营数据聚合服务
func NewService(
	taskRepo repository.TaskRepository,
	milestoneRepo repository.MilestoneRepository,
	feedbackRepo repository.FeedbackRepository,
	memberRepo repository.MemberRepository,
) *Service {
	return &Service{
		taskRepo:      taskRepo,
		milestoneRepo: milestoneRepo,
		feedbackRepo:  feedbackRepo,
		memberRepo:    memberRepo,
	}
}

// Snapshot 并发加载项目的任务/里程碑/反馈/成员数据并聚合
func (s *Service) Snapshot(ctx context.Context, startupID string) (*Snapshot, error) {
	var (
		tasks      []*entity.Task
		milestones []*entity.Milestone
		feedbacks  []*entity.Feedback
		teamSize   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.taskRepo.ListByStartup(gctx, startupID)
		return err
	})
	g.Go(func() error {
		var err error
		milestones, err = s.milestoneRepo.ListByStartup(gctx, startupID)
		return err
	})
	g.Go(func() error {
		var err error
		feedbacks, err = s.feedbackRepo.ListByStartup(gctx, startupID)
		return err
	})
	g.Go(func() error {
		var err error
		teamSize, err = s.memberRepo.CountByStartup(gctx, startupID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildSnapshot(tasks, milestones, feedbacks, int(teamSize)), nil
}

// buildSnapshot 纯聚合计算, 未知状态/优先级不计入固定档位
func buildSnapshot(tasks []*entity.Task, milestones []*entity.Milestone, feedbacks []*entity.Feedback, teamSize int) *Snapshot {
	taskStats := map[string]int{"todo": 0, "in_progress": 0, "review": 0, "done": 0}
	priorityStats := map[string]int{"low": 0, "medium": 0, "high": 0, "urgent": 0}
	for _, t := range tasks {
		if _, ok := taskStats[string(t.Status)]; ok {
			taskStats[string(t.Status)]++
		}
		if _, ok := priorityStats[string(t.Priority)]; ok {
			priorityStats[string(t.Priority)]++
		}
	}

	milestoneStats := map[string]int{"pending": 0, "in_progress": 0, "completed": 0}
	for _, m := range milestones {
		if _, ok := milestoneStats[string(m.Status)]; ok {
			milestoneStats[string(m.Status)]++
		}
	}

	feedbackByCategory := map[string]int{}
	var avgRating float64
	if len(feedbacks) > 0 {
		sum := 0
		for _, f := range feedbacks {
			cat := f.Category
			if cat == "" {
				cat = "other"
			}
			feedbackByCategory[cat]++
			sum += f.Rating
		}
		avgRating = round1(float64(sum) / float64(len(feedbacks)))
	}

	completed := taskStats["done"]
	completionRate := 0
	if len(tasks) > 0 {
		completionRate = int(math.Round(float64(completed) / float64(len(tasks)) * 100))
	}

	return &Snapshot{
		TotalTasks:         len(tasks),
		CompletedTasks:     completed,
		CompletionRate:     completionRate,
		TaskStats:          taskStats,
		PriorityStats:      priorityStats,
		TotalMilestones:    len(milestones),
		MilestoneStats:     milestoneStats,
		TotalFeedback:      len(feedbacks),
		FeedbackByCategory: feedbackByCategory,
		AvgRating:          avgRating,
		TeamSize:           teamSize,
	}
}

// round1 保留一位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
