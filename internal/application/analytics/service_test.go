package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startupops-api/internal/domain/entity"
	"startupops-api/internal/domain/repository"
)

type stubTaskRepo struct {
	repository.TaskRepository
	tasks []*entity.Task
	err   error
}

func (s *stubTaskRepo) ListByStartup(ctx context.Context, startupID string) ([]*entity.Task, error) {
	return s.tasks, s.err
}

type stubMilestoneRepo struct {
	repository.MilestoneRepository
	milestones []*entity.Milestone
	err        error
}

func (s *stubMilestoneRepo) ListByStartup(ctx context.Context, startupID string) ([]*entity.Milestone, error) {
	return s.milestones, s.err
}

type stubFeedbackRepo struct {
	repository.FeedbackRepository
	feedbacks []*entity.Feedback
	err       error
}

func (s *stubFeedbackRepo) ListByStartup(ctx context.Context, startupID string) ([]*entity.Feedback, error) {
	return s.feedbacks, s.err
}

type stubMemberRepo struct {
	repository.MemberRepository
	count int64
	err   error
}

func (s *stubMemberRepo) CountByStartup(ctx context.Context, startupID string) (int64, error) {
	return s.count, s.err
}

func task(status entity.TaskStatus, priority entity.TaskPriority) *entity.Task {
	return &entity.Task{Status: status, Priority: priority}
}

func TestSnapshotAggregation(t *testing.T) {
	svc := NewService(
		&stubTaskRepo{tasks: []*entity.Task{
			task(entity.TaskStatusDone, entity.TaskPriorityHigh),
			task(entity.TaskStatusDone, entity.TaskPriorityUrgent),
			task(entity.TaskStatusInProgress, entity.TaskPriorityMedium),
			task(entity.TaskStatusTodo, entity.TaskPriorityLow),
			task(entity.TaskStatusReview, entity.TaskPriorityMedium),
			task(entity.TaskStatusDone, entity.TaskPriorityHigh),
		}},
		&stubMilestoneRepo{milestones: []*entity.Milestone{
			{Status: entity.MilestoneStatusCompleted},
			{Status: entity.MilestoneStatusPending},
			{Status: entity.MilestoneStatusInProgress},
		}},
		&stubFeedbackRepo{feedbacks: []*entity.Feedback{
			{Category: "product", Rating: 5},
			{Category: "product", Rating: 4},
			{Category: "", Rating: 4},
		}},
		&stubMemberRepo{count: 4},
	)

	snap, err := svc.Snapshot(context.Background(), "startup-1")
	require.NoError(t, err)

	assert.Equal(t, 6, snap.TotalTasks)
	assert.Equal(t, 3, snap.CompletedTasks)
	// 3/6 = 50%
	assert.Equal(t, 50, snap.CompletionRate)
	assert.Equal(t, map[string]int{"todo": 1, "in_progress": 1, "review": 1, "done": 3}, snap.TaskStats)
	assert.Equal(t, map[string]int{"low": 1, "medium": 2, "high": 2, "urgent": 1}, snap.PriorityStats)

	assert.Equal(t, 3, snap.TotalMilestones)
	assert.Equal(t, map[string]int{"pending": 1, "in_progress": 1, "completed": 1}, snap.MilestoneStats)
	assert.Equal(t, 1, snap.MilestonesCompleted())

	assert.Equal(t, 3, snap.TotalFeedback)
	// 空分类归入 other
	assert.Equal(t, map[string]int{"product": 2, "other": 1}, snap.FeedbackByCategory)
	// (5+4+4)/3 = 4.333 -> 4.3
	assert.Equal(t, 4.3, snap.AvgRating)

	assert.Equal(t, 4, snap.TeamSize)
	assert.Equal(t, 1, snap.TasksInProgress())
}

func TestSnapshotEmptyStartup(t *testing.T) {
	svc := NewService(&stubTaskRepo{}, &stubMilestoneRepo{}, &stubFeedbackRepo{}, &stubMemberRepo{})

	snap, err := svc.Snapshot(context.Background(), "startup-1")
	require.NoError(t, err)

	assert.Equal(t, 0, snap.TotalTasks)
	assert.Equal(t, 0, snap.CompletionRate)
	assert.Equal(t, 0.0, snap.AvgRating)
	assert.Empty(t, snap.FeedbackByCategory)
	// 固定档位始终存在
	assert.Equal(t, map[string]int{"todo": 0, "in_progress": 0, "review": 0, "done": 0}, snap.TaskStats)
}

func TestSnapshotIgnoresUnknownStates(t *testing.T) {
	svc := NewService(
		&stubTaskRepo{tasks: []*entity.Task{
			task("archived", "critical"),
			task(entity.TaskStatusDone, entity.TaskPriorityLow),
		}},
		&stubMilestoneRepo{milestones: []*entity.Milestone{{Status: "abandoned"}}},
		&stubFeedbackRepo{},
		&stubMemberRepo{count: 1},
	)

	snap, err := svc.Snapshot(context.Background(), "startup-1")
	require.NoError(t, err)

	// 未知状态计入总数但不进入固定档位
	assert.Equal(t, 2, snap.TotalTasks)
	assert.Equal(t, 1, snap.TaskStats["done"])
	assert.Equal(t, map[string]int{"low": 1, "medium": 0, "high": 0, "urgent": 0}, snap.PriorityStats)
	assert.Equal(t, 50, snap.CompletionRate)
	assert.Equal(t, 1, snap.TotalMilestones)
	assert.Equal(t, map[string]int{"pending": 0, "in_progress": 0, "completed": 0}, snap.MilestoneStats)
}

func TestSnapshotPropagatesRepoError(t *testing.T) {
	svc := NewService(
		&stubTaskRepo{err: assert.AnError},
		&stubMilestoneRepo{},
		&stubFeedbackRepo{},
		&stubMemberRepo{},
	)

	_, err := svc.Snapshot(context.Background(), "startup-1")

	assert.ErrorIs(t, err, assert.AnError)
}

func TestSnapshotCompletionRateRounds(t *testing.T) {
	tests := []struct {
		name  string
		tasks []*entity.Task
		want  int
	}{
		{
			name: "one third rounds down",
			tasks: []*entity.Task{
				task(entity.TaskStatusDone, entity.TaskPriorityLow),
				task(entity.TaskStatusTodo, entity.TaskPriorityLow),
				task(entity.TaskStatusTodo, entity.TaskPriorityLow),
			},
			want: 33,
		},
		{
			name: "two thirds rounds up",
			tasks: []*entity.Task{
				task(entity.TaskStatusDone, entity.TaskPriorityLow),
				task(entity.TaskStatusDone, entity.TaskPriorityLow),
				task(entity.TaskStatusTodo, entity.TaskPriorityLow),
			},
			want: 67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&stubTaskRepo{tasks: tt.tasks}, &stubMilestoneRepo{}, &stubFeedbackRepo{}, &stubMemberRepo{})

			snap, err := svc.Snapshot(context.Background(), "startup-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, snap.CompletionRate)
		})
	}
}
