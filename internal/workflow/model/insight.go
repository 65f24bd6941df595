package model

// InsightKind 洞察生成的提示词类别
type InsightKind string

const (
	InsightKindGeneral    InsightKind = "general"
	InsightKindTasks      InsightKind = "tasks"
	InsightKindMilestones InsightKind = "milestones"
	InsightKindGrowth     InsightKind = "growth"
)

// InsightGenerateInput 洞察生成输入：由应用层从经营数据汇总而来
type InsightGenerateInput struct {
	Kind InsightKind

	StartupName string
	Industry    string
	Stage       string

	TaskTotal      int
	TaskDone       int
	TaskInProgress int

	MilestoneTotal     int
	MilestoneCompleted int

	FeedbackCount     int
	FeedbackAvgRating float64

	CustomPrompt string

	Provider string
}
