package model

// PitchGenerateInput 路演文稿生成输入
type PitchGenerateInput struct {
	StartupName string
	Industry    string
	Stage       string
	Description string

	TeamSize int

	TaskTotal int
	TaskDone  int

	MilestoneTotal     int
	MilestoneCompleted int

	FeedbackCount     int
	FeedbackAvgRating float64

	CustomPrompt string

	Provider string
}

// PitchGenerateOutput 路演文稿生成结果
type PitchGenerateOutput struct {
	Deck SlideDeck
	// Tier 记录解码命中的层级：direct/repaired/fallback
	Tier string
	// Raw 为剥离代码块围栏后的模型原始输出
	Raw string
}
