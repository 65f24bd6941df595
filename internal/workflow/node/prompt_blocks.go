package node

import "fmt"

// Fallback 在字符串为空时返回默认值
func Fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// BuildTaskSummary 汇总任务进度为提示词片段
func BuildTaskSummary(total, done, inProgress int) string {
	return fmt.Sprintf("Total tasks: %d, Done: %d, In Progress: %d", total, done, inProgress)
}

// BuildMilestoneSummary 汇总里程碑进度为提示词片段
func BuildMilestoneSummary(total, completed int) string {
	return fmt.Sprintf("Total milestones: %d, Completed: %d", total, completed)
}

// BuildFeedbackSummary 汇总用户反馈为提示词片段；仅在有反馈时附带平均评分
func BuildFeedbackSummary(count int, avgRating float64) string {
	summary := fmt.Sprintf("Total feedback: %d", count)
	if count > 0 {
		summary += fmt.Sprintf(", Average rating: %.1f/5", avgRating)
	}
	return summary
}

// FormatAverageRating 格式化平均评分：无反馈时为 "0"，否则保留一位小数
func FormatAverageRating(count int, avgRating float64) string {
	if count == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", avgRating)
}

// BuildCustomContextBlock 将用户补充上下文拼接为提示词尾部段落
func BuildCustomContextBlock(text string) string {
	if text == "" {
		return ""
	}
	return "\n\nAdditional context from user: " + text
}

// BuildPitchCustomContextBlock 路演生成在补充上下文后额外附带整合引导语
func BuildPitchCustomContextBlock(text string) string {
	block := BuildCustomContextBlock(text)
	if block == "" {
		return ""
	}
	return block + "\nPlease incorporate this context into the pitch generation."
}
