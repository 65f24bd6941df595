package node

// TruncateByRunes 按 rune 数截断字符串, 用于限制日志里模型原始输出的长度
func TruncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		count++
		if count > maxRunes {
			return s[:i]
		}
	}
	return s
}
