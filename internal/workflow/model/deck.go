package model

// Slide 路演文稿中的单页幻灯片
type Slide struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// SlideDeck 结构化路演文稿，模型输出与 PPTX 渲染共用的中间表示
type SlideDeck struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

// SlideCount 返回幻灯片数量
func (d *SlideDeck) SlideCount() int {
	if d == nil {
		return 0
	}
	return len(d.Slides)
}
