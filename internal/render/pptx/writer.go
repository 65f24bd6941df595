// Package pptx 将结构化路演文稿渲染为 OOXML 演示文档。
// 部件顺序固定、zip 时间戳清零，同一文稿两次渲染字节完全一致。
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	wfmodel "startupops-api/internal/workflow/model"
	"startupops-api/pkg/errors"
)

// ContentType PPTX 下载响应的 MIME 类型
const ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Writer 无状态的 PPTX 渲染器
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

type part struct {
	name string
	body string
}

// Render 渲染文稿为 PPTX 字节流；空文稿渲染为无幻灯片的合法文档
func (w *Writer) Render(deck wfmodel.SlideDeck) ([]byte, error) {
	parts := make([]part, 0, 9+2*len(deck.Slides))
	parts = append(parts,
		part{"[Content_Types].xml", contentTypesXML(len(deck.Slides))},
		part{"_rels/.rels", rootRelsXML},
		part{"ppt/presentation.xml", presentationXML(len(deck.Slides))},
		part{"ppt/_rels/presentation.xml.rels", presentationRelsXML(len(deck.Slides))},
		part{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		part{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML},
		part{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		part{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML},
		part{"ppt/theme/theme1.xml", themeXML},
	)
	for i, slide := range deck.Slides {
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(slide)},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRelsXML},
		)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		// Modified 保持零值，归档不携带时间戳
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return nil, errors.ErrRenderFailed.WithError(fmt.Errorf("failed to create part %s: %w", p.name, err))
		}
		if _, err := fw.Write([]byte(p.body)); err != nil {
			return nil, errors.ErrRenderFailed.WithError(fmt.Errorf("failed to write part %s: %w", p.name, err))
		}
	}
	if err := zw.Close(); err != nil {
		return nil, errors.ErrRenderFailed.WithError(fmt.Errorf("failed to finalize package: %w", err))
	}
	return buf.Bytes(), nil
}

// Filename 由项目名派生下载文件名：空格转下划线并整体小写
func Filename(startupName string) string {
	name := startupName
	if name == "" {
		name = "pitch"
	}
	return strings.ToLower(strings.ReplaceAll(name, " ", "_")) + "_pitch.pptx"
}
