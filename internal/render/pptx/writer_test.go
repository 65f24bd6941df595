package pptx

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "startupops-api/internal/workflow/model"
)

func testDeck() wfmodel.SlideDeck {
	return wfmodel.SlideDeck{
		Title: "Acme Pitch",
		Slides: []wfmodel.Slide{
			{Title: "Problem", Content: []string{"SMB payments are slow", "Fees are opaque"}},
			{Title: "Solution", Content: []string{"One-click settlement"}},
		},
	}
}

func openPackage(t *testing.T, data []byte) *zip.Reader {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return zr
}

func readPart(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(body)
	}
	t.Fatalf("part %s not found in package", name)
	return ""
}

func TestRenderPartInventory(t *testing.T) {
	data, err := NewWriter().Render(testDeck())
	require.NoError(t, err)

	zr := openPackage(t, data)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	// 部件顺序固定：9 个骨架部件在前，之后每页幻灯片两个部件
	assert.Equal(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideMasters/_rels/slideMaster1.xml.rels",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide2.xml.rels",
	}, names)
}

func TestRenderDeterministic(t *testing.T) {
	w := NewWriter()

	first, err := w.Render(testDeck())
	require.NoError(t, err)
	second, err := w.Render(testDeck())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderZipEntriesCarryNoTimestamp(t *testing.T) {
	data, err := NewWriter().Render(testDeck())
	require.NoError(t, err)

	// 零值头解码出的时间早于 DOS 纪元，任何真实时钟都不会早于 1980
	dosEpoch := time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, f := range openPackage(t, data).File {
		assert.True(t, f.Modified.Before(dosEpoch), "part %s carries a timestamp: %v", f.Name, f.Modified)
	}
}

func TestRenderSlideStyling(t *testing.T) {
	data, err := NewWriter().Render(testDeck())
	require.NoError(t, err)

	slide := readPart(t, openPackage(t, data), "ppt/slides/slide1.xml")

	assert.Contains(t, slide, `<a:rPr lang="en-US" sz="5400" b="1"/><a:t>Problem</a:t>`)
	assert.Contains(t, slide, `<a:rPr lang="en-US" sz="2800"/><a:t>• SMB payments are slow</a:t>`)
	assert.Contains(t, slide, `<a:rPr lang="en-US" sz="2800"/><a:t>• Fees are opaque</a:t>`)
	// 正文框自动换行，标题框不换行
	assert.Contains(t, slide, `<a:bodyPr wrap="none">`)
	assert.Contains(t, slide, `<a:bodyPr wrap="square">`)
}

func TestRenderSlideGeometry(t *testing.T) {
	data, err := NewWriter().Render(testDeck())
	require.NoError(t, err)

	zr := openPackage(t, data)

	// 10 x 7.5 英寸画布
	presentation := readPart(t, zr, "ppt/presentation.xml")
	assert.Contains(t, presentation, `<p:sldSz cx="9144000" cy="6858000"/>`)

	slide := readPart(t, zr, "ppt/slides/slide1.xml")
	assert.Contains(t, slide, `<a:off x="457200" y="457200"/><a:ext cx="8229600" cy="914400"/>`)
	assert.Contains(t, slide, `<a:off x="457200" y="1828800"/><a:ext cx="8229600" cy="4572000"/>`)
}

func TestRenderEscapesMarkup(t *testing.T) {
	deck := wfmodel.SlideDeck{
		Slides: []wfmodel.Slide{
			{Title: "Q&A <Live>", Content: []string{`Ask about "pricing"`}},
		},
	}

	data, err := NewWriter().Render(deck)
	require.NoError(t, err)

	slide := readPart(t, openPackage(t, data), "ppt/slides/slide1.xml")
	assert.Contains(t, slide, "<a:t>Q&amp;A &lt;Live&gt;</a:t>")
	assert.Contains(t, slide, "<a:t>• Ask about &quot;pricing&quot;</a:t>")
	assert.NotContains(t, slide, "<Live>")
}

func TestRenderEmptyTitleAndContent(t *testing.T) {
	deck := wfmodel.SlideDeck{Slides: []wfmodel.Slide{{}}}

	data, err := NewWriter().Render(deck)
	require.NoError(t, err)

	slide := readPart(t, openPackage(t, data), "ppt/slides/slide1.xml")
	assert.Contains(t, slide, "<a:t>Slide</a:t>")
	// 无内容时正文框保留一个空段落
	assert.Contains(t, slide, "<a:lstStyle/><a:p/></p:txBody>")
}

func TestRenderEmptyDeck(t *testing.T) {
	data, err := NewWriter().Render(wfmodel.SlideDeck{})
	require.NoError(t, err)

	zr := openPackage(t, data)
	assert.Len(t, zr.File, 9)

	presentation := readPart(t, zr, "ppt/presentation.xml")
	assert.Contains(t, presentation, "<p:sldIdLst/>")

	contentTypes := readPart(t, zr, "[Content_Types].xml")
	assert.NotContains(t, contentTypes, "/ppt/slides/")
}

func TestRenderRelationshipsPerSlide(t *testing.T) {
	data, err := NewWriter().Render(testDeck())
	require.NoError(t, err)

	zr := openPackage(t, data)

	rels := readPart(t, zr, "ppt/_rels/presentation.xml.rels")
	assert.Contains(t, rels, `Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"`)
	assert.Contains(t, rels, `Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide2.xml"`)

	presentation := readPart(t, zr, "ppt/presentation.xml")
	assert.Contains(t, presentation, `<p:sldId id="256" r:id="rId2"/>`)
	assert.Contains(t, presentation, `<p:sldId id="257" r:id="rId3"/>`)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name        string
		startupName string
		want        string
	}{
		{name: "empty name falls back", startupName: "", want: "pitch_pitch.pptx"},
		{name: "spaces to underscores", startupName: "Acme Corp", want: "acme_corp_pitch.pptx"},
		{name: "lowercased", startupName: "FinTech", want: "fintech_pitch.pptx"},
		{name: "multiple words", startupName: "My Great Startup", want: "my_great_startup_pitch.pptx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.startupName))
		})
	}
}
