package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptInsightGeneralV1    PromptID = "insight_general_v1"
	PromptInsightTasksV1      PromptID = "insight_tasks_v1"
	PromptInsightMilestonesV1 PromptID = "insight_milestones_v1"
	PromptInsightGrowthV1     PromptID = "insight_growth_v1"
	PromptPitchDeckV1         PromptID = "pitch_deck_v1"
)

type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	systemPath, userPath, err := resolvePromptFiles(id)
	if err != nil {
		return nil, err
	}
	system, err := readEmbeddedText(systemPath)
	if err != nil {
		return nil, err
	}
	user, err := readEmbeddedText(userPath)
	if err != nil {
		return nil, err
	}

	tpl := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)
	r.cache[id] = tpl
	return tpl, nil
}

// resolvePromptFiles 映射提示词 ID 到内嵌模板文件；四类洞察共用同一份 system 指令
func resolvePromptFiles(id PromptID) (systemFile string, userFile string, err error) {
	switch id {
	case PromptInsightGeneralV1:
		return "templates/insight_v1.system.txt", "templates/insight_general_v1.user.txt", nil
	case PromptInsightTasksV1:
		return "templates/insight_v1.system.txt", "templates/insight_tasks_v1.user.txt", nil
	case PromptInsightMilestonesV1:
		return "templates/insight_v1.system.txt", "templates/insight_milestones_v1.user.txt", nil
	case PromptInsightGrowthV1:
		return "templates/insight_v1.system.txt", "templates/insight_growth_v1.user.txt", nil
	case PromptPitchDeckV1:
		return "templates/pitch_deck_v1.system.txt", "templates/pitch_deck_v1.user.txt", nil
	default:
		return "", "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
