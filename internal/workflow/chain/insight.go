package chain

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	llmctx "startupops-api/internal/domain/service"
	wfmodel "startupops-api/internal/workflow/model"
	wfnode "startupops-api/internal/workflow/node"
	workflowport "startupops-api/internal/workflow/port"
	workflowprompt "startupops-api/internal/workflow/prompt"
)

// InsightChain 经营洞察生成链：模板渲染与模型调用
type InsightChain struct {
	factory workflowport.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.InsightGenerateInput, *schema.Message]
	chainErr  error
}

func NewInsightChain(factory workflowport.ChatModelFactory) *InsightChain {
	return &InsightChain{factory: factory}
}

func (c *InsightChain) Invoke(ctx context.Context, in *wfmodel.InsightGenerateInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return nil, err
	}
	return chain.Invoke(ctx, in)
}

type insightChainState struct {
	In       *wfmodel.InsightGenerateInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *InsightChain) getChain() (compose.Runnable[*wfmodel.InsightGenerateInput, *schema.Message], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *InsightChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.InsightGenerateInput, *schema.Message], error) {
	chain := compose.NewChain[*wfmodel.InsightGenerateInput, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.InsightGenerateInput) (*insightChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &insightChainState{In: in}, nil
		}),
		compose.WithNodeName("insight.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *insightChainState) (*insightChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			msgs, err := formatInsightMessages(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("insight.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *insightChainState) (*insightChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			if c.factory == nil {
				return nil, fmt.Errorf("llm factory not configured")
			}

			ctx = llmctx.WithWorkflowProvider(ctx, llmctx.WorkflowInsightGenerate, strings.TrimSpace(st.In.Provider))
			chatModel, err := c.factory.Get(ctx, strings.TrimSpace(st.In.Provider))
			if err != nil {
				return nil, err
			}

			outMsg, err := chatModel.Generate(ctx, st.Messages)
			if err != nil {
				return nil, err
			}
			if outMsg == nil {
				return nil, fmt.Errorf("empty llm response")
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("insight.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *insightChainState) (*schema.Message, error) {
			if st == nil || st.OutMsg == nil {
				return nil, fmt.Errorf("state is nil")
			}
			return st.OutMsg, nil
		}),
		compose.WithNodeName("insight.finalize"),
	)

	return chain.Compile(ctx)
}

var defaultPromptRegistry = workflowprompt.NewRegistry()

// promptIDForKind 选择洞察类别对应的模板；未知类别回退到 general
func promptIDForKind(kind wfmodel.InsightKind) workflowprompt.PromptID {
	switch kind {
	case wfmodel.InsightKindTasks:
		return workflowprompt.PromptInsightTasksV1
	case wfmodel.InsightKindMilestones:
		return workflowprompt.PromptInsightMilestonesV1
	case wfmodel.InsightKindGrowth:
		return workflowprompt.PromptInsightGrowthV1
	default:
		return workflowprompt.PromptInsightGeneralV1
	}
}

func formatInsightMessages(ctx context.Context, in *wfmodel.InsightGenerateInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(promptIDForKind(in.Kind))
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"name":              wfnode.Fallback(in.StartupName, "Unknown"),
		"industry":          wfnode.Fallback(in.Industry, "Unknown"),
		"stage":             wfnode.Fallback(in.Stage, "idea"),
		"task_summary":      wfnode.BuildTaskSummary(in.TaskTotal, in.TaskDone, in.TaskInProgress),
		"milestone_summary": wfnode.BuildMilestoneSummary(in.MilestoneTotal, in.MilestoneCompleted),
		"feedback_summary":  wfnode.BuildFeedbackSummary(in.FeedbackCount, in.FeedbackAvgRating),
		"custom_block":      wfnode.BuildCustomContextBlock(in.CustomPrompt),
	}
	return tpl.Format(ctx, vars)
}
