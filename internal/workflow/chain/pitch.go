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
	"startupops-api/pkg/logger"
)

// PitchChain 路演文稿生成链：模板渲染、模型调用与分层解码
type PitchChain struct {
	factory workflowport.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.PitchGenerateInput, *wfmodel.PitchGenerateOutput]
	chainErr  error
}

func NewPitchChain(factory workflowport.ChatModelFactory) *PitchChain {
	return &PitchChain{factory: factory}
}

func (c *PitchChain) Invoke(ctx context.Context, in *wfmodel.PitchGenerateInput) (*wfmodel.PitchGenerateOutput, error) {
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

type pitchChainState struct {
	In       *wfmodel.PitchGenerateInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *PitchChain) getChain() (compose.Runnable[*wfmodel.PitchGenerateInput, *wfmodel.PitchGenerateOutput], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *PitchChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.PitchGenerateInput, *wfmodel.PitchGenerateOutput], error) {
	chain := compose.NewChain[*wfmodel.PitchGenerateInput, *wfmodel.PitchGenerateOutput]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.PitchGenerateInput) (*pitchChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &pitchChainState{In: in}, nil
		}),
		compose.WithNodeName("pitch.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *pitchChainState) (*pitchChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			msgs, err := formatPitchMessages(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("pitch.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *pitchChainState) (*pitchChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			if c.factory == nil {
				return nil, fmt.Errorf("llm factory not configured")
			}

			ctx = llmctx.WithWorkflowProvider(ctx, llmctx.WorkflowPitchGenerate, strings.TrimSpace(st.In.Provider))
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
		compose.WithNodeName("pitch.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *pitchChainState) (*wfmodel.PitchGenerateOutput, error) {
			if st == nil || st.In == nil || st.OutMsg == nil {
				return nil, fmt.Errorf("state is nil")
			}

			fallback := wfnode.FallbackDeck(st.In.StartupName, st.In.Industry, st.In.Description)
			deck, tier := wfnode.DecodeDeck(st.OutMsg.Content, fallback)
			raw := wfnode.StripCodeFence(st.OutMsg.Content)
			switch tier {
			case wfnode.TierRepaired:
				logger.Warn(ctx, "pitch deck json parse failed, repaired content arrays")
			case wfnode.TierFallback:
				logger.Warn(ctx, "pitch deck json repair failed, using fallback deck",
					"raw", wfnode.TruncateByRunes(raw, 1000),
				)
			}

			return &wfmodel.PitchGenerateOutput{
				Deck: deck,
				Tier: string(tier),
				Raw:  raw,
			}, nil
		}),
		compose.WithNodeName("pitch.finalize"),
	)

	return chain.Compile(ctx)
}

func formatPitchMessages(ctx context.Context, in *wfmodel.PitchGenerateInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptPitchDeckV1)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"name":                 wfnode.Fallback(in.StartupName, "Unknown"),
		"industry":             wfnode.Fallback(in.Industry, "Unknown"),
		"stage":                wfnode.Fallback(in.Stage, "idea"),
		"description":          wfnode.Fallback(in.Description, "No description"),
		"team_size":            in.TeamSize,
		"tasks_done":           in.TaskDone,
		"tasks_total":          in.TaskTotal,
		"milestones_completed": in.MilestoneCompleted,
		"milestones_total":     in.MilestoneTotal,
		"avg_rating":           wfnode.FormatAverageRating(in.FeedbackCount, in.FeedbackAvgRating),
		"custom_block":         wfnode.BuildPitchCustomContextBlock(in.CustomPrompt),
	}
	return tpl.Format(ctx, vars)
}
