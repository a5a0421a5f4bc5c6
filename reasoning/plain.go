package reasoning

import (
	"context"

	"cotchat/completion"
	"cotchat/config"
	"cotchat/model"
)

// Plain answers with a single completion call.
type Plain struct {
	completer    Completer
	model        string
	systemPrompt string
	onStep       StepFunc
}

func newPlain(c Completer, s settings) *Plain {
	return &Plain{
		completer:    c,
		model:        s.model,
		systemPrompt: defaultSystemPrompt,
		onStep:       s.onStep,
	}
}

func (p *Plain) Name() string { return NamePlain }

func (p *Plain) Think(ctx context.Context, history []model.Message, userMessage string) string {
	answer, err := p.completer.Complete(ctx, completion.Call{
		History:      history,
		Prompt:       userMessage,
		SystemPrompt: p.systemPrompt,
		Model:        p.model,
	})
	if err != nil {
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Warn("plain completion failed", "error", err)
		}
		return PlainFallback
	}

	if p.onStep != nil {
		p.onStep(Step{Phase: PhaseAnswer, Round: 1, Text: answer})
	}
	return answer
}
