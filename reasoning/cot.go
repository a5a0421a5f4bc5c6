package reasoning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cotchat/completion"
	"cotchat/config"
	"cotchat/model"
)

// ChainOfThought reasons in rounds. Each round generates one more thought
// and asks the model whether the thoughts so far answer the question. Once
// they do, the thoughts are condensed into the answer the user sees.
//
// Rounds are not capped; cancel ctx to stop a model that never says Yes.
type ChainOfThought struct {
	completer Completer
	model     string
	retry     RetryPolicy
	onStep    StepFunc
}

func newChainOfThought(c Completer, s settings) *ChainOfThought {
	return &ChainOfThought{
		completer: c,
		model:     s.model,
		retry:     s.retry,
		onStep:    s.onStep,
	}
}

func (c *ChainOfThought) Name() string { return NameChainOfThought }

func (c *ChainOfThought) Think(ctx context.Context, history []model.Message, userMessage string) string {
	var thoughts []string
	for round := 1; ; round++ {
		thought, err := c.generate(ctx, history, userMessage, round)
		if err != nil {
			if config.Debug && config.DebugLog != nil {
				config.DebugLog.Warn("thought generation gave up", "round", round, "error", err)
			}
			return SynthesizeFallback
		}
		thoughts = append(thoughts, thought)
		c.emit(Step{Phase: PhaseThought, Round: round, Text: thought})

		if c.validate(ctx, history, userMessage, thoughts, round) {
			return c.synthesize(ctx, history, userMessage, thoughts)
		}
		if ctx.Err() != nil {
			return SynthesizeFallback
		}
	}
}

// generate produces one thought, retrying failed calls under the policy.
func (c *ChainOfThought) generate(ctx context.Context, history []model.Message, userMessage string, round int) (string, error) {
	var thought string
	attempts, err := c.retry.retry(ctx,
		func(int) error {
			text, err := c.completer.Complete(ctx, completion.Call{
				History:      history,
				Prompt:       userMessage,
				SystemPrompt: thinkingSystemPrompt,
				Model:        c.model,
			})
			if err != nil {
				return err
			}
			thought = text
			return nil
		},
		func(attempt int, err error, wait time.Duration) {
			if config.Debug && config.DebugLog != nil {
				config.DebugLog.Debug("retrying thought", "round", round, "attempt", attempt, "wait", wait, "error", err)
			}
			c.emit(Step{Phase: PhaseRetry, Round: round, Attempt: attempt, Err: err})
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w after %d attempts: %v", ErrRetriesExhausted, attempts, err)
	}
	return thought, nil
}

// validate asks whether thoughts answer userMessage. A failed call counts
// as No.
func (c *ChainOfThought) validate(ctx context.Context, history []model.Message, userMessage string, thoughts []string, round int) bool {
	resp, err := c.completer.Complete(ctx, completion.Call{
		History:      history,
		Prompt:       validatePrompt(userMessage, thoughts),
		SystemPrompt: validateSystemPrompt,
		Model:        c.model,
	})
	if err != nil {
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Warn("validation failed", "round", round, "error", err)
		}
		resp = ""
	}

	answered := IsAffirmative(resp)
	c.emit(Step{Phase: PhaseValidation, Round: round, Text: resp, Answered: answered})
	return answered
}

func (c *ChainOfThought) synthesize(ctx context.Context, history []model.Message, userMessage string, thoughts []string) string {
	answer, err := c.completer.Complete(ctx, completion.Call{
		History:      history,
		Prompt:       synthesizePrompt(userMessage, thoughts),
		SystemPrompt: synthesizeSystemPrompt,
		Model:        c.model,
	})
	answer = strings.TrimSpace(answer)
	if err != nil || answer == "" {
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Warn("synthesis failed", "thoughts", len(thoughts), "error", err)
		}
		return SynthesizeFallback
	}

	c.emit(Step{Phase: PhaseAnswer, Round: len(thoughts), Text: answer})
	return answer
}

func (c *ChainOfThought) emit(s Step) {
	if c.onStep != nil {
		c.onStep(s)
	}
}

// IsAffirmative reports whether a validation response means Yes. The match
// is a case-sensitive substring test, so "No, not Yes" is affirmative and
// "yes" is not.
func IsAffirmative(response string) bool {
	return strings.Contains(response, "Yes")
}
