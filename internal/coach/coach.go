package coach

import (
	"context"
	"fmt"

	"github.com/chris/unhook/internal/llm"
)

type UseCase string

const (
	BreakUrge    UseCase = "urge"
	SuggestHobby UseCase = "hobby"
)

// Per-use-case sampling knobs. Hobby suggestions run hotter so repeated
// calls don't return the same list; both ceilings bound response cost.
const (
	urgeTemperature  = 0.7
	urgeMaxTokens    = 200
	hobbyTemperature = 0.8
	hobbyMaxTokens   = 300
)

// Result is the normalized output of one completion. Suggestions is
// populated only for SuggestHobby.
type Result struct {
	Text        string
	Suggestions []string
}

// Coach builds the fixed prompt pair for a use case, submits it, and
// normalizes the reply. It performs exactly one attempt per call and has
// no side effects beyond the outbound request; in particular it never
// touches the streak.
type Coach struct {
	client llm.Client
}

func New(client llm.Client) *Coach {
	return &Coach{client: client}
}

func (c *Coach) Complete(ctx context.Context, useCase UseCase, userContext string) (*Result, error) {
	var req llm.Request
	switch useCase {
	case BreakUrge:
		req = llm.Request{
			System:      urgeSystemPrompt,
			User:        urgeUserPrompt,
			Temperature: urgeTemperature,
			MaxTokens:   urgeMaxTokens,
		}
	case SuggestHobby:
		req = llm.Request{
			System:      hobbySystemPrompt,
			User:        hobbyUserPrompt(userContext),
			Temperature: hobbyTemperature,
			MaxTokens:   hobbyMaxTokens,
		}
	default:
		return nil, fmt.Errorf("unknown use case: %s", useCase)
	}

	resp, err := c.client.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &Result{Text: resp.Text}
	if useCase == SuggestHobby {
		result.Suggestions = ParseSuggestions(resp.Text)
	}
	return result, nil
}
