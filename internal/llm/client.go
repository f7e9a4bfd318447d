package llm

import "context"

// Request is one single-turn completion call. It is built fresh per call
// and never persisted.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

type Response struct {
	Text string
}

type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}
