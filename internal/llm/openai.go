package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

type OpenAIClient struct {
	client openai.Client
	model  string
	hasKey bool
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := openai.NewClient(opts...)
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}
	return &OpenAIClient{client: client, model: model, hasKey: apiKey != ""}
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (*Response, error) {
	if !c.hasKey {
		return nil, ErrMissingCredential
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return nil, &HTTPError{Status: apierr.StatusCode, Excerpt: truncate(apierr.Message, 200)}
		}
		return nil, &TransportError{Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResult
	}
	return &Response{Text: resp.Choices[0].Message.Content}, nil
}
