package ai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// Result is the uniform outcome of one text generation call. Exactly one
// of the two shapes applies: Success with Text, or failure with Error.
type Result struct {
	Success bool
	Text    string
	Error   string
}

// TextGenerator is the boundary around the language-model provider.
// Implementations must never panic or leak transport errors; every
// failure mode is folded into Result.Error. No retries.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) Result
}

// Gateway is the OpenAI-backed TextGenerator. Model and credentials are
// process-wide configuration; the prompt is passed through opaquely.
type Gateway struct {
	client *openai.Client
	model  shared.ResponsesModel
}

// NewGateway constructs a Gateway for the given API key and model id.
// An empty model falls back to gpt-4o.
func NewGateway(apiKey, model string) *Gateway {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = string(shared.ChatModelGPT4o)
	}
	return &Gateway{client: &client, model: shared.ResponsesModel(model)}
}

func (g *Gateway) Generate(ctx context.Context, prompt string) Result {
	resp, err := g.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: g.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
	})
	if err != nil {
		return Result{Error: "text generation request failed: " + err.Error()}
	}

	text := resp.OutputText()
	if text == "" {
		return Result{Error: "the model returned an empty response"}
	}
	return Result{Success: true, Text: text}
}
