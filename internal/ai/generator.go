package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/takara45/ai-seo-homepage/internal/utils"
)

// ErrMissingAPIKey means the generative-model credential is absent. This is
// fatal for the whole session and must be caught at startup, before the first
// interview question is shown.
var ErrMissingAPIKey = errors.New("ai: OPENAI_API_KEY is not set")

// GenerationError marks a structured model call that failed or returned
// output not conforming to the requested schema. Callers surface a message
// and allow retry without losing interview state.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("ai: %s failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsGenerationError reports whether err is (or wraps) a GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

// Generator wraps the OpenAI client for structured content generation and
// image synthesis. Construct it once in main and pass it down; there is no
// package-level client.
type Generator struct {
	client     *openai.Client
	chatModel  string
	imageModel string
}

// NewGenerator builds a Generator. It fails with ErrMissingAPIKey when the
// credential is absent so startup can abort before any user input.
func NewGenerator(apiKey, chatModel, imageModel string) (*Generator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if chatModel == "" {
		chatModel = openai.GPT4o
	}
	if imageModel == "" {
		imageModel = openai.CreateImageModelDallE3
	}
	return &Generator{
		client:     openai.NewClient(apiKey),
		chatModel:  chatModel,
		imageModel: imageModel,
	}, nil
}

// structuredCompletion performs one schema-constrained chat completion,
// retrying once on transient errors, and returns the raw message content.
func (g *Generator) structuredCompletion(ctx context.Context, op, schemaName string, schema *jsonschema.Definition, systemPrompt, userPrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: schema,
				Strict: true,
			},
		},
		Temperature: 0.3,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil && utils.ShouldRetry(err) {
		log.Printf("OpenAI %s call failed, retrying once after delay... Error: %v", op, err)
		time.Sleep(2 * time.Second)
		resp, err = g.client.CreateChatCompletion(ctx, req)
	}
	if err != nil {
		return "", &GenerationError{Op: op, Err: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Printf("OpenAI usage for empty %s response: %+v", op, resp.Usage)
		return "", &GenerationError{Op: op, Err: errors.New("model returned empty response")}
	}
	return resp.Choices[0].Message.Content, nil
}

// cleanJSON strips markdown code fences some models wrap around JSON output.
func cleanJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
