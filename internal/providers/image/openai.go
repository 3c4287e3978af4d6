package image

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"futureself/internal/domain"
)

// OpenAIGenerator renders the future-self portrait in two steps: a vision
// call describes the visitor's face as a detailed prompt, then an image
// call renders it. Each step is a single attempt; if the vision step fails
// the static instruction is used instead.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	visionModel string
	hasCreds    bool
}

// NewOpenAIGenerator configures the OpenAI adapter. baseURL overrides the
// default endpoint when set.
func NewOpenAIGenerator(apiKey, baseURL, model, visionModel string) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = "gpt-image-1"
	}
	if visionModel == "" {
		visionModel = "gpt-4o"
	}
	return &OpenAIGenerator{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		visionModel: visionModel,
		hasCreds:    strings.TrimSpace(apiKey) != "",
	}
}

// HasCredentials reports whether an API key was configured.
func (g *OpenAIGenerator) HasCredentials() bool {
	return g != nil && g.hasCreds
}

// Generate fulfils the Generator interface.
func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	if g == nil || !g.hasCreds {
		return nil, fmt.Errorf("%w: missing credentials", domain.ErrProviderFailure)
	}
	if len(req.Photo) == 0 {
		return nil, fmt.Errorf("%w: photo is required", domain.ErrProviderFailure)
	}

	prompt := g.describePortrait(ctx, req)

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Model:          g.model,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: openai image generation: %v", domain.ErrProviderFailure, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: openai image generation: empty response", domain.ErrProviderFailure)
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", domain.ErrProviderFailure, err)
	}
	return &Asset{Data: data, Format: "png"}, nil
}

// describePortrait runs the vision step. Failures fall through to the
// static instruction so generation still gets one attempt.
func (g *OpenAIGenerator) describePortrait(ctx context.Context, req GenerateRequest) string {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write extremely detailed photorealistic portrait prompts that preserve the person's identity.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: BuildVisionInstruction(req.Career),
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURI(req.Photo)},
					},
				},
			},
		},
	})
	if err != nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return BuildInstruction(req.Career)
	}
	return resp.Choices[0].Message.Content
}

func dataURI(photo []byte) string {
	mime := http.DetectContentType(photo)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(photo)
}

var _ Generator = (*OpenAIGenerator)(nil)
