package llm

import (
	"context"
	"fmt"

	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
	"google.golang.org/genai"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates an LLMClient backed by the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Complete implements domain.LLMClient.
//
// Text path: a fresh conversation seeded with convContext as a single prior
// user turn, then the prompt. Image path: one combined request with
// convContext+"\n"+prompt as text plus the image inline; no history seeding.
func (g *GeminiClient) Complete(
	ctx context.Context,
	prompt, convContext string,
	image *domain.ImageData,
) (string, error) {
	var contents []*genai.Content

	if image != nil {
		text := prompt
		if convContext != "" {
			text = convContext + "\n" + prompt
		}
		parts := []*genai.Part{
			genai.NewPartFromText(text),
			genai.NewPartFromBytes(image.Data, image.MIMEType),
		}
		contents = []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	} else {
		if convContext != "" {
			contents = append(contents, genai.NewContentFromText(convContext, genai.RoleUser))
		}
		contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}

	return text, nil
}
