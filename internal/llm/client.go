// Package llm wraps the Gemini capabilities the pipeline delegates to:
// the acceptance gate, the topic classifier and the text simplifier.
// Every failure path resolves to a safe default at the call site; none
// of the capabilities lets a model error escape to the pipeline driver.
package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/easynewsgr/easynews/internal/ratelimit"
	"github.com/easynewsgr/easynews/internal/retry"
)

type Client struct {
	client    *genai.Client
	modelName string
	budget    *ratelimit.Budget
	retryCfg  retry.RetryConfig
}

func NewClient(ctx context.Context, apiKey, modelName string, budget *ratelimit.Budget, retryCfg retry.RetryConfig) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:    client,
		modelName: modelName,
		budget:    budget,
		retryCfg:  retryCfg,
	}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// generate sends one prompt against the configured model and returns
// the first candidate's text. configure may adjust the model (schema,
// token caps) before the call; nil leaves defaults.
func (c *Client) generate(ctx context.Context, prompt string, configure func(*genai.GenerativeModel)) (string, error) {
	if c.budget != nil {
		if err := c.budget.UseModel(); err != nil {
			return "", err
		}
	}

	model := c.client.GenerativeModel(c.modelName)
	if configure != nil {
		configure(model)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response")
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// generateWithRetry wraps generate with the bounded retry policy used
// by the classification and rewriting calls.
func (c *Client) generateWithRetry(ctx context.Context, prompt string, configure func(*genai.GenerativeModel)) (string, error) {
	var out string
	err := retry.WithRetry(ctx, c.retryCfg, func() error {
		var genErr error
		out, genErr = c.generate(ctx, prompt, configure)
		return genErr
	})
	return out, err
}
