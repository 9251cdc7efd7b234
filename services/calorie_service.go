package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// CalorieEstimator guesses the calorie count for a food label.
type CalorieEstimator interface {
	Estimate(ctx context.Context, label string) (int, error)
}

// LLMCalorieEstimator asks an OpenAI-compatible endpoint for a calorie count
// and extracts the first integer from the reply.
type LLMCalorieEstimator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewLLMCalorieEstimator builds an estimator against any OpenAI-compatible
// endpoint. apiKey may be empty for local endpoints.
func NewLLMCalorieEstimator(baseURL, apiKey, model string, logger *zap.Logger) (*LLMCalorieEstimator, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")

	return &LLMCalorieEstimator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger.Named("calories"),
	}, nil
}

func (e *LLMCalorieEstimator) Estimate(ctx context.Context, label string) (int, error) {
	prompt := fmt.Sprintf("How many calories are in %s? Answer with just the number.", label)

	start := time.Now()
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0,
	})
	if err != nil {
		return 0, fmt.Errorf("calorie inference failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("no choices in response")
	}

	calories, err := ExtractCalories(resp.Choices[0].Message.Content)
	if err != nil {
		return 0, err
	}

	e.logger.Debug("calorie estimate",
		zap.String("label", label),
		zap.Int("calories", calories),
		zap.Duration("elapsed", time.Since(start)))
	return calories, nil
}

var intRe = regexp.MustCompile(`\d+`)

// ExtractCalories pulls the first integer out of a model reply.
func ExtractCalories(text string) (int, error) {
	m := intRe.FindString(text)
	if m == "" {
		return 0, fmt.Errorf("no calorie value in output: %q", text)
	}
	return strconv.Atoi(m)
}
