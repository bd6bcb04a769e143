package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

type Client struct {
	client  *openai.Client
	model   string
	logger  Logger
	limiter *rate.Limiter
}

func NewClient(apiKey, model string, logger Logger, requestsPerMinute int) *Client {
	return NewClientWithConfig(openai.DefaultConfig(apiKey), model, logger, requestsPerMinute)
}

// NewClientWithConfig позволяет указать свой BaseURL, например для прокси или тестового сервера.
func NewClientWithConfig(cfg openai.ClientConfig, model string, logger Logger, requestsPerMinute int) *Client {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}
	return &Client{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		logger:  logger,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// createChatCompletionWithRateLimit ждет свободный слот лимитера и выполняет запрос.
func (c *Client) createChatCompletionWithRateLimit(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return openai.ChatCompletionResponse{}, fmt.Errorf("ожидание лимита запросов: %w", err)
	}
	return c.client.CreateChatCompletion(ctx, req)
}

func (c *Client) logRequest(ctx context.Context, role, prompt, response string, tokens int) {
	if c.logger == nil {
		return
	}
	// ошибка журнала игнорируется
	_ = c.logger.LogLLMRequest(ctx, role, prompt, response, c.model, tokens)
}
