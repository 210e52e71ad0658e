package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ChatClient is the part of the OpenAI client used here.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

var ErrEmptyCompletion = errors.New("empty completion")

// Completer sends single-prompt chat requests, caching answers by prompt
// hash and retrying failed calls with exponential backoff.
type Completer struct {
	Client      ChatClient
	Model       string
	Temperature float32
	Cache       Cache
	Retries     uint
	RetryDelay  time.Duration
	Log         *zap.Logger
}

func NewCompleter(client ChatClient, model string, cache Cache, log *zap.Logger) *Completer {
	if model == "" {
		model = openai.GPT4oMini
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Completer{
		Client:      client,
		Model:       model,
		Temperature: 0.3,
		Cache:       cache,
		Retries:     2,
		RetryDelay:  time.Second,
		Log:         log,
	}
}

func (c *Completer) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

// Complete returns the model's answer to prompt. kind separates cache
// entries of different request types.
func (c *Completer) Complete(ctx context.Context, kind, prompt string, maxTokens int) (string, error) {
	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt}
	return c.complete(ctx, kind, CacheKey(kind, prompt), msg, maxTokens)
}

// CompleteImage asks prompt about the image at imageURL. Answers are cached
// by image URL.
func (c *Completer) CompleteImage(ctx context.Context, kind, prompt, imageURL string, maxTokens int) (string, error) {
	msg := openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: imageURL, Detail: openai.ImageURLDetailLow},
			},
			{Type: openai.ChatMessagePartTypeText, Text: prompt},
		},
	}
	return c.complete(ctx, kind, CacheKey(kind, imageURL), msg, maxTokens)
}

func (c *Completer) complete(ctx context.Context, kind, key string, msg openai.ChatCompletionMessage, maxTokens int) (string, error) {
	if c.Cache != nil {
		if v, ok, err := c.Cache.Get(ctx, key); err != nil {
			c.logger().Warn("ai cache read failed", zap.String("kind", kind), zap.Error(err))
		} else if ok {
			return v, nil
		}
	}

	op := func() (string, error) {
		resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.Model,
			Temperature: c.Temperature,
			MaxTokens:   maxTokens,
			Messages:    []openai.ChatCompletionMessage{msg},
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", backoff.Permanent(ErrEmptyCompletion)
		}
		out := strings.TrimSpace(resp.Choices[0].Message.Content)
		if out == "" {
			return "", backoff.Permanent(ErrEmptyCompletion)
		}
		return out, nil
	}

	b := backoff.NewExponentialBackOff()
	if c.RetryDelay > 0 {
		b.InitialInterval = c.RetryDelay
	}
	out, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.Retries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger().Warn("ai request failed, retrying", zap.String("kind", kind), zap.Duration("next", next), zap.Error(err))
		}),
	)
	if err != nil {
		return "", fmt.Errorf("%s completion: %w", kind, err)
	}

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, key, out); err != nil {
			c.logger().Warn("ai cache write failed", zap.String("kind", kind), zap.Error(err))
		}
	}
	return out, nil
}
