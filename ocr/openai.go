package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared/constant"

	"github.com/casevault/ocrbatch/config"
)

// OpenAIProvider performs single extraction attempts against an
// OpenAI-compatible chat/completions endpoint. Retry policy lives in Client;
// the underlying SDK retries are disabled so the budget is owned in one place.
type OpenAIProvider struct {
	client    openai.Client
	model     string
	maxTokens int
}

// NewOpenAIProvider creates a provider from the endpoint configuration.
func NewOpenAIProvider(cfg config.OCR) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(cfg.ServerURL, "/") + "/"),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.RequestTimeout),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	} else {
		// The SDK refuses to build requests without a key; self-hosted
		// deployments commonly run without one.
		opts = append(opts, option.WithAPIKey("none"))
	}

	return &OpenAIProvider{
		client:    openai.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// ExtractText performs one synchronous extraction attempt.
func (p *OpenAIProvider) ExtractText(ctx context.Context, imageData []byte, opts ...Option) (Result, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	base64Image := base64.StdEncoding.EncodeToString(imageData)

	contentParts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Type: constant.Text("text"),
				Text: options.Prompt,
			},
		},
		{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				Type: constant.ImageURL("image_url"),
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL: fmt.Sprintf("data:image/png;base64,%s", base64Image),
				},
			},
		},
	}

	params := openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: contentParts,
					},
				},
			},
		},
	}
	params.MaxTokens = openai.Int(int64(p.maxTokens))
	params.Temperature = openai.Float(options.Temperature)

	startTime := time.Now()

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Result{}, classifyCallError(err)
	}

	processingTime := int(time.Since(startTime).Milliseconds())

	if len(completion.Choices) == 0 {
		return Result{}, ocrErrors.New(ErrBadResponse).
			WithDetail("reason", "response has no choices")
	}

	choice := completion.Choices[0]
	if choice.FinishReason != "stop" {
		return Result{}, ocrErrors.New(ErrTransient).
			WithDetail("finish_reason", choice.FinishReason)
	}

	text := stripFrontMatter(choice.Message.Content)
	if strings.TrimSpace(text) == "" {
		return Result{}, ocrErrors.New(ErrTransient).
			WithDetail("reason", "empty completion")
	}

	return Result{
		Text: text,
		Usage: Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
			ProcessingTime:   processingTime,
		},
	}, nil
}

// classifyCallError maps transport and HTTP failures onto the package's error
// codes. Auth rejections are permanent; everything the server might recover
// from is transient.
func classifyCallError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch {
		case apierr.StatusCode == http.StatusUnauthorized ||
			apierr.StatusCode == http.StatusForbidden:
			return ocrErrors.NewWithCause(ErrAuthFailed, err).
				WithDetail("status", apierr.StatusCode)
		case apierr.StatusCode == http.StatusRequestTimeout ||
			apierr.StatusCode == http.StatusConflict ||
			apierr.StatusCode == http.StatusTooEarly ||
			apierr.StatusCode == http.StatusTooManyRequests ||
			apierr.StatusCode >= 500:
			return ocrErrors.NewWithCause(ErrTransient, err).
				WithDetail("status", apierr.StatusCode)
		default:
			return ocrErrors.NewWithCause(ErrCallFailed, err).
				WithDetail("status", apierr.StatusCode)
		}
	}

	// No HTTP status: timeout, connection reset, DNS failure.
	return ocrErrors.NewWithCause(ErrTransient, err)
}
