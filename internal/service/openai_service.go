package service

import (
	"context"
	"strings"
	"time"

	"github.com/fadilmartias/interview-radar/internal/config"
	"github.com/fadilmartias/interview-radar/internal/errs"
	"github.com/fadilmartias/interview-radar/internal/prompt"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type OpenAIService struct {
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
}

func NewOpenAIService() *OpenAIService {
	cfg := config.LoadOpenAIConfig()
	llm := config.LoadLLMConfig()
	return &OpenAIService{
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		Timeout:     llm.RequestTimeout,
		Temperature: llm.Temperature,
	}
}

func (s *OpenAIService) Name() string { return ProviderOpenAI }

func (s *OpenAIService) DefaultModel() string { return s.Model }

func (s *OpenAIService) Evaluate(ctx context.Context, req Request) (*Completion, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	model := pickModel(req.Model, s.Model)

	// the key option comes last so it wins over OPENAI_API_KEY picked up by the SDK defaults
	opts := []option.RequestOption{
		option.WithHTTPClient(newHTTPClient(s.Timeout)),
		option.WithMaxRetries(0),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	opts = append(opts, option.WithAPIKey(req.APIKey))
	client := openai.NewClient(opts...)

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Model: model,
	}
	if s.Temperature >= 0 {
		params.Temperature = openai.Float(s.Temperature)
	}
	if req.Structured {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   prompt.SchemaName,
					Schema: prompt.StructuredSchema(),
					Strict: openai.Bool(true),
				},
			},
		}
	}

	start := time.Now()
	chat, err := client.Chat.Completions.New(ctx, params)
	log.Debugf("openai completion with model %s took %dms", model, time.Since(start).Milliseconds())
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	if len(chat.Choices) == 0 {
		return nil, errs.ErrEmptyResponse
	}
	text := chat.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return nil, errs.ErrEmptyResponse
	}
	if chat.Model != "" {
		model = chat.Model
	}
	return &Completion{Text: text, Model: model, Structured: req.Structured}, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return errs.Classify(apiErr.StatusCode, err)
	}
	return classifyTransport(err)
}
