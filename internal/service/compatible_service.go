package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/interview-radar/internal/config"
	"github.com/fadilmartias/interview-radar/internal/errs"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// CompatibleService talks to any endpoint implementing the OpenAI chat
// completions API. Structured output is not requested from it.
type CompatibleService struct {
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
}

func NewCompatibleService() *CompatibleService {
	cfg := config.LoadCompatibleConfig()
	llm := config.LoadLLMConfig()
	return &CompatibleService{
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		Timeout:     llm.RequestTimeout,
		Temperature: llm.Temperature,
	}
}

func (s *CompatibleService) Name() string { return ProviderCompatible }

func (s *CompatibleService) DefaultModel() string { return s.Model }

func (s *CompatibleService) Evaluate(ctx context.Context, req Request) (*Completion, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	model := pickModel(req.Model, s.Model)

	opts := []openai.Option{
		openai.WithToken(req.APIKey),
		openai.WithModel(model),
		openai.WithHTTPClient(newHTTPClient(s.Timeout)),
	}
	if s.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(s.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "compatible: create client")
	}

	var callOpts []llms.CallOption
	if s.Temperature >= 0 {
		callOpts = append(callOpts, llms.WithTemperature(s.Temperature))
	}

	start := time.Now()
	text, err := llms.GenerateFromSinglePrompt(ctx, llm, req.Prompt, callOpts...)
	log.Debugf("compatible completion with model %s took %dms", model, time.Since(start).Milliseconds())
	if err != nil {
		return nil, classifyCompatibleError(err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errs.ErrEmptyResponse
	}
	return &Completion{Text: text, Model: model}, nil
}

var statusCodePattern = regexp.MustCompile(`status code: (\d{3})`)

// langchaingo reports HTTP failures as plain errors carrying the status in the message.
func classifyCompatibleError(err error) error {
	// the HTTP client's own empty-choices error is unexported, so it is matched by text
	if errors.Is(err, openai.ErrEmptyResponse) || err.Error() == "empty response" {
		return errs.Wrap(errs.ErrEmptyResponse, err)
	}
	if m := statusCodePattern.FindStringSubmatch(err.Error()); m != nil {
		status, _ := strconv.Atoi(m[1])
		return errs.Classify(status, err)
	}
	return classifyTransport(err)
}
