package service

import (
	"context"
	"strings"
	"time"

	"github.com/fadilmartias/interview-radar/internal/config"
	"github.com/fadilmartias/interview-radar/internal/errs"
	"github.com/fadilmartias/interview-radar/internal/prompt"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

type OpenRouterService struct {
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
}

func NewOpenRouterService() *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	llm := config.LoadLLMConfig()
	return &OpenRouterService{
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		Timeout:     llm.RequestTimeout,
		Temperature: llm.Temperature,
	}
}

func (s *OpenRouterService) Name() string { return ProviderOpenRouter }

func (s *OpenRouterService) DefaultModel() string { return s.Model }

func (s *OpenRouterService) Evaluate(ctx context.Context, req Request) (*Completion, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	model := pickModel(req.Model, s.Model)

	payload := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
	}
	if s.Temperature >= 0 {
		payload["temperature"] = s.Temperature
	}
	if req.Structured {
		payload["response_format"] = map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   prompt.SchemaName,
				"strict": true,
				"schema": prompt.StructuredSchema(),
			},
		}
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(s.BaseURL, "/")).
		SetTimeout(s.Timeout)

	start := time.Now()
	resp, err := client.R().
		SetContext(ctx).
		SetAuthToken(req.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/chat/completions")
	log.Debugf("openrouter completion with model %s took %dms", model, time.Since(start).Milliseconds())
	if err != nil {
		return nil, classifyTransport(err)
	}

	body := resp.String()
	if resp.IsError() {
		return nil, errs.Classify(resp.StatusCode(), openRouterError(resp.StatusCode(), body))
	}
	// upstream provider failures can arrive with a 200 and an error object
	if e := gjson.Get(body, "error"); e.Exists() {
		return nil, errs.Classify(int(e.Get("code").Int()), openRouterError(resp.StatusCode(), body))
	}

	text := gjson.Get(body, "choices.0.message.content").String()
	if strings.TrimSpace(text) == "" {
		return nil, errs.ErrEmptyResponse
	}
	if m := gjson.Get(body, "model").String(); m != "" {
		model = m
	}
	return &Completion{Text: text, Model: model, Structured: req.Structured}, nil
}

func openRouterError(status int, body string) error {
	msg := gjson.Get(body, "error.message").String()
	if msg == "" {
		msg = strings.TrimSpace(body)
	}
	return errors.Errorf("openrouter: status %d: %s", status, msg)
}
