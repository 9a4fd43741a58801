package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/interview-radar/internal/config"
	"github.com/fadilmartias/interview-radar/internal/errs"
	"github.com/fadilmartias/interview-radar/internal/prompt"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

type GeminiService struct {
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
}

func NewGeminiService() *GeminiService {
	cfg := config.LoadGeminiConfig()
	llm := config.LoadLLMConfig()
	return &GeminiService{
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		Timeout:     llm.RequestTimeout,
		Temperature: llm.Temperature,
	}
}

func (s *GeminiService) Name() string { return ProviderGemini }

func (s *GeminiService) DefaultModel() string { return s.Model }

func (s *GeminiService) Evaluate(ctx context.Context, req Request) (*Completion, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	model := pickModel(req.Model, s.Model)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      req.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  newHTTPClient(s.Timeout),
		HTTPOptions: genai.HTTPOptions{BaseURL: s.BaseURL},
	})
	if err != nil {
		return nil, errors.Wrap(err, "gemini: create client")
	}

	genConfig := &genai.GenerateContentConfig{}
	if s.Temperature >= 0 {
		genConfig.Temperature = genai.Ptr(float32(s.Temperature))
	}
	if req.Structured {
		genConfig.ResponseMIMEType = "application/json"
		genConfig.ResponseJsonSchema = prompt.StructuredSchema()
	}

	start := time.Now()
	result, err := client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), genConfig)
	log.Debugf("gemini completion with model %s took %dms", model, time.Since(start).Milliseconds())
	if err != nil {
		return nil, classifyGeminiError(err)
	}
	if err := validateGenerateResponse(result); err != nil {
		return nil, errs.Wrap(errs.ErrEmptyResponse, err)
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return nil, errs.ErrEmptyResponse
	}
	if result.ModelVersion != "" {
		model = result.ModelVersion
	}
	return &Completion{Text: text, Model: model, Structured: req.Structured}, nil
}

// genai returns APIError by value.
func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return errs.Classify(apiErr.Code, err)
	}
	return classifyTransport(err)
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}
