package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fadilmartias/interview-radar/internal/errs"
	"github.com/pkg/errors"
)

const (
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderCompatible = "compatible"
)

// Request is a single completion request. APIKey is supplied by the caller on
// every request and is never stored by a provider.
type Request struct {
	APIKey     string
	Model      string
	Prompt     string
	Structured bool
}

type Completion struct {
	Text       string
	Model      string
	Structured bool
}

//go:generate mockgen -source=./evaluator.go -destination=./mocks/evaluator.mock.go -package=svcmocks EvaluatorInterface
type EvaluatorInterface interface {
	Name() string
	DefaultModel() string
	// Evaluate sends the prompt once. Failures are classified with the errs
	// sentinels and are not retried.
	Evaluate(ctx context.Context, req Request) (*Completion, error)
}

func validateRequest(req Request) error {
	if req.APIKey == "" || strings.TrimSpace(req.Prompt) == "" {
		return errs.ErrMissingInput
	}
	return nil
}

func pickModel(requested, fallback string) string {
	if m := strings.TrimSpace(requested); m != "" {
		return m
	}
	return fallback
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// classifyTransport handles failures that never produced an HTTP status.
func classifyTransport(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return errs.Wrap(errs.ErrTransport, err)
}
