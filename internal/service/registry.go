package service

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/interview-radar/internal/config"
	"github.com/fadilmartias/interview-radar/internal/errs"
)

// Registry resolves provider names to evaluators.
type Registry struct {
	evaluators map[string]EvaluatorInterface
	names      []string
	fallback   string
}

func NewRegistry(fallback string, evaluators ...EvaluatorInterface) *Registry {
	r := &Registry{
		evaluators: make(map[string]EvaluatorInterface, len(evaluators)),
		fallback:   strings.ToLower(fallback),
	}
	for _, e := range evaluators {
		if _, ok := r.evaluators[e.Name()]; !ok {
			r.names = append(r.names, e.Name())
		}
		r.evaluators[e.Name()] = e
	}
	return r
}

func NewDefaultRegistry() *Registry {
	return NewRegistry(
		config.LoadLLMConfig().DefaultProvider,
		NewOpenAIService(),
		NewGeminiService(),
		NewOpenRouterService(),
		NewCompatibleService(),
	)
}

// Get returns the evaluator for name, or the default provider when name is empty.
func (r *Registry) Get(name string) (EvaluatorInterface, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = r.fallback
	}
	e, ok := r.evaluators[name]
	if !ok {
		return nil, errs.Wrap(errs.ErrUnsupportedProvider, fmt.Errorf("provider %q", name))
	}
	return e, nil
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *Registry) Default() string {
	return r.fallback
}
