package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/fadilmartias/interview-radar/internal/chart"
	"github.com/fadilmartias/interview-radar/internal/errs"
	"github.com/fadilmartias/interview-radar/internal/metrics"
	"github.com/fadilmartias/interview-radar/internal/model"
	"github.com/fadilmartias/interview-radar/internal/parser"
	"github.com/fadilmartias/interview-radar/internal/prompt"
	"github.com/fadilmartias/interview-radar/internal/service"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ChartFailedWarning is shown next to the raw reply when its scores could
// not be charted.
const ChartFailedWarning = "グラフの生成に失敗しました。出力形式をご確認ください。"

type EvaluationUsecase struct {
	providers *service.Registry
	renderer  *chart.Renderer
	format    chart.Format
	metrics   *metrics.Metrics
	inflight  singleflight.Group
}

func NewEvaluationUsecase(providers *service.Registry, renderer *chart.Renderer, format chart.Format, m *metrics.Metrics) *EvaluationUsecase {
	return &EvaluationUsecase{
		providers: providers,
		renderer:  renderer,
		format:    format,
		metrics:   m,
	}
}

func (uc *EvaluationUsecase) Providers() *service.Registry {
	return uc.providers
}

// Evaluate runs prompt, provider call, parsing and charting for one
// transcript. Identical requests already in flight share a single provider
// call, and the context of the first caller governs it.
func (uc *EvaluationUsecase) Evaluate(ctx context.Context, in model.EvaluationInput) (*model.EvaluationResult, error) {
	// An uploaded but empty transcript is still sent; only a missing key or
	// file makes the action inert, and the handler checks the file.
	if in.APIKey == "" {
		return nil, errs.ErrMissingInput
	}
	evaluator, err := uc.providers.Get(in.Provider)
	if err != nil {
		return nil, err
	}

	req := service.Request{
		APIKey:     in.APIKey,
		Model:      in.Model,
		Prompt:     prompt.Build(in.Transcript),
		Structured: in.Structured,
	}
	logger := log.WithFields(log.Fields{
		"provider":   evaluator.Name(),
		"model":      req.Model,
		"structured": req.Structured,
		"transcript": len(in.Transcript),
	})

	start := time.Now()
	v, err, shared := uc.inflight.Do(flightKey(evaluator.Name(), in), func() (any, error) {
		return evaluator.Evaluate(ctx, req)
	})
	elapsed := time.Since(start)
	if !shared {
		uc.metrics.ObserveEvaluation(evaluator.Name(), err, elapsed)
	}
	if err != nil {
		logger.WithError(err).Warn("evaluation failed")
		return nil, err
	}
	completion := v.(*service.Completion)

	result := &model.EvaluationResult{
		ID:         uuid.New(),
		Provider:   evaluator.Name(),
		Model:      completion.Model,
		RawText:    completion.Text,
		Structured: completion.Structured,
		Elapsed:    elapsed,
	}
	uc.plot(result)

	logger.WithFields(log.Fields{
		"id":      result.ID.String(),
		"axes":    result.Scores.Len(),
		"chart":   result.HasChart(),
		"elapsed": elapsed.Milliseconds(),
		"shared":  shared,
	}).Info("evaluation finished")
	return result, nil
}

// plot fills Scores and Chart. Any failure, including a panic, only sets
// ChartWarning; the raw reply is kept either way.
func (uc *EvaluationUsecase) plot(result *model.EvaluationResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("chart rendering panicked: %v", r)
			uc.chartFailed(result)
		}
	}()

	scores := uc.ParseText(result.RawText)
	result.Scores = scores
	uc.metrics.ObserveParsedAxes(scores.Len())
	if scores.Len() == 0 {
		return
	}
	img, err := uc.RenderScores(scores, uc.format)
	if err != nil {
		log.WithError(err).Warn("chart rendering failed")
		uc.chartFailed(result)
		return
	}
	result.Chart = img
}

func (uc *EvaluationUsecase) chartFailed(result *model.EvaluationResult) {
	uc.metrics.IncChartFailures()
	result.Chart = nil
	result.ChartWarning = ChartFailedWarning
}

// ParseText extracts scores from a reply. Structured JSON replies are read
// directly so their values keep the sign.
func (uc *EvaluationUsecase) ParseText(text string) *model.ScoreMap {
	if scores, ok := prompt.FromStructured(text); ok {
		return model.ScoreMapOf(scores...)
	}
	return parser.ParseScores(text)
}

func (uc *EvaluationUsecase) RenderScores(scores *model.ScoreMap, format chart.Format) (*model.ChartImage, error) {
	radar, err := chart.Build(scores, chart.DefaultTitle)
	if err != nil {
		return nil, err
	}
	img, err := uc.renderer.Render(radar, format)
	if err != nil {
		return nil, errors.Wrap(err, "render radar chart")
	}
	return img, nil
}

func flightKey(provider string, in model.EvaluationInput) string {
	h := sha256.New()
	for _, part := range []string{provider, in.Model, in.APIKey, strconv.FormatBool(in.Structured), in.Transcript} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
