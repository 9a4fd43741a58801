package dto

import (
	"github.com/fadilmartias/interview-radar/internal/model"
	"github.com/google/uuid"
)

type EvaluationDTO struct {
	ID           uuid.UUID       `json:"id"`
	Provider     string          `json:"provider"`
	Model        string          `json:"model"`
	RawText      string          `json:"raw_text"`
	Scores       *model.ScoreMap `json:"scores"`
	Chart        string          `json:"chart,omitempty"`
	ChartWarning string          `json:"chart_warning,omitempty"`
}

func NewEvaluationDTO(r *model.EvaluationResult) EvaluationDTO {
	data := EvaluationDTO{
		ID:           r.ID,
		Provider:     r.Provider,
		Model:        r.Model,
		RawText:      r.RawText,
		Scores:       r.Scores,
		ChartWarning: r.ChartWarning,
	}
	if r.HasChart() {
		data.Chart = r.Chart.DataURI()
	}
	return data
}

type ScoresRequest struct {
	Text string `json:"text"`
}

type ScoresDTO struct {
	Scores *model.ScoreMap `json:"scores"`
	Axes   []model.Score   `json:"axes"`
}

func NewScoresDTO(scores *model.ScoreMap) ScoresDTO {
	return ScoresDTO{Scores: scores, Axes: scores.Entries()}
}

type ChartRequest struct {
	Scores *model.ScoreMap `json:"scores"`
}
