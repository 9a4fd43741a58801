package model

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// EvaluationInput carries everything one evaluation needs. It lives for a
// single request; APIKey must never be logged or stored.
type EvaluationInput struct {
	APIKey     string
	Provider   string
	Model      string
	Transcript string
	Structured bool
}

type EvaluationResult struct {
	ID           uuid.UUID
	Provider     string
	Model        string
	RawText      string
	Structured   bool
	Scores       *ScoreMap
	Chart        *ChartImage
	ChartWarning string
	Elapsed      time.Duration
}

// HasChart reports whether a chart was produced for this result.
func (r *EvaluationResult) HasChart() bool {
	return r != nil && r.Chart != nil && len(r.Chart.Data) > 0
}

type ChartImage struct {
	ContentType string
	Data        []byte
}

func (c *ChartImage) DataURI() string {
	if c == nil {
		return ""
	}
	return "data:" + c.ContentType + ";base64," + base64.StdEncoding.EncodeToString(c.Data)
}
