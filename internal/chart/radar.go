// Package chart turns a score map into a radar (polar) chart.
package chart

import (
	"errors"
	"math"

	"github.com/fadilmartias/interview-radar/internal/model"
)

const (
	DefaultTitle = "面接評価レーダーチャート"

	RadialMin = 0.0
	RadialMax = 10.0
)

var ErrNoScores = errors.New("chart: no scores to plot")

// Radar is the geometry of a radar chart. Angles and Values are closed: the
// first element is repeated at the end so the polygon returns to its start.
// Angles are in radians, counter-clockwise from 3 o'clock.
type Radar struct {
	Title  string
	Labels []string
	Angles []float64
	Values []float64
	Min    float64
	Max    float64
}

// Axes is the number of distinct axes on the chart.
func (r *Radar) Axes() int {
	return len(r.Labels)
}

// TickAngles returns one angle per label, without the closing duplicate.
func (r *Radar) TickAngles() []float64 {
	return r.Angles[:len(r.Labels)]
}

// Build lays out scores as n equally spaced spokes starting at angle 0.
func Build(scores *model.ScoreMap, title string) (*Radar, error) {
	n := scores.Len()
	if n == 0 {
		return nil, ErrNoScores
	}
	if title == "" {
		title = DefaultTitle
	}
	angles := make([]float64, 0, n+1)
	values := make([]float64, 0, n+1)
	for i, v := range scores.Values() {
		angles = append(angles, 2*math.Pi*float64(i)/float64(n))
		values = append(values, float64(v))
	}
	angles = append(angles, angles[0])
	values = append(values, values[0])
	return &Radar{
		Title:  title,
		Labels: scores.Labels(),
		Angles: angles,
		Values: values,
		Min:    RadialMin,
		Max:    RadialMax,
	}, nil
}

// Radius maps v onto [0,1] of the plot radius. Values outside [Min,Max] are
// clipped here only; Values keeps the data as parsed.
func (r *Radar) Radius(v float64) float64 {
	span := r.Max - r.Min
	if span <= 0 {
		return 0
	}
	f := (v - r.Min) / span
	return math.Max(0, math.Min(1, f))
}
