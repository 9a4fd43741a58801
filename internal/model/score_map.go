package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// Score is one axis of an evaluation.
type Score struct {
	Axis  string `json:"axis"`
	Score int    `json:"score"`
}

// ScoreMap maps an axis label to its score and remembers the order in which
// labels were first seen. Setting an existing label replaces the value but
// keeps its position.
type ScoreMap struct {
	labels []string
	values map[string]int
}

func NewScoreMap() *ScoreMap {
	return &ScoreMap{values: make(map[string]int)}
}

// ScoreMapOf builds a map from entries in order, later duplicates overwrite.
func ScoreMapOf(entries ...Score) *ScoreMap {
	m := NewScoreMap()
	for _, e := range entries {
		m.Set(e.Axis, e.Score)
	}
	return m
}

func (m *ScoreMap) Set(label string, value int) {
	if m.values == nil {
		m.values = make(map[string]int)
	}
	if _, ok := m.values[label]; !ok {
		m.labels = append(m.labels, label)
	}
	m.values[label] = value
}

func (m *ScoreMap) Get(label string) (int, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m.values[label]
	return v, ok
}

func (m *ScoreMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.labels)
}

func (m *ScoreMap) Labels() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

func (m *ScoreMap) Values() []int {
	if m == nil {
		return nil
	}
	out := make([]int, 0, len(m.labels))
	for _, l := range m.labels {
		out = append(out, m.values[l])
	}
	return out
}

func (m *ScoreMap) Entries() []Score {
	if m == nil {
		return nil
	}
	out := make([]Score, 0, len(m.labels))
	for _, l := range m.labels {
		out = append(out, Score{Axis: l, Score: m.values[l]})
	}
	return out
}

// MarshalJSON writes an object whose keys follow insertion order.
func (m *ScoreMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Axis)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", e.Score)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping document order.
func (m *ScoreMap) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("scores: invalid json")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return fmt.Errorf("scores: expected an object, got %s", root.Type)
	}
	out := NewScoreMap()
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		score, ok := IntScore(value)
		if !ok {
			err = fmt.Errorf("scores: value for %q is not an integer", key.String())
			return false
		}
		out.Set(key.String(), score)
		return true
	})
	if err != nil {
		return err
	}
	*m = *out
	return nil
}

// IntScore reads value as a score. Fractional numbers, numbers outside the
// int64 range and non-numbers are rejected.
func IntScore(value gjson.Result) (int, bool) {
	if value.Type != gjson.Number {
		return 0, false
	}
	if value.Num != math.Trunc(value.Num) || value.Num < -(1<<63) || value.Num >= 1<<63 {
		return 0, false
	}
	return int(value.Int()), true
}
