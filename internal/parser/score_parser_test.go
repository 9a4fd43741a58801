package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fadilmartias/interview-radar/internal/model"
	"github.com/fadilmartias/interview-radar/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScores(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []model.Score
	}{
		{
			name:  "four well-formed axes",
			input: "胆力：7点（粘り強い）\n好奇心：8点（好奇心旺盛）\n論理性：6点（根拠薄い）\n協調性：7点（協調的）",
			want: []model.Score{
				{Axis: "胆力", Score: 7},
				{Axis: "好奇心", Score: 8},
				{Axis: "論理性", Score: 6},
				{Axis: "協調性", Score: 7},
			},
		},
		{
			name:  "no matching lines",
			input: "評価できません",
			want:  []model.Score{},
		},
		{
			name:  "empty",
			input: "",
			want:  []model.Score{},
		},
		{
			name:  "later line overwrites but keeps position",
			input: "胆力：3点\n好奇心：8点\n胆力：9点（再評価）",
			want: []model.Score{
				{Axis: "胆力", Score: 9},
				{Axis: "好奇心", Score: 8},
			},
		},
		{
			name: "non-matching lines skipped",
			input: strings.Join([]string{
				"以下が評価です。",
				"",
				"胆力:7点",
				"好奇心：八点",
				"論理性：6点",
				"協調性：点",
				"```",
			}, "\n"),
			want: []model.Score{{Axis: "論理性", Score: 6}},
		},
		{
			name:  "label whitespace trimmed",
			input: "  胆力 ：7点\n　協調性　：5点（理由）",
			want: []model.Score{
				{Axis: "胆力", Score: 7},
				{Axis: "協調性", Score: 5},
			},
		},
		{
			name:  "empty label skipped",
			input: "：7点\n   ：8点",
			want:  []model.Score{},
		},
		{
			name:  "scores are not clamped",
			input: "胆力：15点\n好奇心：0点\n論理性：100点",
			want: []model.Score{
				{Axis: "胆力", Score: 15},
				{Axis: "好奇心", Score: 0},
				{Axis: "論理性", Score: 100},
			},
		},
		{
			name:  "full-width digits",
			input: "胆力：７点\n好奇心：１０点",
			want: []model.Score{
				{Axis: "胆力", Score: 7},
				{Axis: "好奇心", Score: 10},
			},
		},
		{
			name:  "crlf and bare cr",
			input: "胆力：7点\r\n好奇心：8点\r論理性：6点",
			want: []model.Score{
				{Axis: "胆力", Score: 7},
				{Axis: "好奇心", Score: 8},
				{Axis: "論理性", Score: 6},
			},
		},
		{
			name:  "control and unicode line separators",
			input: "胆力：7点\u0085好奇心：8点\v論理性：6点\f協調性：5点\x1c独創性：4点\x1d誠実さ：3点\x1e粘り：2点\u2028熱意：1点",
			want: []model.Score{
				{Axis: "胆力", Score: 7},
				{Axis: "好奇心", Score: 8},
				{Axis: "論理性", Score: 6},
				{Axis: "協調性", Score: 5},
				{Axis: "独創性", Score: 4},
				{Axis: "誠実さ", Score: 3},
				{Axis: "粘り", Score: 2},
				{Axis: "熱意", Score: 1},
			},
		},
		{
			name:  "markdown bullets become part of the label",
			input: "- 胆力：7点",
			want:  []model.Score{{Axis: "- 胆力", Score: 7}},
		},
		{
			name:  "label is greedy",
			input: "胆力：7点（協調性：3点）",
			want:  []model.Score{{Axis: "胆力：7点（協調性", Score: 3}},
		},
		{
			name:  "overflowing score skipped",
			input: "胆力：99999999999999999999999点\n好奇心：8点",
			want:  []model.Score{{Axis: "好奇心", Score: 8}},
		},
		{
			name:  "axes outside the fixed four are kept",
			input: "創造性：9点",
			want:  []model.Score{{Axis: "創造性", Score: 9}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseScores(tc.input)
			assert.Equal(t, len(tc.want), got.Len())
			assert.Equal(t, tc.want, got.Entries())
		})
	}
}

func TestParseScoresDistinctLabels(t *testing.T) {
	for k := 0; k <= 12; k++ {
		var lines []string
		for i := 0; i < k; i++ {
			lines = append(lines, fmt.Sprintf("axis%d：%d点（reason %d）", i, i*3, i))
		}
		got := ParseScores(strings.Join(lines, "\n"))
		require.Equal(t, k, got.Len())
		for i := 0; i < k; i++ {
			v, ok := got.Get(fmt.Sprintf("axis%d", i))
			require.True(t, ok)
			assert.Equal(t, i*3, v)
		}
	}
}

func TestParseLine(t *testing.T) {
	label, score, ok := ParseLine("論理性：6点（根拠薄い）")
	assert.True(t, ok)
	assert.Equal(t, "論理性", label)
	assert.Equal(t, 6, score)

	_, _, ok = ParseLine("論理性：-6点")
	assert.False(t, ok)
}

func TestPromptRoundTrip(t *testing.T) {
	transcripts := []string{
		"",
		"面接官：自己紹介をお願いします。\n候補者：はい。",
		"胆力：1点（候補者の発言に紛れた行）",
	}
	reply := strings.Join([]string{
		prompt.Line("胆力", 7, "粘り強い"),
		prompt.Line("好奇心", 8, "好奇心旺盛"),
		prompt.Line("論理性", 6, "根拠薄い"),
		prompt.Line("協調性", 7, "協調的"),
	}, "\n")
	for _, transcript := range transcripts {
		built := prompt.Build(transcript)
		require.Contains(t, built, transcript)
		got := ParseScores(reply)
		assert.Equal(t, []model.Score{
			{Axis: "胆力", Score: 7},
			{Axis: "好奇心", Score: 8},
			{Axis: "論理性", Score: 6},
			{Axis: "協調性", Score: 7},
		}, got.Entries())
	}
}
