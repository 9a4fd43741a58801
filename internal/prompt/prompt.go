// Package prompt builds the instruction sent to the evaluation provider.
package prompt

import (
	"fmt"
	"strings"
)

type Axis struct {
	Label    string
	Criteria string
}

// Axes are the fixed evaluation dimensions, in the order they are requested.
var Axes = []Axis{
	{Label: "胆力", Criteria: "粘着力、修羅場処理、長期戦が得意、決断して耐久して突破する力"},
	{Label: "好奇心", Criteria: "新市場をかぎつける力、学習サイクルが高速、短期戦が得意、発見して学習して拡張する"},
	{Label: "論理性", Criteria: "話の構成、理由や根拠の明示、具体例が含まれているか"},
	{Label: "協調性", Criteria: "他者との信頼関係、チーム行動、対話への柔軟性があるか"},
}

// TranscriptMarker separates the instructions from the transcript.
const TranscriptMarker = "【面接内容】"

// exampleScores fill the output-format block of the template.
var exampleScores = []int{7, 8, 6, 7}

// Line renders one axis in the grammar the score parser expects.
func Line(label string, score int, reason string) string {
	return fmt.Sprintf("%s：%d点（%s）", label, score, reason)
}

// Build embeds transcript verbatim after the instructions. The transcript is
// not escaped: lines in it that look like score lines stay as they are.
func Build(transcript string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n以下の面接内容を、以下の%dつの観点でそれぞれ10点満点で評価し、点数とその理由をコメントしてください：\n\n", len(Axes))
	for i, a := range Axes {
		fmt.Fprintf(&sb, "%d. %s：%s\n", i+1, a.Label, a.Criteria)
	}
	sb.WriteString("\n回答は以下の形式で出力してください：\n```\n")
	for i, a := range Axes {
		sb.WriteString(Line(a.Label, exampleScores[i%len(exampleScores)], "理由"))
		sb.WriteString("\n")
	}
	sb.WriteString("```\n\n")
	sb.WriteString(TranscriptMarker)
	sb.WriteString("\n")
	sb.WriteString(transcript)
	sb.WriteString("\n")
	return sb.String()
}
