package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fadilmartias/interview-radar/internal/model"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/width"
)

// scoreLine matches "<label>：<digits>点" at the start of a line. The label is
// greedy and anything after 点 is ignored.
var scoreLine = regexp.MustCompile(`^(.+)：([0-9０-９]+)点`)

// lineBreaks folds CR, VT, FF, the file/group/record separators, NEL and the
// Unicode line and paragraph separators into "\n".
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\v", "\n",
	"\f", "\n",
	"\x1c", "\n",
	"\x1d", "\n",
	"\x1e", "\n",
	"\u0085", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

// ParseScores extracts axis scores from a free-text reply. Lines that do not
// match are skipped; a label seen again overwrites the earlier score.
func ParseScores(text string) *model.ScoreMap {
	scores := model.NewScoreMap()
	for _, line := range strings.Split(lineBreaks.Replace(text), "\n") {
		label, score, ok := ParseLine(line)
		if !ok {
			continue
		}
		scores.Set(label, score)
	}
	return scores
}

// ParseLine parses a single line of the reply grammar.
func ParseLine(line string) (string, int, bool) {
	m := scoreLine.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	label := strings.TrimSpace(m[1])
	if label == "" {
		return "", 0, false
	}
	score, err := strconv.Atoi(width.Narrow.String(m[2]))
	if err != nil {
		log.Debugf("skip score line for %q: %v", label, err)
		return "", 0, false
	}
	return label, score, true
}
