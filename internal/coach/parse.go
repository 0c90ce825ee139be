package coach

import (
	"math"
	"strconv"
	"strings"
)

// Evaluation is a graded interview answer. Score is 0 when the reply had no readable score line.
type Evaluation struct {
	Score    float64
	Feedback string
}

// ParseQuestions turns a numbered list reply into question strings.
// "1. Foo" and "Q2. Bar" lose their markers; lines without a marker are kept whole.
func ParseQuestions(raw string) []string {
	questions := []string{}
	for _, line := range nonBlankLines(raw) {
		if head, rest, ok := strings.Cut(line, "."); ok && isSequenceMarker(head) {
			line = strings.TrimSpace(rest)
			if line == "" {
				continue
			}
		}
		questions = append(questions, line)
	}
	return questions
}

// ParseEvaluation reads a "Score: N" line and folds every other line into feedback.
// The last score line wins. Scores are not clamped.
func ParseEvaluation(raw string) Evaluation {
	var eval Evaluation
	var feedback []string
	for _, line := range nonBlankLines(raw) {
		if isScoreLine(line) {
			eval.Score = 0
			if _, value, ok := strings.Cut(line, ":"); ok {
				eval.Score = parseScore(value)
			}
			continue
		}
		feedback = append(feedback, line)
	}
	eval.Feedback = strings.TrimSpace(strings.Join(feedback, " "))
	return eval
}

// parseScore returns 0 for anything that is not a finite number, including NaN and Inf.
func parseScore(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func nonBlankLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isSequenceMarker(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "Q"), "q")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isScoreLine(line string) bool {
	lower := strings.ToLower(line)
	return strings.HasPrefix(lower, "score") || strings.HasPrefix(lower, "점수")
}
