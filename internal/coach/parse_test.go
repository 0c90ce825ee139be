package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuestions(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "numbered",
			raw:  "1. What was the situation?\n2. How did you respond?",
			want: []string{"What was the situation?", "How did you respond?"},
		},
		{
			name: "blank lines and crlf",
			raw:  "\r\n1. First?\r\n\r\n  2.   Second?  \r\n",
			want: []string{"First?", "Second?"},
		},
		{
			name: "q prefix",
			raw:  "Q1. Tell me about a deadline.\nq2. Describe a mistake.",
			want: []string{"Tell me about a deadline.", "Describe a mistake."},
		},
		{
			name: "no marker keeps line whole",
			raw:  "Here are five questions.\nDescribe e.g. a conflict.",
			want: []string{"Here are five questions.", "Describe e.g. a conflict."},
		},
		{
			name: "marker only dropped",
			raw:  "3.\n4. Real question?",
			want: []string{"Real question?"},
		},
		{
			name: "empty",
			raw:  "  \n\n",
			want: []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseQuestions(tc.raw))
		})
	}
}

func TestParseEvaluation(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Evaluation
	}{
		{
			name: "score then feedback",
			raw:  "Score: 4.0\nGood structured answer.",
			want: Evaluation{Score: 4.0, Feedback: "Good structured answer."},
		},
		{
			name: "no score line",
			raw:  "Clear answer.\nCould use numbers.",
			want: Evaluation{Score: 0, Feedback: "Clear answer. Could use numbers."},
		},
		{
			name: "korean label",
			raw:  "점수: 3.5\n피드백: 구체적입니다.",
			want: Evaluation{Score: 3.5, Feedback: "피드백: 구체적입니다."},
		},
		{
			name: "case insensitive label",
			raw:  "SCORE : 5\nExcellent.",
			want: Evaluation{Score: 5, Feedback: "Excellent."},
		},
		{
			name: "nan score",
			raw:  "Score: NaN\nVague answer.",
			want: Evaluation{Score: 0, Feedback: "Vague answer."},
		},
		{
			name: "infinite score",
			raw:  "Score: Inf\nVague answer.",
			want: Evaluation{Score: 0, Feedback: "Vague answer."},
		},
		{
			name: "negative infinity spelled out",
			raw:  "Score: -Infinity",
			want: Evaluation{Score: 0, Feedback: ""},
		},
		{
			name: "unparsable score",
			raw:  "Score: 4/5\nDecent.",
			want: Evaluation{Score: 0, Feedback: "Decent."},
		},
		{
			name: "score without colon",
			raw:  "Score 4\nDecent.",
			want: Evaluation{Score: 0, Feedback: "Decent."},
		},
		{
			name: "last score wins",
			raw:  "Score: 2\nRevised.\nScore: 3",
			want: Evaluation{Score: 3, Feedback: "Revised."},
		},
		{
			name: "not clamped",
			raw:  "Score: 7",
			want: Evaluation{Score: 7, Feedback: ""},
		},
		{
			name: "mid sentence score is feedback",
			raw:  "I would give this a score: 4.",
			want: Evaluation{Score: 0, Feedback: "I would give this a score: 4."},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseEvaluation(tc.raw))
		})
	}
}
