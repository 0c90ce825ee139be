// Package exporter assembles a user's activity into a report and renders it as DOCX or PDF.
package exporter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"jobprep-backend/internal/interviews"
	"jobprep-backend/internal/resumes"
	"jobprep-backend/internal/users"
)

const (
	NoResumes   = "No resumes found."
	NoQuestions = "No interview questions found."
	NoAnswers   = "No answers found."

	separator = "---"
)

// Block is one paragraph. Label, when set, is rendered bold ahead of Text.
type Block struct {
	Label string
	Text  string
}

type Section struct {
	Heading string
	Blocks  []Block
}

// Report is the renderer-neutral document. Sections always come in the order
// resumes, questions, answers.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Sections    []Section
}

// GeneratedLine is the subtitle shown under the title.
func (r Report) GeneratedLine() string {
	return "Generated at: " + r.GeneratedAt.UTC().Format("2006-01-02 15:04:05") + " UTC"
}

func BuildReport(user users.User, rs []resumes.Resume, qs []interviews.Question, as []interviews.AnswerWithQuestion, now time.Time) Report {
	return Report{
		Title:       fmt.Sprintf("%s's Job Prep Report", user.Name),
		GeneratedAt: now,
		Sections: []Section{
			resumeSection(rs),
			questionSection(qs),
			answerSection(as),
		},
	}
}

func resumeSection(rs []resumes.Resume) Section {
	sec := Section{Heading: "1. Resumes"}
	if len(rs) == 0 {
		sec.Blocks = []Block{{Text: NoResumes}}
		return sec
	}
	for i, r := range rs {
		sec.Blocks = append(sec.Blocks, Block{Label: fmt.Sprintf("Resume %d (ID %d)", i+1, r.ID)})
		sec.Blocks = append(sec.Blocks, Block{Label: "Original:", Text: r.OriginalText})
		if r.EditedText != nil {
			sec.Blocks = append(sec.Blocks, Block{Label: "Edited:", Text: *r.EditedText})
		}
		if r.Feedback != nil {
			sec.Blocks = append(sec.Blocks, Block{Label: "Feedback:", Text: *r.Feedback})
		}
		sec.Blocks = append(sec.Blocks, Block{Text: separator})
	}
	return sec
}

func questionSection(qs []interviews.Question) Section {
	sec := Section{Heading: "2. Interview Questions"}
	if len(qs) == 0 {
		sec.Blocks = []Block{{Text: NoQuestions}}
		return sec
	}
	for i, q := range qs {
		sec.Blocks = append(sec.Blocks, Block{Text: fmt.Sprintf("%d. %s", i+1, q.QuestionText)})
	}
	return sec
}

func answerSection(as []interviews.AnswerWithQuestion) Section {
	sec := Section{Heading: "3. Interview Answers and Evaluations"}
	if len(as) == 0 {
		sec.Blocks = []Block{{Text: NoAnswers}}
		return sec
	}
	for i, a := range as {
		sec.Blocks = append(sec.Blocks,
			Block{Label: fmt.Sprintf("%d. Q:", i+1), Text: a.QuestionText},
			Block{Label: "A:", Text: a.AnswerText},
		)
		if a.Score != nil {
			sec.Blocks = append(sec.Blocks, Block{Label: "Score:", Text: formatScore(*a.Score)})
		}
		if a.Feedback != nil {
			sec.Blocks = append(sec.Blocks, Block{Label: "Feedback:", Text: *a.Feedback})
		}
		sec.Blocks = append(sec.Blocks, Block{Text: separator})
	}
	return sec
}

// formatScore keeps one decimal for whole numbers, so 4 renders as "4.0".
func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
