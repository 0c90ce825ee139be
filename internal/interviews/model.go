package interviews

import "time"

// Question is one generated interview question. A generation request stores several.
type Question struct {
	ID           int64
	UserID       int64
	Company      string
	Role         string
	QuestionText string
	CreatedAt    time.Time
}

// Answer is a candidate's reply to a Question. Score and Feedback are set together by evaluation.
type Answer struct {
	ID         int64
	QuestionID int64
	AnswerText string
	Score      *float64
	Feedback   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (a Answer) Evaluated() bool {
	return a.Score != nil
}

// AnswerWithQuestion pairs an answer with the text of the question it replies to.
type AnswerWithQuestion struct {
	Answer
	QuestionText string
}
