package resumes

import "time"

// Resume is an uploaded cover letter. EditedText and Feedback are set together by a feedback request.
type Resume struct {
	ID           int64
	UserID       int64
	OriginalText string
	EditedText   *string
	Feedback     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reviewed reports whether feedback has been recorded.
func (r Resume) Reviewed() bool {
	return r.EditedText != nil
}
