package users

import (
	"fmt"
	"time"
)

// User owns resumes and interview questions. IDs are chosen by the caller.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultName is the placeholder given to users created implicitly.
func DefaultName(id int64) string {
	return fmt.Sprintf("User%d", id)
}
