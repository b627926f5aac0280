package domain

import "time"

// Post is a message published by a classroom.
type Post struct {
	ID        int       `json:"id" db:"id"`
	ProfileID int       `json:"profile_id" db:"profile_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
