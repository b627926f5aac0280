package domain

import "time"

type Account struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Organization *string   `json:"organization" db:"organization"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AccountStats aggregates activity across all classrooms of an account.
type AccountStats struct {
	AccountID        int       `json:"account_id"`
	TotalClassrooms  int       `json:"total_classrooms"`
	TotalConnections int       `json:"total_connections"`
	UniqueInterests  int       `json:"unique_interests"`
	AccountCreated   time.Time `json:"account_created"`
}
