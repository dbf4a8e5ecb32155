package entities

import "time"

// Feedback captures quick product feedback from users.
type Feedback struct {
	ID         string    `json:"id" db:"id"`
	Message    string    `json:"message" db:"message"`
	IsPositive bool      `json:"isPositive" db:"is_positive"`
	UserAgent  string    `json:"user_agent" db:"user_agent"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
