package domain

import "time"

type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	DisplayName  string      `json:"display_name,omitempty"`
	PasswordHash string      `json:"-"`
	Personality  Personality `json:"personality,omitempty"`
	Interests    []string    `json:"interests,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
