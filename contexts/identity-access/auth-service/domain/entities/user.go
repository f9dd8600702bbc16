package entities

import "time"

// User belongs to exactly one company. PasswordHash is a self-contained
// argon2id credential and is stripped before any serialization.
type User struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CompanyID    string    `json:"company_id"`
	CreatedAt    time.Time `json:"created_at"`
}
