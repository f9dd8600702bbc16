package httptransport

import "time"

// ErrorResponse is the uniform non-2xx body.
type ErrorResponse struct {
	Message string `json:"message"`
}

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	CompanyName string `json:"companyName" validate:"required,min=2,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse never carries credential material.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CompanyID string    `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionResponse is returned by register/login. The token travels in the
// session cookie, never in the JSON body.
type SessionResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"-"`
	ExpiresAt time.Time    `json:"-"`
}

// AuthenticatedUser is handed to the session middleware after token
// resolution.
type AuthenticatedUser struct {
	ID        string
	Username  string
	CompanyID string
}
