// Package api defines the shared request/response types of the public HTTP API.
package api

// ErrorResponse is the generic error envelope returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries the tokens issued on successful authentication.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// SignupRequest is the request body for the /signup endpoint.
// It uses Gin's binding tags for validation (required, email format, password length).
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the request body for the /login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the request body for the /refresh and /logout endpoints.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
