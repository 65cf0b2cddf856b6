package dto

import "github.com/golang-jwt/jwt/v5"

// CreateSessionRequest starts a session for a display name. No password:
// identity is a stable pseudonymous user id issued by the server.
type CreateSessionRequest struct {
	DisplayName string `json:"display_name"`
}

// SessionResponse carries the issued identity and token.
type SessionResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Token       string `json:"token"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

// SessionClaims defines the custom claims for the session JWT.
type SessionClaims struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// ErrorResponse represents an error in the API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
