package dto

import "time"

// LoginRequest defines the payload for username/password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token. The refresh token travels in an
// http-only cookie, not in the body.
type LoginResponse struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UserID      string    `json:"userID"`
	DisplayName string    `json:"displayName"`
}

// RefreshRequest identifies the user asking for a token refresh.
type RefreshRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// GoogleCallbackRequest carries the ID token posted by the frontend after a
// client-side Google sign-in.
type GoogleCallbackRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
