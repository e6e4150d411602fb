package dto

import "time"

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Email          string `json:"email"`
	Senha          string `json:"senha"`
	ConfirmarSenha string `json:"confirmarSenha"`
}

// LoginRequest is the sign-in form.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
