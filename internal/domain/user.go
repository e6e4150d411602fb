package domain

import "time"

// User is the account owning a partition of chamados and clientes.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
