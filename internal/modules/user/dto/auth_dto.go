package dto

import (
	"github.com/google/uuid"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	EcoPoints int       `json:"ecoPoints"`
}

type AuthResponse struct {
	Message   string     `json:"message"`
	Token     string     `json:"token"`
	TokenType string     `json:"tokenType"`
	ExpiresAt int64      `json:"expiresAt"`
	User      PublicUser `json:"user"`
}
