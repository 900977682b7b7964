package contracts

import (
	domainUser "github.com/Fede-Barberis/Finance-Manager/internal/domain/user"
)

type RegisterRequest struct {
	Name     string `json:"nombre" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string           `json:"token"`
	User  *domainUser.User `json:"user"`
}
