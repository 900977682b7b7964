package routes

import (
	"net/http"

	"github.com/Fede-Barberis/Finance-Manager/internal/contracts"
	"github.com/Fede-Barberis/Finance-Manager/internal/domain/auth"
	"github.com/Fede-Barberis/Finance-Manager/internal/domain/user"
	appErrors "github.com/Fede-Barberis/Finance-Manager/internal/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var request contracts.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity := &user.User{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
	}

	if err := h.AuthService.Register(c.Request.Context(), entity); err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.JwtService.GenerateToken(entity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.AuthResponse{
		Token: token,
		User:  entity,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var request contracts.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity, err := h.AuthService.Login(c.Request.Context(), auth.Login{
		Email:    request.Email,
		Password: request.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.JwtService.GenerateToken(entity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AuthResponse{
		Token: token,
		User:  entity,
	})
}
