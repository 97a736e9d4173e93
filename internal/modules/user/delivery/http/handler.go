package handler

import (
	"net/http"

	"anoa.com/ecoinsight/internal/modules/user/dto"
	user "anoa.com/ecoinsight/internal/modules/user/service"
	"anoa.com/ecoinsight/pkg/apperror"
	"anoa.com/ecoinsight/pkg/response"
	"anoa.com/ecoinsight/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService user.AuthService
}

func NewAuthHandler(authService user.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, apperror.Validation(validator.FormatValidationError(err)))
		return
	}

	res, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, apperror.Validation(validator.FormatValidationError(err)))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
