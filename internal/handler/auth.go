package handler

import (
	"net/http"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/apierror"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary      Iniciar sesión
// @Description  Valida credenciales contra la lista de emails permitidos y devuelve tokens de acceso y refresh.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciales"
// @Success      200 {object} apierror.Response{data=dto.LoginResponse}
// @Failure      401 {object} apierror.Response
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.Fail(apierror.CodeValidation, err.Error()))
		return
	}
	ok(c, http.StatusOK, resp)
}

// Refresh godoc
// @Summary      Renovar tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.RefreshRequest true "Refresh token"
// @Success      200 {object} apierror.Response{data=dto.LoginResponse}
// @Failure      401 {object} apierror.Response
// @Router       /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.Fail(apierror.CodeValidation, err.Error()))
		return
	}
	ok(c, http.StatusOK, resp)
}
