package handler

import (
	"net/http"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/middleware"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfiguracionHandler struct{ svc service.ConfiguracionService }

func NewConfiguracionHandler(svc service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{svc: svc}
}

// Obtener godoc
// @Summary      Obtener configuración del operador
// @Description  Devuelve los valores por defecto si el operador nunca guardó su configuración.
// @Tags         configuracion
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} apierror.Response{data=dto.ConfiguracionResponse}
// @Router       /v1/configuracion [get]
func (h *ConfiguracionHandler) Obtener(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Obtener(c.Request.Context(), claims.Email)
	if err != nil {
		internal(c, "Error al leer la configuración")
		return
	}
	ok(c, http.StatusOK, resp)
}

// Guardar godoc
// @Summary      Guardar configuración del operador
// @Description  Upsert por email del token: crea la fila si no existe.
// @Tags         configuracion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.GuardarConfiguracionRequest true "Configuración"
// @Success      200 {object} apierror.Response{data=dto.ConfiguracionResponse}
// @Router       /v1/configuracion [put]
func (h *ConfiguracionHandler) Guardar(c *gin.Context) {
	var req dto.GuardarConfiguracionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Guardar(c.Request.Context(), claims.Email, req)
	if err != nil {
		internal(c, "Error al guardar la configuración")
		return
	}
	ok(c, http.StatusOK, resp)
}
