package handler

import (
	"errors"
	"net/http"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProveedoresHandler struct{ svc service.ProveedorService }

func NewProveedoresHandler(svc service.ProveedorService) *ProveedoresHandler {
	return &ProveedoresHandler{svc: svc}
}

// CrearProveedor godoc
// @Summary      Crear proveedor
// @Description  El CUIT es único entre proveedores.
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearProveedorRequest true "Datos del proveedor"
// @Success      201 {object} apierror.Response{data=dto.ProveedorResponse}
// @Failure      400 {object} apierror.Response
// @Router       /v1/proveedores [post]
func (h *ProveedoresHandler) CrearProveedor(c *gin.Context) {
	var req dto.CrearProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	ok(c, http.StatusCreated, resp)
}

// ListarProveedores godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} apierror.Response{data=[]dto.ProveedorResponse}
// @Router       /v1/proveedores [get]
func (h *ProveedoresHandler) ListarProveedores(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		internal(c, "Error al listar proveedores")
		return
	}
	ok(c, http.StatusOK, resp)
}

// ActualizarProveedor godoc
// @Summary      Actualizar proveedor
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "UUID del proveedor"
// @Param        body body dto.CrearProveedorRequest true "Datos del proveedor"
// @Success      200 {object} apierror.Response{data=dto.ProveedorResponse}
// @Failure      404 {object} apierror.Response
// @Router       /v1/proveedores/{id} [put]
func (h *ProveedoresHandler) ActualizarProveedor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "ID inválido")
		return
	}
	var req dto.CrearProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		notFound(c, err.Error())
		return
	}
	ok(c, http.StatusOK, resp)
}

// EliminarProveedor godoc
// @Summary      Eliminar proveedor
// @Description  Bloqueado mientras existan lotes que lo referencien.
// @Tags         proveedores
// @Security     BearerAuth
// @Param        id path string true "UUID del proveedor"
// @Success      204
// @Failure      409 {object} apierror.Response
// @Router       /v1/proveedores/{id} [delete]
func (h *ProveedoresHandler) EliminarProveedor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "ID inválido")
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEnUso) {
			conflict(c, err.Error())
			return
		}
		notFound(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
