package handler

import (
	"errors"
	"net/http"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MarcasHandler struct{ svc service.MarcaService }

func NewMarcasHandler(svc service.MarcaService) *MarcasHandler { return &MarcasHandler{svc: svc} }

// CrearMarca godoc
// @Summary      Crear marca
// @Tags         marcas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearMarcaRequest true "Nombre de la marca"
// @Success      201 {object} apierror.Response{data=dto.MarcaResponse}
// @Failure      409 {object} apierror.Response
// @Router       /v1/marcas [post]
func (h *MarcasHandler) CrearMarca(c *gin.Context) {
	var req dto.CrearMarcaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNombreDuplicado) {
			conflict(c, err.Error())
			return
		}
		badRequest(c, err.Error())
		return
	}
	ok(c, http.StatusCreated, resp)
}

// ListarMarcas godoc
// @Summary      Listar marcas
// @Tags         marcas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} apierror.Response{data=[]dto.MarcaResponse}
// @Router       /v1/marcas [get]
func (h *MarcasHandler) ListarMarcas(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		internal(c, "Error al listar marcas")
		return
	}
	ok(c, http.StatusOK, resp)
}

// ActualizarMarca godoc
// @Summary      Renombrar marca
// @Tags         marcas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                true "UUID de la marca"
// @Param        body body dto.CrearMarcaRequest true "Nuevo nombre"
// @Success      200 {object} apierror.Response{data=dto.MarcaResponse}
// @Failure      409 {object} apierror.Response
// @Router       /v1/marcas/{id} [put]
func (h *MarcasHandler) ActualizarMarca(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "ID inválido")
		return
	}
	var req dto.CrearMarcaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrNombreDuplicado) {
			conflict(c, err.Error())
			return
		}
		notFound(c, err.Error())
		return
	}
	ok(c, http.StatusOK, resp)
}

// EliminarMarca godoc
// @Summary      Eliminar marca
// @Description  Bloqueado mientras existan productos que la referencien.
// @Tags         marcas
// @Security     BearerAuth
// @Param        id path string true "UUID de la marca"
// @Success      204
// @Failure      409 {object} apierror.Response
// @Router       /v1/marcas/{id} [delete]
func (h *MarcasHandler) EliminarMarca(c *gin.Context) {
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
