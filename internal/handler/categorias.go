package handler

import (
	"errors"
	"net/http"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoriasHandler struct{ svc service.CategoriaService }

func NewCategoriasHandler(svc service.CategoriaService) *CategoriasHandler {
	return &CategoriasHandler{svc: svc}
}

// CrearCategoria godoc
// @Summary      Crear categoría
// @Tags         categorias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCategoriaRequest true "Nombre de la categoría"
// @Success      201 {object} apierror.Response{data=dto.CategoriaResponse}
// @Failure      409 {object} apierror.Response
// @Router       /v1/categorias [post]
func (h *CategoriasHandler) CrearCategoria(c *gin.Context) {
	var req dto.CrearCategoriaRequest
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

// ListarCategorias godoc
// @Summary      Listar categorías
// @Tags         categorias
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} apierror.Response{data=[]dto.CategoriaResponse}
// @Router       /v1/categorias [get]
func (h *CategoriasHandler) ListarCategorias(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		internal(c, "Error al listar categorías")
		return
	}
	ok(c, http.StatusOK, resp)
}

// ActualizarCategoria godoc
// @Summary      Renombrar categoría
// @Tags         categorias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "UUID de la categoría"
// @Param        body body dto.CrearCategoriaRequest true "Nuevo nombre"
// @Success      200 {object} apierror.Response{data=dto.CategoriaResponse}
// @Failure      409 {object} apierror.Response
// @Router       /v1/categorias/{id} [put]
func (h *CategoriasHandler) ActualizarCategoria(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "ID inválido")
		return
	}
	var req dto.CrearCategoriaRequest
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

// EliminarCategoria godoc
// @Summary      Eliminar categoría
// @Description  Bloqueado mientras existan productos que la referencien.
// @Tags         categorias
// @Security     BearerAuth
// @Param        id path string true "UUID de la categoría"
// @Success      204
// @Failure      409 {object} apierror.Response
// @Router       /v1/categorias/{id} [delete]
func (h *CategoriasHandler) EliminarCategoria(c *gin.Context) {
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
