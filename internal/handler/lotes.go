package handler

import (
	"errors"
	"net/http"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LotesHandler struct{ svc service.LoteService }

func NewLotesHandler(svc service.LoteService) *LotesHandler { return &LotesHandler{svc: svc} }

// CrearLote godoc
// @Summary      Registrar un lote de mercadería
// @Description  Ingresa una entrega completa: crea las líneas, incrementa stock y registra los movimientos en una sola transacción.
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearLoteRequest true "Detalle del lote"
// @Success      201 {object} apierror.Response{data=dto.LoteResponse}
// @Failure      400 {object} apierror.Response
// @Router       /v1/lotes [post]
func (h *LotesHandler) CrearLote(c *gin.Context) {
	var req dto.CrearLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearLote(c.Request.Context(), req)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	ok(c, http.StatusCreated, resp)
}

// ObtenerLote godoc
// @Summary      Obtener un lote por ID
// @Tags         lotes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del lote"
// @Success      200 {object} apierror.Response{data=dto.LoteResponse}
// @Failure      404 {object} apierror.Response
// @Router       /v1/lotes/{id} [get]
func (h *LotesHandler) ObtenerLote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "ID inválido")
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		notFound(c, err.Error())
		return
	}
	ok(c, http.StatusOK, resp)
}

// ListarLotes godoc
// @Summary      Listar lotes
// @Description  Lista todos los lotes, más recientes primero, con su estado activo/consumido.
// @Tags         lotes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} apierror.Response{data=[]dto.LoteResponse}
// @Router       /v1/lotes [get]
func (h *LotesHandler) ListarLotes(c *gin.Context) {
	resp, err := h.svc.ListarLotes(c.Request.Context())
	if err != nil {
		internal(c, "Error al listar lotes")
		return
	}
	ok(c, http.StatusOK, resp)
}

// EliminarLote godoc
// @Summary      Eliminar un lote consumido
// @Description  Solo se pueden eliminar lotes sin unidades restantes. El stock no se modifica.
// @Tags         lotes
// @Security     BearerAuth
// @Param        id path string true "UUID del lote"
// @Success      204
// @Failure      409 {object} apierror.Response
// @Router       /v1/lotes/{id} [delete]
func (h *LotesHandler) EliminarLote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "ID inválido")
		return
	}
	if err := h.svc.EliminarLote(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrLoteActivo) {
			conflict(c, err.Error())
			return
		}
		notFound(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
