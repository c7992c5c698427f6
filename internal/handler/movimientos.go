package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MovimientosHandler reads the stock movement journal. Thin handler straight
// over the repository — the journal is append-only and needs no service logic.
type MovimientosHandler struct{ repo repository.MovimientoStockRepository }

func NewMovimientosHandler(repo repository.MovimientoStockRepository) *MovimientosHandler {
	return &MovimientosHandler{repo: repo}
}

type movimientoResponse struct {
	ID            string `json:"id"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	Motivo        string `json:"motivo"`
	CreadoEn      string `json:"creado_en"`
}

// ListarPorProducto godoc
// @Summary      Historial de movimientos de stock de un producto
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string true  "UUID del producto"
// @Param        limit query int    false "Máximo de registros (default 50)"
// @Success      200 {object} apierror.Response
// @Router       /v1/productos/{id}/movimientos [get]
func (h *MovimientosHandler) ListarPorProducto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "ID inválido")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	movimientos, err := h.repo.ListPorProducto(c.Request.Context(), id, limit)
	if err != nil {
		internal(c, "Error al listar movimientos")
		return
	}
	resp := make([]movimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		resp = append(resp, movimientoResponse{
			ID:            m.ID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			CreadoEn:      m.CreatedAt.Format(time.RFC3339),
		})
	}
	ok(c, http.StatusOK, resp)
}
