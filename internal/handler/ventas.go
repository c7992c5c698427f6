package handler

import (
	"net/http"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/middleware"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentasHandler struct {
	svc         service.VentaService
	negocio     string
	storagePath string
}

func NewVentasHandler(svc service.VentaService, negocio, storagePath string) *VentasHandler {
	return &VentasHandler{svc: svc, negocio: negocio, storagePath: storagePath}
}

// RegistrarVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Liquida el carrito en una transacción: descuenta stock con clamp en cero, consume lotes FIFO y registra los movimientos. Idempotente por clave_idempotencia.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} apierror.Response{data=dto.VentaResponse}
// @Failure      400  {object} apierror.Response
// @Router       /v1/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.RegistrarVenta(c.Request.Context(), claims.Email, req)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	ok(c, http.StatusCreated, resp)
}

// ObtenerVenta godoc
// @Summary      Obtener una venta por ID
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {object} apierror.Response{data=dto.VentaResponse}
// @Failure      404 {object} apierror.Response
// @Router       /v1/ventas/{id} [get]
func (h *VentasHandler) ObtenerVenta(c *gin.Context) {
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

// ListarVentas godoc
// @Summary      Listar ventas
// @Description  Lista paginada de ventas filtrada por rango de fechas (zona horaria del negocio). Sin filtro lista las de hoy.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Param        hasta query string false "Fecha YYYY-MM-DD (default: desde)"
// @Param        page  query int    false "Página (default 1)"
// @Param        limit query int    false "Registros por página (default 50)"
// @Success      200 {object} apierror.Response{data=dto.VentaListResponse}
// @Router       /v1/ventas [get]
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := validate.Struct(&filter); err != nil {
		badRequest(c, err.Error())
		return
	}
	resp, err := h.svc.ListVentas(c.Request.Context(), filter)
	if err != nil {
		internal(c, "Error al listar ventas")
		return
	}
	ok(c, http.StatusOK, resp)
}

// EliminarVenta godoc
// @Summary      Eliminar una venta
// @Description  Borra la venta y sus líneas. El stock NO se restaura.
// @Tags         ventas
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      204
// @Failure      404 {object} apierror.Response
// @Router       /v1/ventas/{id} [delete]
func (h *VentasHandler) EliminarVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "ID inválido")
		return
	}
	if err := h.svc.EliminarVenta(c.Request.Context(), id); err != nil {
		notFound(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// TicketVenta godoc
// @Summary      Descargar ticket PDF de una venta
// @Tags         ventas
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {file} file
// @Failure      404 {object} apierror.Response
// @Router       /v1/ventas/{id}/ticket [get]
func (h *VentasHandler) TicketVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "ID inválido")
		return
	}
	path, err := h.svc.GenerarTicket(c.Request.Context(), id, h.negocio, h.storagePath)
	if err != nil {
		notFound(c, err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="ticket.pdf"`)
	c.File(path)
}
