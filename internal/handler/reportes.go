package handler

import (
	"net/http"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/middleware"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// KPIsDiarios godoc
// @Summary      KPIs del día
// @Description  Totales, ticket promedio, margen neto y progreso de la meta diaria del operador, calculados sobre el día en la zona horaria del negocio.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        fecha query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Success      200 {object} apierror.Response{data=dto.KPIsDiariosResponse}
// @Router       /v1/reportes/diario [get]
func (h *ReportesHandler) KPIsDiarios(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.KPIsDiarios(c.Request.Context(), claims.Email, c.Query("fecha"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	ok(c, http.StatusOK, resp)
}

// Tendencia godoc
// @Summary      Tendencia de ventas por día
// @Description  Serie diaria de ventas brutas y ganancia neta. Los días sin ventas aparecen en cero.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        dias  query int    false "Cantidad de días hacia atrás (default 30)"
// @Param        desde query string false "Fecha YYYY-MM-DD"
// @Param        hasta query string false "Fecha YYYY-MM-DD"
// @Success      200 {object} apierror.Response{data=[]dto.TendenciaPunto}
// @Router       /v1/reportes/tendencia [get]
func (h *ReportesHandler) Tendencia(c *gin.Context) {
	var filter dto.TendenciaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := validate.Struct(&filter); err != nil {
		badRequest(c, err.Error())
		return
	}
	resp, err := h.svc.Tendencia(c.Request.Context(), filter)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	ok(c, http.StatusOK, resp)
}

// Valuacion godoc
// @Summary      Valuación del inventario
// @Description  Costo neto (restante de lotes por precio de compra) y valor de venta (stock por precio de venta).
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} apierror.Response{data=dto.ValuacionResponse}
// @Router       /v1/reportes/valuacion [get]
func (h *ReportesHandler) Valuacion(c *gin.Context) {
	resp, err := h.svc.Valuacion(c.Request.Context())
	if err != nil {
		internal(c, "Error al calcular la valuación")
		return
	}
	ok(c, http.StatusOK, resp)
}

// ExportarVentas godoc
// @Summary      Exportar ventas a XLSX
// @Tags         reportes
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        desde query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Param        hasta query string false "Fecha YYYY-MM-DD (default: desde)"
// @Success      200 {file} file
// @Router       /v1/reportes/export [get]
func (h *ReportesHandler) ExportarVentas(c *gin.Context) {
	data, filename, err := h.svc.ExportarVentas(c.Request.Context(), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// EnviarResumen godoc
// @Summary      Enviar resumen diario por correo
// @Description  Envía los KPIs del día al destinatario, con el export XLSX adjunto.
// @Tags         reportes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.EnviarResumenRequest true "Destinatario y fecha"
// @Success      200 {object} apierror.Response
// @Router       /v1/reportes/enviar [post]
func (h *ReportesHandler) EnviarResumen(c *gin.Context) {
	var req dto.EnviarResumenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.EnviarResumen(c.Request.Context(), claims.Email, req.Destinatario, req.Fecha); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Resumen enviado"})
}
