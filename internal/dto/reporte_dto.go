package dto

import "github.com/shopspring/decimal"

// KPIsDiariosResponse summarizes one business-timezone day of sales.
type KPIsDiariosResponse struct {
	Fecha          string          `json:"fecha"`
	TotalVentas    decimal.Decimal `json:"total_ventas"`
	CostoTotal     decimal.Decimal `json:"costo_total"`
	GananciaTotal  decimal.Decimal `json:"ganancia_total"`
	TotalItems     int             `json:"total_items"`
	CantidadVentas int             `json:"cantidad_ventas"`
	// TicketPromedio is 0 when there are no sales.
	TicketPromedio decimal.Decimal `json:"ticket_promedio"`
	// MargenNetoPct = round(ganancia / total × 100); 0 when total is 0.
	MargenNetoPct int `json:"margen_neto_pct"`
	// MetaProgresoPct = min(round(total / objetivo × 100), 100); 0 without a goal.
	MetaProgresoPct int `json:"meta_progreso_pct"`
}

// TendenciaPunto is one calendar-day bucket of the trend series.
// Days without sales are emitted with zero values for chart continuity.
type TendenciaPunto struct {
	Fecha        string          `json:"fecha"`
	VentasBrutas decimal.Decimal `json:"ventas_brutas"`
	GananciaNeta decimal.Decimal `json:"ganancia_neta"`
}

type TendenciaFilter struct {
	Dias  int    `form:"dias"  validate:"omitempty,min=1,max=365"`
	Desde string `form:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta string `form:"hasta" validate:"omitempty,datetime=2006-01-02"`
}

type EnviarResumenRequest struct {
	Destinatario string `json:"destinatario" validate:"required,email"`
	Fecha        string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
}

// ValuacionResponse values the business's inventory on hand.
type ValuacionResponse struct {
	// CostoNetoNegocio: remaining lot units weighted by their purchase price.
	CostoNetoNegocio decimal.Decimal `json:"costo_neto_negocio"`
	// ValorVentaNegocio: Σ stock_actual × precio_venta over products in stock.
	ValorVentaNegocio decimal.Decimal `json:"valor_venta_negocio"`
}
