package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemVentaRequest is one scanned/searched cart line. Price and cost are the
// client's snapshot taken at search time; name and barcode are resolved
// server-side from the product.
type ItemVentaRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
	CostoUnitario  decimal.Decimal `json:"costo_unitario"  validate:"min=0"`
}

type RegistrarVentaRequest struct {
	Items []ItemVentaRequest `json:"items" validate:"required,min=1,dive"`
	// ClaveIdempotencia deduplicates retried checkout attempts: the same key
	// always returns the originally created sale, with no second decrement.
	ClaveIdempotencia *string `json:"clave_idempotencia" validate:"omitempty,uuid"`
}

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	Desde string `form:"desde"` // YYYY-MM-DD inclusive; empty = today
	Hasta string `form:"hasta"` // YYYY-MM-DD inclusive; empty = desde
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Nombre         string          `json:"nombre"`
	CodigoBarras   string          `json:"codigo_barras"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	CostoUnitario  decimal.Decimal `json:"costo_unitario"`
	TotalLinea     decimal.Decimal `json:"total_linea"`
	CostoLinea     decimal.Decimal `json:"costo_linea"`
	GananciaLinea  decimal.Decimal `json:"ganancia_linea"`
}

type VentaResponse struct {
	ID             string              `json:"id"`
	Items          []ItemVentaResponse `json:"items"`
	Total          decimal.Decimal     `json:"total"`
	CostoTotal     decimal.Decimal     `json:"costo_total"`
	GananciaTotal  decimal.Decimal     `json:"ganancia_total"`
	TotalItems     int                 `json:"total_items"`
	ConflictoStock bool                `json:"conflicto_stock"`
	VendidaEn      string              `json:"vendida_en"`
}

// VentaListItem summarizes one sale for the history table. Productos is the
// human-readable "Nombre xCantidad, …" line the UI shows per row.
type VentaListItem struct {
	ID            string              `json:"id"`
	Productos     string              `json:"productos"`
	Items         []ItemVentaResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	GananciaTotal decimal.Decimal     `json:"ganancia_total"`
	TotalItems    int                 `json:"total_items"`
	VendidaEn     string              `json:"vendida_en"`
}

type VentaListResponse struct {
	Data  []VentaListItem `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
