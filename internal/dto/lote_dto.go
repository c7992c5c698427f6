package dto

import "github.com/shopspring/decimal"

type ItemLoteRequest struct {
	ProductoID   string          `json:"producto_id"   validate:"required,uuid"`
	Cantidad     int             `json:"cantidad"      validate:"required,min=1"`
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"min=0"`
}

type CrearLoteRequest struct {
	ProveedorID string `json:"proveedor_id" validate:"required,uuid"`
	// RecibidoEn is the delivery date, YYYY-MM-DD.
	RecibidoEn string            `json:"recibido_en" validate:"required,datetime=2006-01-02"`
	Items      []ItemLoteRequest `json:"items"       validate:"required,min=1,dive"`
}

type ItemLoteResponse struct {
	ProductoID       string          `json:"producto_id"`
	Producto         string          `json:"producto"`
	Cantidad         int             `json:"cantidad"`
	PrecioCompra     decimal.Decimal `json:"precio_compra"`
	CostoTotal       decimal.Decimal `json:"costo_total"`
	CantidadRestante int             `json:"cantidad_restante"`
}

type LoteResponse struct {
	ID            string             `json:"id"`
	ProveedorID   string             `json:"proveedor_id"`
	Proveedor     string             `json:"proveedor"`
	RecibidoEn    string             `json:"recibido_en"`
	Items         []ItemLoteResponse `json:"items"`
	CantidadTotal int                `json:"cantidad_total"`
	CostoTotal    decimal.Decimal    `json:"costo_total"`
	// Activo is true while any line still has unconsumed units; only
	// inactive (fully consumed) lots may be deleted.
	Activo bool `json:"activo"`
}
