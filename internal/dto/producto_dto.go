package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=1"`
	CodigoBarras string          `json:"codigo_barras" validate:"required,min=1"`
	MarcaID      string          `json:"marca_id"      validate:"required,uuid"`
	CategoriaID  string          `json:"categoria_id"  validate:"required,uuid"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"  validate:"min=0"`
}

// ActualizarProductoRequest uses pointers so absent fields are left untouched.
// Stock is deliberately not editable here — it only moves via lots and sales.
type ActualizarProductoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=1"`
	CodigoBarras *string          `json:"codigo_barras" validate:"omitempty,min=1"`
	MarcaID      *string          `json:"marca_id"      validate:"omitempty,uuid"`
	CategoriaID  *string          `json:"categoria_id"  validate:"omitempty,uuid"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
}

type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	Barcode     string `form:"barcode"`
	MarcaID     string `form:"marca_id"`
	CategoriaID string `form:"categoria_id"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductoResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	CodigoBarras string          `json:"codigo_barras"`
	MarcaID      string          `json:"marca_id"`
	Marca        string          `json:"marca"`
	CategoriaID  string          `json:"categoria_id"`
	Categoria    string          `json:"categoria"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	StockActual  int             `json:"stock_actual"`
	Activo       bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// PrecioResponse backs the barcode scan screen — price and stock snapshot the
// client holds while building the cart.
type PrecioResponse struct {
	ProductoID      string          `json:"producto_id"`
	Nombre          string          `json:"nombre"`
	CodigoBarras    string          `json:"codigo_barras"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	StockDisponible int             `json:"stock_disponible"`
}
