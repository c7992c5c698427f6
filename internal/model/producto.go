package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a sellable catalog item. StockActual only changes through lot
// intake (increment) and sale settlement (clamped decrement) — never through
// a direct update endpoint.
type Producto struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Nombre keeps the operator's original casing; NombreNormalizado
	// (trimmed, whitespace-collapsed, uppercased) backs the uniqueness check.
	Nombre            string          `gorm:"not null"`
	NombreNormalizado string          `gorm:"uniqueIndex;not null"`
	CodigoBarras      string          `gorm:"uniqueIndex;not null"`
	MarcaID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	CategoriaID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	PrecioVenta       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// StockActual is never negative: the settlement decrement clamps at zero.
	StockActual int  `gorm:"not null;default:0"`
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Marca     *Marca     `gorm:"foreignKey:MarcaID"`
	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

func (Producto) TableName() string { return "productos" }
