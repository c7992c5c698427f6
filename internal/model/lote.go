package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lote is a single incoming delivery from one supplier, with its own
// per-product purchase price. Immutable once created; deletable only when
// every line has been fully consumed by sales.
type Lote struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID uuid.UUID `gorm:"type:uuid;index;not null"`
	RecibidoEn  time.Time `gorm:"index;not null"`
	// CantidadTotal and CostoTotal are derived sums over Items, persisted
	// so listings never re-aggregate.
	CantidadTotal int             `gorm:"not null"`
	CostoTotal    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt     time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
	Items     []LoteItem `gorm:"foreignKey:LoteID"`
}

func (Lote) TableName() string { return "lotes" }

// LoteItem is one product line inside a lot. CantidadRestante starts at
// Cantidad and is consumed FIFO (oldest lot first) by sale settlement.
type LoteItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LoteID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	Cantidad         int             `gorm:"not null"`
	PrecioCompra     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoTotal       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CantidadRestante int             `gorm:"not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (LoteItem) TableName() string { return "lote_items" }
