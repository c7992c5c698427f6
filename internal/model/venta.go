package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is the immutable ledger entry created at checkout. Price and cost are
// snapshots taken at the moment of sale; later catalog edits never touch it.
// A venta is only ever deleted wholesale, never mutated.
type Venta struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Total         decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CostoTotal    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	GananciaTotal decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalItems    int             `gorm:"not null"`
	VendidaEn     time.Time       `gorm:"index;not null"`
	// ConflictoStock marks that at least one line requested more units than
	// were on hand and the decrement was clamped at zero.
	ConflictoStock bool `gorm:"not null;default:false"`
	// ClaveIdempotencia deduplicates retried checkout attempts.
	ClaveIdempotencia *string `gorm:"uniqueIndex"`
	UsuarioEmail      string  `gorm:"not null"`
	CreatedAt         time.Time

	Items []VentaItem `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is one cart line with name/barcode snapshots so the ledger stays
// readable even after the product is renamed or deleted.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Nombre         string          `gorm:"not null"`
	CodigoBarras   string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoUnitario  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalLinea     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CostoLinea     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	GananciaLinea  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

func (VentaItem) TableName() string { return "venta_items" }
