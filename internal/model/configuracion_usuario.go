package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConfiguracionUsuario holds per-user preferences, keyed by email.
// Upserted on save.
type ConfiguracionUsuario struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email          string          `gorm:"uniqueIndex;not null"`
	ObjetivoDiario decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ConfiguracionUsuario) TableName() string { return "configuraciones_usuario" }
