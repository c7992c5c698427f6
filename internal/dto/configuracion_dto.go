package dto

import "github.com/shopspring/decimal"

type GuardarConfiguracionRequest struct {
	ObjetivoDiario decimal.Decimal `json:"objetivo_diario" validate:"min=0"`
}

type ConfiguracionResponse struct {
	Email          string          `json:"email"`
	ObjetivoDiario decimal.Decimal `json:"objetivo_diario"`
}
