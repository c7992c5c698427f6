package service

import (
	"context"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/repository"

	"github.com/shopspring/decimal"
)

type ConfiguracionService interface {
	Obtener(ctx context.Context, email string) (*dto.ConfiguracionResponse, error)
	Guardar(ctx context.Context, email string, req dto.GuardarConfiguracionRequest) (*dto.ConfiguracionResponse, error)
}

type configuracionService struct {
	repo repository.ConfiguracionRepository
}

func NewConfiguracionService(repo repository.ConfiguracionRepository) ConfiguracionService {
	return &configuracionService{repo: repo}
}

// Obtener never fails on a missing row: a user who has not saved settings yet
// gets the defaults.
func (s *configuracionService) Obtener(ctx context.Context, email string) (*dto.ConfiguracionResponse, error) {
	cfg, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return &dto.ConfiguracionResponse{Email: email, ObjetivoDiario: decimal.Zero}, nil
	}
	return &dto.ConfiguracionResponse{Email: cfg.Email, ObjetivoDiario: cfg.ObjetivoDiario}, nil
}

func (s *configuracionService) Guardar(ctx context.Context, email string, req dto.GuardarConfiguracionRequest) (*dto.ConfiguracionResponse, error) {
	cfg := &model.ConfiguracionUsuario{
		Email:          email,
		ObjetivoDiario: req.ObjetivoDiario,
	}
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return &dto.ConfiguracionResponse{Email: email, ObjetivoDiario: req.ObjetivoDiario}, nil
}
