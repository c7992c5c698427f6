package service

import (
	"context"
	"testing"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguracionPorDefecto(t *testing.T) {
	svc := NewConfiguracionService(newStubConfiguracionRepo())

	resp, err := svc.Obtener(context.Background(), "ana@negocio.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@negocio.com", resp.Email)
	assert.True(t, resp.ObjetivoDiario.IsZero(), "missing row yields defaults, not an error")
}

func TestGuardarConfiguracionUpsert(t *testing.T) {
	repo := newStubConfiguracionRepo()
	svc := NewConfiguracionService(repo)

	_, err := svc.Guardar(context.Background(), "ana@negocio.com", dto.GuardarConfiguracionRequest{
		ObjetivoDiario: decimal.NewFromInt(30000),
	})
	require.NoError(t, err)

	// Second save updates in place
	_, err = svc.Guardar(context.Background(), "ana@negocio.com", dto.GuardarConfiguracionRequest{
		ObjetivoDiario: decimal.NewFromInt(45000),
	})
	require.NoError(t, err)

	resp, err := svc.Obtener(context.Background(), "ana@negocio.com")
	require.NoError(t, err)
	assert.True(t, resp.ObjetivoDiario.Equal(decimal.NewFromInt(45000)))
	assert.Len(t, repo.porEmail, 1)

	// Settings are per operator
	otro, err := svc.Obtener(context.Background(), "otro@negocio.com")
	require.NoError(t, err)
	assert.True(t, otro.ObjetivoDiario.IsZero())
}
