package service

import (
	"context"
	"testing"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T, allowed ...string) (AuthService, *stubUsuarioRepo) {
	t.Helper()
	repo := newStubUsuarioRepo()
	set := make(map[string]bool, len(allowed))
	for _, e := range allowed {
		set[e] = true
	}
	svc := NewAuthService(repo, "test-secret", 8, 24, set)

	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &model.Usuario{
		Email:        "ana@negocio.com",
		Nombre:       "Ana",
		PasswordHash: string(hash),
		Activo:       true,
	}))
	return svc, repo
}

func TestLoginExitoso(t *testing.T) {
	svc, _ := newAuthFixture(t, "ana@negocio.com")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "Ana@Negocio.com", // case-insensitive match
		Password: "secreta123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "ana@negocio.com", resp.User.Email)

	claims, err := svc.ValidarAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana@negocio.com", claims.Email)
	assert.Equal(t, "access", claims.Tipo)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	svc, _ := newAuthFixture(t, "ana@negocio.com")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@negocio.com",
		Password: "otra",
	})
	require.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestLoginFueraDeLaListaPermitida(t *testing.T) {
	// The account exists but the email is not allow-listed
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@negocio.com",
		Password: "secreta123",
	})
	require.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	svc, repo := newAuthFixture(t, "ana@negocio.com")
	repo.usuarios["ana@negocio.com"].Activo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@negocio.com",
		Password: "secreta123",
	})
	require.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestRefreshEmiteNuevosTokens(t *testing.T) {
	svc, _ := newAuthFixture(t, "ana@negocio.com")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@negocio.com",
		Password: "secreta123",
	})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), dto.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)

	_, err = svc.ValidarAccessToken(renovado.AccessToken)
	require.NoError(t, err)
}

func TestRefreshRechazaAccessToken(t *testing.T) {
	svc, _ := newAuthFixture(t, "ana@negocio.com")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@negocio.com",
		Password: "secreta123",
	})
	require.NoError(t, err)

	// An access token must not work as a refresh token, and vice versa
	_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.AccessToken})
	require.Error(t, err)

	_, err = svc.ValidarAccessToken(login.RefreshToken)
	require.Error(t, err)
}

func TestValidarAccessTokenFirmaAjena(t *testing.T) {
	svc, _ := newAuthFixture(t, "ana@negocio.com")
	otro := NewAuthService(newStubUsuarioRepo(), "otro-secreto", 8, 24, map[string]bool{"ana@negocio.com": true})

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@negocio.com",
		Password: "secreta123",
	})
	require.NoError(t, err)

	_, err = otro.ValidarAccessToken(login.AccessToken)
	require.Error(t, err)
}
