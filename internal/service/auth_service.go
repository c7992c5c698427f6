package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrCredencialesInvalidas = errors.New("email o contraseña incorrectos")

// Claims carried by both access and refresh tokens. Tipo distinguishes them so
// a refresh token can never authorize an API call.
type Claims struct {
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo"` // "access" | "refresh"
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error)
	// ValidarAccessToken parses and verifies an access token.
	ValidarAccessToken(tokenStr string) (*Claims, error)
}

type authService struct {
	repo          repository.UsuarioRepository
	secret        []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	allowedEmails map[string]bool
}

func NewAuthService(repo repository.UsuarioRepository, secret string, accessHours, refreshHours int, allowedEmails map[string]bool) AuthService {
	return &authService{
		repo:          repo,
		secret:        []byte(secret),
		accessTTL:     time.Duration(accessHours) * time.Hour,
		refreshTTL:    time.Duration(refreshHours) * time.Hour,
		allowedEmails: allowedEmails,
	}
}

// Login checks the allow-list before touching the database and returns the
// same generic error for unknown email, bad password and non-allowed email,
// so responses don't leak which accounts exist.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !s.allowedEmails[email] {
		return nil, ErrCredencialesInvalidas
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil || !u.Activo {
		return nil, ErrCredencialesInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	return s.emitirTokens(u)
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims, err := s.parseToken(req.RefreshToken)
	if err != nil || claims.Tipo != "refresh" {
		return nil, errors.New("refresh token inválido")
	}
	// Re-check the allow-list and account status on every refresh so a revoked
	// operator is locked out as soon as the access token expires.
	if !s.allowedEmails[claims.Email] {
		return nil, ErrCredencialesInvalidas
	}
	u, err := s.repo.FindByEmail(ctx, claims.Email)
	if err != nil || !u.Activo {
		return nil, ErrCredencialesInvalidas
	}
	return s.emitirTokens(u)
}

func (s *authService) ValidarAccessToken(tokenStr string) (*Claims, error) {
	claims, err := s.parseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Tipo != "access" {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}

func (s *authService) emitirTokens(u *model.Usuario) (*dto.LoginResponse, error) {
	now := time.Now()

	access, err := s.firmarToken(u, "access", now, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.firmarToken(u, "refresh", now, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.accessTTL.Seconds()),
		User: dto.UsuarioResponse{
			ID:     u.ID.String(),
			Email:  u.Email,
			Nombre: u.Nombre,
		},
	}, nil
}

func (s *authService) firmarToken(u *model.Usuario, tipo string, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		Email:  u.Email,
		Nombre: u.Nombre,
		Tipo:   tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) parseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de firma inesperado")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("token inválido o expirado")
	}
	return claims, nil
}
