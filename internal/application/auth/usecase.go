// Package auth emite tokens JWT para usuarios autenticados.
package auth

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/application/usecase"
	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Authenticator verifica credenciales.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
}

// AuthUseCase caso de uso de login.
type AuthUseCase struct {
	users  Authenticator
	jwtCfg JWTConfig
	log    zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users Authenticator, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg, log: log}
}

// Login verifica email/contraseña, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.Invalid("Email y contraseña son obligatorios")
	}
	if !strings.Contains(in.Email, "@") {
		return nil, domain.Invalid("Email inválido")
	}
	user, err := uc.users.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	resp := usecase.ToUserResponse(*user)
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, resp.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("user_id", user.ID).Msg("login exitoso")
	return &dto.LoginResponse{Message: "Login exitoso", User: resp, Token: token}, nil
}
