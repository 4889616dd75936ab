package auth

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/application/usecase"
	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/infrastructure/store"
	"github.com/jhoicas/cajaplus-api/pkg/jwt"
)

const secret = "test-secret"

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := usecase.NewUserUseCase(store.NewRepositories(store.NewMemoryBackend()).Users, zerolog.Nop())
	_, err := users.Create(ctx, dto.CreateUserRequest{Name: "Ana", Email: "ana@caja.com", Password: "secreta"})
	require.NoError(t, err)
	uc := NewAuthUseCase(users, JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "caja-plus"}, zerolog.Nop())

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@caja.com", Password: "secreta"})
	require.NoError(t, err)
	assert.Equal(t, "Login exitoso", res.Message)
	assert.Equal(t, "ana", res.User.Name)

	claims, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@caja.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Login(ctx, dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
