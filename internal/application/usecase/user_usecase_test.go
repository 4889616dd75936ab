package usecase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/infrastructure/store"
)

func newUsers(t *testing.T) (*UserUseCase, *store.Repositories) {
	t.Helper()
	repos := store.NewRepositories(store.NewMemoryBackend())
	return NewUserUseCase(repos.Users, zerolog.Nop()), repos
}

func TestUser_CreateNormalizaYHashea(t *testing.T) {
	ctx := context.Background()
	uc, repos := newUsers(t)

	res, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana", Email: "ANA@Caja.com", Password: "secreta"})
	require.NoError(t, err)
	assert.Equal(t, dto.UserResponse{ID: 1, Name: "ana", Email: "ana@caja.com", Role: entity.RoleAdmin}, res.User)

	d, err := repos.Users.Load(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "secreta", d.Users[0].PasswordHash)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "otra", Email: "ana@caja.com", Password: "x1234"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "otra", Email: "sin-arroba", Password: "x1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateUserRequest{Email: "b@c.com", Password: "x1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUser_Authenticate(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUsers(t)
	_, err := uc.Create(ctx, dto.CreateUserRequest{Name: "ana", Email: "ana@caja.com", Password: "secreta", Role: entity.RoleCajero})
	require.NoError(t, err)

	u, err := uc.Authenticate(ctx, " Ana@Caja.com", "secreta")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCajero, u.Role)

	_, err = uc.Authenticate(ctx, "ana@caja.com", "mala")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Authenticate(ctx, "nadie@caja.com", "secreta")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUser_UpdateYDelete(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUsers(t)
	_, err := uc.Create(ctx, dto.CreateUserRequest{Name: "ana", Email: "ana@caja.com", Password: "secreta"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "luis", Email: "luis@caja.com", Password: "secreta"})
	require.NoError(t, err)

	taken := "ana@caja.com"
	_, err = uc.Update(ctx, 2, dto.UpdateUserRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	name := "Luis P"
	pass := "nueva1"
	res, err := uc.Update(ctx, 2, dto.UpdateUserRequest{Name: &name, Password: &pass})
	require.NoError(t, err)
	assert.Equal(t, "luis p", res.User.Name)
	_, err = uc.Authenticate(ctx, "luis@caja.com", "nueva1")
	assert.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, 1))
	assert.ErrorIs(t, uc.Delete(ctx, 1), domain.ErrUserNotFound)
	_, err = uc.GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	all, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
