package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// Create registra un usuario: nombre y email en minúsculas, contraseña con bcrypt.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserCreatedResponse, error) {
	name := strings.ToLower(strings.TrimSpace(in.Name))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.Invalid("Todos los campos son obligatorios")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.Invalid("Email inválido")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleAdmin
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user entity.User
	err = uc.repo.Update(ctx, func(d *entity.UserDirectory) error {
		if d.FindByEmail(email) >= 0 {
			return domain.ErrEmailAlreadyExists
		}
		user = d.Add(entity.User{Name: name, Email: email, PasswordHash: string(hash), Role: role})
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("usuario registrado")
	return &dto.UserCreatedResponse{Message: "Usuario registrado", User: ToUserResponse(user)}, nil
}

// List devuelve los usuarios sin contraseña.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	d, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(d.Users))
	for _, u := range d.Users {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int) (*dto.UserResponse, error) {
	d, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := d.Find(id)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := ToUserResponse(d.Users[i])
	return &u, nil
}

// Update actualización parcial; la unicidad del email se vuelve a verificar.
func (uc *UserUseCase) Update(ctx context.Context, id int, in dto.UpdateUserRequest) (*dto.UserCreatedResponse, error) {
	var hash []byte
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.Invalid("Todos los campos son obligatorios")
		}
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost); err != nil {
			return nil, err
		}
	}

	var user entity.User
	err := uc.repo.Update(ctx, func(d *entity.UserDirectory) error {
		i := d.Find(id)
		if i < 0 {
			return domain.ErrUserNotFound
		}
		u := &d.Users[i]
		if in.Name != nil {
			name := strings.ToLower(strings.TrimSpace(*in.Name))
			if name == "" {
				return domain.Invalid("Todos los campos son obligatorios")
			}
			u.Name = name
		}
		if in.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*in.Email))
			if !strings.Contains(email, "@") {
				return domain.Invalid("Email inválido")
			}
			if j := d.FindByEmail(email); j >= 0 && j != i {
				return domain.ErrEmailAlreadyExists
			}
			u.Email = email
		}
		if hash != nil {
			u.PasswordHash = string(hash)
		}
		if in.Role != nil {
			u.Role = *in.Role
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.UserCreatedResponse{Message: "Usuario actualizado", User: ToUserResponse(user)}, nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(ctx context.Context, id int) error {
	return uc.repo.Update(ctx, func(d *entity.UserDirectory) error {
		i := d.Find(id)
		if i < 0 {
			return domain.ErrUserNotFound
		}
		d.Users = slices.Delete(d.Users, i, i+1)
		return nil
	})
}

// Authenticate verifica email y contraseña. Credenciales incorrectas o usuario
// inexistente devuelven ErrInvalidCredentials sin distinguir el caso.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	d, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := d.FindByEmail(email)
	if i < 0 {
		return nil, domain.ErrInvalidCredentials
	}
	u := d.Users[i]
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrInvalidCredentials
		}
		// hash ilegible (p. ej. contraseña antigua en texto plano)
		uc.log.Warn().Int("user_id", u.ID).Err(err).Msg("hash de contraseña inválido")
		return nil, domain.ErrInvalidCredentials
	}
	return &u, nil
}

// ToUserResponse convierte la entidad a la salida pública. Rol vacío → admin.
func ToUserResponse(u entity.User) dto.UserResponse {
	role := u.Role
	if role == "" {
		role = entity.RoleAdmin
	}
	return dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: role}
}
