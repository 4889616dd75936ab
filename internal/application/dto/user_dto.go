package dto

// CreateUserRequest entrada para crear un usuario (contraseña en texto, se hashea en el caso de uso).
type CreateUserRequest struct {
	Name     string `json:"nombre" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,max=200"`
	Password string `json:"contrasena" validate:"required,min=4"`
	Role     string `json:"rol" validate:"omitempty,oneof=admin cajero"`
}

// UpdateUserRequest entrada parcial.
type UpdateUserRequest struct {
	Name     *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email" validate:"omitempty,max=200"`
	Password *string `json:"contrasena" validate:"omitempty,min=4"`
	Role     *string `json:"rol" validate:"omitempty,oneof=admin cajero"`
}

// UserResponse salida de un usuario (sin contraseña).
type UserResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Role  string `json:"rol"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"contrasena" validate:"required"`
}

// LoginResponse usuario autenticado y token JWT.
type LoginResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"usuario"`
	Token   string       `json:"token"`
}

// UserCreatedResponse respuesta al crear.
type UserCreatedResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"usuario"`
}
