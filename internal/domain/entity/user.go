package entity

// Roles de usuario.
const (
	RoleAdmin  = "admin"
	RoleCajero = "cajero"
)

// User usuario del sistema. PasswordHash guarda el hash bcrypt.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"nombre"`
	Email        string `json:"email"`
	PasswordHash string `json:"contrasena"`
	Role         string `json:"rol,omitempty"`
}

// UserDirectory documento persistido de usuarios.
type UserDirectory struct {
	NextID int    `json:"next_id"`
	Users  []User `json:"usuarios"`
}

// Find devuelve el índice del usuario o -1.
func (d *UserDirectory) Find(id int) int {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// FindByEmail devuelve el índice del usuario con ese email o -1.
func (d *UserDirectory) FindByEmail(email string) int {
	for i := range d.Users {
		if d.Users[i].Email == email {
			return i
		}
	}
	return -1
}

// Add asigna el siguiente id y agrega el usuario.
func (d *UserDirectory) Add(u User) User {
	if d.NextID <= 0 {
		d.NextID = 1
	}
	for _, existing := range d.Users {
		if existing.ID >= d.NextID {
			d.NextID = existing.ID + 1
		}
	}
	u.ID = d.NextID
	d.NextID++
	d.Users = append(d.Users, u)
	return u
}
