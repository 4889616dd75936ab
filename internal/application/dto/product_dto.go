package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"nombre" validate:"required,max=200"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio" validate:"gt=0"`
	Stock       *int            `json:"stock" validate:"required,gte=0"`
	Category    string          `json:"categoria" validate:"max=100"`
}

// UpdateProductRequest entrada para actualizar un producto (parcial).
type UpdateProductRequest struct {
	Name        *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"descripcion"`
	Price       *decimal.Decimal `json:"precio"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Category    *string          `json:"categoria" validate:"omitempty,max=100"`
}

// ProductQuery búsqueda y paginación.
type ProductQuery struct {
	Search string
	PageRequest
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Products []entity.Product `json:"productos"`
	PageResponse
}

// ProductCreatedResponse respuesta al crear.
type ProductCreatedResponse struct {
	Message   string         `json:"message"`
	ProductID int            `json:"producto_id"`
	Product   entity.Product `json:"producto"`
}
