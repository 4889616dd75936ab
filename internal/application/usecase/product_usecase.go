package usecase

import (
	"context"
	"slices"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD y búsqueda de productos. El stock lo descuenta la venta.
type ProductUseCase struct {
	repo repository.ProductRepository
	log  zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, log: log}
}

// Create crea un producto. Descripción vacía y categoría "Sin categoría" por defecto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductCreatedResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("El nombre es obligatorio")
	}
	if !in.Price.IsPositive() {
		return nil, domain.Invalid("El precio debe ser un número positivo")
	}
	if in.Stock == nil || *in.Stock < 0 {
		return nil, domain.Invalid("El stock debe ser un entero mayor o igual a 0")
	}
	p := entity.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Stock:       *in.Stock,
		Category:    strings.TrimSpace(in.Category),
	}
	if p.Category == "" {
		p.Category = entity.DefaultCategory
	}

	err := uc.repo.Update(ctx, func(c *entity.ProductCatalog) error {
		p = c.Add(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("product_id", p.ID).Str("nombre", p.Name).Msg("producto creado")
	return &dto.ProductCreatedResponse{Message: "Producto registrado correctamente", ProductID: p.ID, Product: p}, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int) (*entity.Product, error) {
	c, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := c.Find(id)
	if i < 0 {
		return nil, &domain.ProductNotFoundError{ID: id}
	}
	p := c.Products[i]
	return &p, nil
}

// Update actualización parcial con las mismas reglas de Create.
func (uc *ProductUseCase) Update(ctx context.Context, id int, in dto.UpdateProductRequest) (*entity.Product, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.Invalid("El nombre es obligatorio")
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return nil, domain.Invalid("El precio debe ser un número positivo")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, domain.Invalid("El stock debe ser un entero mayor o igual a 0")
	}

	var updated entity.Product
	err := uc.repo.Update(ctx, func(c *entity.ProductCatalog) error {
		i := c.Find(id)
		if i < 0 {
			return &domain.ProductNotFoundError{ID: id}
		}
		p := &c.Products[i]
		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			p.Description = strings.TrimSpace(*in.Description)
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		if in.Stock != nil {
			p.Stock = *in.Stock
		}
		if in.Category != nil {
			p.Category = strings.TrimSpace(*in.Category)
			if p.Category == "" {
				p.Category = entity.DefaultCategory
			}
		}
		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete elimina un producto por ID. El id no se reutiliza.
func (uc *ProductUseCase) Delete(ctx context.Context, id int) error {
	err := uc.repo.Update(ctx, func(c *entity.ProductCatalog) error {
		i := c.Find(id)
		if i < 0 {
			return &domain.ProductNotFoundError{ID: id}
		}
		c.Products = slices.Delete(c.Products, i, i+1)
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int("product_id", id).Msg("producto eliminado")
	return nil
}

// List filtra por texto (sin distinguir mayúsculas ni tildes) y pagina.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductQuery) (*dto.ProductListResponse, error) {
	c, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	matched := c.Products
	if term := fold(strings.TrimSpace(q.Search)); term != "" {
		matched = make([]entity.Product, 0, len(c.Products))
		for _, p := range c.Products {
			if strings.Contains(fold(p.Name), term) ||
				strings.Contains(fold(p.Description), term) ||
				strings.Contains(fold(p.Category), term) {
				matched = append(matched, p)
			}
		}
	}
	if matched == nil {
		matched = []entity.Product{}
	}
	page := q.PageRequest.Normalize()
	start, end := page.Bounds(len(matched))
	return &dto.ProductListResponse{Products: matched[start:end], PageResponse: dto.NewPageResponse(page, len(matched))}, nil
}

// fold pasa a minúsculas y quita marcas diacríticas ("Café" → "cafe").
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
