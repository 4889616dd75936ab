package entity

import (
	"slices"

	"github.com/shopspring/decimal"
)

// DefaultCategory categoría asignada cuando el producto no trae una.
const DefaultCategory = "Sin categoría"

// Product producto del catálogo. Stock nunca es negativo.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Category    string          `json:"categoria"`
}

// ProductCatalog documento persistido de productos.
// NextID es monotónico: los ids no se reutilizan tras un borrado.
// AppliedSales registra las ventas cuyo stock ya se descontó, en la misma
// escritura que baja el stock.
type ProductCatalog struct {
	NextID       int       `json:"next_id"`
	Products     []Product `json:"productos"`
	AppliedSales []string  `json:"ventas_aplicadas,omitempty"`
}

// SaleApplied indica si el stock de la venta ya fue descontado.
func (c *ProductCatalog) SaleApplied(saleID string) bool {
	return slices.Contains(c.AppliedSales, saleID)
}

// ApplySale descuenta el stock de los items con piso en cero y marca la venta.
// Una venta ya marcada no descuenta de nuevo; devuelve false en ese caso.
func (c *ProductCatalog) ApplySale(saleID string, items []SaleItem, deduct func(stock, qty int) int) bool {
	if c.SaleApplied(saleID) {
		return false
	}
	for _, it := range items {
		if i := c.Find(it.ProductID); i >= 0 {
			c.Products[i].Stock = deduct(c.Products[i].Stock, it.Quantity)
		}
	}
	c.AppliedSales = append(c.AppliedSales, saleID)
	return true
}

// Find devuelve el índice del producto o -1.
func (c *ProductCatalog) Find(id int) int {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return i
		}
	}
	return -1
}

// Add asigna el siguiente id y agrega el producto.
func (c *ProductCatalog) Add(p Product) Product {
	if c.NextID <= 0 {
		c.NextID = 1
	}
	for _, existing := range c.Products {
		if existing.ID >= c.NextID {
			c.NextID = existing.ID + 1
		}
	}
	p.ID = c.NextID
	c.NextID++
	c.Products = append(c.Products, p)
	return p
}
