package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floorDeduct(stock, qty int) int {
	if qty >= stock {
		return 0
	}
	return stock - qty
}

func TestApplySale_DescuentaUnaSolaVez(t *testing.T) {
	var c ProductCatalog
	yerba := c.Add(Product{Name: "yerba", Stock: 10})
	pan := c.Add(Product{Name: "pan", Stock: 2})
	items := []SaleItem{
		{ProductID: yerba.ID, Quantity: 3},
		{ProductID: pan.ID, Quantity: 5},
		{ProductID: 99, Quantity: 1}, // producto borrado
	}

	assert.True(t, c.ApplySale("v-1", items, floorDeduct))
	assert.True(t, c.SaleApplied("v-1"))
	assert.Equal(t, 7, c.Products[0].Stock)
	assert.Equal(t, 0, c.Products[1].Stock)

	assert.False(t, c.ApplySale("v-1", items, floorDeduct))
	assert.Equal(t, 7, c.Products[0].Stock)
	assert.Equal(t, []string{"v-1"}, c.AppliedSales)
}

func TestProductCatalog_VentasAplicadasPersisten(t *testing.T) {
	var c ProductCatalog
	c.Add(Product{Name: "café", Stock: 1})
	c.ApplySale("v-9", nil, floorDeduct)

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"ventas_aplicadas":["v-9"]`)

	var back ProductCatalog
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.SaleApplied("v-9"))
	assert.False(t, back.SaleApplied("v-10"))
}
