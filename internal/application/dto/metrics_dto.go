package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto con más unidades vendidas.
type TopProductDTO struct {
	Name     string `json:"nombre"`
	Quantity int    `json:"cantidad"`
}

// MetricsDTO proyección de ventas y caja.
type MetricsDTO struct {
	Balance       decimal.Decimal `json:"saldo_actual"`
	TotalSales    int             `json:"total_ventas"`
	TotalPayments int             `json:"total_pagos"`
	TotalIncome   decimal.Decimal `json:"total_ingresos"`
	TotalExpenses decimal.Decimal `json:"total_egresos"`
	TotalItems    int             `json:"total_items"`
	TopProduct    TopProductDTO   `json:"producto_mas_vendido"`

	SalesByDay   map[string]int `json:"ventas_por_dia"`
	SalesByWeek  map[string]int `json:"ventas_por_semana"`
	SalesByMonth map[string]int `json:"ventas_por_mes"`
	SalesByYear  map[string]int `json:"ventas_anuales"`

	IncomeByDay   map[string]decimal.Decimal `json:"ingresos_por_dia"`
	IncomeByWeek  map[string]decimal.Decimal `json:"ingresos_por_semana"`
	IncomeByMonth map[string]decimal.Decimal `json:"ingresos_por_mes"`
	IncomeByYear  map[string]decimal.Decimal `json:"ingresos_anuales"`

	ExpensesByDay   map[string]decimal.Decimal `json:"egresos_por_dia"`
	ExpensesByWeek  map[string]decimal.Decimal `json:"egresos_por_semana"`
	ExpensesByMonth map[string]decimal.Decimal `json:"egresos_por_mes"`
	ExpensesByYear  map[string]decimal.Decimal `json:"egresos_anuales"`
}
