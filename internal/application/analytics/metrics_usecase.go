// Package analytics calcula las métricas de ventas y caja para el dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/application/ports"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/domain/repository"
)

// TopProductDefault valor de producto_mas_vendido sin ventas.
const TopProductDefault = "Ninguno"

// MetricsUseCase proyección de solo lectura sobre ventas y caja.
//
// Se recalcula en cada llamada salvo que la caché tenga un valor vigente;
// las escrituras de ventas y caja invalidan la caché.
type MetricsUseCase struct {
	sales  repository.SaleRepository
	ledger repository.CashRepository
	cache  ports.MetricsCache
	log    zerolog.Logger
}

// NewMetricsUseCase construye el caso de uso. cache puede ser nil.
func NewMetricsUseCase(sales repository.SaleRepository, ledger repository.CashRepository, cache ports.MetricsCache, log zerolog.Logger) *MetricsUseCase {
	if cache == nil {
		cache = ports.NoopCache{}
	}
	return &MetricsUseCase{sales: sales, ledger: ledger, cache: cache, log: log}
}

// GetMetrics devuelve totales, agrupaciones por período y el producto más vendido.
//
// Dos lecturas en paralelo:
//  1. ventas → total_ventas, ingresos_*, ventas_*, items
//  2. caja   → saldo_actual, egresos_* (movimientos tipo egreso)
func (uc *MetricsUseCase) GetMetrics(ctx context.Context) (*dto.MetricsDTO, error) {
	if m, ok := uc.cache.Get(ctx); ok {
		return m, nil
	}
	versioned, isVersioned := uc.cache.(ports.Generational)
	var gen uint64
	if isVersioned {
		gen = versioned.Generation()
	}

	type salesResult struct {
		sales []entity.Sale
		err   error
	}
	type ledgerResult struct {
		ledger entity.CashLedger
		err    error
	}
	salesCh := make(chan salesResult, 1)
	ledgerCh := make(chan ledgerResult, 1)

	go func() {
		s, err := uc.sales.Load(ctx)
		salesCh <- salesResult{s, err}
	}()
	go func() {
		l, err := uc.ledger.Load(ctx)
		ledgerCh <- ledgerResult{l, err}
	}()

	sr := <-salesCh
	lr := <-ledgerCh
	if sr.err != nil {
		return nil, fmt.Errorf("metricas: ventas: %w", sr.err)
	}
	if lr.err != nil {
		return nil, fmt.Errorf("metricas: caja: %w", lr.err)
	}

	m := Compute(sr.sales, lr.ledger)
	switch {
	case !isVersioned:
		// sin generación una escritura concurrente puede dejar la entrada vieja hasta el TTL
		uc.cache.Set(ctx, m)
	case !versioned.SetIfCurrent(ctx, m, gen):
		uc.log.Debug().Msg("métricas invalidadas durante el cálculo, no se cachean")
	}
	uc.log.Debug().Int("ventas", m.TotalSales).Int("egresos", m.TotalPayments).Msg("métricas recalculadas")
	return m, nil
}

// Compute arma la proyección a partir de las ventas y la caja.
// Los ingresos salen del total de cada venta; los egresos de los movimientos de caja.
func Compute(sales []entity.Sale, ledger entity.CashLedger) *dto.MetricsDTO {
	m := &dto.MetricsDTO{
		Balance:       ledger.Balance,
		TotalSales:    len(sales),
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		TopProduct:    dto.TopProductDTO{Name: TopProductDefault},

		SalesByDay:   map[string]int{},
		SalesByWeek:  map[string]int{},
		SalesByMonth: map[string]int{},
		SalesByYear:  map[string]int{},

		IncomeByDay:   map[string]decimal.Decimal{},
		IncomeByWeek:  map[string]decimal.Decimal{},
		IncomeByMonth: map[string]decimal.Decimal{},
		IncomeByYear:  map[string]decimal.Decimal{},

		ExpensesByDay:   map[string]decimal.Decimal{},
		ExpensesByWeek:  map[string]decimal.Decimal{},
		ExpensesByMonth: map[string]decimal.Decimal{},
		ExpensesByYear:  map[string]decimal.Decimal{},
	}

	// orden de primera aparición: en empate gana el primero visto
	var names []string
	qty := map[string]int{}

	for _, s := range sales {
		m.TotalIncome = m.TotalIncome.Add(s.Total)
		b := bucketsOf(s.Date.Time)
		m.SalesByDay[b.day]++
		m.SalesByWeek[b.week]++
		m.SalesByMonth[b.month]++
		m.SalesByYear[b.year]++
		addTo(m.IncomeByDay, b.day, s.Total)
		addTo(m.IncomeByWeek, b.week, s.Total)
		addTo(m.IncomeByMonth, b.month, s.Total)
		addTo(m.IncomeByYear, b.year, s.Total)

		for _, it := range s.Items {
			m.TotalItems += it.Quantity
			name := it.Name
			if name == "" {
				name = "Desconocido"
			}
			if _, ok := qty[name]; !ok {
				names = append(names, name)
			}
			qty[name] += it.Quantity
		}
	}

	for _, name := range names {
		if qty[name] > m.TopProduct.Quantity {
			m.TopProduct = dto.TopProductDTO{Name: name, Quantity: qty[name]}
		}
	}

	for _, mv := range ledger.Movements {
		if mv.Type != entity.MovementExpense {
			continue
		}
		m.TotalPayments++
		m.TotalExpenses = m.TotalExpenses.Add(mv.Amount)
		b := bucketsOf(mv.Date.Time)
		addTo(m.ExpensesByDay, b.day, mv.Amount)
		addTo(m.ExpensesByWeek, b.week, mv.Amount)
		addTo(m.ExpensesByMonth, b.month, mv.Amount)
		addTo(m.ExpensesByYear, b.year, mv.Amount)
	}
	return m
}

// ── Períodos ──────────────────────────────────────────────────────────────────

type buckets struct {
	day, week, month, year string
}

func bucketsOf(t time.Time) buckets {
	return buckets{
		day:   t.Format(time.DateOnly),
		week:  WeekLabel(t),
		month: t.Format("2006-01"),
		year:  t.Format("2006"),
	}
}

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// WeekLabel etiqueta de la semana (lunes a domingo), ej: "10-16 marzo 2025".
// El mes es el del lunes y el año el del domingo.
func WeekLabel(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7 // lunes = 0
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	sunday := monday.AddDate(0, 0, 6)
	return fmt.Sprintf("%d-%d %s %d", monday.Day(), sunday.Day(), monthsES[monday.Month()-1], sunday.Year())
}

func addTo(m map[string]decimal.Decimal, key string, v decimal.Decimal) {
	m[key] = m[key].Add(v)
}
