package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/domain"
	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	"github.com/jhoicas/cajaplus-api/internal/domain/pricing"
	"github.com/jhoicas/cajaplus-api/internal/domain/repository"
)

// CalculatorUseCase calcula precios de venta y guarda el historial.
type CalculatorUseCase struct {
	history repository.PriceHistoryRepository
	log     zerolog.Logger
}

// NewCalculatorUseCase construye el caso de uso.
func NewCalculatorUseCase(history repository.PriceHistoryRepository, log zerolog.Logger) *CalculatorUseCase {
	return &CalculatorUseCase{history: history, log: log}
}

// Calculate aplica pricing.FinalPrice y agrega el cálculo al historial.
func (uc *CalculatorUseCase) Calculate(ctx context.Context, in dto.PriceRequest) (*dto.PriceResponse, error) {
	cost, err := nonNegative("costo_producto", in.ProductCost)
	if err != nil {
		return nil, err
	}
	shipping, err := nonNegative("costo_envio", in.ShippingCost)
	if err != nil {
		return nil, err
	}
	margin, err := nonNegative("margen_ganancia", in.Margin)
	if err != nil {
		return nil, err
	}

	q := entity.PriceQuote{
		ProductCost:  cost,
		ShippingCost: shipping,
		Margin:       margin,
		FinalPrice:   pricing.FinalPrice(cost, shipping, margin),
		Date:         entity.Now(),
	}
	if err := uc.history.Update(ctx, func(all *[]entity.PriceQuote) error {
		*all = append(*all, q)
		return nil
	}); err != nil {
		return nil, err
	}
	uc.log.Debug().Str("precio_final", q.FinalPrice.String()).Msg("precio calculado")
	return &dto.PriceResponse{FinalPrice: q.FinalPrice, IVA: pricing.IVARate}, nil
}

// History devuelve los cálculos guardados.
func (uc *CalculatorUseCase) History(ctx context.Context) ([]entity.PriceQuote, error) {
	all, err := uc.history.Load(ctx)
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = []entity.PriceQuote{}
	}
	return all, nil
}

func nonNegative(field string, a dto.Amount) (decimal.Decimal, error) {
	if !a.IsSet() {
		return decimal.Zero, domain.Invalid("Faltan campos requeridos: %s", field)
	}
	d, err := a.Decimal()
	if err != nil || d.IsNegative() {
		return decimal.Zero, domain.Invalid("El campo '%s' debe ser un número mayor o igual a 0", field)
	}
	return d, nil
}
