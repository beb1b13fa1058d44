package inventory

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/perishable-inventory/internal/domain"
)

// Pricing precio de venta y costo de compra por unidad, en unidades mayores de Currency.
type Pricing struct {
	Price    decimal.Decimal
	Cost     decimal.Decimal
	Currency string
}

// NewPricing valida precio y costo no negativos y una moneda ISO 4217 conocida.
func NewPricing(price, cost decimal.Decimal, currency string) (Pricing, error) {
	if price.IsNegative() || cost.IsNegative() {
		return Pricing{}, fmt.Errorf("%w: precio %s / costo %s", domain.ErrInvalidInput, price, cost)
	}
	if money.GetCurrency(currency) == nil {
		return Pricing{}, fmt.Errorf("%w: moneda desconocida %q", domain.ErrInvalidInput, currency)
	}
	return Pricing{Price: price, Cost: cost, Currency: currency}, nil
}

// Profit = precio × vendidos − costo × comprados, redondeado a la unidad menor de la moneda.
func (p Pricing) Profit(purchased, sold int64) decimal.Decimal {
	revenue := p.Price.Mul(decimal.NewFromInt(sold))
	cost := p.Cost.Mul(decimal.NewFromInt(purchased))
	return revenue.Sub(cost).Round(p.fraction())
}

// Format representa un monto como string monetario (ej. "$1,234.50", "-$0.40").
func (p Pricing) Format(amount decimal.Decimal) string {
	minor := amount.Round(p.fraction()).Shift(p.fraction()).IntPart()
	return money.New(minor, p.Currency).Display()
}

func (p Pricing) fraction() int32 {
	return int32(money.GetCurrency(p.Currency).Fraction)
}
