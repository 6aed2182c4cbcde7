package service

import (
	"math"

	"worldtax/internal/model"

	"github.com/shopspring/decimal"
)

// AggregateTax folds the components over amount in binary floating point and
// rounds the result to cents, half away from zero.
func AggregateTax(amount float64, rates []model.TaxRate) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, model.ErrInvalidAmount
	}
	return math.Round(sumTax(amount, rates)*100) / 100, nil
}

func sumTax(amount float64, rates []model.TaxRate) float64 {
	var total float64
	for _, r := range rates {
		base := amount
		if r.Compound {
			base = amount + total
		}
		total += r.Rate * base
	}
	return total
}

// AggregateTaxExact folds the components over amount in decimal arithmetic.
// The result is not rounded so that drift in the float path stays observable.
func AggregateTaxExact(amount decimal.Decimal, rates []model.TaxRate) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rates {
		base := amount
		if r.Compound {
			base = amount.Add(total)
		}
		total = total.Add(decimal.NewFromFloat(r.Rate).Mul(base))
	}
	return total
}
