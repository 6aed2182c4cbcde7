package service

import (
	"math"

	"worldtax/internal/model"

	"github.com/shopspring/decimal"
)

// TaxCalculator evaluates scenarios against one immutable set of reference data.
// It holds no mutable state and may be shared across goroutines.
type TaxCalculator struct {
	data ReferenceData
}

func NewTaxCalculator(data ReferenceData) *TaxCalculator {
	return &TaxCalculator{data: data}
}

// DetermineCalculationType resolves the governing agreement and classifies the scenario.
func (c *TaxCalculator) DetermineCalculationType(scenario model.TaxScenario, amount float64) (model.TaxCalculationType, error) {
	agreement, err := ResolveTradeAgreement(scenario, c.data)
	if err != nil {
		return "", err
	}
	return ClassifyCalculationType(scenario, agreement, amount), nil
}

// GetRates returns the ordered tax components for the scenario at amount.
func (c *TaxCalculator) GetRates(scenario model.TaxScenario, amount float64) ([]model.TaxRate, error) {
	_, rates, err := c.Classify(scenario, amount)
	return rates, err
}

// Classify determines the calculation type and composes the rates for it in one pass.
func (c *TaxCalculator) Classify(scenario model.TaxScenario, amount float64) (model.TaxCalculationType, []model.TaxRate, error) {
	treatment, err := c.DetermineCalculationType(scenario, amount)
	if err != nil {
		return "", nil, err
	}
	rates, err := ComposeRates(scenario, treatment, c.data)
	if err != nil {
		return "", nil, err
	}
	return treatment, rates, nil
}

// CalculateTax returns the tax owed on amount, rounded to cents.
func (c *TaxCalculator) CalculateTax(scenario model.TaxScenario, amount float64) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, model.ErrInvalidAmount
	}
	rates, err := c.GetRates(scenario, amount)
	if err != nil {
		return 0, err
	}
	return AggregateTax(amount, rates)
}

// CalculateTaxExact returns the unrounded tax owed on amount in decimal arithmetic.
func (c *TaxCalculator) CalculateTaxExact(scenario model.TaxScenario, amount decimal.Decimal) (decimal.Decimal, error) {
	f, _ := amount.Float64()
	if math.IsInf(f, 0) {
		return decimal.Zero, model.ErrInvalidAmount
	}
	rates, err := c.GetRates(scenario, f)
	if err != nil {
		return decimal.Zero, err
	}
	return AggregateTaxExact(amount, rates), nil
}

// Evaluation is the full result of one scenario at one amount.
type Evaluation struct {
	CalculationType model.TaxCalculationType
	Rates           []model.TaxRate
	Tax             float64
	TaxExact        decimal.Decimal
}

// Evaluate classifies and composes once, then aggregates in both precisions.
func (c *TaxCalculator) Evaluate(scenario model.TaxScenario, amount decimal.Decimal) (Evaluation, error) {
	f, _ := amount.Float64()
	if math.IsInf(f, 0) {
		return Evaluation{}, model.ErrInvalidAmount
	}
	treatment, rates, err := c.Classify(scenario, f)
	if err != nil {
		return Evaluation{}, err
	}
	tax, err := AggregateTax(f, rates)
	if err != nil {
		return Evaluation{}, err
	}
	return Evaluation{
		CalculationType: treatment,
		Rates:           rates,
		Tax:             tax,
		TaxExact:        AggregateTaxExact(amount, rates),
	}, nil
}
