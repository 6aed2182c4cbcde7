package service

import (
	"math"
	"testing"

	"worldtax/internal/model"
	"worldtax/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCalculator(t *testing.T) *TaxCalculator {
	t.Helper()
	db, err := repository.Default()
	require.NoError(t, err)
	return NewTaxCalculator(db)
}

func scenario(src, dst model.Region, tt model.TransactionType) model.TaxScenario {
	return model.NewTaxScenario(src, dst, tt)
}

func region(country, subdivision string) model.Region {
	return model.MustRegion(country, subdivision)
}

func TestTaxCalculator_CalculateTax(t *testing.T) {
	calc := defaultCalculator(t)

	tests := []struct {
		name     string
		scenario model.TaxScenario
		amount   float64
		want     float64
	}{
		{
			name:     "domestic german sale",
			scenario: scenario(region("DE", ""), region("DE", ""), model.TransactionB2B),
			amount:   100, want: 19,
		},
		{
			name:     "intra-EU B2B reverse charge",
			scenario: scenario(region("DE", ""), region("FR", ""), model.TransactionB2B),
			amount:   100, want: 0,
		},
		{
			name:     "intra-EU B2C below distance selling threshold is taxed at origin",
			scenario: scenario(region("DE", ""), region("FR", ""), model.TransactionB2C),
			amount:   100, want: 19,
		},
		{
			name:     "intra-EU B2C above threshold is taxed at destination",
			scenario: scenario(region("DE", ""), region("FR", ""), model.TransactionB2C),
			amount:   20000, want: 4000,
		},
		{
			name:     "intra-EU digital B2C below threshold",
			scenario: scenario(region("DE", ""), region("FR", ""), model.TransactionB2C).WithDigitalProduct(true),
			amount:   100, want: 19,
		},
		{
			name:     "british columbia below threshold",
			scenario: scenario(region("CA", "BC"), region("CA", "BC"), model.TransactionB2C),
			amount:   100, want: 0,
		},
		{
			name:     "british columbia ignoring threshold",
			scenario: scenario(region("CA", "BC"), region("CA", "BC"), model.TransactionB2C).WithIgnoreThreshold(true),
			amount:   100, want: 12.35,
		},
		{
			name:     "british columbia above threshold",
			scenario: scenario(region("CA", "BC"), region("CA", "BC"), model.TransactionB2C),
			amount:   100000, want: 12350,
		},
		{
			name:     "ontario HST always applies",
			scenario: scenario(region("CA", "BC"), region("CA", "ON"), model.TransactionB2C),
			amount:   100, want: 13,
		},
		{
			name:     "US resale certificate",
			scenario: scenario(region("US", "CA"), region("US", "WA"), model.TransactionB2B).WithResaleCertificate(true),
			amount:   100, want: 0,
		},
		{
			name:     "US interstate below nexus",
			scenario: scenario(region("US", "CA"), region("US", "WA"), model.TransactionB2C),
			amount:   100, want: 0,
		},
		{
			name:     "US interstate ignoring nexus",
			scenario: scenario(region("US", "CA"), region("US", "WA"), model.TransactionB2C).WithIgnoreThreshold(true),
			amount:   100, want: 6.5,
		},
		{
			name:     "US interstate above nexus",
			scenario: scenario(region("US", "CA"), region("US", "WA"), model.TransactionB2C),
			amount:   100000, want: 6500,
		},
		{
			name:     "US state without sales tax",
			scenario: scenario(region("US", "CA"), region("US", "OR"), model.TransactionB2C),
			amount:   100000, want: 0,
		},
		{
			name:     "GCC B2B reverse charge into a non-VAT member",
			scenario: scenario(region("AE", ""), region("QA", ""), model.TransactionB2B),
			amount:   100, want: 0,
		},
		{
			name:     "GCC B2C taxed at origin",
			scenario: scenario(region("AE", ""), region("QA", ""), model.TransactionB2C),
			amount:   100, want: 5,
		},
		{
			name:     "export outside any agreement",
			scenario: scenario(region("DE", ""), region("TH", ""), model.TransactionB2C),
			amount:   100, want: 0,
		},
		{
			name:     "french reduced alternative rate",
			scenario: scenario(region("FR", ""), region("FR", ""), model.TransactionB2C).WithVatRate(model.VatRateReducedAlt),
			amount:   100, want: 5.5,
		},
		{
			name:     "forced no agreement across EU borders",
			scenario: scenario(region("DE", ""), region("FR", ""), model.TransactionB2B).WithTradeAgreementOverride(model.NoAgreement()),
			amount:   100, want: 0,
		},
		{
			name:     "australian GST without subdivision",
			scenario: scenario(region("AU", ""), region("AU", ""), model.TransactionB2C),
			amount:   100, want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.CalculateTax(tt.scenario, tt.amount)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestTaxCalculator_Quebec(t *testing.T) {
	calc := defaultCalculator(t)
	s := scenario(region("CA", "QC"), region("CA", "QC"), model.TransactionB2C)

	treatment, err := calc.DetermineCalculationType(s, 100)
	require.NoError(t, err)
	assert.Equal(t, model.CalculationDestination, treatment)

	rates, err := calc.GetRates(s, 100)
	require.NoError(t, err)
	assert.Equal(t, []model.TaxRate{
		{Rate: 0.05, TaxType: model.TaxTypeGST},
		{Rate: 0.09975, TaxType: model.TaxTypeQST, Compound: true},
	}, rates)

	exact, err := calc.CalculateTaxExact(s, decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	assert.True(t, exact.Equal(decimal.RequireFromString("15.47375")), exact.String())

	rounded, err := calc.CalculateTax(s, 100)
	require.NoError(t, err)
	assert.InDelta(t, 15.47, rounded, 0.011)
}

func TestTaxCalculator_ResaleReturnsNoComponents(t *testing.T) {
	calc := defaultCalculator(t)
	s := scenario(region("US", "NY"), region("US", "NY"), model.TransactionB2B).WithResaleCertificate(true)

	rates, err := calc.GetRates(s, 100)
	require.NoError(t, err)
	assert.NotNil(t, rates)
	assert.Empty(t, rates)
}

func TestTaxCalculator_Errors(t *testing.T) {
	calc := defaultCalculator(t)

	t.Run("unknown agreement override", func(t *testing.T) {
		s := scenario(region("DE", ""), region("FR", ""), model.TransactionB2B).
			WithTradeAgreementOverride(model.UseAgreement("NAFTA"))
		_, err := calc.CalculateTax(s, 100)
		assert.ErrorIs(t, err, &model.DatabaseError{Kind: model.TradeAgreementNotFound, ID: "NAFTA"})
	})

	t.Run("country missing from reference data", func(t *testing.T) {
		s := scenario(region("DE", ""), region("BR", ""), model.TransactionB2B)
		_, err := calc.GetRates(s, 100)
		assert.ErrorIs(t, err, &model.DatabaseError{Kind: model.CountryNotFound, ID: "BR"})
	})

	t.Run("undefined VAT band", func(t *testing.T) {
		s := scenario(region("DE", ""), region("DE", ""), model.TransactionB2C).WithVatRate(model.VatRateSuperReduced)
		_, err := calc.CalculateTax(s, 100)
		assert.ErrorIs(t, err, model.ErrVatRateNotFound)
		assert.Contains(t, err.Error(), "super_reduced")
	})

	t.Run("non-finite amounts", func(t *testing.T) {
		s := scenario(region("DE", ""), region("DE", ""), model.TransactionB2C)
		for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := calc.CalculateTax(s, amount)
			assert.ErrorIs(t, err, model.ErrInvalidAmount)
		}
	})

	t.Run("decimal beyond float range", func(t *testing.T) {
		s := scenario(region("DE", ""), region("DE", ""), model.TransactionB2C)
		_, err := calc.CalculateTaxExact(s, decimal.New(1, 400))
		assert.ErrorIs(t, err, model.ErrInvalidAmount)
	})
}

func TestTaxCalculator_Evaluate(t *testing.T) {
	calc := defaultCalculator(t)
	s := scenario(region("CA", "BC"), region("CA", "BC"), model.TransactionB2C)

	eval, err := calc.Evaluate(s, decimal.RequireFromString("100000"))
	require.NoError(t, err)
	assert.Equal(t, model.CalculationDestination, eval.CalculationType)
	assert.Len(t, eval.Rates, 2)
	assert.InDelta(t, 12350, eval.Tax, 1e-9)
	assert.True(t, eval.TaxExact.Equal(decimal.NewFromInt(12350)), eval.TaxExact.String())
}

func TestTaxCalculator_ExactMatchesFloatForSingleComponent(t *testing.T) {
	calc := defaultCalculator(t)
	s := scenario(region("DE", ""), region("DE", ""), model.TransactionB2C)

	exact, err := calc.CalculateTaxExact(s, decimal.RequireFromString("1234.56"))
	require.NoError(t, err)
	rounded, err := calc.CalculateTax(s, 1234.56)
	require.NoError(t, err)

	assert.True(t, exact.Equal(decimal.RequireFromString("234.5664")), exact.String())
	assert.InDelta(t, 234.57, rounded, 1e-9)
}
