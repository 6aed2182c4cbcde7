package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTaxScenario_Defaults(t *testing.T) {
	s := NewTaxScenario(MustRegion("DE", ""), MustRegion("FR", ""), TransactionB2C)

	assert.False(t, s.TradeAgreementOverride.IsSet())
	assert.False(t, s.IsDigitalProductOrService)
	assert.False(t, s.HasResaleCertificate)
	assert.False(t, s.IgnoreThreshold)
	assert.Equal(t, VatRateStandard, s.VatRate())
	assert.False(t, s.IsSameCountry())
	assert.True(t, s.IsSameState())
}

func TestTaxScenario_Builders(t *testing.T) {
	base := NewTaxScenario(MustRegion("CA", "BC"), MustRegion("CA", "ON"), TransactionB2B)
	s := base.
		WithTradeAgreementOverride(UseAgreement("CA")).
		WithDigitalProduct(true).
		WithResaleCertificate(true).
		WithIgnoreThreshold(true).
		WithVatRate(VatRateReduced)

	id, ok := s.TradeAgreementOverride.AgreementID()
	assert.True(t, ok)
	assert.Equal(t, "CA", id)
	assert.True(t, s.IsDigitalProductOrService)
	assert.True(t, s.HasResaleCertificate)
	assert.True(t, s.IgnoreThreshold)
	assert.Equal(t, VatRateReduced, s.VatRate())
	assert.True(t, s.IsSameCountry())
	assert.False(t, s.IsSameState())

	// builders return copies
	assert.False(t, base.TradeAgreementOverride.IsSet())
	assert.False(t, base.IgnoreThreshold)
}

func TestTradeAgreementOverride(t *testing.T) {
	none := NoAgreement()
	assert.True(t, none.IsSet())
	assert.True(t, none.IsNoAgreement())
	_, ok := none.AgreementID()
	assert.False(t, ok)

	var zero TradeAgreementOverride
	assert.False(t, zero.IsSet())
	assert.False(t, zero.IsNoAgreement())
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "invalid_country_code", ErrorCode(&InputValidationError{Kind: InvalidCountryCode, Code: "XX"}))
	assert.Equal(t, "vat_rate_not_found", ErrorCode(&DatabaseError{Kind: VatRateNotFound, ID: "reduced"}))
	assert.Equal(t, "invalid_amount", ErrorCode(ErrInvalidAmount))
	assert.Equal(t, "internal", ErrorCode(errors.New("boom")))
}

func TestDatabaseError_Is(t *testing.T) {
	err := &DatabaseError{Kind: CountryNotFound, ID: "ZZ"}
	assert.ErrorIs(t, err, ErrCountryNotFound)
	assert.ErrorIs(t, err, &DatabaseError{Kind: CountryNotFound, ID: "ZZ"})
	assert.NotErrorIs(t, err, &DatabaseError{Kind: CountryNotFound, ID: "YY"})
	assert.NotErrorIs(t, err, ErrVatRateNotFound)
	assert.Equal(t, "country not found: ZZ", err.Error())
}
