package service

import (
	"math"
	"testing"

	"worldtax/internal/model"

	"github.com/stretchr/testify/assert"
)

func thresholdConfig(def, below, above model.TaxCalculationType, threshold uint32) *model.TaxRuleConfig {
	return &model.TaxRuleConfig{
		Type:      def,
		Threshold: &model.ThresholdRule{Below: below, Above: above, Threshold: threshold},
	}
}

func TestThresholdAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   uint32
	}{
		{0, 0},
		{99.99, 99},
		{100, 100},
		{-5, 0},
		{math.NaN(), 0},
		{math.Inf(-1), 0},
		{math.Inf(1), math.MaxUint32},
		{1e12, math.MaxUint32},
		{math.MaxUint32, math.MaxUint32},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, thresholdAmount(tt.amount), "amount %v", tt.amount)
	}
}

func TestClassifyCalculationType_NoAgreement(t *testing.T) {
	domestic := scenario(region("DE", ""), region("DE", ""), model.TransactionB2B)
	assert.Equal(t, model.CalculationOrigin, ClassifyCalculationType(domestic, nil, 100))
	assert.Equal(t, model.CalculationOrigin, ClassifyCalculationType(domestic.WithResaleCertificate(true), nil, 100))

	export := scenario(region("DE", ""), region("TH", ""), model.TransactionB2C)
	assert.Equal(t, model.CalculationZeroRated, ClassifyCalculationType(export, nil, 100))
}

func TestClassifyCalculationType_CustomsUnion(t *testing.T) {
	union := &model.TradeAgreement{
		Type: model.AgreementCustomsUnion,
		TaxRules: model.TaxRules{
			InternalB2B: &model.TaxRuleConfig{Type: model.CalculationReverseCharge},
			InternalB2C: &model.TaxRuleConfig{
				Type:             model.CalculationDestination,
				Threshold:        &model.ThresholdRule{Below: model.CalculationOrigin, Above: model.CalculationDestination, Threshold: 10000},
				DigitalThreshold: &model.ThresholdRule{Below: model.CalculationExempt, Above: model.CalculationDestination, Threshold: 500},
			},
		},
	}
	b2b := scenario(region("DE", ""), region("FR", ""), model.TransactionB2B)
	b2c := scenario(region("DE", ""), region("FR", ""), model.TransactionB2C)

	tests := []struct {
		name     string
		scenario model.TaxScenario
		amount   float64
		want     model.TaxCalculationType
	}{
		{"b2b default", b2b, 100, model.CalculationReverseCharge},
		{"b2c below", b2c, 9999.99, model.CalculationOrigin},
		{"b2c at threshold", b2c, 10000, model.CalculationDestination},
		{"b2c ignore threshold", b2c.WithIgnoreThreshold(true), 1, model.CalculationDestination},
		{"digital below digital threshold", b2c.WithDigitalProduct(true), 499, model.CalculationExempt},
		{"digital above digital threshold", b2c.WithDigitalProduct(true), 600, model.CalculationDestination},
		{"fraction below threshold truncates", b2c.WithDigitalProduct(true), 499.999, model.CalculationExempt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCalculationType(tt.scenario, union, tt.amount))
		})
	}

	bare := &model.TradeAgreement{Type: model.AgreementCustomsUnion}
	assert.Equal(t, model.CalculationDestination, ClassifyCalculationType(b2b, bare, 100))
	assert.Equal(t, model.CalculationDestination, ClassifyCalculationType(b2c, bare, 100))
}

func TestClassifyCalculationType_CustomsUnionDigitalB2B(t *testing.T) {
	union := &model.TradeAgreement{
		Type: model.AgreementCustomsUnion,
		TaxRules: model.TaxRules{
			InternalB2B: &model.TaxRuleConfig{
				Type:             model.CalculationReverseCharge,
				Threshold:        &model.ThresholdRule{Below: model.CalculationOrigin, Above: model.CalculationReverseCharge, Threshold: 1000},
				DigitalThreshold: &model.ThresholdRule{Below: model.CalculationExempt, Above: model.CalculationDestination, Threshold: 50},
			},
		},
	}
	b2b := scenario(region("DE", ""), region("FR", ""), model.TransactionB2B)
	digital := b2b.WithDigitalProduct(true)

	assert.Equal(t, model.CalculationOrigin, ClassifyCalculationType(b2b, union, 10))
	assert.Equal(t, model.CalculationReverseCharge, ClassifyCalculationType(b2b, union, 1000))
	assert.Equal(t, model.CalculationExempt, ClassifyCalculationType(digital, union, 10))
	assert.Equal(t, model.CalculationDestination, ClassifyCalculationType(digital, union, 50))
	assert.Equal(t, model.CalculationDestination, ClassifyCalculationType(digital, union, 999))
	assert.Equal(t, model.CalculationReverseCharge, ClassifyCalculationType(digital.WithIgnoreThreshold(true), union, 10))
}

func TestClassifyCalculationType_Federal(t *testing.T) {
	requires := true
	b2bRule := thresholdConfig(model.CalculationDestination, model.CalculationZeroRated, model.CalculationDestination, 100000)
	b2bRule.RequiresResaleCertificate = &requires
	federal := &model.TradeAgreement{
		Type: model.AgreementFederalState,
		TaxRules: model.TaxRules{
			InternalB2B: b2bRule,
			InternalB2C: thresholdConfig(model.CalculationDestination, model.CalculationZeroRated, model.CalculationDestination, 30000),
		},
	}

	tests := []struct {
		name     string
		scenario model.TaxScenario
		amount   float64
		want     model.TaxCalculationType
	}{
		{"quebec bypasses threshold", scenario(region("CA", "BC"), region("CA", "QC"), model.TransactionB2C), 1, model.CalculationDestination},
		{"ontario bypasses threshold", scenario(region("CA", "BC"), region("CA", "ON"), model.TransactionB2C), 1, model.CalculationDestination},
		{"nova scotia bypasses resale", scenario(region("CA", "BC"), region("CA", "NS"), model.TransactionB2B).WithResaleCertificate(true), 1, model.CalculationDestination},
		{"alberta below threshold", scenario(region("CA", "BC"), region("CA", "AB"), model.TransactionB2C), 100, model.CalculationZeroRated},
		{"alberta above threshold", scenario(region("CA", "BC"), region("CA", "AB"), model.TransactionB2C), 30000, model.CalculationDestination},
		{"reseller is zero rated", scenario(region("US", "CA"), region("US", "WA"), model.TransactionB2B).WithResaleCertificate(true), 1e9, model.CalculationZeroRated},
		{"b2b without certificate uses threshold", scenario(region("US", "CA"), region("US", "WA"), model.TransactionB2B), 100, model.CalculationZeroRated},
		{"b2b ignore threshold", scenario(region("US", "CA"), region("US", "WA"), model.TransactionB2B).WithIgnoreThreshold(true), 100, model.CalculationDestination},
		{"b2c digital flag does not matter", scenario(region("US", "CA"), region("US", "WA"), model.TransactionB2C).WithDigitalProduct(true), 30000, model.CalculationDestination},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCalculationType(tt.scenario, federal, tt.amount))
		})
	}

	bare := &model.TradeAgreement{Type: model.AgreementFederalState}
	assert.Equal(t, model.CalculationDestination,
		ClassifyCalculationType(scenario(region("US", "CA"), region("US", "WA"), model.TransactionB2B), bare, 1))
}

func TestClassifyCalculationType_UnknownKind(t *testing.T) {
	odd := &model.TradeAgreement{Type: "free_trade_area"}
	s := scenario(region("DE", ""), region("FR", ""), model.TransactionB2B)
	assert.Equal(t, model.CalculationDestination, ClassifyCalculationType(s, odd, 100))
}
