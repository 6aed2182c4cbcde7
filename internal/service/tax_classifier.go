package service

import (
	"math"

	"worldtax/internal/model"
)

// Subdivisions whose HST or GST+QST always applies at destination, regardless of seller volume.
var canadianDestinationProvinces = map[string]struct{}{
	"CA-NS": {},
	"CA-NB": {},
	"CA-NL": {},
	"CA-ON": {},
	"CA-PE": {},
	"CA-QC": {},
}

// ClassifyCalculationType maps a scenario and its resolved agreement onto a treatment.
// It is total: every input yields a treatment.
func ClassifyCalculationType(scenario model.TaxScenario, agreement *model.TradeAgreement, amount float64) model.TaxCalculationType {
	if agreement == nil {
		if scenario.IsSameCountry() {
			return model.CalculationOrigin
		}
		return model.CalculationZeroRated
	}

	threshold := thresholdAmount(amount)

	switch agreement.Type {
	case model.AgreementCustomsUnion:
		cfg := internalRule(agreement.TaxRules, scenario.TransactionType)
		if cfg == nil {
			return model.CalculationDestination
		}
		return cfg.ByProductThreshold(threshold, scenario.IsDigitalProductOrService, scenario.IgnoreThreshold)

	case model.AgreementFederalState:
		dst := scenario.DestinationRegion
		if dst.Country == "CA" {
			if _, ok := canadianDestinationProvinces[dst.Subdivision]; ok {
				return model.CalculationDestination
			}
		}

		cfg := internalRule(agreement.TaxRules, scenario.TransactionType)
		if cfg == nil {
			return model.CalculationDestination
		}
		if scenario.TransactionType == model.TransactionB2B && cfg.IsReseller(scenario.HasResaleCertificate) {
			return model.CalculationZeroRated
		}
		return cfg.ByThreshold(threshold, scenario.IgnoreThreshold)

	default:
		return model.CalculationDestination
	}
}

func internalRule(rules model.TaxRules, transactionType model.TransactionType) *model.TaxRuleConfig {
	switch transactionType {
	case model.TransactionB2B:
		return rules.InternalB2B
	case model.TransactionB2C:
		return rules.InternalB2C
	default:
		return nil
	}
}

// thresholdAmount truncates toward zero into the uint32 domain thresholds are configured in.
// NaN and negative amounts become 0, amounts beyond the range saturate.
// Fractions of a currency unit are lost here only; tax arithmetic keeps the full amount.
func thresholdAmount(amount float64) uint32 {
	switch {
	case math.IsNaN(amount) || amount <= 0:
		return 0
	case amount >= math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(amount)
	}
}
