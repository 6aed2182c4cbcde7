package service

import (
	"worldtax/internal/model"
)

// ComposeRates turns a treatment into the ordered components to aggregate.
// Compounding components always follow the components they compound on.
func ComposeRates(scenario model.TaxScenario, treatment model.TaxCalculationType, data ReferenceData) ([]model.TaxRate, error) {
	if scenario.SourceRegion.Country == "US" &&
		scenario.TransactionType == model.TransactionB2B &&
		scenario.HasResaleCertificate {
		return []model.TaxRate{}, nil
	}

	country, err := data.GetCountry(scenario.DestinationRegion.Country)
	if err != nil {
		return nil, err
	}
	isVAT := country.TaxType == model.TaxSystemVAT

	switch treatment {
	case model.CalculationReverseCharge:
		if isVAT {
			return []model.TaxRate{zeroVAT(model.VatRateReverseCharge)}, nil
		}
	case model.CalculationZeroRated:
		if isVAT {
			return []model.TaxRate{zeroVAT(model.VatRateZero)}, nil
		}
		return []model.TaxRate{}, nil
	case model.CalculationExempt:
		if isVAT {
			return []model.TaxRate{zeroVAT(model.VatRateExempt)}, nil
		}
	}

	return regionalRates(scenario, treatment, data)
}

func zeroVAT(rate model.VatRate) model.TaxRate {
	return model.TaxRate{Rate: 0, TaxType: model.VAT(rate)}
}

// regionalRates looks up the components of the region selected by the treatment.
func regionalRates(scenario model.TaxScenario, treatment model.TaxCalculationType, data ReferenceData) ([]model.TaxRate, error) {
	var region model.Region
	switch treatment {
	case model.CalculationOrigin:
		region = scenario.SourceRegion
	case model.CalculationZeroRated:
		return []model.TaxRate{}, nil
	default:
		region = scenario.DestinationRegion
	}

	// Origin-state tax does not cross state or provincial lines.
	if (region.Country == "US" || region.Country == "CA") && !scenario.IsSameState() {
		if treatment != model.CalculationDestination {
			return []model.TaxRate{}, nil
		}
	}

	return lookupRates(region, scenario.VatRate(), data)
}

// lookupRates dispatches on the jurisdiction's tax system.
func lookupRates(region model.Region, vatRate model.VatRate, data ReferenceData) ([]model.TaxRate, error) {
	country, err := data.GetCountry(region.Country)
	if err != nil {
		return nil, err
	}

	var rates []model.TaxRate
	if region.Country == "US" {
		if state, ok := country.State(region.Subdivision); ok && state.StandardRate > 0 {
			rates = append(rates, model.TaxRate{Rate: state.StandardRate, TaxType: model.TaxTypeStateSalesTax})
		}
		return nonNil(rates), nil
	}

	switch country.TaxType {
	case model.TaxSystemVAT:
		if rate, ok := country.VatRate(vatRate); ok {
			rates = append(rates, model.TaxRate{Rate: rate, TaxType: model.VAT(vatRate)})
		}
	case model.TaxSystemGST, model.TaxSystemPST, model.TaxSystemHST, model.TaxSystemQST:
		rates = layeredRates(country, region.Subdivision)
	case model.TaxSystemNone:
	}

	if len(rates) == 0 && country.TaxType == model.TaxSystemVAT {
		return nil, &model.DatabaseError{Kind: model.VatRateNotFound, ID: string(vatRate)}
	}
	return nonNil(rates), nil
}

// layeredRates builds the federal and provincial components of a Canada-style system.
func layeredRates(country model.Country, subdivision string) []model.TaxRate {
	gst := model.TaxRate{Rate: country.Standard(), TaxType: model.TaxTypeGST}

	state, ok := country.State(subdivision)
	if !ok {
		return []model.TaxRate{gst}
	}

	switch state.TaxType {
	case model.TaxSystemHST:
		return []model.TaxRate{{Rate: state.StandardRate, TaxType: model.TaxTypeHST}}
	case model.TaxSystemQST:
		return []model.TaxRate{gst, {Rate: state.StandardRate, TaxType: model.TaxTypeQST, Compound: true}}
	case model.TaxSystemPST:
		return []model.TaxRate{gst, {Rate: state.StandardRate, TaxType: model.TaxTypePST, Compound: true}}
	default:
		return []model.TaxRate{gst}
	}
}

func nonNil(rates []model.TaxRate) []model.TaxRate {
	if rates == nil {
		return []model.TaxRate{}
	}
	return rates
}
