package service

import (
	"worldtax/internal/model"
)

// ReferenceData is the read-only view of jurisdiction profiles and agreements the engine needs.
// *repository.TaxDatabase implements it.
type ReferenceData interface {
	GetCountry(code string) (model.Country, error)
	GetTradeAgreement(id string) (model.TradeAgreement, error)
	FederalAgreement(country string) (model.TradeAgreement, bool)
	CustomsUnion(source, destination string) (model.TradeAgreement, bool)
}

// ResolveTradeAgreement picks the agreement governing the scenario, or nil when none applies.
// Only an explicit override naming an unknown id fails.
func ResolveTradeAgreement(scenario model.TaxScenario, data ReferenceData) (*model.TradeAgreement, error) {
	override := scenario.TradeAgreementOverride
	if id, ok := override.AgreementID(); ok {
		agreement, err := data.GetTradeAgreement(id)
		if err != nil {
			return nil, err
		}
		return &agreement, nil
	}
	if override.IsNoAgreement() {
		return nil, nil
	}

	if scenario.IsSameCountry() {
		agreement, ok := data.FederalAgreement(scenario.SourceRegion.Country)
		if !ok {
			return nil, nil
		}
		return &agreement, nil
	}

	agreement, ok := data.CustomsUnion(scenario.SourceRegion.Country, scenario.DestinationRegion.Country)
	if !ok {
		return nil, nil
	}
	return &agreement, nil
}
