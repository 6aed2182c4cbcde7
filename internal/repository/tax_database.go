package repository

import (
	"maps"
	"slices"

	"worldtax/internal/model"
)

// TaxDatabase is the in-memory jurisdiction profile store: country tax profiles keyed by
// ISO 3166-1 alpha-2 code and trade agreements keyed by agreement id.
//
// It is immutable once constructed and safe for concurrent readers. Values handed out are
// copies of the top-level structs; nested maps and slices are shared and must be treated as read-only.
//
// Reference data must register at most one customs union per country pair; CustomsUnion
// returns the first match in agreement-id order and does not detect duplicates.
type TaxDatabase struct {
	countries       map[string]model.Country
	tradeAgreements map[string]model.TradeAgreement
	agreementIDs    []string
}

// NewTaxDatabase copies the given tables into a new store.
func NewTaxDatabase(countries map[string]model.Country, agreements map[string]model.TradeAgreement) *TaxDatabase {
	db := &TaxDatabase{
		countries:       maps.Clone(countries),
		tradeAgreements: maps.Clone(agreements),
	}
	if db.countries == nil {
		db.countries = map[string]model.Country{}
	}
	if db.tradeAgreements == nil {
		db.tradeAgreements = map[string]model.TradeAgreement{}
	}
	db.agreementIDs = slices.Sorted(maps.Keys(db.tradeAgreements))
	return db
}

// GetCountry returns the tax profile for a country code.
func (d *TaxDatabase) GetCountry(code string) (model.Country, error) {
	country, ok := d.countries[code]
	if !ok {
		return model.Country{}, &model.DatabaseError{Kind: model.CountryNotFound, ID: code}
	}
	return country, nil
}

// GetTradeAgreement returns the agreement registered under id.
func (d *TaxDatabase) GetTradeAgreement(id string) (model.TradeAgreement, error) {
	agreement, ok := d.tradeAgreements[id]
	if !ok {
		return model.TradeAgreement{}, &model.DatabaseError{Kind: model.TradeAgreementNotFound, ID: id}
	}
	return agreement, nil
}

// FederalAgreement returns the agreement keyed by the country code, only if it is federal.
func (d *TaxDatabase) FederalAgreement(country string) (model.TradeAgreement, bool) {
	agreement, ok := d.tradeAgreements[country]
	if !ok || !agreement.IsFederal() {
		return model.TradeAgreement{}, false
	}
	return agreement, true
}

// CustomsUnion returns the first customs union that has both countries as members.
func (d *TaxDatabase) CustomsUnion(source, destination string) (model.TradeAgreement, bool) {
	for _, id := range d.agreementIDs {
		agreement := d.tradeAgreements[id]
		if agreement.IsInternational() && agreement.HasMember(source) && agreement.HasMember(destination) {
			return agreement, true
		}
	}
	return model.TradeAgreement{}, false
}

// CountryCodes lists the known country codes in sorted order.
func (d *TaxDatabase) CountryCodes() []string {
	return slices.Sorted(maps.Keys(d.countries))
}

// TradeAgreementIDs lists the known agreement ids in sorted order.
func (d *TaxDatabase) TradeAgreementIDs() []string {
	return slices.Clone(d.agreementIDs)
}

// Len returns the number of countries and agreements held.
func (d *TaxDatabase) Len() (countries, agreements int) {
	return len(d.countries), len(d.tradeAgreements)
}
