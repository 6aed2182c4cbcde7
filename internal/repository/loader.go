package repository

import (
	"bytes"
	"embed"
	"encoding/json"
	"os"

	"worldtax/internal/model"

	"github.com/cockroachdb/errors"
)

//go:embed data/vat_rates.json data/trade_agreements.json
var embeddedData embed.FS

const (
	embeddedVatRates        = "data/vat_rates.json"
	embeddedTradeAgreements = "data/trade_agreements.json"
)

// Default builds the store from the reference tables compiled into the binary.
func Default() (*TaxDatabase, error) {
	rates, err := embeddedData.ReadFile(embeddedVatRates)
	if err != nil {
		return nil, errors.Wrap(err, "read embedded vat rates")
	}
	agreements, err := embeddedData.ReadFile(embeddedTradeAgreements)
	if err != nil {
		return nil, errors.Wrap(err, "read embedded trade agreements")
	}
	return FromJSON(rates, agreements)
}

// FromFiles builds the store from a rate table and an agreement table on disk.
func FromFiles(vatRatesPath, tradeAgreementsPath string) (*TaxDatabase, error) {
	rates, err := os.ReadFile(vatRatesPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read vat rates %s", vatRatesPath)
	}
	agreements, err := os.ReadFile(tradeAgreementsPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read trade agreements %s", tradeAgreementsPath)
	}
	return FromJSON(rates, agreements)
}

// FromJSON parses both tables and builds the store.
func FromJSON(vatRates, tradeAgreements []byte) (*TaxDatabase, error) {
	countries, err := ParseCountries(vatRates)
	if err != nil {
		return nil, err
	}
	agreements, err := ParseTradeAgreements(tradeAgreements)
	if err != nil {
		return nil, err
	}
	return NewTaxDatabase(countries, agreements), nil
}

// ParseCountries decodes a country-code keyed rate table. Subdivision keys are
// normalised to their ISO 3166-2 form.
func ParseCountries(data []byte) (map[string]model.Country, error) {
	var countries map[string]model.Country
	if err := decodeStrict(data, &countries); err != nil {
		return nil, errors.Wrap(err, "parse vat rates")
	}
	for code, country := range countries {
		countries[code] = normalizeCountry(code, country)
	}
	return countries, nil
}

// ParseTradeAgreements decodes an id keyed agreement table.
func ParseTradeAgreements(data []byte) (map[string]model.TradeAgreement, error) {
	var agreements map[string]model.TradeAgreement
	if err := decodeStrict(data, &agreements); err != nil {
		return nil, errors.Wrap(err, "parse trade agreements")
	}
	return agreements, nil
}

func normalizeCountry(code string, c model.Country) model.Country {
	if c.TaxType == "" {
		c.TaxType = model.TaxSystemNone
	}
	if len(c.States) == 0 {
		return c
	}
	states := make(map[string]model.State, len(c.States))
	for key, state := range c.States {
		if state.TaxType == "" {
			state.TaxType = model.TaxSystemNone
		}
		states[model.QualifySubdivision(code, key)] = state
	}
	c.States = states
	return c
}

// decodeStrict rejects trailing data after the top-level value.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}
