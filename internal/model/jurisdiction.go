package model

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Country is the tax profile of one jurisdiction. Rates are fractions (0.19 = 19%);
// a nil rate is not defined for that country.
type Country struct {
	TaxType          TaxSystemType    `json:"type"`
	Currency         string           `json:"currency"`
	StandardRate     *float64         `json:"standard_rate,omitempty"`
	ReducedRate      *float64         `json:"reduced_rate,omitempty"`
	ReducedRateAlt   *float64         `json:"reduced_rate_alt,omitempty"`
	SuperReducedRate *float64         `json:"super_reduced_rate,omitempty"`
	ParkingRate      *float64         `json:"parking_rate,omitempty"`
	VatName          string           `json:"vat_name,omitempty"`
	VatAbbr          string           `json:"vat_abbr,omitempty"`
	States           map[string]State `json:"states,omitempty"`
}

// State is the tax profile of a subdivision. Its system may differ from the country's.
type State struct {
	StandardRate float64       `json:"standard_rate"`
	TaxType      TaxSystemType `json:"type"`
}

// State returns the subdivision profile keyed by its ISO 3166-2 code.
func (c Country) State(code string) (State, bool) {
	if c.States == nil || code == "" {
		return State{}, false
	}
	s, ok := c.States[code]
	return s, ok
}

// VatRate maps a VAT band onto the profile's rate. Zero, exempt and reverse charge are always 0.
func (c Country) VatRate(rate VatRate) (float64, bool) {
	var r *float64
	switch rate {
	case VatRateStandard:
		r = c.StandardRate
	case VatRateReduced:
		r = c.ReducedRate
	case VatRateReducedAlt:
		r = c.ReducedRateAlt
	case VatRateSuperReduced:
		r = c.SuperReducedRate
	case VatRateZero, VatRateExempt, VatRateReverseCharge:
		return 0, true
	}
	if r == nil {
		return 0, false
	}
	return *r, true
}

// Standard returns the standard rate or 0 when undefined.
func (c Country) Standard() float64 {
	if c.StandardRate == nil {
		return 0
	}
	return *c.StandardRate
}

func (c *Country) UnmarshalJSON(data []byte) error {
	type plain Country
	var raw struct {
		plain
		StandardRate     json.RawMessage `json:"standard_rate"`
		ReducedRate      json.RawMessage `json:"reduced_rate"`
		ReducedRateAlt   json.RawMessage `json:"reduced_rate_alt"`
		SuperReducedRate json.RawMessage `json:"super_reduced_rate"`
		ParkingRate      json.RawMessage `json:"parking_rate"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Country(raw.plain)
	fields := []struct {
		name string
		raw  json.RawMessage
		dst  **float64
	}{
		{"standard_rate", raw.StandardRate, &out.StandardRate},
		{"reduced_rate", raw.ReducedRate, &out.ReducedRate},
		{"reduced_rate_alt", raw.ReducedRateAlt, &out.ReducedRateAlt},
		{"super_reduced_rate", raw.SuperReducedRate, &out.SuperReducedRate},
		{"parking_rate", raw.ParkingRate, &out.ParkingRate},
	}
	for _, f := range fields {
		v, err := decodeRate(f.raw)
		if err != nil {
			return errors.Wrapf(err, "decode %s", f.name)
		}
		*f.dst = v
	}

	*c = out
	return nil
}

// decodeRate accepts a number, null, or a boolean. Booleans mean "not defined".
func decodeRate(raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) ||
		bytes.Equal(raw, []byte("true")) || bytes.Equal(raw, []byte("false")) {
		return nil, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
