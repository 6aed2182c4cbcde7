package model

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var codeValidator = validator.New()

// Countries with no ISO 3166-2 subdivisions in the validator's table.
var countriesWithoutSubdivisions = map[string]struct{}{
	"AI": {}, "AQ": {}, "AS": {}, "AW": {}, "AX": {}, "BL": {}, "BM": {}, "BV": {}, "CC": {}, "CK": {},
	"CW": {}, "CX": {}, "EH": {}, "FK": {}, "FO": {}, "GF": {}, "GG": {}, "GI": {}, "GP": {}, "GS": {},
	"GU": {}, "HK": {}, "HM": {}, "IM": {}, "IO": {}, "JE": {}, "KY": {}, "MF": {}, "MO": {}, "MP": {},
	"MQ": {}, "MS": {}, "NC": {}, "NF": {}, "NU": {}, "PF": {}, "PM": {}, "PN": {}, "PR": {}, "RE": {},
	"SJ": {}, "SX": {}, "TC": {}, "TF": {}, "TK": {}, "VA": {}, "VG": {}, "VI": {}, "XK": {}, "YT": {},
}

// Region is a country with an optional ISO 3166-2 subdivision (e.g. "CA-QC").
// Construct it with NewRegion; a Region value is always validated.
type Region struct {
	Country     string `json:"country"`
	Subdivision string `json:"region,omitempty"`
}

// NewRegion validates country (ISO 3166-1 alpha-2) and subdivision (ISO 3166-2).
// The subdivision may be given with or without the country prefix ("BC" or "CA-BC")
// and is stored in its full form. An empty subdivision means none.
func NewRegion(country, subdivision string) (Region, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	if err := codeValidator.Var(country, "required,iso3166_1_alpha2"); err != nil {
		return Region{}, &InputValidationError{Kind: InvalidCountryCode, Code: country}
	}

	subdivision = strings.ToUpper(strings.TrimSpace(subdivision))
	if subdivision == "" {
		return Region{Country: country}, nil
	}
	if _, ok := countriesWithoutSubdivisions[country]; ok {
		return Region{}, &InputValidationError{Kind: UnexpectedRegionCode, Code: subdivision}
	}

	full, err := qualifySubdivision(country, subdivision)
	if err != nil {
		return Region{}, err
	}
	if err := codeValidator.Var(full, "iso3166_2"); err != nil {
		return Region{}, &InputValidationError{Kind: InvalidRegionCode, Code: subdivision}
	}

	return Region{Country: country, Subdivision: full}, nil
}

// MustRegion is NewRegion for fixtures and literals known to be valid.
func MustRegion(country, subdivision string) Region {
	r, err := NewRegion(country, subdivision)
	if err != nil {
		panic(err)
	}
	return r
}

// HasSubdivision reports whether a subdivision was given.
func (r Region) HasSubdivision() bool {
	return r.Subdivision != ""
}

func (r Region) String() string {
	if r.Subdivision == "" {
		return r.Country
	}
	return r.Subdivision
}

// QualifySubdivision returns the ISO 3166-2 form of a subdivision key ("BC" -> "CA-BC").
// Keys already carrying the country prefix are returned unchanged.
func QualifySubdivision(country, subdivision string) string {
	if strings.HasPrefix(subdivision, country+"-") {
		return subdivision
	}
	return country + "-" + subdivision
}

func qualifySubdivision(country, subdivision string) (string, error) {
	if prefix, _, found := strings.Cut(subdivision, "-"); found && prefix != country {
		return "", &InputValidationError{Kind: UnexpectedRegionCode, Code: subdivision}
	}
	return QualifySubdivision(country, subdivision), nil
}
