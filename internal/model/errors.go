package model

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// InputErrorKind classifies a rejected country or subdivision code.
type InputErrorKind string

const (
	InvalidCountryCode   InputErrorKind = "invalid_country_code"
	InvalidRegionCode    InputErrorKind = "invalid_region_code"
	UnexpectedRegionCode InputErrorKind = "unexpected_region_code"
)

// InputValidationError is raised while constructing a Region.
type InputValidationError struct {
	Kind InputErrorKind
	Code string
}

func (e *InputValidationError) Error() string {
	switch e.Kind {
	case InvalidCountryCode:
		return fmt.Sprintf("invalid country code: %s", e.Code)
	case InvalidRegionCode:
		return fmt.Sprintf("invalid region code: %s", e.Code)
	case UnexpectedRegionCode:
		return fmt.Sprintf("unexpected region code: %s", e.Code)
	default:
		return fmt.Sprintf("invalid input: %s", e.Code)
	}
}

// Is matches on Kind, and on Code when the target carries one.
func (e *InputValidationError) Is(target error) bool {
	t, ok := target.(*InputValidationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == "" || t.Code == e.Code)
}

// DatabaseErrorKind classifies a failed reference-data lookup.
type DatabaseErrorKind string

const (
	TradeAgreementNotFound DatabaseErrorKind = "trade_agreement_not_found"
	CountryNotFound        DatabaseErrorKind = "country_not_found"
	RegionNotFound         DatabaseErrorKind = "region_not_found"
	VatRateNotFound        DatabaseErrorKind = "vat_rate_not_found"
)

// DatabaseError reports an identifier the reference data does not know.
type DatabaseError struct {
	Kind DatabaseErrorKind
	ID   string
}

func (e *DatabaseError) Error() string {
	switch e.Kind {
	case TradeAgreementNotFound:
		return fmt.Sprintf("trade agreement not found: %s", e.ID)
	case CountryNotFound:
		return fmt.Sprintf("country not found: %s", e.ID)
	case RegionNotFound:
		return fmt.Sprintf("region not found: %s", e.ID)
	case VatRateNotFound:
		return fmt.Sprintf("vat rate not found: %s", e.ID)
	default:
		return fmt.Sprintf("reference data error: %s", e.ID)
	}
}

func (e *DatabaseError) Is(target error) bool {
	t, ok := target.(*DatabaseError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.ID == "" || t.ID == e.ID)
}

// Sentinels for errors.Is checks against a kind.
var (
	ErrInvalidCountryCode   error = &InputValidationError{Kind: InvalidCountryCode}
	ErrInvalidRegionCode    error = &InputValidationError{Kind: InvalidRegionCode}
	ErrUnexpectedRegionCode error = &InputValidationError{Kind: UnexpectedRegionCode}

	ErrTradeAgreementNotFound error = &DatabaseError{Kind: TradeAgreementNotFound}
	ErrCountryNotFound        error = &DatabaseError{Kind: CountryNotFound}
	ErrRegionNotFound         error = &DatabaseError{Kind: RegionNotFound}
	ErrVatRateNotFound        error = &DatabaseError{Kind: VatRateNotFound}

	// ErrInvalidAmount is returned for amounts outside the numeric domain (NaN, ±Inf).
	ErrInvalidAmount = errors.New("invalid amount")
)

// ErrorCode returns the machine readable kind of err, or "internal" for untyped errors.
func ErrorCode(err error) string {
	var inputErr *InputValidationError
	if errors.As(err, &inputErr) {
		return string(inputErr.Kind)
	}
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return string(dbErr.Kind)
	}
	if errors.Is(err, ErrInvalidAmount) {
		return "invalid_amount"
	}
	return "internal"
}
