package model

import (
	"github.com/cockroachdb/errors"
)

// TaxSystemType is the kind of consumption tax a jurisdiction levies.
type TaxSystemType string

const (
	TaxSystemVAT  TaxSystemType = "vat"
	TaxSystemGST  TaxSystemType = "gst"
	TaxSystemPST  TaxSystemType = "pst"
	TaxSystemHST  TaxSystemType = "hst"
	TaxSystemQST  TaxSystemType = "qst"
	TaxSystemNone TaxSystemType = "none"
)

func (t *TaxSystemType) UnmarshalText(text []byte) error {
	switch v := TaxSystemType(text); v {
	case TaxSystemVAT, TaxSystemGST, TaxSystemPST, TaxSystemHST, TaxSystemQST, TaxSystemNone:
		*t = v
		return nil
	case "":
		*t = TaxSystemNone
		return nil
	default:
		return errors.Newf("unknown tax system type %q", string(text))
	}
}

// TransactionType tells business sales apart from consumer sales.
type TransactionType string

const (
	TransactionB2B TransactionType = "B2B"
	TransactionB2C TransactionType = "B2C"
)

func (t *TransactionType) UnmarshalText(text []byte) error {
	switch v := TransactionType(text); v {
	case TransactionB2B, TransactionB2C:
		*t = v
		return nil
	default:
		return errors.Newf("unknown transaction type %q", string(text))
	}
}

// TaxCalculationType is the treatment the classifier picks for a scenario.
// Callers only ever see the first five values; None and ThresholdBased are reserved.
type TaxCalculationType string

const (
	CalculationOrigin         TaxCalculationType = "origin"
	CalculationDestination    TaxCalculationType = "destination"
	CalculationReverseCharge  TaxCalculationType = "reverse_charge"
	CalculationZeroRated      TaxCalculationType = "zero_rated"
	CalculationExempt         TaxCalculationType = "exempt"
	CalculationNone           TaxCalculationType = "none"
	CalculationThresholdBased TaxCalculationType = "threshold_based"
)

func (t *TaxCalculationType) UnmarshalText(text []byte) error {
	switch v := TaxCalculationType(text); v {
	case CalculationOrigin, CalculationDestination, CalculationReverseCharge, CalculationZeroRated,
		CalculationExempt, CalculationNone, CalculationThresholdBased:
		*t = v
		return nil
	default:
		return errors.Newf("unknown tax calculation type %q", string(text))
	}
}

// VatRate selects one of a VAT country's rate bands.
type VatRate string

const (
	VatRateStandard      VatRate = "standard"
	VatRateReduced       VatRate = "reduced"
	VatRateReducedAlt    VatRate = "reduced_alt"
	VatRateSuperReduced  VatRate = "super_reduced"
	VatRateZero          VatRate = "zero"
	VatRateExempt        VatRate = "exempt"
	VatRateReverseCharge VatRate = "reverse_charge"
)

// ParseVatRate maps an API value onto a VatRate.
func ParseVatRate(s string) (VatRate, error) {
	var v VatRate
	if err := v.UnmarshalText([]byte(s)); err != nil {
		return "", err
	}
	return v, nil
}

func (v *VatRate) UnmarshalText(text []byte) error {
	switch r := VatRate(text); r {
	case VatRateStandard, VatRateReduced, VatRateReducedAlt, VatRateSuperReduced,
		VatRateZero, VatRateExempt, VatRateReverseCharge:
		*v = r
		return nil
	default:
		return errors.Newf("unknown vat rate %q", string(text))
	}
}

// TradeAgreementType distinguishes international unions from intra-country agreements.
type TradeAgreementType string

const (
	AgreementCustomsUnion TradeAgreementType = "customs_union"
	AgreementFederalState TradeAgreementType = "federal_state"
)

func (t *TradeAgreementType) UnmarshalText(text []byte) error {
	switch v := TradeAgreementType(text); v {
	case AgreementCustomsUnion, AgreementFederalState:
		*t = v
		return nil
	default:
		return errors.Newf("unknown trade agreement type %q", string(text))
	}
}

// TaxKind is the family of a single tax component.
type TaxKind string

const (
	TaxKindVAT           TaxKind = "vat"
	TaxKindGST           TaxKind = "gst"
	TaxKindHST           TaxKind = "hst"
	TaxKindPST           TaxKind = "pst"
	TaxKindQST           TaxKind = "qst"
	TaxKindStateSalesTax TaxKind = "state_sales_tax"
)

// TaxType tags a tax component. VatRate is only set for VAT components.
type TaxType struct {
	Kind    TaxKind `json:"kind"`
	VatRate VatRate `json:"vat_rate,omitempty"`
}

var (
	TaxTypeGST           = TaxType{Kind: TaxKindGST}
	TaxTypeHST           = TaxType{Kind: TaxKindHST}
	TaxTypePST           = TaxType{Kind: TaxKindPST}
	TaxTypeQST           = TaxType{Kind: TaxKindQST}
	TaxTypeStateSalesTax = TaxType{Kind: TaxKindStateSalesTax}
)

// VAT returns the VAT tax type for the given rate band.
func VAT(rate VatRate) TaxType {
	return TaxType{Kind: TaxKindVAT, VatRate: rate}
}

func (t TaxType) String() string {
	if t.Kind == TaxKindVAT {
		return "vat(" + string(t.VatRate) + ")"
	}
	return string(t.Kind)
}
