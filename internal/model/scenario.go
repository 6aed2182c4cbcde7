package model

// TradeAgreementOverride forces or suppresses trade agreement resolution.
// The zero value means "no override".
type TradeAgreementOverride struct {
	kind        overrideKind
	agreementID string
}

type overrideKind uint8

const (
	overrideNone overrideKind = iota
	overrideUseAgreement
	overrideNoAgreement
)

// UseAgreement forces the agreement registered under id.
func UseAgreement(id string) TradeAgreementOverride {
	return TradeAgreementOverride{kind: overrideUseAgreement, agreementID: id}
}

// NoAgreement forces evaluation without any trade agreement.
func NoAgreement() TradeAgreementOverride {
	return TradeAgreementOverride{kind: overrideNoAgreement}
}

// AgreementID returns the forced agreement id, if any.
func (o TradeAgreementOverride) AgreementID() (string, bool) {
	return o.agreementID, o.kind == overrideUseAgreement
}

// IsNoAgreement reports whether agreements are suppressed.
func (o TradeAgreementOverride) IsNoAgreement() bool {
	return o.kind == overrideNoAgreement
}

// IsSet reports whether any override is present.
func (o TradeAgreementOverride) IsSet() bool {
	return o.kind != overrideNone
}

// TaxScenario describes one transaction to classify and tax.
// It is a value type: the With* builders return modified copies.
type TaxScenario struct {
	SourceRegion              Region
	DestinationRegion         Region
	TransactionType           TransactionType
	TradeAgreementOverride    TradeAgreementOverride
	IsDigitalProductOrService bool
	HasResaleCertificate      bool
	IgnoreThreshold           bool
	VatRateOverride           VatRate // empty means standard
}

// NewTaxScenario creates a scenario with no override and all flags off.
func NewTaxScenario(source, destination Region, transactionType TransactionType) TaxScenario {
	return TaxScenario{
		SourceRegion:      source,
		DestinationRegion: destination,
		TransactionType:   transactionType,
	}
}

func (s TaxScenario) WithTradeAgreementOverride(o TradeAgreementOverride) TaxScenario {
	s.TradeAgreementOverride = o
	return s
}

func (s TaxScenario) WithDigitalProduct(digital bool) TaxScenario {
	s.IsDigitalProductOrService = digital
	return s
}

func (s TaxScenario) WithResaleCertificate(has bool) TaxScenario {
	s.HasResaleCertificate = has
	return s
}

func (s TaxScenario) WithIgnoreThreshold(ignore bool) TaxScenario {
	s.IgnoreThreshold = ignore
	return s
}

func (s TaxScenario) WithVatRate(rate VatRate) TaxScenario {
	s.VatRateOverride = rate
	return s
}

// IsSameCountry reports whether seller and buyer share a country.
func (s TaxScenario) IsSameCountry() bool {
	return s.SourceRegion.Country == s.DestinationRegion.Country
}

// IsSameState reports whether seller and buyer share a subdivision (or both have none).
func (s TaxScenario) IsSameState() bool {
	return s.SourceRegion.Subdivision == s.DestinationRegion.Subdivision
}

// VatRate returns the requested VAT band, defaulting to standard.
func (s TaxScenario) VatRate() VatRate {
	if s.VatRateOverride == "" {
		return VatRateStandard
	}
	return s.VatRateOverride
}
