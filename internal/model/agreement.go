package model

import (
	"encoding/json"

	"github.com/samber/lo"
)

// AppliesTo lists the product classes an agreement covers.
type AppliesTo struct {
	PhysicalGoods bool `json:"physical_goods"`
	DigitalGoods  bool `json:"digital_goods"`
	Services      bool `json:"services"`
}

// TradeAgreement is a customs union or a federal-state agreement.
type TradeAgreement struct {
	Name              string             `json:"name"`
	Type              TradeAgreementType `json:"type"`
	Members           []string           `json:"members"`
	DefaultApplicable bool               `json:"default_applicable"`
	AppliesTo         AppliesTo          `json:"applies_to"`
	TaxRules          TaxRules           `json:"tax_rules"`
}

// IsFederal reports whether this agreement governs states within one country.
func (a TradeAgreement) IsFederal() bool {
	return a.Type == AgreementFederalState
}

// IsInternational reports whether this agreement is a multi-country customs union.
func (a TradeAgreement) IsInternational() bool {
	return a.Type == AgreementCustomsUnion
}

// HasMember reports whether country is part of the agreement.
func (a TradeAgreement) HasMember(country string) bool {
	return lo.Contains(a.Members, country)
}

// TaxRules holds the rule configs per transaction scenario.
type TaxRules struct {
	InternalB2B    *TaxRuleConfig `json:"internal_b2b,omitempty"`
	InternalB2C    *TaxRuleConfig `json:"internal_b2c,omitempty"`
	ExternalExport TaxRuleConfig  `json:"external_export"`
}

// ThresholdRule switches treatment at a monetary threshold.
// It only exists when below, above and threshold are all configured.
type ThresholdRule struct {
	Below     TaxCalculationType
	Above     TaxCalculationType
	Threshold uint32
}

func (t ThresholdRule) evaluate(amount uint32) TaxCalculationType {
	if amount < t.Threshold {
		return t.Below
	}
	return t.Above
}

// TaxRuleConfig is a default treatment plus optional general and digital threshold rules.
type TaxRuleConfig struct {
	Type                      TaxCalculationType
	Threshold                 *ThresholdRule
	DigitalThreshold          *ThresholdRule
	RequiresResaleCertificate *bool
}

// ByThreshold evaluates the general threshold rule.
func (c TaxRuleConfig) ByThreshold(amount uint32, ignoreThreshold bool) TaxCalculationType {
	return c.byRule(c.Threshold, amount, ignoreThreshold)
}

// ByDigitalProductThreshold evaluates the digital-products threshold rule.
func (c TaxRuleConfig) ByDigitalProductThreshold(amount uint32, ignoreThreshold bool) TaxCalculationType {
	return c.byRule(c.DigitalThreshold, amount, ignoreThreshold)
}

// ByProductThreshold picks the digital rule for digital products and the general rule otherwise.
func (c TaxRuleConfig) ByProductThreshold(amount uint32, isDigital, ignoreThreshold bool) TaxCalculationType {
	if isDigital {
		return c.ByDigitalProductThreshold(amount, ignoreThreshold)
	}
	return c.ByThreshold(amount, ignoreThreshold)
}

// IsReseller is true when the config requires a resale certificate and one is held.
func (c TaxRuleConfig) IsReseller(hasResaleCertificate bool) bool {
	if c.RequiresResaleCertificate == nil {
		return false
	}
	return *c.RequiresResaleCertificate && hasResaleCertificate
}

func (c TaxRuleConfig) byRule(rule *ThresholdRule, amount uint32, ignoreThreshold bool) TaxCalculationType {
	if rule == nil || ignoreThreshold {
		return c.Type
	}
	return rule.evaluate(amount)
}

// taxRuleConfigJSON is the flat wire form used by the reference data files.
type taxRuleConfigJSON struct {
	Type                          TaxCalculationType  `json:"type"`
	BelowThreshold                *TaxCalculationType `json:"below_threshold,omitempty"`
	AboveThreshold                *TaxCalculationType `json:"above_threshold,omitempty"`
	Threshold                     *uint32             `json:"threshold,omitempty"`
	BelowThresholdDigitalProducts *TaxCalculationType `json:"below_threshold_digital_products,omitempty"`
	AboveThresholdDigitalProducts *TaxCalculationType `json:"above_threshold_digital_products,omitempty"`
	ThresholdDigitalProducts      *uint32             `json:"threshold_digital_products,omitempty"`
	RequiresResaleCertificate     *bool               `json:"requires_resale_certificate,omitempty"`
}

func (c *TaxRuleConfig) UnmarshalJSON(data []byte) error {
	var raw taxRuleConfigJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = TaxRuleConfig{
		Type:                      raw.Type,
		Threshold:                 thresholdRule(raw.BelowThreshold, raw.AboveThreshold, raw.Threshold),
		DigitalThreshold:          thresholdRule(raw.BelowThresholdDigitalProducts, raw.AboveThresholdDigitalProducts, raw.ThresholdDigitalProducts),
		RequiresResaleCertificate: raw.RequiresResaleCertificate,
	}
	return nil
}

func (c TaxRuleConfig) MarshalJSON() ([]byte, error) {
	raw := taxRuleConfigJSON{
		Type:                      c.Type,
		RequiresResaleCertificate: c.RequiresResaleCertificate,
	}
	if t := c.Threshold; t != nil {
		raw.BelowThreshold, raw.AboveThreshold, raw.Threshold = &t.Below, &t.Above, &t.Threshold
	}
	if t := c.DigitalThreshold; t != nil {
		raw.BelowThresholdDigitalProducts, raw.AboveThresholdDigitalProducts, raw.ThresholdDigitalProducts = &t.Below, &t.Above, &t.Threshold
	}
	return json.Marshal(raw)
}

// thresholdRule returns nil unless all three parts are present.
func thresholdRule(below, above *TaxCalculationType, threshold *uint32) *ThresholdRule {
	if below == nil || above == nil || threshold == nil {
		return nil
	}
	return &ThresholdRule{Below: *below, Above: *above, Threshold: *threshold}
}
