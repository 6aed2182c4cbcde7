package model

// TaxRate is one component the aggregator folds over the base amount.
// When Compound is set the component is charged on amount plus the tax accumulated before it.
type TaxRate struct {
	Rate     float64 `json:"rate"`
	TaxType  TaxType `json:"tax_type"`
	Compound bool    `json:"compound"`
}
