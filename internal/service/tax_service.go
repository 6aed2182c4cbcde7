package service

import (
	"context"

	"worldtax/internal/logger"
	"worldtax/internal/metrics"
	"worldtax/internal/model"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type TaxScenarioRequest struct {
	SourceCountry        string `json:"source_country" binding:"required,len=2"`
	SourceRegion         string `json:"source_region"` // "BC" or "CA-BC"
	DestinationCountry   string `json:"destination_country" binding:"required,len=2"`
	DestinationRegion    string `json:"destination_region"`
	TransactionType      string `json:"transaction_type" binding:"required,oneof=B2B B2C"`
	TradeAgreementID     string `json:"trade_agreement_id" binding:"omitempty,excluded_with=NoTradeAgreement"`
	NoTradeAgreement     bool   `json:"no_trade_agreement"`
	IsDigitalProduct     bool   `json:"is_digital_product"`
	HasResaleCertificate bool   `json:"has_resale_certificate"`
	IgnoreThreshold      bool   `json:"ignore_threshold"`
	VatRate              string `json:"vat_rate" binding:"omitempty,oneof=standard reduced reduced_alt super_reduced zero exempt reverse_charge"`
}

type CalculateTaxRequest struct {
	TaxScenarioRequest
	Amount string `json:"amount" binding:"required"` // Decimal string, e.g. "100.00"
}

type TaxRatesRequest struct {
	TaxScenarioRequest
	Amount string `json:"amount"` // only drives threshold evaluation, defaults to 0
}

type TaxRateResponse struct {
	TaxType  string  `json:"tax_type"`
	Rate     float64 `json:"rate"`
	Compound bool    `json:"compound"`
}

type TaxRatesResponse struct {
	CalculationType string            `json:"calculation_type"`
	Rates           []TaxRateResponse `json:"rates"`
}

type CalculateTaxResponse struct {
	CalculationType string            `json:"calculation_type"`
	Rates           []TaxRateResponse `json:"rates"`
	Amount          string            `json:"amount"`
	Tax             float64           `json:"tax"`       // rounded to cents
	TaxExact        string            `json:"tax_exact"` // unrounded decimal
}

// --- Interface ---

type TaxService interface {
	CalculateTax(ctx context.Context, req CalculateTaxRequest) (CalculateTaxResponse, error)
	GetRates(ctx context.Context, req TaxRatesRequest) (TaxRatesResponse, error)
}

type taxService struct {
	reference ReferenceService
	metrics   *metrics.Recorder
	log       *logger.Logger
}

func NewTaxService(reference ReferenceService, recorder *metrics.Recorder, log *logger.Logger) TaxService {
	return &taxService{reference: reference, metrics: recorder, log: log}
}

// --- Implementation ---

func (s *taxService) CalculateTax(ctx context.Context, req CalculateTaxRequest) (CalculateTaxResponse, error) {
	scenario, err := req.Scenario()
	if err != nil {
		return CalculateTaxResponse{}, s.fail(ctx, err)
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return CalculateTaxResponse{}, s.fail(ctx, err)
	}

	eval, err := NewTaxCalculator(s.reference.Current()).Evaluate(scenario, amount)
	if err != nil {
		return CalculateTaxResponse{}, s.fail(ctx, err)
	}

	s.metrics.ObserveCalculation(string(eval.CalculationType), string(scenario.TransactionType))
	s.log.WithContext(ctx).Debugw("tax calculated",
		"source", scenario.SourceRegion.String(),
		"destination", scenario.DestinationRegion.String(),
		"transaction_type", scenario.TransactionType,
		"calculation_type", eval.CalculationType,
		"components", len(eval.Rates),
		"tax", eval.Tax,
	)

	return CalculateTaxResponse{
		CalculationType: string(eval.CalculationType),
		Rates:           toTaxRateResponses(eval.Rates),
		Amount:          amount.String(),
		Tax:             eval.Tax,
		TaxExact:        eval.TaxExact.String(),
	}, nil
}

func (s *taxService) GetRates(ctx context.Context, req TaxRatesRequest) (TaxRatesResponse, error) {
	scenario, err := req.Scenario()
	if err != nil {
		return TaxRatesResponse{}, s.fail(ctx, err)
	}
	amount := decimal.Zero
	if req.Amount != "" {
		if amount, err = parseAmount(req.Amount); err != nil {
			return TaxRatesResponse{}, s.fail(ctx, err)
		}
	}
	f, _ := amount.Float64()

	treatment, rates, err := NewTaxCalculator(s.reference.Current()).Classify(scenario, f)
	if err != nil {
		return TaxRatesResponse{}, s.fail(ctx, err)
	}

	s.metrics.ObserveCalculation(string(treatment), string(scenario.TransactionType))
	return TaxRatesResponse{
		CalculationType: string(treatment),
		Rates:           toTaxRateResponses(rates),
	}, nil
}

func (s *taxService) fail(ctx context.Context, err error) error {
	code := model.ErrorCode(err)
	s.metrics.ObserveCalculationError(code)
	s.log.WithContext(ctx).Warnw("tax evaluation failed", "reason", code, "error", err)
	return err
}

// --- Helpers ---

// Scenario validates both regions and builds the engine scenario.
func (r TaxScenarioRequest) Scenario() (model.TaxScenario, error) {
	source, err := model.NewRegion(r.SourceCountry, r.SourceRegion)
	if err != nil {
		return model.TaxScenario{}, err
	}
	destination, err := model.NewRegion(r.DestinationCountry, r.DestinationRegion)
	if err != nil {
		return model.TaxScenario{}, err
	}

	scenario := model.NewTaxScenario(source, destination, model.TransactionType(r.TransactionType)).
		WithDigitalProduct(r.IsDigitalProduct).
		WithResaleCertificate(r.HasResaleCertificate).
		WithIgnoreThreshold(r.IgnoreThreshold)

	switch {
	case r.TradeAgreementID != "":
		scenario = scenario.WithTradeAgreementOverride(model.UseAgreement(r.TradeAgreementID))
	case r.NoTradeAgreement:
		scenario = scenario.WithTradeAgreementOverride(model.NoAgreement())
	}

	if r.VatRate != "" {
		rate, err := model.ParseVatRate(r.VatRate)
		if err != nil {
			return model.TaxScenario{}, err
		}
		scenario = scenario.WithVatRate(rate)
	}
	return scenario, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(model.ErrInvalidAmount, "parse amount %q: %v", s, err)
	}
	return amount, nil
}

func toTaxRateResponses(rates []model.TaxRate) []TaxRateResponse {
	return lo.Map(rates, func(r model.TaxRate, _ int) TaxRateResponse {
		return TaxRateResponse{TaxType: r.TaxType.String(), Rate: r.Rate, Compound: r.Compound}
	})
}
