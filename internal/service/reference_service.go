package service

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"worldtax/internal/logger"
	"worldtax/internal/metrics"
	"worldtax/internal/model"
	"worldtax/internal/repository"
	"worldtax/pkg/pagination"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// --- DTOs ---

type JurisdictionResponse struct {
	CountryCode string        `json:"country_code"`
	Profile     model.Country `json:"profile"`
}

type TradeAgreementResponse struct {
	ID string `json:"id"`
	model.TradeAgreement
}

type ReloadResponse struct {
	Source          string `json:"source"`
	Countries       int    `json:"countries"`
	TradeAgreements int    `json:"trade_agreements"`
	LoadedAt        string `json:"loaded_at"`
}

// --- Interface ---

type ReferenceService interface {
	Current() *repository.TaxDatabase
	Reload(ctx context.Context, userID string) (ReloadResponse, error)
	SeedDatabase(ctx context.Context, repo repository.ReferenceDataRepository) error
	ListJurisdictions(ctx context.Context, params pagination.Params) ([]JurisdictionResponse, int64, error)
	GetJurisdiction(ctx context.Context, countryCode string) (JurisdictionResponse, error)
	ListTradeAgreements(ctx context.Context) ([]TradeAgreementResponse, error)
	GetTradeAgreement(ctx context.Context, id string) (TradeAgreementResponse, error)
}

type referenceService struct {
	source    repository.ReferenceSource
	auditRepo repository.AuditRepository // nil without a database
	metrics   *metrics.Recorder
	log       *logger.Logger

	current atomic.Pointer[repository.TaxDatabase]
}

// NewReferenceService performs the initial load; it fails when the source cannot be read.
func NewReferenceService(ctx context.Context, source repository.ReferenceSource, auditRepo repository.AuditRepository, recorder *metrics.Recorder, log *logger.Logger) (ReferenceService, error) {
	s := &referenceService{
		source:    source,
		auditRepo: auditRepo,
		metrics:   recorder,
		log:       log,
	}
	if _, err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the store in effect. Callers keep using it even if a reload swaps it.
func (s *referenceService) Current() *repository.TaxDatabase {
	return s.current.Load()
}

func (s *referenceService) load(ctx context.Context) (*repository.TaxDatabase, error) {
	data, err := s.source.Load(ctx)
	s.metrics.ObserveReload(s.source.Name(), err)
	if err != nil {
		return nil, errors.Wrapf(err, "load reference data from %s", s.source.Name())
	}
	s.current.Store(data)

	countries, agreements := data.Len()
	s.log.WithContext(ctx).Infow("reference data loaded",
		"source", s.source.Name(),
		"countries", countries,
		"trade_agreements", agreements,
	)
	return data, nil
}

// Reload rebuilds the store from the source and swaps it in. A failed load keeps the old store.
func (s *referenceService) Reload(ctx context.Context, userID string) (ReloadResponse, error) {
	data, err := s.load(ctx)
	if err != nil {
		s.log.WithContext(ctx).Warnw("reference data reload failed", "source", s.source.Name(), "error", err)
		return ReloadResponse{}, err
	}

	countries, agreements := data.Len()
	res := ReloadResponse{
		Source:          s.source.Name(),
		Countries:       countries,
		TradeAgreements: agreements,
		LoadedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	s.writeAuditLog(ctx, userID, model.ActionReloadReferenceData, res)
	return res, nil
}

// SeedDatabase writes the current store into postgres.
func (s *referenceService) SeedDatabase(ctx context.Context, repo repository.ReferenceDataRepository) error {
	data := s.Current()
	if err := repo.Save(ctx, data); err != nil {
		return errors.Wrap(err, "seed reference data")
	}
	countries, agreements := data.Len()
	s.writeAuditLog(ctx, "", model.ActionSeedReferenceData, map[string]int{
		"countries":        countries,
		"trade_agreements": agreements,
	})
	return nil
}

func (s *referenceService) ListJurisdictions(_ context.Context, params pagination.Params) ([]JurisdictionResponse, int64, error) {
	data := s.Current()
	codes := data.CountryCodes()
	page := pagination.Slice(codes, params)

	res := make([]JurisdictionResponse, 0, len(page))
	for _, code := range page {
		country, err := data.GetCountry(code)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, JurisdictionResponse{CountryCode: code, Profile: country})
	}
	return res, int64(len(codes)), nil
}

func (s *referenceService) GetJurisdiction(_ context.Context, countryCode string) (JurisdictionResponse, error) {
	country, err := s.Current().GetCountry(countryCode)
	if err != nil {
		return JurisdictionResponse{}, err
	}
	return JurisdictionResponse{CountryCode: countryCode, Profile: country}, nil
}

func (s *referenceService) ListTradeAgreements(_ context.Context) ([]TradeAgreementResponse, error) {
	data := s.Current()
	return lo.Map(data.TradeAgreementIDs(), func(id string, _ int) TradeAgreementResponse {
		agreement, _ := data.GetTradeAgreement(id)
		return TradeAgreementResponse{ID: id, TradeAgreement: agreement}
	}), nil
}

func (s *referenceService) GetTradeAgreement(_ context.Context, id string) (TradeAgreementResponse, error) {
	agreement, err := s.Current().GetTradeAgreement(id)
	if err != nil {
		return TradeAgreementResponse{}, err
	}
	return TradeAgreementResponse{ID: id, TradeAgreement: agreement}, nil
}

func (s *referenceService) writeAuditLog(ctx context.Context, userID, action string, details interface{}) {
	if s.auditRepo == nil {
		return
	}
	detailsJSON, _ := json.Marshal(details)

	entry := model.AuditLog{
		Action:     action,
		EntityID:   s.source.Name(),
		EntityName: "reference data",
		Details:    string(detailsJSON),
	}
	if userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			entry.UserID = &parsed
		}
	}

	// Best-effort: the reload already happened.
	if err := s.auditRepo.Log(ctx, &entry); err != nil {
		s.log.WithContext(ctx).Warnw("failed to write audit log", "action", action, "error", err)
	}
}
