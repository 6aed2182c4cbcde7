package repository

import (
	"context"
	"encoding/json"

	"worldtax/internal/model"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReferenceDataRepository persists the jurisdiction and trade agreement tables.
type ReferenceDataRepository interface {
	LoadDatabase(ctx context.Context) (*TaxDatabase, error)
	Save(ctx context.Context, data *TaxDatabase) error
}

type referenceDataRepository struct {
	db        *gorm.DB
	txManager TransactionManager
}

func NewReferenceDataRepository(db *gorm.DB, txManager TransactionManager) ReferenceDataRepository {
	return &referenceDataRepository{db: db, txManager: txManager}
}

// LoadDatabase reads every stored profile and agreement into a new store.
func (r *referenceDataRepository) LoadDatabase(ctx context.Context) (*TaxDatabase, error) {
	db := GetDB(ctx, r.db)

	var jurisdictions []model.JurisdictionRecord
	if err := db.Order("country_code").Find(&jurisdictions).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch jurisdictions")
	}

	var agreementRecords []model.TradeAgreementRecord
	if err := db.Order("agreement_id").Find(&agreementRecords).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch trade agreements")
	}

	countries := make(map[string]model.Country, len(jurisdictions))
	for _, rec := range jurisdictions {
		var country model.Country
		if err := json.Unmarshal([]byte(rec.Profile), &country); err != nil {
			return nil, errors.Wrapf(err, "invalid profile for %s", rec.CountryCode)
		}
		countries[rec.CountryCode] = normalizeCountry(rec.CountryCode, country)
	}

	agreements := make(map[string]model.TradeAgreement, len(agreementRecords))
	for _, rec := range agreementRecords {
		var agreement model.TradeAgreement
		if err := json.Unmarshal([]byte(rec.Definition), &agreement); err != nil {
			return nil, errors.Wrapf(err, "invalid definition for %s", rec.AgreementID)
		}
		agreements[rec.AgreementID] = agreement
	}

	return NewTaxDatabase(countries, agreements), nil
}

// Save upserts every profile and agreement of data in a single transaction.
func (r *referenceDataRepository) Save(ctx context.Context, data *TaxDatabase) error {
	jurisdictions, agreements, err := toRecords(data)
	if err != nil {
		return err
	}

	return r.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		db := GetDB(txCtx, r.db)
		if len(jurisdictions) > 0 {
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "country_code"}},
				DoUpdates: clause.AssignmentColumns([]string{"tax_type", "profile", "updated_at"}),
			}).Create(&jurisdictions).Error; err != nil {
				return errors.Wrap(err, "failed to save jurisdictions")
			}
		}
		if len(agreements) > 0 {
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "agreement_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"kind", "definition", "updated_at"}),
			}).Create(&agreements).Error; err != nil {
				return errors.Wrap(err, "failed to save trade agreements")
			}
		}
		return nil
	})
}

func toRecords(data *TaxDatabase) ([]model.JurisdictionRecord, []model.TradeAgreementRecord, error) {
	jurisdictions := make([]model.JurisdictionRecord, 0, len(data.countries))
	for _, code := range data.CountryCodes() {
		country := data.countries[code]
		profile, err := json.Marshal(country)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "encode profile for %s", code)
		}
		jurisdictions = append(jurisdictions, model.JurisdictionRecord{
			CountryCode: code,
			TaxType:     string(country.TaxType),
			Profile:     string(profile),
		})
	}

	agreements := make([]model.TradeAgreementRecord, 0, len(data.agreementIDs))
	for _, id := range data.agreementIDs {
		agreement := data.tradeAgreements[id]
		definition, err := json.Marshal(agreement)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "encode trade agreement %s", id)
		}
		agreements = append(agreements, model.TradeAgreementRecord{
			AgreementID: id,
			Kind:        string(agreement.Type),
			Definition:  string(definition),
		})
	}

	return jurisdictions, agreements, nil
}
