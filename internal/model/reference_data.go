package model

import "time"

// JurisdictionRecord stores one country profile as a jsonb payload.
type JurisdictionRecord struct {
	CountryCode string    `gorm:"type:varchar(2);primaryKey" json:"country_code"`
	TaxType     string    `gorm:"type:varchar(10);not null;index" json:"tax_type"`
	Profile     string    `gorm:"type:jsonb;not null" json:"profile"` // serialized Country
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (JurisdictionRecord) TableName() string { return "jurisdictions" }

// TradeAgreementRecord stores one trade agreement as a jsonb payload.
type TradeAgreementRecord struct {
	AgreementID string    `gorm:"type:varchar(32);primaryKey" json:"agreement_id"`
	Kind        string    `gorm:"type:varchar(20);not null;index" json:"kind"`
	Definition  string    `gorm:"type:jsonb;not null" json:"definition"` // serialized TradeAgreement
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (TradeAgreementRecord) TableName() string { return "trade_agreements" }
