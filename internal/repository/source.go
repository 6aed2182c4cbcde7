package repository

import (
	"context"
)

// ReferenceSource produces a fresh store each time it is loaded.
type ReferenceSource interface {
	Name() string
	Load(ctx context.Context) (*TaxDatabase, error)
}

type embeddedSource struct{}

// NewEmbeddedSource loads the tables compiled into the binary.
func NewEmbeddedSource() ReferenceSource {
	return embeddedSource{}
}

func (embeddedSource) Name() string { return "embedded" }

func (embeddedSource) Load(context.Context) (*TaxDatabase, error) {
	return Default()
}

type fileSource struct {
	vatRatesPath        string
	tradeAgreementsPath string
}

// NewFileSource re-reads both tables from disk on every load.
func NewFileSource(vatRatesPath, tradeAgreementsPath string) ReferenceSource {
	return &fileSource{vatRatesPath: vatRatesPath, tradeAgreementsPath: tradeAgreementsPath}
}

func (s *fileSource) Name() string { return "files" }

func (s *fileSource) Load(context.Context) (*TaxDatabase, error) {
	return FromFiles(s.vatRatesPath, s.tradeAgreementsPath)
}

type databaseSource struct {
	repo ReferenceDataRepository
}

// NewDatabaseSource loads the tables stored in postgres.
func NewDatabaseSource(repo ReferenceDataRepository) ReferenceSource {
	return &databaseSource{repo: repo}
}

func (s *databaseSource) Name() string { return "postgres" }

func (s *databaseSource) Load(ctx context.Context) (*TaxDatabase, error) {
	return s.repo.LoadDatabase(ctx)
}
