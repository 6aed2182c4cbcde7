package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"worldtax/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func TestReferenceDataRepository_LoadDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, NewTransactionManager(db, sql.LevelDefault))
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "jurisdictions" ORDER BY country_code`)).
		WillReturnRows(sqlmock.NewRows([]string{"country_code", "tax_type", "profile", "created_at", "updated_at"}).
			AddRow("DE", "vat", `{"type":"vat","currency":"EUR","standard_rate":0.19}`, now, now).
			AddRow("CA", "gst", `{"type":"gst","standard_rate":0.05,"states":{"QC":{"standard_rate":0.09975,"type":"qst"}}}`, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "trade_agreements" ORDER BY agreement_id`)).
		WillReturnRows(sqlmock.NewRows([]string{"agreement_id", "kind", "definition", "created_at", "updated_at"}).
			AddRow("EU", "customs_union", `{"name":"European Union","type":"customs_union","members":["DE","FR"],"tax_rules":{"external_export":{"type":"zero_rated"}}}`, now, now))

	data, err := repo.LoadDatabase(context.Background())
	require.NoError(t, err)

	de, err := data.GetCountry("DE")
	require.NoError(t, err)
	assert.Equal(t, 0.19, de.Standard())

	ca, err := data.GetCountry("CA")
	require.NoError(t, err)
	_, ok := ca.State("CA-QC")
	assert.True(t, ok)

	_, ok = data.CustomsUnion("DE", "FR")
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceDataRepository_LoadDatabase_InvalidProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, NewTransactionManager(db, sql.LevelDefault))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "jurisdictions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"country_code", "tax_type", "profile"}).
			AddRow("DE", "vat", `{"type":"sales"}`))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "trade_agreements"`)).
		WillReturnRows(sqlmock.NewRows([]string{"agreement_id", "kind", "definition"}))

	_, err := repo.LoadDatabase(context.Background())
	assert.ErrorContains(t, err, "invalid profile for DE")
}

func TestReferenceDataRepository_LoadDatabase_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, NewTransactionManager(db, sql.LevelDefault))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "jurisdictions"`)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.LoadDatabase(context.Background())
	assert.ErrorContains(t, err, "failed to fetch jurisdictions")
}

func TestReferenceDataRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, NewTransactionManager(db, sql.LevelDefault))

	rate := 0.19
	data := NewTaxDatabase(
		map[string]model.Country{"DE": {TaxType: model.TaxSystemVAT, StandardRate: &rate}},
		map[string]model.TradeAgreement{"EU": {Name: "European Union", Type: model.AgreementCustomsUnion, Members: []string{"DE"}}},
	)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "jurisdictions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "trade_agreements"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceDataRepository_Save_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, NewTransactionManager(db, sql.LevelDefault))

	data := NewTaxDatabase(
		map[string]model.Country{"DE": {TaxType: model.TaxSystemVAT}},
		map[string]model.TradeAgreement{"EU": {Type: model.AgreementCustomsUnion}},
	)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "jurisdictions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "trade_agreements"`)).
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), data)
	assert.ErrorContains(t, err, "failed to save trade agreements")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "audit_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "audit_logs" ORDER BY created_at desc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "entity_id", "details", "created_at"}).
			AddRow("5f0c6a2e-8f0e-4a4e-9d8f-3c1b2a4d5e6f", model.ActionReloadReferenceData, "embedded", `{}`, time.Now()))

	logs, total, err := repo.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionReloadReferenceData, logs[0].Action)
	assert.Nil(t, logs[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_JoinsOuterTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTransactionManager(db, sql.LevelDefault)
	repo := NewReferenceDataRepository(db, tm)
	audit := NewAuditRepository(db)

	data := NewTaxDatabase(map[string]model.Country{"DE": {TaxType: model.TaxSystemVAT}}, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "jurisdictions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "audit_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("5f0c6a2e-8f0e-4a4e-9d8f-3c1b2a4d5e6f"))
	mock.ExpectCommit()

	err := tm.RunInTx(context.Background(), func(txCtx context.Context) error {
		if err := repo.Save(txCtx, data); err != nil {
			return err
		}
		return audit.Log(txCtx, &model.AuditLog{Action: model.ActionSeedReferenceData, Details: `{}`})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
