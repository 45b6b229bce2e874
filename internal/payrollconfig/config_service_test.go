package payrollconfig_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/somprasongd/hr-payroll-sub000/internal/payrollconfig"
	configerrors "github.com/somprasongd/hr-payroll-sub000/internal/payrollconfig/errors"
)

type fakeConfigRepository struct {
	createFn        func(ctx context.Context, config *payrollconfig.PayrollConfig) error
	findEffectiveFn func(ctx context.Context, date time.Time) (*payrollconfig.PayrollConfig, error)
	maxVersionFn    func(ctx context.Context) (int, error)
}

func (f *fakeConfigRepository) WithTx(tx *sql.Tx) payrollconfig.Repository { return f }

func (f *fakeConfigRepository) Create(ctx context.Context, config *payrollconfig.PayrollConfig) error {
	if f.createFn != nil {
		return f.createFn(ctx, config)
	}
	return nil
}

func (f *fakeConfigRepository) FindAll(ctx context.Context) ([]payrollconfig.PayrollConfig, error) {
	return nil, nil
}

func (f *fakeConfigRepository) FindByID(ctx context.Context, id string) (*payrollconfig.PayrollConfig, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeConfigRepository) FindEffective(ctx context.Context, date time.Time) (*payrollconfig.PayrollConfig, error) {
	if f.findEffectiveFn != nil {
		return f.findEffectiveFn(ctx, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeConfigRepository) MaxVersion(ctx context.Context) (int, error) {
	if f.maxVersionFn != nil {
		return f.maxVersionFn(ctx)
	}
	return 0, nil
}

type configServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service payrollconfig.Service
	repo    *fakeConfigRepository
}

func setupConfigServiceTest(t *testing.T) *configServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeConfigRepository{}
	return &configServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: payrollconfig.NewService(db, repo),
		repo:    repo,
	}
}

func validCreateRequest() payrollconfig.CreateConfigRequest {
	max := "12500"
	return payrollconfig.CreateConfigRequest{
		EffectiveFrom:          "2025-01-01",
		HourlyRate:             "62.50",
		OvertimeHourlyRate:     "93.75",
		SSOEmployeeRate:        "0.05",
		SSOEmployerRate:        "0.05",
		SSOWageCap:             "15000",
		PFRateMin:              "0.02",
		PFRateMax:              "0.15",
		ApplyStandardExpense:   true,
		StandardExpenseRate:    "0.5",
		StandardExpenseCap:     "8333.33",
		ApplyPersonalAllowance: true,
		PersonalAllowance:      "5000",
		ServiceWithholdingRate: "0.03",
		Brackets: []payrollconfig.TaxBracketInput{
			{MinAmount: "0", MaxAmount: &max, Rate: "0"},
			{MinAmount: "12500", Rate: "0.05"},
		},
	}
}

func TestConfigService_Create(t *testing.T) {
	t.Run("assigns next version and bracket positions", func(t *testing.T) {
		deps := setupConfigServiceTest(t)
		defer deps.db.Close()

		deps.repo.maxVersionFn = func(ctx context.Context) (int, error) { return 4, nil }

		var created *payrollconfig.PayrollConfig
		deps.repo.createFn = func(ctx context.Context, config *payrollconfig.PayrollConfig) error {
			created = config
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(context.Background(), uuid.New().String(), validCreateRequest())

		assert.NoError(t, err)
		assert.Equal(t, 5, resp.Version)
		assert.NotNil(t, created)
		assert.Equal(t, "2025-01-01", created.EffectiveFrom.Format("2006-01-02"))
		assert.Equal(t, 1, created.Brackets[0].Position)
		assert.Equal(t, 2, created.Brackets[1].Position)
		assert.Equal(t, created.ID, created.Brackets[0].ConfigID)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects bracket gap before any write", func(t *testing.T) {
		deps := setupConfigServiceTest(t)
		defer deps.db.Close()

		createCalled := false
		deps.repo.createFn = func(ctx context.Context, config *payrollconfig.PayrollConfig) error {
			createCalled = true
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		req := validCreateRequest()
		req.Brackets[1].MinAmount = "13000" // gap between 12500 and 13000

		_, err := deps.service.Create(context.Background(), uuid.New().String(), req)

		assert.ErrorIs(t, err, configerrors.ErrInvalidBrackets)
		assert.False(t, createCalled, "misconfigured brackets must be rejected before persistence")
	})

	t.Run("rejects inverted provident fund bounds", func(t *testing.T) {
		deps := setupConfigServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		req := validCreateRequest()
		req.PFRateMin = "0.20"

		_, err := deps.service.Create(context.Background(), uuid.New().String(), req)

		assert.ErrorIs(t, err, configerrors.ErrInvalidPFBounds)
	})

	t.Run("maps unique violation to effective date conflict", func(t *testing.T) {
		deps := setupConfigServiceTest(t)
		defer deps.db.Close()

		deps.repo.createFn = func(ctx context.Context, config *payrollconfig.PayrollConfig) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_config_effective_from"}
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(context.Background(), uuid.New().String(), validCreateRequest())

		assert.ErrorIs(t, err, configerrors.ErrEffectiveDateTaken)
	})
}

func TestConfigService_ResolveEffective(t *testing.T) {
	deps := setupConfigServiceTest(t)
	defer deps.db.Close()

	t.Run("returns the version in force", func(t *testing.T) {
		expected := &payrollconfig.PayrollConfig{ID: uuid.New(), Version: 3}
		deps.repo.findEffectiveFn = func(ctx context.Context, date time.Time) (*payrollconfig.PayrollConfig, error) {
			return expected, nil
		}

		config, err := deps.service.ResolveEffective(context.Background(), time.Now())

		assert.NoError(t, err)
		assert.Equal(t, expected.Version, config.Version)
	})

	t.Run("missing config is a typed error", func(t *testing.T) {
		deps.repo.findEffectiveFn = func(ctx context.Context, date time.Time) (*payrollconfig.PayrollConfig, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.ResolveEffective(context.Background(), time.Now())

		assert.ErrorIs(t, err, configerrors.ErrConfigNotFound)
	})
}
