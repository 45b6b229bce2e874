package payrollconfig

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	configerrors "github.com/somprasongd/hr-payroll-sub000/internal/payrollconfig/errors"
	"github.com/somprasongd/hr-payroll-sub000/internal/tax"
)

//go:generate mockgen -source=config_service.go -destination=mock/config_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateConfigRequest) (ConfigResponse, error)
	GetAll(ctx context.Context) ([]ConfigResponse, error)
	GetByID(ctx context.Context, id string) (ConfigResponse, error)
	// ResolveEffective returns the config version in force on the given
	// date. Settlement callers treat a not-found as fatal for the single
	// employee being processed.
	ResolveEffective(ctx context.Context, date time.Time) (*PayrollConfig, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreateConfigRequest,
) (ConfigResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ConfigResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return ConfigResponse{}, configerrors.ErrInvalidActorID
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return ConfigResponse{}, configerrors.ErrInvalidDateFormat
	}

	config, err := buildConfig(req)
	if err != nil {
		return ConfigResponse{}, err
	}

	if err := validateConfig(config); err != nil {
		return ConfigResponse{}, err
	}

	maxVersion, err := qtx.MaxVersion(ctx)
	if err != nil {
		return ConfigResponse{}, err
	}

	config.ID = uuid.New()
	config.Version = maxVersion + 1
	config.EffectiveFrom = effectiveFrom
	config.CreatedBy = createdBy
	for i := range config.Brackets {
		config.Brackets[i].ID = uuid.New()
		config.Brackets[i].ConfigID = config.ID
		config.Brackets[i].Position = i + 1
	}

	if err := qtx.Create(ctx, config); err != nil {
		if isEffectiveDateViolation(err) {
			return ConfigResponse{}, configerrors.ErrEffectiveDateTaken
		}
		return ConfigResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ConfigResponse{}, err
	}

	return mapToResponse(*config), nil
}

func (s *service) GetAll(ctx context.Context) ([]ConfigResponse, error) {
	configs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(configs), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ConfigResponse, error) {
	config, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ConfigResponse{}, err
	}

	return mapToResponse(*config), nil
}

func (s *service) ResolveEffective(ctx context.Context, date time.Time) (*PayrollConfig, error) {
	config, err := s.repo.FindEffective(ctx, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, configerrors.ErrConfigNotFound
		}
		return nil, err
	}
	return config, nil
}

func buildConfig(req CreateConfigRequest) (*PayrollConfig, error) {
	config := &PayrollConfig{
		ApplyStandardExpense:   req.ApplyStandardExpense,
		ApplyPersonalAllowance: req.ApplyPersonalAllowance,
	}

	fields := []struct {
		dst   *decimal.Decimal
		value string
	}{
		{&config.HourlyRate, req.HourlyRate},
		{&config.OvertimeHourlyRate, req.OvertimeHourlyRate},
		{&config.AttendanceBonus, req.AttendanceBonus},
		{&config.HousingAllowance, req.HousingAllowance},
		{&config.WaterAllowance, req.WaterAllowance},
		{&config.ElectricityAllowance, req.ElectricityAllowance},
		{&config.InternetAllowance, req.InternetAllowance},
		{&config.DoctorFee, req.DoctorFee},
		{&config.WaterUnitRate, req.WaterUnitRate},
		{&config.ElectricityUnitRate, req.ElectricityUnitRate},
		{&config.InternetMonthlyFee, req.InternetMonthlyFee},
		{&config.SSOEmployeeRate, req.SSOEmployeeRate},
		{&config.SSOEmployerRate, req.SSOEmployerRate},
		{&config.SSOWageCap, req.SSOWageCap},
		{&config.PFRateMin, req.PFRateMin},
		{&config.PFRateMax, req.PFRateMax},
		{&config.StandardExpenseRate, req.StandardExpenseRate},
		{&config.StandardExpenseCap, req.StandardExpenseCap},
		{&config.PersonalAllowance, req.PersonalAllowance},
		{&config.ServiceWithholdingRate, req.ServiceWithholdingRate},
	}

	for _, f := range fields {
		v, err := parseAmount(f.value)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	for _, b := range req.Brackets {
		min, err := parseAmount(b.MinAmount)
		if err != nil {
			return nil, err
		}
		rate, err := parseAmount(b.Rate)
		if err != nil {
			return nil, err
		}

		bracket := TaxBracket{MinAmount: min, Rate: rate}
		if b.MaxAmount != nil {
			max, err := parseAmount(*b.MaxAmount)
			if err != nil {
				return nil, err
			}
			bracket.MaxAmount = &max
		}
		config.Brackets = append(config.Brackets, bracket)
	}

	return config, nil
}

// parseAmount accepts an empty string as zero; negative values are rejected
// the same as unparsable ones since no schedule field is ever negative.
func parseAmount(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Zero, configerrors.ErrInvalidAmount
	}
	return d, nil
}

func validateConfig(config *PayrollConfig) error {
	if config.PFRateMin.GreaterThan(config.PFRateMax) {
		return configerrors.ErrInvalidPFBounds
	}

	if err := tax.ValidateBrackets(config.TaxConfig().Brackets); err != nil {
		return configerrors.ErrInvalidBrackets.WithDetails(err.Error())
	}

	return nil
}

func isEffectiveDateViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(config PayrollConfig) ConfigResponse {
	resp := ConfigResponse{
		ID:                     config.ID.String(),
		Version:                config.Version,
		EffectiveFrom:          config.EffectiveFrom.Format("2006-01-02"),
		HourlyRate:             config.HourlyRate.StringFixed(2),
		OvertimeHourlyRate:     config.OvertimeHourlyRate.StringFixed(2),
		AttendanceBonus:        config.AttendanceBonus.StringFixed(2),
		HousingAllowance:       config.HousingAllowance.StringFixed(2),
		WaterAllowance:         config.WaterAllowance.StringFixed(2),
		ElectricityAllowance:   config.ElectricityAllowance.StringFixed(2),
		InternetAllowance:      config.InternetAllowance.StringFixed(2),
		DoctorFee:              config.DoctorFee.StringFixed(2),
		WaterUnitRate:          config.WaterUnitRate.String(),
		ElectricityUnitRate:    config.ElectricityUnitRate.String(),
		InternetMonthlyFee:     config.InternetMonthlyFee.StringFixed(2),
		SSOEmployeeRate:        config.SSOEmployeeRate.String(),
		SSOEmployerRate:        config.SSOEmployerRate.String(),
		SSOWageCap:             config.SSOWageCap.StringFixed(2),
		PFRateMin:              config.PFRateMin.String(),
		PFRateMax:              config.PFRateMax.String(),
		ApplyStandardExpense:   config.ApplyStandardExpense,
		StandardExpenseRate:    config.StandardExpenseRate.String(),
		StandardExpenseCap:     config.StandardExpenseCap.StringFixed(2),
		ApplyPersonalAllowance: config.ApplyPersonalAllowance,
		PersonalAllowance:      config.PersonalAllowance.StringFixed(2),
		ServiceWithholdingRate: config.ServiceWithholdingRate.String(),
		CreatedBy:              config.CreatedBy.String(),
		CreatedAt:              config.CreatedAt.Format(time.RFC3339),
	}

	for _, b := range config.Brackets {
		br := TaxBracketResponse{
			Position:  b.Position,
			MinAmount: b.MinAmount.StringFixed(2),
			Rate:      b.Rate.String(),
		}
		if b.MaxAmount != nil {
			v := b.MaxAmount.StringFixed(2)
			br.MaxAmount = &v
		}
		resp.Brackets = append(resp.Brackets, br)
	}

	return resp
}

func mapToListResponse(configs []PayrollConfig) []ConfigResponse {
	resp := make([]ConfigResponse, len(configs))
	for i, config := range configs {
		resp[i] = mapToResponse(config)
	}
	return resp
}
