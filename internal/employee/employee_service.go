package employee

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	employeeerrors "github.com/somprasongd/hr-payroll-sub000/internal/employee/errors"
	"github.com/somprasongd/hr-payroll-sub000/internal/payrollconfig"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, branchID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, branchID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, branchID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, branchID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, branchID, id string) error
	// EnsureDefault seeds a default contribution profile for an employee
	// provisioned elsewhere. Safe to call more than once.
	EnsureDefault(ctx context.Context, branchID, employeeID string) error
}

type service struct {
	db            *sql.DB
	repo          Repository
	configService payrollconfig.Service
}

func NewService(db *sql.DB, repo Repository, configService payrollconfig.Service) Service {
	return &service{
		db:            db,
		repo:          repo,
		configService: configService,
	}
}

func (s *service) Create(
	ctx context.Context,
	branchID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidBranchID
	}

	emp := &Employee{
		ID:       uuid.New(),
		BranchID: branchUUID,
		Active:   true,
	}

	if err := s.applyRequest(ctx, emp, req.FullName, req.PayType, req.BaseSalary, req.Profile); err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, emp); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context, branchID string) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAllByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeResponse, len(emps))
	for i, emp := range emps {
		resp[i] = mapToResponse(emp)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, branchID, id string) (EmployeeResponse, error) {
	emp, err := s.repo.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	return mapToResponse(*emp), nil
}

func (s *service) Update(
	ctx context.Context,
	branchID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if err := s.applyRequest(ctx, emp, req.FullName, req.PayType, req.BaseSalary, req.Profile); err != nil {
		return EmployeeResponse{}, err
	}
	emp.Active = req.Active

	if err := qtx.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*emp), nil
}

func (s *service) Delete(ctx context.Context, branchID, id string) error {
	if _, err := s.repo.FindByIDAndBranch(ctx, branchID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, branchID, id)
}

func (s *service) EnsureDefault(ctx context.Context, branchID, employeeID string) error {
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return employeeerrors.ErrInvalidBranchID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	_, err = s.repo.FindByIDAndBranch(ctx, branchID, employeeID)
	if err == nil {
		zap.L().Debug("employee profile already exists, skipping seed",
			zap.String("employee_id", employeeID))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	emp := &Employee{
		ID:       employeeUUID,
		BranchID: branchUUID,
		FullName: "(pending sync)",
		PayType:  PayTypeMonthly,
		Active:   true,
	}

	return s.repo.Create(ctx, emp)
}

// applyRequest copies validated request fields onto the entity. The PF
// contribution rates must sit inside the bounds of the config version in
// force today.
func (s *service) applyRequest(
	ctx context.Context,
	emp *Employee,
	fullName, payType, baseSalary string,
	profile ContributionProfileInput,
) error {
	if payType != PayTypeMonthly && payType != PayTypeHourly && payType != PayTypeFreelance {
		return employeeerrors.ErrInvalidPayType
	}

	salary, err := parseAmount(baseSalary)
	if err != nil {
		return err
	}

	pfEmployeeRate, err := parseAmount(profile.PFEmployeeRate)
	if err != nil {
		return err
	}
	pfEmployerRate, err := parseAmount(profile.PFEmployerRate)
	if err != nil {
		return err
	}

	if profile.PFContribute {
		config, err := s.configService.ResolveEffective(ctx, time.Now().UTC())
		if err != nil {
			return err
		}
		if pfEmployeeRate.LessThan(config.PFRateMin) || pfEmployeeRate.GreaterThan(config.PFRateMax) {
			return employeeerrors.ErrPFRateOutOfBounds
		}
	}

	var declaredWage *decimal.Decimal
	if profile.SSODeclaredWage != nil {
		w, err := parseAmount(*profile.SSODeclaredWage)
		if err != nil {
			return err
		}
		declaredWage = &w
	}

	emp.FullName = fullName
	emp.PayType = payType
	emp.BaseSalary = salary
	emp.SSOContribute = profile.SSOContribute
	emp.SSODeclaredWage = declaredWage
	emp.PFContribute = profile.PFContribute
	emp.PFEmployeeRate = pfEmployeeRate
	emp.PFEmployerRate = pfEmployerRate
	emp.WithholdTax = profile.WithholdTax
	emp.HousingAllowance = profile.HousingAllowance
	emp.WaterAllowance = profile.WaterAllowance
	emp.ElectricityAllowance = profile.ElectricityAllowance
	emp.InternetAllowance = profile.InternetAllowance
	emp.DoctorFeeAllowance = profile.DoctorFeeAllowance

	return nil
}

func parseAmount(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, employeeerrors.ErrInvalidAmount
	}
	return d, nil
}

func mapToResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         emp.ID.String(),
		BranchID:   emp.BranchID.String(),
		FullName:   emp.FullName,
		PayType:    emp.PayType,
		Active:     emp.Active,
		BaseSalary: emp.BaseSalary.StringFixed(2),
		Profile: ContributionProfileResponse{
			SSOContribute:        emp.SSOContribute,
			PFContribute:         emp.PFContribute,
			PFEmployeeRate:       emp.PFEmployeeRate.String(),
			PFEmployerRate:       emp.PFEmployerRate.String(),
			WithholdTax:          emp.WithholdTax,
			HousingAllowance:     emp.HousingAllowance,
			WaterAllowance:       emp.WaterAllowance,
			ElectricityAllowance: emp.ElectricityAllowance,
			InternetAllowance:    emp.InternetAllowance,
			DoctorFeeAllowance:   emp.DoctorFeeAllowance,
		},
	}

	if emp.SSODeclaredWage != nil {
		v := emp.SSODeclaredWage.StringFixed(2)
		resp.Profile.SSODeclaredWage = &v
	}

	return resp
}
