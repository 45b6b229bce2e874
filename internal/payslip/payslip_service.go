package payslip

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/somprasongd/hr-payroll-sub000/internal/accumulation"
	"github.com/somprasongd/hr-payroll-sub000/internal/debt"
	"github.com/somprasongd/hr-payroll-sub000/internal/employee"
	"github.com/somprasongd/hr-payroll-sub000/internal/events"
	"github.com/somprasongd/hr-payroll-sub000/internal/messaging/kafka"
	"github.com/somprasongd/hr-payroll-sub000/internal/payrollconfig"
	paysliperrors "github.com/somprasongd/hr-payroll-sub000/internal/payslip/errors"
	"github.com/somprasongd/hr-payroll-sub000/internal/shared/contextutil"
	"github.com/somprasongd/hr-payroll-sub000/internal/shared/counter"
	"github.com/somprasongd/hr-payroll-sub000/internal/tax"
)

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, branchID, actorID string, req CreatePayslipRequest) (PayslipResponse, error)
	GetAll(ctx context.Context, branchID string, year, month int) ([]PayslipResponse, error)
	GetByID(ctx context.Context, branchID, id string) (PayslipResponse, error)
	Update(ctx context.Context, branchID, id string, req UpdatePayslipRequest) (PayslipResponse, error)
	SetTaxMode(ctx context.Context, branchID, id string, req SetTaxModeRequest) (PayslipResponse, error)
	Approve(ctx context.Context, branchID, actorID, id string) (PayslipResponse, error)
	MarkPaid(ctx context.Context, branchID, id string) (PayslipResponse, error)
	Delete(ctx context.Context, branchID, id string) error
	// RunBatch settles every active employee of the branch for one period.
	// A failure for one employee is recorded and the run moves on; it never
	// aborts the whole batch.
	RunBatch(ctx context.Context, branchID, actorID string, req RunBatchRequest) (RunBatchResponse, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	employeeRepo  employee.Repository
	debtRepo      debt.Repository
	accumRepo     accumulation.Repository
	counterRepo   counter.Repository
	outboxRepo    kafka.OutboxRepository
	configService payrollconfig.Service
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	debtRepo debt.Repository,
	accumRepo accumulation.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	configService payrollconfig.Service,
) Service {
	return &service{
		db:            db,
		repo:          repo,
		employeeRepo:  employeeRepo,
		debtRepo:      debtRepo,
		accumRepo:     accumRepo,
		counterRepo:   counterRepo,
		outboxRepo:    outboxRepo,
		configService: configService,
	}
}

func (s *service) Create(
	ctx context.Context,
	branchID, actorID string,
	req CreatePayslipRequest,
) (PayslipResponse, error) {
	branchUUID, err := uuid.Parse(branchID)
	if err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidBranchID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidActorID
	}

	year, month, err := parsePeriod(req.Period)
	if err != nil {
		return PayslipResponse{}, err
	}

	emp, err := s.loadEmployee(ctx, branchID, req.EmployeeID)
	if err != nil {
		return PayslipResponse{}, err
	}

	cfg, err := s.configService.ResolveEffective(ctx, periodDate(year, month))
	if err != nil {
		return PayslipResponse{}, err
	}

	p, err := s.prepopulate(ctx, branchUUID, actorUUID, emp, cfg, year, month, req)
	if err != nil {
		return PayslipResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// The counter draws on the pool, outside the transaction; a rollback
	// leaves a gap in doc numbers, never a duplicate.
	docSeq, err := s.counterRepo.GetNextValue(ctx, branchID, counter.TypePayslip)
	if err != nil {
		return PayslipResponse{}, err
	}
	p.DocNo = fmt.Sprintf("PSL-%06d", docSeq)

	if err := qtx.Create(ctx, p); err != nil {
		if isDuplicatePeriod(err) {
			return PayslipResponse{}, paysliperrors.ErrPayslipExists
		}
		return PayslipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, branchID string, year, month int) ([]PayslipResponse, error) {
	slips, err := s.repo.FindAllByBranch(ctx, branchID, year, month)
	if err != nil {
		return nil, err
	}

	resp := make([]PayslipResponse, len(slips))
	for i, p := range slips {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, branchID, id string) (PayslipResponse, error) {
	p, err := s.repo.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}

	return mapToResponse(*p), nil
}

// Update replaces the edited lines, rederives meter charges when readings
// changed, refreshes an AUTO tax line and recomputes the totals. Header
// and items persist together; a stale total can never be saved alone.
func (s *service) Update(
	ctx context.Context,
	branchID, id string,
	req UpdatePayslipRequest,
) (PayslipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}

	if p.Status != StatusPending {
		return PayslipResponse{}, paysliperrors.ErrEditOnlyPending
	}

	emp, err := s.loadEmployee(ctx, branchID, p.EmployeeID.String())
	if err != nil {
		return PayslipResponse{}, err
	}

	cfg, err := s.configService.ResolveEffective(ctx, periodDate(p.PeriodYear, p.PeriodMonth))
	if err != nil {
		return PayslipResponse{}, err
	}

	if err := s.applyUpdate(p, cfg, req); err != nil {
		return PayslipResponse{}, err
	}

	p.RefreshAutoTax(emp.TaxInputs(), cfg.TaxConfig())
	p.Recalculate()

	if err := qtx.Replace(ctx, p); err != nil {
		return PayslipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	return mapToResponse(*p), nil
}

// SetTaxMode pins the tax line to a supplied value, or resets it to the
// recomputed withholding. Resetting always rederives from current inputs
// rather than restoring a stored shadow value.
func (s *service) SetTaxMode(
	ctx context.Context,
	branchID, id string,
	req SetTaxModeRequest,
) (PayslipResponse, error) {
	if req.Mode != TaxModeAuto && req.Mode != TaxModeManual {
		return PayslipResponse{}, paysliperrors.ErrInvalidTaxMode
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}

	if p.Status != StatusPending {
		return PayslipResponse{}, paysliperrors.ErrEditOnlyPending
	}

	switch req.Mode {
	case TaxModeManual:
		if req.Amount == nil {
			return PayslipResponse{}, paysliperrors.ErrManualTaxRequiresAmount
		}
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			return PayslipResponse{}, err
		}
		p.TaxMode = TaxModeManual
		p.Tax = amount
	case TaxModeAuto:
		emp, err := s.loadEmployee(ctx, branchID, p.EmployeeID.String())
		if err != nil {
			return PayslipResponse{}, err
		}
		cfg, err := s.configService.ResolveEffective(ctx, periodDate(p.PeriodYear, p.PeriodMonth))
		if err != nil {
			return PayslipResponse{}, err
		}
		p.TaxMode = TaxModeAuto
		p.RefreshAutoTax(emp.TaxInputs(), cfg.TaxConfig())
	}

	p.Recalculate()

	if err := qtx.Replace(ctx, p); err != nil {
		return PayslipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	return mapToResponse(*p), nil
}

// Approve freezes the slip and posts the settled amounts to the running
// totals: tax and SSO against the period's year, provident fund lifetime,
// and the loan repayments as a reduction of the outstanding balance. The
// slip, the ledger and the outbox event commit or roll back as one.
func (s *service) Approve(ctx context.Context, branchID, actorID, id string) (PayslipResponse, error) {
	approverUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}

	if p.Status != StatusPending {
		return PayslipResponse{}, paysliperrors.ErrApproveOnlyPending
	}

	now := time.Now().UTC()
	p.Status = StatusApproved
	p.ApprovedBy = &approverUUID
	p.ApprovedAt = &now

	if err := qtx.UpdateStatus(ctx, p); err != nil {
		return PayslipResponse{}, err
	}

	accumTx := s.accumRepo.WithTx(tx)
	year := p.PeriodYear

	if p.Tax.IsPositive() {
		if _, err := accumulation.ApplyDelta(
			ctx, accumTx, p.EmployeeID, accumulation.TypeTax, &year, p.Tax,
		); err != nil {
			return PayslipResponse{}, err
		}
	}
	if p.SSO.IsPositive() {
		if _, err := accumulation.ApplyDelta(
			ctx, accumTx, p.EmployeeID, accumulation.TypeSSO, &year, p.SSO,
		); err != nil {
			return PayslipResponse{}, err
		}
	}
	if p.ProvidentFund.IsPositive() {
		if _, err := accumulation.ApplyDelta(
			ctx, accumTx, p.EmployeeID, accumulation.TypeProvidentFund, nil, p.ProvidentFund,
		); err != nil {
			return PayslipResponse{}, err
		}
	}
	if repaid := p.LoanRepaymentTotal(); repaid.IsPositive() {
		if _, err := accumulation.ApplyDelta(
			ctx, accumTx, p.EmployeeID, accumulation.TypeLoanOutstanding, nil, repaid.Neg(),
		); err != nil {
			return PayslipResponse{}, err
		}
	}

	if err := s.enqueueApprovedEvent(ctx, tx, p, actorID); err != nil {
		return PayslipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) MarkPaid(ctx context.Context, branchID, id string) (PayslipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}

	if p.Status != StatusApproved {
		return PayslipResponse{}, paysliperrors.ErrPayOnlyApproved
	}

	now := time.Now().UTC()
	p.Status = StatusPaid
	p.PaidAt = &now

	if err := qtx.UpdateStatus(ctx, p); err != nil {
		return PayslipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, branchID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndBranch(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return paysliperrors.ErrPayslipNotFound
		}
		return err
	}

	if p.Status != StatusPending {
		return paysliperrors.ErrDeleteOnlyPending
	}

	if err := qtx.Delete(ctx, branchID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) RunBatch(
	ctx context.Context,
	branchID, actorID string,
	req RunBatchRequest,
) (RunBatchResponse, error) {
	year, month, err := parsePeriod(req.Period)
	if err != nil {
		return RunBatchResponse{}, err
	}

	emps, err := s.employeeRepo.FindActiveByBranch(ctx, branchID)
	if err != nil {
		return RunBatchResponse{}, err
	}

	resp := RunBatchResponse{Period: fmt.Sprintf("%04d-%02d", year, month)}

	for _, emp := range emps {
		slip, err := s.Create(ctx, branchID, actorID, CreatePayslipRequest{
			EmployeeID: emp.ID.String(),
			Period:     req.Period,
		})
		if err != nil {
			zap.L().Warn("batch settlement failed for employee",
				zap.String("employee_id", emp.ID.String()),
				zap.String("period", req.Period),
				zap.Error(err),
			)
			resp.Failures = append(resp.Failures, BatchFailure{
				EmployeeID: emp.ID.String(),
				Reason:     err.Error(),
			})
			continue
		}
		resp.Settled = append(resp.Settled, slip)
	}

	resp.SettledCount = len(resp.Settled)
	resp.FailedCount = len(resp.Failures)
	return resp, nil
}

// prepopulate builds a fresh slip from the employee profile, the effective
// config and the raw period inputs. Every derived line stays editable
// afterwards; this only seeds the starting values.
func (s *service) prepopulate(
	ctx context.Context,
	branchUUID, actorUUID uuid.UUID,
	emp *employee.Employee,
	cfg *payrollconfig.PayrollConfig,
	year, month int,
	req CreatePayslipRequest,
) (*Payslip, error) {
	p := &Payslip{
		ID:          uuid.New(),
		BranchID:    branchUUID,
		EmployeeID:  emp.ID,
		PeriodYear:  year,
		PeriodMonth: month,
		Status:      StatusPending,
		TaxMode:     TaxModeAuto,
		CreatedBy:   actorUUID,
	}

	hoursWorked, err := parseOptionalAmount(req.HoursWorked)
	if err != nil {
		return nil, err
	}
	otHours, err := parseOptionalAmount(req.OvertimeHours)
	if err != nil {
		return nil, err
	}

	switch emp.PayType {
	case employee.PayTypeHourly:
		p.Salary = hoursWorked.Mul(cfg.HourlyRate).Round(2)
	default:
		p.Salary = emp.BaseSalary
	}
	p.Overtime = otHours.Mul(cfg.OvertimeHourlyRate).Round(2)

	if p.AttendanceBonus, err = parseOptionalAmount(req.AttendanceBonus); err != nil {
		return nil, err
	}
	if p.Bonus, err = parseOptionalAmount(req.Bonus); err != nil {
		return nil, err
	}
	if p.LeaveCompensation, err = parseOptionalAmount(req.LeaveCompensation); err != nil {
		return nil, err
	}
	if p.LatePenalty, err = parseOptionalAmount(req.LatePenalty); err != nil {
		return nil, err
	}
	if p.LeavePenalty, err = parseOptionalAmount(req.LeavePenalty); err != nil {
		return nil, err
	}
	if p.AdvanceRepayment, err = parseOptionalAmount(req.AdvanceRepayment); err != nil {
		return nil, err
	}

	if emp.HousingAllowance {
		p.HousingAllowance = cfg.HousingAllowance
	}
	if emp.WaterAllowance {
		p.WaterAllowance = cfg.WaterAllowance
	}
	if emp.ElectricityAllowance {
		p.ElectricityAllowance = cfg.ElectricityAllowance
	}
	if emp.InternetAllowance {
		p.InternetAllowance = cfg.InternetAllowance
	}
	if emp.DoctorFeeAllowance {
		p.DoctorFee = cfg.DoctorFee
	}
	if req.DoctorFee != "" {
		if p.DoctorFee, err = parseOptionalAmount(req.DoctorFee); err != nil {
			return nil, err
		}
	}

	if err := s.applyMeters(p, cfg, req.Meters); err != nil {
		return nil, err
	}
	p.InternetCharge = cfg.InternetMonthlyFee

	installments, err := s.debtRepo.InstallmentsDue(ctx, emp.ID.String(), year, month)
	if err != nil {
		return nil, err
	}
	for _, in := range installments {
		installmentID := in.ID
		p.Items = append(p.Items, PayslipItem{
			ID:            uuid.New(),
			PayslipID:     p.ID,
			Kind:          ItemLoanRepayment,
			Name:          fmt.Sprintf("Loan installment %d", in.Seq),
			Amount:        in.Amount,
			InstallmentID: &installmentID,
		})
	}

	extra, err := buildItems(p.ID, req.Items)
	if err != nil {
		return nil, err
	}
	p.Items = append(p.Items, extra...)

	p.SSO = tax.SSODeduction(p.GrossIncomeBeforeTax(), emp.TaxInputs(), cfg.TaxConfig())
	if emp.PFContribute {
		p.ProvidentFund = p.Salary.Mul(emp.PFEmployeeRate).Round(2)
	}

	p.RefreshAutoTax(emp.TaxInputs(), cfg.TaxConfig())
	p.Recalculate()

	return p, nil
}

func (s *service) applyUpdate(p *Payslip, cfg *payrollconfig.PayrollConfig, req UpdatePayslipRequest) error {
	fields := []struct {
		src *string
		dst *decimal.Decimal
	}{
		{req.Salary, &p.Salary},
		{req.Overtime, &p.Overtime},
		{req.AttendanceBonus, &p.AttendanceBonus},
		{req.Bonus, &p.Bonus},
		{req.LeaveCompensation, &p.LeaveCompensation},
		{req.DoctorFee, &p.DoctorFee},
		{req.HousingAllowance, &p.HousingAllowance},
		{req.WaterAllowance, &p.WaterAllowance},
		{req.ElectricityAllowance, &p.ElectricityAllowance},
		{req.InternetAllowance, &p.InternetAllowance},
		{req.LatePenalty, &p.LatePenalty},
		{req.LeavePenalty, &p.LeavePenalty},
		{req.AdvanceRepayment, &p.AdvanceRepayment},
	}

	for _, f := range fields {
		if f.src == nil {
			continue
		}
		v, err := parseAmount(*f.src)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	// New readings rederive the charges first; an explicit charge edit in
	// the same request then wins. Once overridden, the meter-derived
	// relationship is not re-enforced.
	if req.Meters != nil {
		if err := s.applyMeters(p, cfg, *req.Meters); err != nil {
			return err
		}
	}

	charges := []struct {
		src *string
		dst *decimal.Decimal
	}{
		{req.SSO, &p.SSO},
		{req.ProvidentFund, &p.ProvidentFund},
		{req.WaterCharge, &p.WaterCharge},
		{req.ElectricityCharge, &p.ElectricityCharge},
		{req.InternetCharge, &p.InternetCharge},
	}
	for _, f := range charges {
		if f.src == nil {
			continue
		}
		v, err := parseAmount(*f.src)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if req.Items != nil {
		loanItems := make([]PayslipItem, 0, len(p.Items))
		for _, item := range p.Items {
			if item.Kind == ItemLoanRepayment {
				loanItems = append(loanItems, item)
			}
		}
		extra, err := buildItems(p.ID, req.Items)
		if err != nil {
			return err
		}
		p.Items = append(loanItems, extra...)
	}

	return nil
}

func (s *service) applyMeters(p *Payslip, cfg *payrollconfig.PayrollConfig, m MeterReadingsInput) error {
	var err error
	if p.WaterMeterPrev, err = parseOptionalReading(m.WaterPrev, p.WaterMeterPrev); err != nil {
		return err
	}
	if p.WaterMeterCur, err = parseOptionalReading(m.WaterCur, p.WaterMeterCur); err != nil {
		return err
	}
	if p.ElectricityMeterPrev, err = parseOptionalReading(m.ElectricityPrev, p.ElectricityMeterPrev); err != nil {
		return err
	}
	if p.ElectricityMeterCur, err = parseOptionalReading(m.ElectricityCur, p.ElectricityMeterCur); err != nil {
		return err
	}

	waterCharge, err := UtilityCharge("water", p.WaterMeterPrev, p.WaterMeterCur, cfg.WaterUnitRate)
	if err != nil {
		return err
	}
	electricityCharge, err := UtilityCharge(
		"electricity", p.ElectricityMeterPrev, p.ElectricityMeterCur, cfg.ElectricityUnitRate,
	)
	if err != nil {
		return err
	}

	p.WaterCharge = waterCharge
	p.ElectricityCharge = electricityCharge
	return nil
}

func (s *service) loadEmployee(ctx context.Context, branchID, employeeID string) (*employee.Employee, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, paysliperrors.ErrInvalidEmployeeID
	}

	emp, err := s.employeeRepo.FindByIDAndBranch(ctx, branchID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paysliperrors.ErrInvalidEmployeeID
		}
		return nil, err
	}
	if !emp.Active {
		return nil, paysliperrors.ErrEmployeeInactive
	}

	return emp, nil
}

func (s *service) enqueueApprovedEvent(ctx context.Context, tx *sql.Tx, p *Payslip, actorID string) error {
	payload, err := json.Marshal(events.PayslipApprovedEvent{
		EventType:      "payslip.approved",
		PayslipID:      p.ID.String(),
		BranchID:       p.BranchID.String(),
		EmployeeID:     p.EmployeeID.String(),
		PeriodYear:     p.PeriodYear,
		PeriodMonth:    p.PeriodMonth,
		IncomeTotal:    p.IncomeTotal.StringFixed(2),
		DeductionTotal: p.DeductionTotal.StringFixed(2),
		NetPay:         p.NetPay.StringFixed(2),
		ApprovedBy:     actorID,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payslip",
		AggregateID:   p.ID.String(),
		EventType:     "payslip.approved",
		Topic:         events.PayslipApprovedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func buildItems(payslipID uuid.UUID, inputs []ItemInput) ([]PayslipItem, error) {
	items := make([]PayslipItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Kind != ItemOtherIncome && in.Kind != ItemOtherDeduction {
			return nil, paysliperrors.ErrInvalidAmount.WithDetails(map[string]string{
				"kind": in.Kind,
			})
		}
		amount, err := parseAmount(in.Amount)
		if err != nil {
			return nil, err
		}
		items = append(items, PayslipItem{
			ID:        uuid.New(),
			PayslipID: payslipID,
			Kind:      in.Kind,
			Name:      in.Name,
			Amount:    amount,
		})
	}
	return items, nil
}

func parsePeriod(v string) (int, int, error) {
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return 0, 0, paysliperrors.ErrInvalidPeriodFormat
	}
	return t.Year(), int(t.Month()), nil
}

func periodDate(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func parseAmount(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, paysliperrors.ErrInvalidAmount
	}
	return d, nil
}

func parseOptionalAmount(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	return parseAmount(v)
}

func parseOptionalReading(v *string, current *decimal.Decimal) (*decimal.Decimal, error) {
	if v == nil {
		return current, nil
	}
	d, err := decimal.NewFromString(*v)
	if err != nil || d.IsNegative() {
		return nil, paysliperrors.ErrInvalidAmount
	}
	return &d, nil
}

func isDuplicatePeriod(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payslip_period"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_payslip_period")
}

func mapToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:         p.ID.String(),
		BranchID:   p.BranchID.String(),
		EmployeeID: p.EmployeeID.String(),
		Period:     fmt.Sprintf("%04d-%02d", p.PeriodYear, p.PeriodMonth),
		DocNo:      p.DocNo,
		Status:     p.Status,

		Salary:            p.Salary.StringFixed(2),
		Overtime:          p.Overtime.StringFixed(2),
		AttendanceBonus:   p.AttendanceBonus.StringFixed(2),
		Bonus:             p.Bonus.StringFixed(2),
		LeaveCompensation: p.LeaveCompensation.StringFixed(2),
		DoctorFee:         p.DoctorFee.StringFixed(2),

		HousingAllowance:     p.HousingAllowance.StringFixed(2),
		WaterAllowance:       p.WaterAllowance.StringFixed(2),
		ElectricityAllowance: p.ElectricityAllowance.StringFixed(2),
		InternetAllowance:    p.InternetAllowance.StringFixed(2),

		LatePenalty:       p.LatePenalty.StringFixed(2),
		LeavePenalty:      p.LeavePenalty.StringFixed(2),
		Tax:               p.Tax.StringFixed(2),
		TaxMode:           p.TaxMode,
		SSO:               p.SSO.StringFixed(2),
		ProvidentFund:     p.ProvidentFund.StringFixed(2),
		WaterCharge:       p.WaterCharge.StringFixed(2),
		ElectricityCharge: p.ElectricityCharge.StringFixed(2),
		InternetCharge:    p.InternetCharge.StringFixed(2),
		AdvanceRepayment:  p.AdvanceRepayment.StringFixed(2),

		IncomeTotal:    p.IncomeTotal.StringFixed(2),
		DeductionTotal: p.DeductionTotal.StringFixed(2),
		NetPay:         p.NetPay.StringFixed(2),

		CreatedBy: p.CreatedBy.String(),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}

	resp.Meters = MeterReadingsResponse{
		WaterPrev:       decimalPtrString(p.WaterMeterPrev),
		WaterCur:        decimalPtrString(p.WaterMeterCur),
		ElectricityPrev: decimalPtrString(p.ElectricityMeterPrev),
		ElectricityCur:  decimalPtrString(p.ElectricityMeterCur),
	}

	for _, item := range p.Items {
		ir := ItemResponse{
			ID:     item.ID.String(),
			Kind:   item.Kind,
			Name:   item.Name,
			Amount: item.Amount.StringFixed(2),
		}
		if item.InstallmentID != nil {
			v := item.InstallmentID.String()
			ir.InstallmentID = &v
		}
		resp.Items = append(resp.Items, ir)
	}

	if p.ApprovedBy != nil {
		v := p.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if p.ApprovedAt != nil {
		v := p.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}

	return resp
}

func decimalPtrString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	v := d.StringFixed(2)
	return &v
}
