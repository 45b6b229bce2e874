package payslip

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusPaid     = "PAID"
)

// Tax line modes. AUTO recomputes the withholding on every recalculation;
// MANUAL pins a user-supplied value until explicitly reset. The mode is
// persisted so a reloaded payslip never guesses which state it was in.
const (
	TaxModeAuto   = "AUTO"
	TaxModeManual = "MANUAL"
)

// Item kinds for the free-form child lines.
const (
	ItemOtherIncome    = "other_income"
	ItemOtherDeduction = "other_deduction"
	ItemLoanRepayment  = "loan_repayment"
)

// Payslip is one employee's settlement for one payroll month. The fixed
// lines live as columns; arbitrary named lines and loan repayments live as
// Items. The three totals are derived, recomputed on every mutation, and
// always persisted together with the lines that produced them.
type Payslip struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BranchID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_payslip_period"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_payslip_period"`
	PeriodYear  int       `gorm:"not null;uniqueIndex:uq_payslip_period"`
	PeriodMonth int       `gorm:"not null;uniqueIndex:uq_payslip_period"`
	DocNo       string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING'"`

	// Income lines
	Salary            decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Overtime          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	AttendanceBonus   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Bonus             decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	LeaveCompensation decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	DoctorFee         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	HousingAllowance     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	WaterAllowance       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ElectricityAllowance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	InternetAllowance    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	// Deduction lines
	LatePenalty       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	LeavePenalty      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Tax               decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TaxMode           string          `gorm:"type:varchar(10);not null;default:'AUTO'"`
	SSO               decimal.Decimal `gorm:"column:sso;type:numeric(14,2);not null;default:0"`
	ProvidentFund     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	WaterCharge       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ElectricityCharge decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	InternetCharge    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	AdvanceRepayment  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	// Meter readings behind the utility charges. Nil means no reading was
	// taken for the period, which is distinct from a reading of zero.
	WaterMeterPrev       *decimal.Decimal `gorm:"type:numeric(14,2)"`
	WaterMeterCur        *decimal.Decimal `gorm:"type:numeric(14,2)"`
	ElectricityMeterPrev *decimal.Decimal `gorm:"type:numeric(14,2)"`
	ElectricityMeterCur  *decimal.Decimal `gorm:"type:numeric(14,2)"`

	Items []PayslipItem `gorm:"foreignKey:PayslipID"`

	// Derived, never an edit target
	IncomeTotal    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	DeductionTotal decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetPay         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PayslipItem is one free-form child line. Loan-repayment items carry the
// installment they settle so the schedule stays traceable.
type PayslipItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayslipID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind          string          `gorm:"type:varchar(20);not null"`
	Name          string          `gorm:"type:varchar(120);not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	InstallmentID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt     time.Time
}
