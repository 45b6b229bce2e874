package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/somprasongd/hr-payroll-sub000/internal/tax"
)

// Employee pay types. Hourly staff settle on hours worked; freelance staff
// are service-income earners under flat-rate withholding.
const (
	PayTypeMonthly   = "monthly"
	PayTypeHourly    = "hourly"
	PayTypeFreelance = "freelance"
)

// Employee owns the contribution profile the settlement core reads. The
// profile is mutated by HR edits only; settlement never writes it.
type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName string    `gorm:"type:varchar(120);not null"`
	PayType  string    `gorm:"type:varchar(20);not null;default:'monthly'"`
	Active   bool      `gorm:"not null;default:true"`

	BaseSalary decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	// Contribution profile
	SSOContribute   bool             `gorm:"not null;default:false"`
	SSODeclaredWage *decimal.Decimal `gorm:"type:numeric(14,2)"`
	PFContribute    bool             `gorm:"not null;default:false"`
	PFEmployeeRate  decimal.Decimal  `gorm:"type:numeric(8,4);not null;default:0"`
	PFEmployerRate  decimal.Decimal  `gorm:"type:numeric(8,4);not null;default:0"`
	WithholdTax     bool             `gorm:"not null;default:false"`

	// Allowance flags gating the config allowance amounts
	HousingAllowance     bool `gorm:"not null;default:false"`
	WaterAllowance       bool `gorm:"not null;default:false"`
	ElectricityAllowance bool `gorm:"not null;default:false"`
	InternetAllowance    bool `gorm:"not null;default:false"`
	DoctorFeeAllowance   bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// IncomeClass maps the pay type onto the tax calculator's classification.
func (e *Employee) IncomeClass() string {
	if e.PayType == PayTypeFreelance {
		return tax.IncomeClassService
	}
	return tax.IncomeClassEmployment
}

// TaxInputs projects the profile onto the pure calculator's inputs.
func (e *Employee) TaxInputs() tax.Inputs {
	return tax.Inputs{
		Withhold:        e.WithholdTax,
		IncomeClass:     e.IncomeClass(),
		SSOContribute:   e.SSOContribute,
		SSODeclaredWage: e.SSODeclaredWage,
	}
}
