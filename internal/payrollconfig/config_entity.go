package payrollconfig

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/somprasongd/hr-payroll-sub000/internal/tax"
)

// PayrollConfig is one immutable version of the rate/tax schedule. Versions
// are append-only: superseding a config means inserting a new row with a
// later effective_from, never updating in place.
type PayrollConfig struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Version       int       `gorm:"not null;uniqueIndex"`
	EffectiveFrom time.Time `gorm:"type:date;not null;uniqueIndex:uq_config_effective_from"`

	// Base pay rates
	HourlyRate         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OvertimeHourlyRate decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	AttendanceBonus    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	// Allowance amounts gated by the per-employee profile flags
	HousingAllowance     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	WaterAllowance       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ElectricityAllowance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	InternetAllowance    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	DoctorFee            decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	// Utility unit rates for meter-derived charges
	WaterUnitRate       decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0"`
	ElectricityUnitRate decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0"`
	InternetMonthlyFee  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	// Social security
	SSOEmployeeRate decimal.Decimal `gorm:"type:numeric(8,4);not null;default:0"`
	SSOEmployerRate decimal.Decimal `gorm:"type:numeric(8,4);not null;default:0"`
	SSOWageCap      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	// Provident fund contribution rate bounds
	PFRateMin decimal.Decimal `gorm:"type:numeric(8,4);not null;default:0"`
	PFRateMax decimal.Decimal `gorm:"type:numeric(8,4);not null;default:0"`

	// Withholding tax
	ApplyStandardExpense   bool            `gorm:"not null;default:true"`
	StandardExpenseRate    decimal.Decimal `gorm:"type:numeric(8,4);not null;default:0"`
	StandardExpenseCap     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ApplyPersonalAllowance bool            `gorm:"not null;default:true"`
	PersonalAllowance      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ServiceWithholdingRate decimal.Decimal `gorm:"type:numeric(8,4);not null;default:0"`

	Brackets []TaxBracket `gorm:"foreignKey:ConfigID"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

// TaxBracket is one progressive band of a config version, ordered by
// Position. MaxAmount null marks the unbounded last band.
type TaxBracket struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConfigID  uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:uq_bracket_position"`
	Position  int              `gorm:"not null;uniqueIndex:uq_bracket_position"`
	MinAmount decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	MaxAmount *decimal.Decimal `gorm:"type:numeric(14,2)"`
	Rate      decimal.Decimal  `gorm:"type:numeric(8,4);not null"`
	CreatedAt time.Time
}

// TaxConfig projects this version onto the pure calculator's config.
func (c *PayrollConfig) TaxConfig() tax.Config {
	brackets := make([]tax.Bracket, len(c.Brackets))
	for i, b := range c.Brackets {
		brackets[i] = tax.Bracket{
			Min:  b.MinAmount,
			Max:  b.MaxAmount,
			Rate: b.Rate,
		}
	}

	return tax.Config{
		ApplyStandardExpense:   c.ApplyStandardExpense,
		StandardExpenseRate:    c.StandardExpenseRate,
		StandardExpenseCap:     c.StandardExpenseCap,
		ApplyPersonalAllowance: c.ApplyPersonalAllowance,
		PersonalAllowance:      c.PersonalAllowance,
		SSOEmployeeRate:        c.SSOEmployeeRate,
		SSOWageCap:             c.SSOWageCap,
		ServiceWithholdingRate: c.ServiceWithholdingRate,
		Brackets:               brackets,
	}
}
