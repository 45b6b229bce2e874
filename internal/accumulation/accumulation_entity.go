package accumulation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Accumulation types. Tax and SSO are year-scoped; provident fund and loan
// outstanding run for the lifetime of the employee (no year key).
const (
	TypeTax             = "tax"
	TypeSSO             = "sso"
	TypeProvidentFund   = "provident_fund"
	TypeLoanOutstanding = "loan_outstanding"
)

func IsYearScoped(accumType string) bool {
	return accumType == TypeTax || accumType == TypeSSO
}

func IsValidType(accumType string) bool {
	switch accumType {
	case TypeTax, TypeSSO, TypeProvidentFund, TypeLoanOutstanding:
		return true
	}
	return false
}

// AccumulationRecord is one running total. Lifetime types store AccumYear
// as 0 so the unique key never carries a NULL; Postgres treats NULLs as
// distinct in a unique index, which would allow duplicate lifetime rows.
type AccumulationRecord struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_accum_key"`
	AccumType  string          `gorm:"type:varchar(30);not null;uniqueIndex:uq_accum_key"`
	AccumYear  int             `gorm:"not null;uniqueIndex:uq_accum_key"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// yearKey maps the external nil year of lifetime types to the stored
// sentinel.
func yearKey(year *int) int {
	if year == nil {
		return 0
	}
	return *year
}

// AccumulationAdjustment records a force-set that bypassed the additive
// chain. The before/after pair keeps the audit trail reconstructible.
type AccumulationAdjustment struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccumType      string          `gorm:"type:varchar(30);not null"`
	AccumYear      int             `gorm:"not null"`
	PreviousAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	NewAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Reason         string          `gorm:"type:text;not null"`
	AdjustedBy     uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt      time.Time
}
