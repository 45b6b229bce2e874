package debt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
)

// Debt transaction types. Loans and other debts carry optional repayment
// schedules; repayments are separate records that only move the ledger.
const (
	TypeLoan      = "loan"
	TypeOtherDebt = "other_debt"
	TypeRepayment = "repayment"
)

type DebtTxn struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BranchID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	DocNo    string          `gorm:"type:varchar(20);not null"`
	DebtType string          `gorm:"type:varchar(20);not null"`
	Amount   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Reason   string          `gorm:"type:text"`
	Status   string          `gorm:"type:varchar(20);not null;default:'PENDING';index"`

	Installments []Installment `gorm:"foreignKey:DebtID"`

	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Installment rows are locked together with their owning transaction:
// neither is ever persisted without the other.
type Installment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DebtID      uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uq_installment_month"`
	Seq         int             `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TargetYear  int             `gorm:"not null;uniqueIndex:uq_installment_month"`
	TargetMonth int             `gorm:"not null;uniqueIndex:uq_installment_month"`
	CreatedAt   time.Time
}
