package cycle

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "PENDING"
	StatusFinalized = "FINALIZED"
)

const (
	KindBonus       = "bonus"
	KindSalaryRaise = "salary_raise"
)

func IsValidKind(kind string) bool {
	return kind == KindBonus || kind == KindSalaryRaise
}

// PayrollCycle is one branch-wide adjustment round. The partial unique
// index lets the database reject a second open cycle of the same kind for
// a branch; the service never does a check-then-insert.
type PayrollCycle struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_open_cycle,where:status = 'PENDING'"`
	Kind     string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_open_cycle,where:status = 'PENDING'"`
	Status   string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Note     string    `gorm:"type:varchar(255)"`

	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	FinalizedBy *uuid.UUID `gorm:"type:uuid"`
	FinalizedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
