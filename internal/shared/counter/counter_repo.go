package counter

import (
	"context"

	"gorm.io/gorm"
)

// Counter types used for document numbering.
const (
	TypePayslip = "payslip"
	TypeDebt    = "debt"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, branchID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, branchID string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic upsert-and-increment so concurrent settlements for the same
	// branch never draw the same document number.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO branch_counters (branch_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (branch_id, counter_type) DO UPDATE
		SET last_value = branch_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, branchID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
