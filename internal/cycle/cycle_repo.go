package cycle

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/somprasongd/hr-payroll-sub000/internal/branch"
	"github.com/somprasongd/hr-payroll-sub000/internal/shared/connection"
)

//go:generate mockgen -source=cycle_repo.go -destination=mock/cycle_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *PayrollCycle) error
	FindAllByBranch(ctx context.Context, branchID string) ([]PayrollCycle, error)
	FindByIDAndBranch(ctx context.Context, branchID string, id string) (*PayrollCycle, error)
	Update(ctx context.Context, c *PayrollCycle) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GormTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, c *PayrollCycle) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAllByBranch(ctx context.Context, branchID string) ([]PayrollCycle, error) {
	var cycles []PayrollCycle
	err := r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		Order("created_at DESC").
		Find(&cycles).Error
	return cycles, err
}

func (r *repository) FindByIDAndBranch(ctx context.Context, branchID string, id string) (*PayrollCycle, error) {
	var c PayrollCycle
	err := r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) Update(ctx context.Context, c *PayrollCycle) error {
	return r.db.WithContext(ctx).Save(c).Error
}
