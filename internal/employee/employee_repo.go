package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/somprasongd/hr-payroll-sub000/internal/branch"
	"github.com/somprasongd/hr-payroll-sub000/internal/shared/connection"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, emp *Employee) error
	FindAllByBranch(ctx context.Context, branchID string) ([]Employee, error)
	// FindActiveByBranch feeds the batch settlement run. Inactive and
	// soft-deleted staff are excluded.
	FindActiveByBranch(ctx context.Context, branchID string) ([]Employee, error)
	FindByIDAndBranch(ctx context.Context, branchID string, id string) (*Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, branchID string, id string) error
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

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *repository) FindAllByBranch(ctx context.Context, branchID string) ([]Employee, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		Order("full_name ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindActiveByBranch(ctx context.Context, branchID string) ([]Employee, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		Where("active = ?", true).
		Order("full_name ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindByIDAndBranch(ctx context.Context, branchID string, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

func (r *repository) Delete(ctx context.Context, branchID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		Delete(&Employee{}, "id = ?", id).Error
}
