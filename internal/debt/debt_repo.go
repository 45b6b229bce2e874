package debt

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/somprasongd/hr-payroll-sub000/internal/branch"
	"github.com/somprasongd/hr-payroll-sub000/internal/shared/connection"
)

//go:generate mockgen -source=debt_repo.go -destination=mock/debt_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, txn *DebtTxn) error
	FindAllByBranch(ctx context.Context, branchID string) ([]DebtTxn, error)
	FindByIDAndBranch(ctx context.Context, branchID string, id string) (*DebtTxn, error)
	Update(ctx context.Context, txn *DebtTxn) error
	Delete(ctx context.Context, branchID string, id string) error
	// InstallmentsDue returns the approved installments targeting the
	// given payroll month for one employee.
	InstallmentsDue(ctx context.Context, employeeID string, year, month int) ([]Installment, error)
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

func (r *repository) Create(ctx context.Context, txn *DebtTxn) error {
	// Creating the parent with its Installments slice persists both in one
	// statement batch, so a schedule never exists without its owner.
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *repository) FindAllByBranch(ctx context.Context, branchID string) ([]DebtTxn, error) {
	var txns []DebtTxn
	err := r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, err
}

func (r *repository) FindByIDAndBranch(ctx context.Context, branchID string, id string) (*DebtTxn, error) {
	var txn DebtTxn
	err := r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		First(&txn, "id = ?", id).Error
	return &txn, err
}

func (r *repository) Update(ctx context.Context, txn *DebtTxn) error {
	return r.db.WithContext(ctx).
		Omit("Installments").
		Save(txn).Error
}

func (r *repository) Delete(ctx context.Context, branchID string, id string) error {
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		if err := db.Where("debt_id = ?", id).Delete(&Installment{}).Error; err != nil {
			return err
		}
		return db.Scopes(branch.Scope(branchID)).Delete(&DebtTxn{}, "id = ?", id).Error
	})
}

func (r *repository) InstallmentsDue(ctx context.Context, employeeID string, year, month int) ([]Installment, error) {
	var installments []Installment
	err := r.db.WithContext(ctx).
		Joins("JOIN debt_txns ON debt_txns.id = installments.debt_id").
		Where("debt_txns.employee_id = ?", employeeID).
		Where("debt_txns.status = ?", StatusApproved).
		Where("installments.target_year = ?", year).
		Where("installments.target_month = ?", month).
		Order("installments.seq ASC").
		Find(&installments).Error
	return installments, err
}
