package payslip

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/somprasongd/hr-payroll-sub000/internal/branch"
	"github.com/somprasongd/hr-payroll-sub000/internal/shared/connection"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payslip) error
	FindAllByBranch(ctx context.Context, branchID string, year, month int) ([]Payslip, error)
	FindByIDAndBranch(ctx context.Context, branchID string, id string) (*Payslip, error)
	// Replace persists the header together with the full replacement item
	// set in one statement batch, so totals and lines never land apart.
	Replace(ctx context.Context, p *Payslip) error
	UpdateStatus(ctx context.Context, p *Payslip) error
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

func (r *repository) Create(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByBranch(ctx context.Context, branchID string, year, month int) ([]Payslip, error) {
	var slips []Payslip
	q := r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		Preload("Items")
	if year > 0 {
		q = q.Where("period_year = ?", year)
	}
	if month > 0 {
		q = q.Where("period_month = ?", month)
	}
	err := q.Order("created_at DESC").Find(&slips).Error
	return slips, err
}

func (r *repository) FindByIDAndBranch(ctx context.Context, branchID string, id string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).
		Scopes(branch.Scope(branchID)).
		Preload("Items").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Replace(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		if err := db.Where("payslip_id = ?", p.ID).Delete(&PayslipItem{}).Error; err != nil {
			return err
		}
		return db.Save(p).Error
	})
}

func (r *repository) UpdateStatus(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).
		Omit("Items").
		Save(p).Error
}

func (r *repository) Delete(ctx context.Context, branchID string, id string) error {
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		if err := db.Where("payslip_id = ?", id).Delete(&PayslipItem{}).Error; err != nil {
			return err
		}
		return db.Scopes(branch.Scope(branchID)).Delete(&Payslip{}, "id = ?", id).Error
	})
}
