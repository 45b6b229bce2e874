package accumulation

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/somprasongd/hr-payroll-sub000/internal/shared/connection"
)

//go:generate mockgen -source=accumulation_repo.go -destination=mock/accumulation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// FindForUpdate takes a row lock so concurrent approvals or repayments
	// for the same key serialize instead of losing updates.
	FindForUpdate(ctx context.Context, employeeID string, accumType string, year *int) (*AccumulationRecord, error)
	Find(ctx context.Context, employeeID string, accumType string, year *int) (*AccumulationRecord, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]AccumulationRecord, error)
	Create(ctx context.Context, record *AccumulationRecord) error
	UpdateAmount(ctx context.Context, record *AccumulationRecord) error
	CreateAdjustment(ctx context.Context, adjustment *AccumulationAdjustment) error
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

func yearCondition(db *gorm.DB, year *int) *gorm.DB {
	return db.Where("accum_year = ?", yearKey(year))
}

func (r *repository) FindForUpdate(ctx context.Context, employeeID string, accumType string, year *int) (*AccumulationRecord, error) {
	var record AccumulationRecord
	q := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", employeeID).
		Where("accum_type = ?", accumType)
	err := yearCondition(q, year).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) Find(ctx context.Context, employeeID string, accumType string, year *int) (*AccumulationRecord, error) {
	var record AccumulationRecord
	q := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("accum_type = ?", accumType)
	err := yearCondition(q, year).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]AccumulationRecord, error) {
	var records []AccumulationRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("accum_type ASC, accum_year ASC").
		Find(&records).Error
	return records, err
}

// Create inserts a zero row for a key seen for the first time. Concurrent
// first uses of the same key race to insert; ON CONFLICT lets the loser
// proceed to re-lock the winner's row instead of failing on the unique key.
func (r *repository) Create(ctx context.Context, record *AccumulationRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "employee_id"},
				{Name: "accum_type"},
				{Name: "accum_year"},
			},
			DoNothing: true,
		}).
		Create(record).Error
}

func (r *repository) UpdateAmount(ctx context.Context, record *AccumulationRecord) error {
	return r.db.WithContext(ctx).
		Model(&AccumulationRecord{}).
		Where("id = ?", record.ID).
		Update("amount", record.Amount).Error
}

func (r *repository) CreateAdjustment(ctx context.Context, adjustment *AccumulationAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}
