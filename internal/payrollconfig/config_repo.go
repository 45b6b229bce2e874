package payrollconfig

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/somprasongd/hr-payroll-sub000/internal/shared/connection"
)

//go:generate mockgen -source=config_repo.go -destination=mock/config_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, config *PayrollConfig) error
	FindAll(ctx context.Context) ([]PayrollConfig, error)
	FindByID(ctx context.Context, id string) (*PayrollConfig, error)
	FindEffective(ctx context.Context, date time.Time) (*PayrollConfig, error)
	MaxVersion(ctx context.Context) (int, error)
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

func (r *repository) Create(ctx context.Context, config *PayrollConfig) error {
	return r.db.WithContext(ctx).Create(config).Error
}

func (r *repository) FindAll(ctx context.Context) ([]PayrollConfig, error) {
	var configs []PayrollConfig
	err := r.db.WithContext(ctx).
		Preload("Brackets", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("effective_from DESC").
		Find(&configs).Error
	return configs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayrollConfig, error) {
	var config PayrollConfig
	err := r.db.WithContext(ctx).
		Preload("Brackets", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&config, "id = ?", id).Error
	return &config, err
}

// FindEffective resolves the latest version whose effective_from is on or
// before the target date.
func (r *repository) FindEffective(ctx context.Context, date time.Time) (*PayrollConfig, error) {
	var config PayrollConfig
	err := r.db.WithContext(ctx).
		Preload("Brackets", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("effective_from <= ?", date).
		Order("effective_from DESC").
		First(&config).Error
	return &config, err
}

func (r *repository) MaxVersion(ctx context.Context) (int, error) {
	var maxVersion sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&PayrollConfig{}).
		Select("MAX(version)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, err
	}
	return int(maxVersion.Int64), nil
}
