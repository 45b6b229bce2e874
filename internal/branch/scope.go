package branch

import "gorm.io/gorm"

// Scope restricts a query to a single branch. Every repository query that
// touches branch-owned rows must apply it.
func Scope(branchID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("branch_id = ?", branchID)
	}
}
