package rbac

import "gorm.io/gorm"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetUserRoles(branchID string) ([]UserRoleRow, error)
	GetRolePermissions(branchID string) ([]RolePermissionRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type UserRoleRow struct {
	UserID string
	RoleID string
}

type RolePermissionRow struct {
	RoleID   string
	Resource string
	Action   string
}

func (r *repository) GetUserRoles(branchID string) ([]UserRoleRow, error) {
	var result []UserRoleRow
	err := r.db.Raw(`
		SELECT user_roles.user_id::text AS user_id, user_roles.role_id::text AS role_id
		FROM user_roles
		JOIN roles ON roles.id = user_roles.role_id
		WHERE roles.branch_id = ?
	`, branchID).Scan(&result).Error
	return result, err
}

func (r *repository) GetRolePermissions(branchID string) ([]RolePermissionRow, error) {
	var result []RolePermissionRow
	err := r.db.Raw(`
		SELECT role_permissions.role_id::text AS role_id, permissions.resource, permissions.action
		FROM role_permissions
		JOIN permissions ON permissions.id = role_permissions.permission_id
		JOIN roles ON roles.id = role_permissions.role_id
		WHERE roles.branch_id = ?
	`, branchID).Scan(&result).Error
	return result, err
}
