package payrollconfig

import (
	"github.com/gin-gonic/gin"

	"github.com/somprasongd/hr-payroll-sub000/internal/middleware"
	"github.com/somprasongd/hr-payroll-sub000/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	configs := r.Group("/payroll-configs")
	configs.Use(middleware.AuthMiddleware())
	{
		configs.GET("", middleware.RBACAuthorize(rbacService, "payroll_config", "read"), handler.GetAll)
		configs.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll_config", "read"), handler.GetByID)
		configs.POST("", middleware.RBACAuthorize(rbacService, "payroll_config", "create"), handler.Create)
	}
}
