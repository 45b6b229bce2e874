package accumulation

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
	accumulations := r.Group("/accumulations")
	accumulations.Use(middleware.AuthMiddleware())
	{
		accumulations.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "accumulation", "read"), handler.GetByEmployee)
		accumulations.GET("/:employeeId/total", middleware.RBACAuthorize(rbacService, "accumulation", "read"), handler.GetTotal)
		// Force-set bypasses the additive chain, so it gets its own action.
		accumulations.POST("/adjust", middleware.RBACAuthorize(rbacService, "accumulation", "adjust"), handler.Adjust)
	}
}
