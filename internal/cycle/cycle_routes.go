package cycle

import (
	"github.com/gin-gonic/gin"

	"github.com/somprasongd/hr-payroll-sub000/internal/middleware"
	"github.com/somprasongd/hr-payroll-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	cycles := r.Group("/cycles")
	cycles.Use(middleware.AuthMiddleware())
	{
		cycles.GET("", middleware.RBACAuthorize(rbacService, "cycle", "read"), handler.GetAll)
		cycles.GET("/:id", middleware.RBACAuthorize(rbacService, "cycle", "read"), handler.GetByID)
		cycles.POST("", middleware.RBACAuthorize(rbacService, "cycle", "create"), handler.Create)
		cycles.POST("/:id/finalize", middleware.RBACAuthorize(rbacService, "cycle", "finalize"), handler.Finalize)
	}
}
