package debt

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/somprasongd/hr-payroll-sub000/internal/middleware"
	"github.com/somprasongd/hr-payroll-sub000/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	debts := r.Group("/debts")
	debts.Use(middleware.AuthMiddleware())
	{
		debts.GET("", middleware.RBACAuthorize(rbacService, "debt", "read"), handler.GetAll)
		debts.GET("/:id", middleware.RBACAuthorize(rbacService, "debt", "read"), handler.GetByID)
		if redisClient != nil {
			debts.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "debt", "create"),
				handler.Create,
			)
			debts.POST(
				"/repayments",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "debt", "repay"),
				handler.Repay,
			)
		} else {
			debts.POST("", middleware.RBACAuthorize(rbacService, "debt", "create"), handler.Create)
			debts.POST("/repayments", middleware.RBACAuthorize(rbacService, "debt", "repay"), handler.Repay)
		}
		debts.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "debt", "approve"), handler.Approve)
		debts.DELETE("/:id", middleware.RBACAuthorize(rbacService, "debt", "delete"), handler.Delete)
	}
}
