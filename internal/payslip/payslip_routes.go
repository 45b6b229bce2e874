package payslip

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

	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		payslips.GET("", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.GetAll)
		payslips.GET("/:id", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.GetByID)
		if redisClient != nil {
			payslips.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "payslip", "create"),
				handler.Create,
			)
			payslips.POST(
				"/runs",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "payslip", "run"),
				handler.RunBatch,
			)
		} else {
			payslips.POST("", middleware.RBACAuthorize(rbacService, "payslip", "create"), handler.Create)
			payslips.POST("/runs", middleware.RBACAuthorize(rbacService, "payslip", "run"), handler.RunBatch)
		}
		payslips.PUT("/:id", middleware.RBACAuthorize(rbacService, "payslip", "update"), handler.Update)
		payslips.PUT("/:id/tax-mode", middleware.RBACAuthorize(rbacService, "payslip", "update"), handler.SetTaxMode)
		payslips.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "payslip", "approve"), handler.Approve)
		payslips.POST("/:id/pay", middleware.RBACAuthorize(rbacService, "payslip", "pay"), handler.MarkPaid)
		payslips.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payslip", "delete"), handler.Delete)
	}
}
