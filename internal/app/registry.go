package app

import (
	"database/sql"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/somprasongd/hr-payroll-sub000/internal/accumulation"
	"github.com/somprasongd/hr-payroll-sub000/internal/bootstrap"
	"github.com/somprasongd/hr-payroll-sub000/internal/cycle"
	"github.com/somprasongd/hr-payroll-sub000/internal/debt"
	"github.com/somprasongd/hr-payroll-sub000/internal/employee"
	"github.com/somprasongd/hr-payroll-sub000/internal/messaging/kafka"
	"github.com/somprasongd/hr-payroll-sub000/internal/payrollconfig"
	"github.com/somprasongd/hr-payroll-sub000/internal/payslip"
	"github.com/somprasongd/hr-payroll-sub000/internal/rbac"
	"github.com/somprasongd/hr-payroll-sub000/internal/rbac/infra"
	"github.com/somprasongd/hr-payroll-sub000/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	accumulationRepo := accumulation.NewRepository(gormDB)
	configRepo := payrollconfig.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	cycleRepo := cycle.NewRepository(gormDB)
	debtRepo := debt.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payslipRepo := payslip.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	auditLogger := bootstrap.NewStdoutAuditLogger()

	// --- Services ---
	configService := payrollconfig.NewService(db, configRepo)
	accumulationService := accumulation.NewService(db, accumulationRepo, auditLogger)
	cycleService := cycle.NewService(db, cycleRepo)
	debtService := debt.NewService(db, debtRepo, accumulationRepo, counterRepo, outboxRepo)
	employeeService := employee.NewService(db, employeeRepo, configService)
	payslipService := payslip.NewService(
		db,
		payslipRepo,
		employeeRepo,
		debtRepo,
		accumulationRepo,
		counterRepo,
		outboxRepo,
		configService,
	)

	// --- Handlers ---
	accumulationHandler := accumulation.NewHandler(accumulationService)
	configHandler := payrollconfig.NewHandler(configService)
	cycleHandler := cycle.NewHandler(cycleService)
	debtHandler := debt.NewHandler(debtService)
	employeeHandler := employee.NewHandler(employeeService)
	payslipHandler := payslip.NewHandler(payslipService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		accumulation.RegisterRoutes(api, accumulationHandler, rbacService)
		cycle.RegisterRoutes(api, cycleHandler, rbacService)
		debt.RegisterRoutes(api, debtHandler, rbacService, rdb)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		payrollconfig.RegisterRoutes(api, configHandler, rbacService)
		payslip.RegisterRoutes(api, payslipHandler, rbacService, rdb)
	}

	return nil
}
