package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/somprasongd/hr-payroll-sub000/internal/employee"
	"github.com/somprasongd/hr-payroll-sub000/internal/payrollconfig"
	"github.com/somprasongd/hr-payroll-sub000/internal/shared/connection"
)

// RunConsumer listens for employee lifecycle events and seeds default
// contribution profiles.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	configRepo := payrollconfig.NewRepository(gormDB)
	configService := payrollconfig.NewService(sqlDB, configRepo)

	employeeRepo := employee.NewRepository(gormDB)
	employeeService := employee.NewService(sqlDB, employeeRepo, configService)

	consumer := employee.NewEmployeeCreatedConsumer(
		kafkaBroker,
		"hr-payroll-employee-profile",
		employeeService,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
