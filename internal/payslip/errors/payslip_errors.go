package paysliperrors

import (
	"net/http"

	"github.com/somprasongd/hr-payroll-sub000/internal/shared/apperror"
)

var (
	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid branch id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"period must be in YYYY-MM format",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"line amounts must be valid non-negative decimals",
		http.StatusBadRequest,
	)
	ErrNegativeMeterUsage = apperror.New(
		apperror.CodeInvalidInput,
		"current meter reading is below the previous reading",
		http.StatusBadRequest,
	)
	ErrInvalidTaxMode = apperror.New(
		apperror.CodeInvalidInput,
		"tax mode must be AUTO or MANUAL",
		http.StatusBadRequest,
	)
	ErrManualTaxRequiresAmount = apperror.New(
		apperror.CodeInvalidInput,
		"manual tax mode requires an amount",
		http.StatusBadRequest,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrPayslipExists = apperror.New(
		apperror.CodeConflict,
		"a payslip already exists for this employee and period",
		http.StatusConflict,
	)
	ErrEditOnlyPending = apperror.New(
		apperror.CodeConflict,
		"only a pending payslip can be edited",
		http.StatusConflict,
	)
	ErrApproveOnlyPending = apperror.New(
		apperror.CodeConflict,
		"only a pending payslip can be approved",
		http.StatusConflict,
	)
	ErrPayOnlyApproved = apperror.New(
		apperror.CodeConflict,
		"only an approved payslip can be marked paid",
		http.StatusConflict,
	)
	ErrDeleteOnlyPending = apperror.New(
		apperror.CodeConflict,
		"only a pending payslip can be deleted",
		http.StatusConflict,
	)
	ErrEmployeeInactive = apperror.New(
		apperror.CodeConflict,
		"employee is not active for settlement",
		http.StatusConflict,
	)
)
