package accumulationerrors

import (
	"net/http"

	"github.com/somprasongd/hr-payroll-sub000/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidAccumType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown accumulation type",
		http.StatusBadRequest,
	)
	ErrYearRequired = apperror.New(
		apperror.CodeInvalidInput,
		"accumulation year is required for tax and sso totals",
		http.StatusBadRequest,
	)
	ErrYearNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"accumulation year is not applicable for lifetime totals",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a valid decimal",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"an adjustment reason is required",
		http.StatusBadRequest,
	)
	ErrRepaymentExceedsBalance = apperror.New(
		apperror.CodeInvalidState,
		"repayment exceeds the outstanding loan balance",
		http.StatusUnprocessableEntity,
	)
)
