package employeeerrors

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
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPayType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown pay type",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amounts and rates must be valid non-negative decimals",
		http.StatusBadRequest,
	)
	ErrPFRateOutOfBounds = apperror.New(
		apperror.CodeInvalidInput,
		"provident fund rate is outside the configured bounds",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
)
