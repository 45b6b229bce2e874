package configerrors

import (
	"net/http"

	"github.com/somprasongd/hr-payroll-sub000/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amounts and rates must be valid non-negative decimals",
		http.StatusBadRequest,
	)
	ErrInvalidBrackets = apperror.New(
		apperror.CodeInvalidInput,
		"tax bracket table is malformed",
		http.StatusBadRequest,
	)
	ErrInvalidPFBounds = apperror.New(
		apperror.CodeInvalidInput,
		"provident fund minimum rate must not exceed maximum rate",
		http.StatusBadRequest,
	)
	ErrEffectiveDateTaken = apperror.New(
		apperror.CodeConflict,
		"a configuration with this effective date already exists",
		http.StatusConflict,
	)
	ErrConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"no payroll configuration is effective for this date",
		http.StatusNotFound,
	)
)
