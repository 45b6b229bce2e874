package cycleerrors

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
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"unknown cycle kind",
		http.StatusBadRequest,
	)
	ErrCycleNotFound = apperror.New(
		apperror.CodeNotFound,
		"cycle not found",
		http.StatusNotFound,
	)
	ErrOpenCycleExists = apperror.New(
		apperror.CodeConflict,
		"an open cycle of this kind already exists for the branch",
		http.StatusConflict,
	)
	ErrFinalizeOnlyPending = apperror.New(
		apperror.CodeConflict,
		"only a pending cycle can be finalized",
		http.StatusConflict,
	)
)
