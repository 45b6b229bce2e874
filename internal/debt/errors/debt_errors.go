package debterrors

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
	ErrInvalidDebtType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown debt type",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a positive decimal",
		http.StatusBadRequest,
	)
	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidMonthCount = apperror.New(
		apperror.CodeInvalidInput,
		"month count must be zero or greater",
		http.StatusBadRequest,
	)
	ErrInstallmentSumMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"installment amounts do not sum to the debt amount",
		http.StatusBadRequest,
	)
	ErrDuplicateInstallmentMonth = apperror.New(
		apperror.CodeInvalidInput,
		"two installments target the same payroll month",
		http.StatusBadRequest,
	)
	ErrInstallmentAmountInvalid = apperror.New(
		apperror.CodeInvalidInput,
		"installment amounts must be positive",
		http.StatusBadRequest,
	)
	ErrInstallmentMonthInvalid = apperror.New(
		apperror.CodeInvalidInput,
		"installment month must be between 1 and 12",
		http.StatusBadRequest,
	)
	ErrDebtNotFound = apperror.New(
		apperror.CodeNotFound,
		"debt transaction not found",
		http.StatusNotFound,
	)
	ErrDeleteOnlyPending = apperror.New(
		apperror.CodeInvalidState,
		"debt transaction can only be deleted while status is PENDING",
		http.StatusBadRequest,
	)
	ErrApproveOnlyPending = apperror.New(
		apperror.CodeInvalidState,
		"debt transaction can only be approved while status is PENDING",
		http.StatusBadRequest,
	)
)
