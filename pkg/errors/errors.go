package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidOperation      = errors.New("invalid operation")
	ErrLoanNotFound          = errors.New("loan not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrBorrowerNotFound      = errors.New("borrower not found")
	ErrFixedIncomeNotFound   = errors.New("fixed income not found")
	ErrIncomePaymentNotFound = errors.New("income payment not found")
	ErrInvalidPaymentAmount  = errors.New("invalid payment amount")
	ErrLoanNotActive         = errors.New("loan is not active")
	ErrValidation            = errors.New("validation failed")
	ErrInvalidDate           = errors.New("invalid date")
	ErrConcurrentUpdate      = errors.New("record changed concurrently")
)

// kinds are the sentinels above. Their text repeats the error code, so
// Error leaves it out.
var kinds = []error{
	ErrInvalidOperation,
	ErrLoanNotFound,
	ErrPaymentNotFound,
	ErrBorrowerNotFound,
	ErrFixedIncomeNotFound,
	ErrIncomePaymentNotFound,
	ErrInvalidPaymentAmount,
	ErrLoanNotActive,
	ErrValidation,
	ErrInvalidDate,
	ErrConcurrentUpdate,
}

func isKind(err error) bool {
	for _, k := range kinds {
		if err == k {
			return true
		}
	}
	return false
}

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil && !isKind(e.Err) {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidOperation      = "INVALID_OPERATION"
	ErrCodeLoanNotFound          = "LOAN_NOT_FOUND"
	ErrCodePaymentNotFound       = "PAYMENT_NOT_FOUND"
	ErrCodeBorrowerNotFound      = "BORROWER_NOT_FOUND"
	ErrCodeFixedIncomeNotFound   = "FIXED_INCOME_NOT_FOUND"
	ErrCodeIncomePaymentNotFound = "INCOME_PAYMENT_NOT_FOUND"
	ErrCodeInvalidPaymentAmount  = "INVALID_PAYMENT_AMOUNT"
	ErrCodeLoanNotActive         = "LOAN_NOT_ACTIVE"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeInvalidDate           = "INVALID_DATE"
	ErrCodeConcurrentUpdate      = "CONCURRENT_UPDATE"
	ErrCodeDatabaseError         = "DATABASE_ERROR"
	ErrCodeCacheError            = "CACHE_ERROR"
)

// CodeOf returns the code of the first BusinessError in err's chain, or "".
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// IsNotFound reports whether err is any of the NotFound kinds.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLoanNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrBorrowerNotFound) ||
		errors.Is(err, ErrFixedIncomeNotFound) ||
		errors.Is(err, ErrIncomePaymentNotFound)
}

// Wrap common errors with business context
func WrapInvalidOperation(operation, loanType string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidOperation,
		fmt.Sprintf("%s is not supported for %s loans", operation, loanType),
		ErrInvalidOperation,
	)
}

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapPaymentNotFound(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %s not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapBorrowerNotFound(borrowerID string) *BusinessError {
	return NewBusinessError(
		ErrCodeBorrowerNotFound,
		fmt.Sprintf("Borrower with ID %s not found", borrowerID),
		ErrBorrowerNotFound,
	)
}

func WrapFixedIncomeNotFound(fixedIncomeID string) *BusinessError {
	return NewBusinessError(
		ErrCodeFixedIncomeNotFound,
		fmt.Sprintf("Fixed income with ID %s not found", fixedIncomeID),
		ErrFixedIncomeNotFound,
	)
}

func WrapIncomePaymentNotFound(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeIncomePaymentNotFound,
		fmt.Sprintf("Income payment with ID %s not found", paymentID),
		ErrIncomePaymentNotFound,
	)
}

func WrapInvalidPaymentAmount(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		fmt.Sprintf("Invalid payment amount: %s", reason),
		ErrInvalidPaymentAmount,
	)
}

func WrapLoanNotActive(loanID, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotActive,
		fmt.Sprintf("Loan with ID %s is %s", loanID, status),
		ErrLoanNotActive,
	)
}

func WrapValidation(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		message,
		ErrValidation,
	)
}

func WrapInvalidDate(field, reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDate,
		fmt.Sprintf("%s %s", field, reason),
		ErrInvalidDate,
	)
}

func WrapConcurrentUpdate(recordID string) *BusinessError {
	return NewBusinessError(
		ErrCodeConcurrentUpdate,
		fmt.Sprintf("Record %s was modified by another request", recordID),
		ErrConcurrentUpdate,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
