package domain

// ExceptionType enumerates the reasons a record can fail reconciliation.
type ExceptionType string

const (
	ExceptionMissingProvider   ExceptionType = "missing-provider"
	ExceptionAmountMismatch    ExceptionType = "amount-mismatch"
	ExceptionDuplicate         ExceptionType = "duplicate"
	ExceptionFailedTransaction ExceptionType = "failed-transaction"
)

// IsValid reports whether t is one of the enumerated exception types.
func (t ExceptionType) IsValid() bool {
	switch t {
	case ExceptionMissingProvider, ExceptionAmountMismatch, ExceptionDuplicate, ExceptionFailedTransaction:
		return true
	}
	return false
}

// Exception is a typed annotation on a record that could not be reconciled.
// Stored in dedicated columns, never encoded into the notes text.
type Exception struct {
	Type   ExceptionType `json:"type"`
	Detail string        `json:"detail"`
}
