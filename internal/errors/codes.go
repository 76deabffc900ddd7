package errors

// Code represents the kind of failure, independent of the specific rule that produced it
type Code string

// Error codes
const (
	CodeOK                    Code = "OK"
	CodeInvalidArgument       Code = "INVALID_ARGUMENT"
	CodeNotFound              Code = "NOT_FOUND"
	CodeAlreadyExists         Code = "ALREADY_EXISTS"
	CodeResourceExhausted     Code = "RESOURCE_EXHAUSTED"
	CodeFailedPrecondition    Code = "FAILED_PRECONDITION"
	CodeInvalidState          Code = "INVALID_STATE"
	CodeInsufficientResources Code = "INSUFFICIENT_RESOURCES"
	CodeInternal              Code = "INTERNAL"
	CodeUnavailable           Code = "UNAVAILABLE"
	CodeDataLoss              Code = "DATA_LOSS"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Recoverable reports whether a caller can continue play after a failure of this kind
// by choosing a different action. Rule violations are always recoverable; storage and
// data-integrity failures are not.
func (c Code) Recoverable() bool {
	switch c {
	case CodeInternal, CodeUnavailable, CodeDataLoss:
		return false
	default:
		return true
	}
}
