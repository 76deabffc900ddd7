package errors

import "fmt"

// Reason names the specific rule that rejected an operation. A Reason always
// belongs to exactly one Code.
type Reason string

// Rule-level failure reasons
const (
	ReasonItemNotOwned          Reason = "ITEM_NOT_OWNED"
	ReasonItemNotFound          Reason = "ITEM_NOT_FOUND"
	ReasonWrongItemType         Reason = "WRONG_ITEM_TYPE"
	ReasonInventoryFull         Reason = "INVENTORY_FULL"
	ReasonInsufficientResources Reason = "INSUFFICIENT_RESOURCES"
	ReasonNegativeGold          Reason = "NEGATIVE_GOLD"
	ReasonQuestNotFound         Reason = "QUEST_NOT_FOUND"
	ReasonInsufficientLevel     Reason = "INSUFFICIENT_LEVEL"
	ReasonRequirementsNotMet    Reason = "REQUIREMENTS_NOT_MET"
	ReasonAlreadyCompleted      Reason = "ALREADY_COMPLETED"
	ReasonAlreadyActive         Reason = "ALREADY_ACTIVE"
	ReasonNotActive             Reason = "NOT_ACTIVE"
	ReasonCharacterDead         Reason = "CHARACTER_DEAD"
	ReasonCombatNotActive       Reason = "COMBAT_NOT_ACTIVE"
)

var reasonCodes = map[Reason]Code{
	ReasonItemNotOwned:          CodeNotFound,
	ReasonItemNotFound:          CodeNotFound,
	ReasonWrongItemType:         CodeInvalidArgument,
	ReasonInventoryFull:         CodeResourceExhausted,
	ReasonInsufficientResources: CodeInsufficientResources,
	ReasonNegativeGold:          CodeInsufficientResources,
	ReasonQuestNotFound:         CodeNotFound,
	ReasonInsufficientLevel:     CodeFailedPrecondition,
	ReasonRequirementsNotMet:    CodeFailedPrecondition,
	ReasonAlreadyCompleted:      CodeFailedPrecondition,
	ReasonAlreadyActive:         CodeFailedPrecondition,
	ReasonNotActive:             CodeInvalidState,
	ReasonCharacterDead:         CodeInsufficientResources,
	ReasonCombatNotActive:       CodeInvalidState,
}

// Code returns the code a reason belongs to
func (r Reason) Code() Code {
	if c, ok := reasonCodes[r]; ok {
		return c
	}
	return CodeInternal
}

// String returns the string representation of the reason
func (r Reason) String() string {
	return string(r)
}

// Sentinels for use as errors.Is targets. Do not return these directly,
// build a fresh error with the reason constructors instead.
var (
	ErrItemNotOwned          = sentinel(ReasonItemNotOwned)
	ErrItemNotFound          = sentinel(ReasonItemNotFound)
	ErrWrongItemType         = sentinel(ReasonWrongItemType)
	ErrInventoryFull         = sentinel(ReasonInventoryFull)
	ErrInsufficientResources = sentinel(ReasonInsufficientResources)
	ErrNegativeGold          = sentinel(ReasonNegativeGold)
	ErrQuestNotFound         = sentinel(ReasonQuestNotFound)
	ErrInsufficientLevel     = sentinel(ReasonInsufficientLevel)
	ErrRequirementsNotMet    = sentinel(ReasonRequirementsNotMet)
	ErrAlreadyCompleted      = sentinel(ReasonAlreadyCompleted)
	ErrAlreadyActive         = sentinel(ReasonAlreadyActive)
	ErrNotActive             = sentinel(ReasonNotActive)
	ErrCharacterDead         = sentinel(ReasonCharacterDead)
	ErrCombatNotActive       = sentinel(ReasonCombatNotActive)
)

func sentinel(r Reason) *Error {
	return &Error{Code: r.Code(), Reason: r, Message: string(r)}
}

// NewReason creates an error for a specific rule violation
func NewReason(reason Reason, message string) *Error {
	return &Error{
		Code:    reason.Code(),
		Reason:  reason,
		Message: message,
	}
}

// NewReasonf creates an error for a specific rule violation with a formatted message
func NewReasonf(reason Reason, format string, args ...interface{}) *Error {
	return NewReason(reason, fmt.Sprintf(format, args...))
}

// GetReason extracts the rule reason from an error, or "" if none is attached
func GetReason(err error) Reason {
	var customErr *Error
	if As(err, &customErr) {
		return customErr.Reason
	}
	return ""
}

// HasReason checks if an error was produced by the given rule
func HasReason(err error, reason Reason) bool {
	return GetReason(err) == reason
}
