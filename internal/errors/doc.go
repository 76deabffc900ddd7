// Package errors provides structured errors for the rules engine and the layers around it.
//
// Every failure carries a Code (the kind of failure) and, for rule violations,
// a Reason naming the exact rule that rejected the operation:
//
//	err := errors.NewReasonf(errors.ReasonInventoryFull, "cannot add %s", itemID)
//	errors.IsResourceExhausted(err)            // true
//	errors.Is(err, errors.ErrInventoryFull)    // true
//	errors.Is(err, errors.ErrItemNotFound)     // false
//
// # Codes
//
//   - NotFound: item, quest or character absent
//   - ResourceExhausted: inventory capacity exceeded
//   - InvalidState: combat or quest operation attempted from the wrong state
//   - FailedPrecondition: level, prerequisite, already active or completed
//   - InsufficientResources: gold or health too low
//   - InvalidArgument: malformed input or wrong item type
//   - DataLoss: catalogue or save data violates an integrity rule
//   - Internal, Unavailable: storage failures
//
// Rule violations are always recoverable by choosing a different action;
// see Code.Recoverable.
//
// # Wrapping
//
// Wrap preserves code, reason and metadata of an inner Error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to get character")
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateMin("level", input.Level, 1, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
