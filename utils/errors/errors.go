package errors

import "github.com/muhammadheryan/commerce-engine/constant"

type CustomError struct {
	errType   constant.ErrorType
	reason    string
	requested int64
	available int64
}

func (c CustomError) Error() string {
	if c.reason != "" {
		return constant.ErrorTypeMessage[c.errType] + ": " + c.reason
	}
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorType() constant.ErrorType {
	return c.errType
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

// Reason is the specific cause attached to the error, e.g. the rule that failed.
func (c CustomError) Reason() string {
	return c.reason
}

// Quantities returns the requested and available amounts for stock errors.
func (c CustomError) Quantities() (requested, available int64) {
	return c.requested, c.available
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// WithReason returns a copy of c carrying reason.
func (c CustomError) WithReason(reason string) CustomError {
	c.reason = reason
	return c
}

// WithQuantities returns a copy of c carrying requested and available quantities.
func (c CustomError) WithQuantities(requested, available int64) CustomError {
	c.requested = requested
	c.available = available
	return c
}

// Is matches on error type so errors.Is works against SetCustomError values.
func (c CustomError) Is(target error) bool {
	t, ok := target.(CustomError)
	if !ok {
		return false
	}
	return t.errType == c.errType
}
