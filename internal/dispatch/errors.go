package dispatch

import (
	"errors"
	"fmt"
)

// MalformedParameterError flags a structurally invalid request
// parameter. The request is never retried and no upstream call is made.
type MalformedParameterError struct {
	Param string
	Value string
}

func (e *MalformedParameterError) Error() string {
	return fmt.Sprintf("malformed %s parameter: %q", e.Param, e.Value)
}

// AsMalformedParameterError attempts to unwrap an error into a
// MalformedParameterError.
func AsMalformedParameterError(err error) (*MalformedParameterError, bool) {
	var mErr *MalformedParameterError
	if errors.As(err, &mErr) {
		return mErr, true
	}
	return nil, false
}

// UnsupportedCapabilityError flags an operation the sport's upstream
// cannot serve, such as head-to-head on a provider without it. Callers
// may treat it as "no data" rather than a hard failure.
type UnsupportedCapabilityError struct {
	Sport      string
	Capability string
}

func (e *UnsupportedCapabilityError) Error() string {
	return fmt.Sprintf("sport %q does not support %s", e.Sport, e.Capability)
}

// AsUnsupportedCapabilityError attempts to unwrap an error into an
// UnsupportedCapabilityError.
func AsUnsupportedCapabilityError(err error) (*UnsupportedCapabilityError, bool) {
	var uErr *UnsupportedCapabilityError
	if errors.As(err, &uErr) {
		return uErr, true
	}
	return nil, false
}
