package booking

import (
	"errors"
	"fmt"
)

// Stable error kinds surfaced to API clients. Handlers map these to HTTP
// statuses; messages carry no internal detail.
const (
	CodeInvalidWindow      = "invalidWindow"
	CodeUnknownCommunity   = "unknownCommunity"
	CodeUnknownPlatform    = "unknownPlatform"
	CodeNoHostAvailable    = "noHostAvailable"
	CodeRemoteCreateFailed = "remoteCreateFailed"
	CodeRemoteCancelFailed = "remoteCancelFailed"
	CodeNotFound           = "notFound"
	CodeForbidden          = "forbidden"
	CodeTooLateToCancel    = "tooLateToCancel"
	CodeInternal           = "internalError"
)

// Error is a booking domain error with a stable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// CodeOf extracts the stable code from an error, or CodeInternal for
// anything that is not a booking error.
func CodeOf(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given booking error code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
