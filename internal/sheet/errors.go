package sheet

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned before any network I/O when no endpoint URL is
// configured. Callers treat it as the signal to operate in demo mode, never
// as a user-facing failure.
var ErrNotConfigured = errors.New("sheet: endpoint not configured")

// genericErrMsg is used when the server reports success:false without a message.
const genericErrMsg = "spreadsheet endpoint reported an error"

// AppError is a business-rule failure reported by the endpoint itself
// (success:false in the envelope). The message is safe to show to the user.
type AppError struct {
	Action  string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("sheet: %s: %s", e.Action, e.Message)
}

// TransportError covers everything between the client and a decodable
// envelope: network failures, non-2xx statuses, and malformed bodies.
type TransportError struct {
	Action string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sheet: %s: transport: %v", e.Action, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsAppError reports whether err is a server-side business failure and
// returns the user-facing message when it is.
func IsAppError(err error) (string, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Message, true
	}
	return "", false
}
