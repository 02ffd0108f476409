package agentbay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentbay/agentbay-go/internal/transport"
)

// TransportError wraps a network, timeout or non-2xx failure from the
// control plane or a VPC session endpoint. It is the only error kind
// surfaced by the transport layer itself; API-business failures are
// reported in envelope fields instead, never as a Go error.
type TransportError struct {
	HTTPStatus int
	Err        error
}

func (e *TransportError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("agentbay: transport error (http %d): %v", e.HTTPStatus, e.Err)
	}
	return fmt.Sprintf("agentbay: transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func newTransportError(err error) *TransportError {
	var te *transport.Error
	if errors.As(err, &te) {
		return &TransportError{HTTPStatus: te.HTTPStatus, Err: te.Err}
	}
	return &TransportError{Err: err}
}

// ValidationError reports a client-side validation failure: a bad page
// number, a wildcard in a policy path, an empty labels map, and so on.
// Validation failures are normally surfaced as failure envelopes, not as
// Go errors; ValidationError exists so construction-time validators (e.g.
// SyncPolicy field constructors) have something concrete to return.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ClearanceTimeoutError is raised by Context.Clear when the polling budget
// expires before the context returns to the "available" state. It is one
// of the three error kinds ever returned as a Go error from a public
// operation (the others being missing auth at construction and
// programming errors).
type ClearanceTimeoutError struct {
	ContextID string
	Timeout   string
}

func (e *ClearanceTimeoutError) Error() string {
	return fmt.Sprintf("agentbay: clear context %s did not complete within %s", e.ContextID, e.Timeout)
}

// benignNotFoundCode is the documented error code for a session that no
// longer exists.
const benignNotFoundCode = "InvalidMcpSession.NotFound"

// isNotFound classifies a GetSession/GetMcpResource failure as the known
// benign "session not found" case: matched either by exact error code or
// by a textual "not found" marker alongside HTTP 400, per the source's
// overlapping heuristics.
func isNotFound(code, message string, httpStatus int) bool {
	if code == benignNotFoundCode {
		return true
	}
	lowerMsg := strings.ToLower(message)
	lowerCode := strings.ToLower(code)
	if strings.Contains(lowerMsg, "not found") && httpStatus == 400 {
		return true
	}
	return strings.Contains(lowerCode, "not found") && httpStatus == 400
}

// isSessionGone is the single classifier the deletion poller uses to
// decide a session has been torn down: either GetSession reports "not
// found" by any of the overlapping heuristics, or it succeeds with a
// terminal FINISH status.
func isSessionGone(notFound bool, status string) bool {
	return notFound || status == "FINISH"
}
