package agentbay

import "testing"

func TestIsNotFoundByExactCode(t *testing.T) {
	if !isNotFound(benignNotFoundCode, "anything", 0) {
		t.Fatal("isNotFound() = false, want true for exact benign code")
	}
}

func TestIsNotFoundByTextualMarkerAndHTTP400(t *testing.T) {
	if !isNotFound("SomeOtherCode", "session not found in region", 400) {
		t.Fatal("isNotFound() = false, want true for 'not found' text + HTTP 400")
	}
}

func TestIsNotFoundTextualMarkerWithoutHTTP400IsNotEnough(t *testing.T) {
	if isNotFound("SomeOtherCode", "session not found in region", 500) {
		t.Fatal("isNotFound() = true, want false when HTTP status is not 400 and code doesn't match")
	}
}

func TestIsNotFoundByCodeSubstring(t *testing.T) {
	if !isNotFound("Session not found", "irrelevant message", 400) {
		t.Fatal("isNotFound() = false, want true when code contains 'not found' + HTTP 400")
	}
}

func TestIsNotFoundFalseForUnrelatedError(t *testing.T) {
	if isNotFound("InternalError", "something broke", 500) {
		t.Fatal("isNotFound() = true, want false for unrelated error")
	}
}

func TestIsSessionGoneWhenNotFound(t *testing.T) {
	if !isSessionGone(true, "RUNNING") {
		t.Fatal("isSessionGone(notFound=true, ...) = false, want true")
	}
}

func TestIsSessionGoneWhenFinishStatus(t *testing.T) {
	if !isSessionGone(false, "FINISH") {
		t.Fatal("isSessionGone(status=FINISH) = false, want true")
	}
}

func TestIsSessionGoneFalseOtherwise(t *testing.T) {
	if isSessionGone(false, "RUNNING") {
		t.Fatal("isSessionGone() = true, want false for a still-running session")
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	inner := &ValidationError{Message: "inner"}
	te := &TransportError{Err: inner}
	if te.Unwrap() != inner {
		t.Fatal("TransportError.Unwrap() did not return the wrapped error")
	}
}

func TestClearanceTimeoutErrorMessage(t *testing.T) {
	err := &ClearanceTimeoutError{ContextID: "ctx-1", Timeout: "1m0s"}
	want := "agentbay: clear context ctx-1 did not complete within 1m0s"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
