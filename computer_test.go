package agentbay

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestValidateMouseButtonAcceptsKnownButtons(t *testing.T) {
	for _, b := range []string{"left", "right", "middle", "double_left"} {
		if err := validateMouseButton(b); err != nil {
			t.Errorf("validateMouseButton(%q) error = %v, want nil", b, err)
		}
	}
}

func TestValidateMouseButtonRejectsUnknown(t *testing.T) {
	if err := validateMouseButton("quadruple_click"); err == nil {
		t.Fatal("validateMouseButton(unknown) error = nil, want error")
	}
}

func TestClickMouseRejectsInvalidButtonWithoutDispatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server should not be contacted for an invalid mouse button")
	})
	session := &Session{client: client, SessionID: "s1"}
	session.bindSubServices()

	res := session.Computer.ClickMouse(context.Background(), 1, 2, "bogus")
	if res.Success {
		t.Fatal("ClickMouse(bogus button) Success = true, want false")
	}
}

func TestSwipeDefaultsDuration(t *testing.T) {
	var gotArgs string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotArgs = r.PostForm.Get("Args")
		w.Write([]byte(jsonEnvelope("req", `{"content":[],"isError":false}`)))
	})
	session := &Session{client: client, SessionID: "s1"}
	session.bindSubServices()

	session.Mobile.Swipe(context.Background(), 0, 0, 100, 100, 0)
	if !strings.Contains(gotArgs, `"duration_ms":300`) {
		t.Fatalf("dispatched args = %q, want default duration_ms=300", gotArgs)
	}
}
