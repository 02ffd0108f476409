package agentbay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
)

func TestCallToolVPCFailsClosedForUnknownTool(t *testing.T) {
	contacted := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contacted = true
		t.Fatal("control-plane server should not be contacted for a VPC session")
	})
	session := &Session{client: client, IsVPC: true, SessionID: "s1"}

	res := session.CallTool(context.Background(), "made_up", nil)
	if res.Success {
		t.Fatal("CallTool() Success = true, want false")
	}
	want := "server not found for tool: made_up"
	if res.ErrorMessage != want {
		t.Fatalf("ErrorMessage = %q, want %q", res.ErrorMessage, want)
	}
	if contacted {
		t.Fatal("dispatcher issued an HTTP request despite failing closed")
	}
}

func TestCallToolControlPlaneHappyPath(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("Action") != "CallMcpTool" {
			t.Fatalf("unexpected action %q", r.PostForm.Get("Action"))
		}
		if r.PostForm.Get("SessionId") != "s1" {
			t.Fatalf("SessionId = %q, want s1", r.PostForm.Get("SessionId"))
		}
		w.Write([]byte(jsonEnvelope("req-tool", `{"content":[{"type":"text","text":"hello"}],"isError":false}`)))
	})
	session := &Session{client: client, IsVPC: false, SessionID: "s1"}

	res := session.CallTool(context.Background(), "echo", map[string]any{"text": "hello"})
	if !res.Success || res.Data != "hello" {
		t.Fatalf("CallTool() = %+v, want success with Data=hello", res)
	}
}

func TestCallToolControlPlaneToolError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jsonEnvelope("req-tool", `{"content":[{"type":"text","text":"boom"}],"isError":true}`)))
	})
	session := &Session{client: client, IsVPC: false, SessionID: "s1"}

	res := session.CallTool(context.Background(), "echo", nil)
	if res.Success {
		t.Fatal("CallTool() Success = true, want false for isError response")
	}
	if res.Message != "boom" {
		t.Fatalf("Message = %q, want boom", res.Message)
	}
}

func TestCallToolVPCRequestIDFormat(t *testing.T) {
	var gotRequestID string
	vpcSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.URL.Query().Get("requestId")
		w.Write([]byte(`{"content":[{"type":"text","text":"ok"}],"isError":false}`))
	}))
	defer vpcSrv.Close()

	u, err := url.Parse(vpcSrv.URL)
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}
	host, port, _ := strings.Cut(u.Host, ":")

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("control-plane server should not be contacted for a VPC tool call")
	})
	session := &Session{
		client:             client,
		IsVPC:              true,
		SessionID:          "s1",
		NetworkInterfaceIP: host,
		HTTPPort:           port,
		Token:              "tok",
	}
	session.setToolCatalog([]ToolDescriptor{{Name: "click", Server: "srv1", Tool: "click"}})

	res := session.CallTool(context.Background(), "click", map[string]any{"x": 1, "y": 2})
	if !res.Success {
		t.Fatalf("CallTool() = %+v, want success", res.ResultMeta)
	}

	re := regexp.MustCompile(`^vpc-\d+-[a-z0-9]{9}$`)
	if !re.MatchString(gotRequestID) {
		t.Fatalf("requestId = %q, want match of %s", gotRequestID, re.String())
	}
}

func TestCallToolNormalizesPressKeysBeforeDispatch(t *testing.T) {
	var gotArgs string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotArgs = r.PostForm.Get("Args")
		w.Write([]byte(jsonEnvelope("req-tool", `{"content":[],"isError":false}`)))
	})
	session := &Session{client: client, IsVPC: false, SessionID: "s1"}

	session.CallTool(context.Background(), "press_keys", map[string]any{"keys": "ctrl+c"})
	if !strings.Contains(gotArgs, "Ctrl+c") {
		t.Fatalf("dispatched args = %q, want normalized Ctrl+c", gotArgs)
	}
}
