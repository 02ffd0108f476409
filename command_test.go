package agentbay

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestDeriveScalarResultPrefersMainResult(t *testing.T) {
	out := &CodeExecutionOutput{
		Results: []CodeExecutionItem{
			{Text: "first", IsMainResult: false},
			{Text: "the answer", IsMainResult: true},
		},
	}
	if got := deriveScalarResult(out); got != "the answer" {
		t.Fatalf("deriveScalarResult() = %q, want %q", got, "the answer")
	}
}

func TestDeriveScalarResultFallsBackToFirstResult(t *testing.T) {
	out := &CodeExecutionOutput{
		Results: []CodeExecutionItem{{Text: "first result"}},
	}
	if got := deriveScalarResult(out); got != "first result" {
		t.Fatalf("deriveScalarResult() = %q, want %q", got, "first result")
	}
}

func TestDeriveScalarResultFallsBackToStdout(t *testing.T) {
	out := &CodeExecutionOutput{
		Logs: CodeExecutionLogs{Stdout: []string{"line1", "line2"}},
	}
	if got := deriveScalarResult(out); got != "line1line2" {
		t.Fatalf("deriveScalarResult() = %q, want %q", got, "line1line2")
	}
}

func TestRunCodeRejectsUnsupportedLanguage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server should not be contacted for an unsupported language")
	})
	session := &Session{client: client, SessionID: "s1"}
	session.bindSubServices()

	res := session.Code.RunCode(context.Background(), "print(1)", "ruby", 0)
	if res.Success {
		t.Fatal("RunCode(ruby) Success = true, want false")
	}
}

func TestExecuteCommandDefaultsTimeout(t *testing.T) {
	var gotTimeout string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotTimeout = r.PostForm.Get("Args")
		w.Write([]byte(jsonEnvelope("req", `{"content":[{"type":"text","text":"{\"success\":true,\"output\":\"ok\",\"error_message\":\"\"}"}],"isError":false}`)))
	})
	session := &Session{client: client, SessionID: "s1"}
	session.bindSubServices()

	res := session.Command.ExecuteCommand(context.Background(), "ls", 0)
	if !res.Success || res.Output.Output != "ok" {
		t.Fatalf("ExecuteCommand() = %+v, want success output=ok", res)
	}
	if !strings.Contains(gotTimeout, `"timeout_ms":60000`) {
		t.Fatalf("Args = %q, want timeout_ms defaulted to 60000", gotTimeout)
	}
}
