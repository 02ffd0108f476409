package agentbay

import (
	"context"
	"net/http"
	"testing"
)

func TestAgentExecuteTaskFluxStatusTerminate(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		switch r.PostForm.Get("Name") {
		case "execute_task":
			w.Write([]byte(jsonEnvelope("req-exec", `{"content":[{"type":"text","text":"task-1"}],"isError":false}`)))
		case "flux_status":
			w.Write([]byte(jsonEnvelope("req-flux", `{"content":[{"type":"text","text":"running"}],"isError":false}`)))
		case "terminate_task":
			w.Write([]byte(jsonEnvelope("req-term", `{"content":[],"isError":false}`)))
		default:
			t.Fatalf("unexpected tool name %q", r.PostForm.Get("Name"))
		}
	})
	session := &Session{client: client, SessionID: "s1"}
	session.bindSubServices()

	exec := session.Agent.ExecuteTask(context.Background(), map[string]any{"prompt": "do it"})
	if !exec.Success || exec.Data != "task-1" {
		t.Fatalf("ExecuteTask() = %+v, want success with Data=task-1", exec)
	}

	status := session.Agent.FluxStatus(context.Background(), "task-1")
	if !status.Success || status.Data != "running" {
		t.Fatalf("FluxStatus() = %+v, want success with Data=running", status)
	}

	term := session.Agent.TerminateTask(context.Background(), "task-1")
	if !term.Success {
		t.Fatalf("TerminateTask() = %+v, want success", term.ResultMeta)
	}
}
