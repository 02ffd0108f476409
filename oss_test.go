package agentbay

import (
	"context"
	"net/http"
	"testing"
)

func TestOssGetUploadAndDownloadURL(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		switch r.PostForm.Get("Action") {
		case "CallMcpTool":
			if r.PostForm.Get("Name") == "oss_upload_url" {
				w.Write([]byte(jsonEnvelope("req-up", `{"content":[{"type":"text","text":"https://oss/upload"}],"isError":false}`)))
			} else {
				w.Write([]byte(jsonEnvelope("req-down", `{"content":[{"type":"text","text":"https://oss/download"}],"isError":false}`)))
			}
		default:
			t.Fatalf("unexpected action %q", r.PostForm.Get("Action"))
		}
	})
	session := &Session{client: client, SessionID: "s1"}
	session.bindSubServices()

	up := session.Oss.GetUploadURL(context.Background(), "bucket", "key.txt")
	if !up.Success || up.URL != "https://oss/upload" {
		t.Fatalf("GetUploadURL() = %+v, want success with oss upload URL", up)
	}

	down := session.Oss.GetDownloadURL(context.Background(), "bucket", "key.txt")
	if !down.Success || down.URL != "https://oss/download" {
		t.Fatalf("GetDownloadURL() = %+v, want success with oss download URL", down)
	}
}
