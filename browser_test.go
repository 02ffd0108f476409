package agentbay

import (
	"context"
	"net/http"
	"testing"
)

func TestInitBrowserHappyPath(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("Action") != "InitBrowser" {
			t.Fatalf("unexpected action %q", r.PostForm.Get("Action"))
		}
		w.Write([]byte(jsonEnvelope("req-init", `{"Url":"wss://example.com/cdp"}`)))
	})
	session := &Session{client: client, SessionID: "s1"}
	session.bindSubServices()

	res := session.Browser.InitBrowser(context.Background(), nil)
	if !res.Success || res.URL != "wss://example.com/cdp" {
		t.Fatalf("InitBrowser() = %+v, want success with cdp URL", res)
	}
}

func TestGetCdpLinkAndGetLink(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		switch r.PostForm.Get("Action") {
		case "GetCdpLink":
			w.Write([]byte(jsonEnvelope("req-cdp", `{"Url":"wss://cdp"}`)))
		case "GetLink":
			w.Write([]byte(jsonEnvelope("req-link", `{"Url":"https://replay"}`)))
		default:
			t.Fatalf("unexpected action %q", r.PostForm.Get("Action"))
		}
	})
	session := &Session{client: client, SessionID: "s1"}
	session.bindSubServices()

	cdp := session.Browser.GetCdpLink(context.Background())
	if !cdp.Success || cdp.URL != "wss://cdp" {
		t.Fatalf("GetCdpLink() = %+v, want success with wss://cdp", cdp)
	}

	link := session.Browser.GetLink(context.Background())
	if !link.Success || link.URL != "https://replay" {
		t.Fatalf("GetLink() = %+v, want success with https://replay", link)
	}
}
