package agentbay

import (
	"context"
	"net/http"
	"testing"
)

func TestContextGetRejectsMissingNameAndID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server should not be contacted when both name and context_id are empty")
	})
	res := client.Contexts.Get(context.Background(), "", "", false)
	if res.Success {
		t.Fatal("Get(\"\",\"\",false) Success = true, want false")
	}
}

func TestContextGetRejectsAllowCreateWithContextID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server should not be contacted when allow_create is combined with context_id")
	})
	res := client.Contexts.Get(context.Background(), "", "ctx-1", true)
	if res.Success {
		t.Fatal("Get(allowCreate with contextID) Success = true, want false")
	}
}

func TestContextGetByNameHappyPath(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("Action") != "GetContext" {
			t.Fatalf("unexpected action %q", r.PostForm.Get("Action"))
		}
		if r.PostForm.Get("Name") != "my-ctx" {
			t.Fatalf("Name = %q, want my-ctx", r.PostForm.Get("Name"))
		}
		w.Write([]byte(jsonEnvelope("req-get", `{"Id":"ctx-1","Name":"my-ctx","State":"available"}`)))
	})

	res := client.Contexts.Get(context.Background(), "my-ctx", "", false)
	if !res.Success {
		t.Fatalf("Get() = %+v, want success", res.ResultMeta)
	}
	if res.Context.ID != "ctx-1" || res.Context.State != "available" {
		t.Fatalf("Context = %+v, want Id=ctx-1 State=available", res.Context)
	}
}

func TestContextListParsesEntries(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("Action") != "ListContexts" {
			t.Fatalf("unexpected action %q", r.PostForm.Get("Action"))
		}
		w.Write([]byte(jsonEnvelope("req-list", `{"Contexts":[{"Id":"c1","Name":"n1","State":"available"}],"NextToken":"tok"}`)))
	})

	res := client.Contexts.List(context.Background(), 10, "")
	if !res.Success {
		t.Fatalf("List() = %+v, want success", res.ResultMeta)
	}
	if len(res.Contexts) != 1 || res.Contexts[0].ID != "c1" {
		t.Fatalf("Contexts = %+v, want one entry with Id=c1", res.Contexts)
	}
	if res.NextToken != "tok" {
		t.Fatalf("NextToken = %q, want tok", res.NextToken)
	}
}

func TestContextUpdateHappyPath(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("Action") != "ModifyContext" {
			t.Fatalf("unexpected action %q", r.PostForm.Get("Action"))
		}
		if r.PostForm.Get("Name") != "renamed" {
			t.Fatalf("Name = %q, want renamed", r.PostForm.Get("Name"))
		}
		w.Write([]byte(jsonEnvelope("req-update", `{}`)))
	})

	res := client.Contexts.Update(context.Background(), "ctx-1", "renamed")
	if !res.Success {
		t.Fatalf("Update() = %+v, want success", res.ResultMeta)
	}
}

func TestContextDeleteHappyPath(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("Action") != "DeleteContext" {
			t.Fatalf("unexpected action %q", r.PostForm.Get("Action"))
		}
		w.Write([]byte(jsonEnvelope("req-delete", `{}`)))
	})

	res := client.Contexts.Delete(context.Background(), "ctx-1")
	if !res.Success {
		t.Fatalf("Delete() = %+v, want success", res.ResultMeta)
	}
}

func TestContextGetFileUploadAndDownloadUrls(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		switch r.PostForm.Get("Action") {
		case "GetContextFileUploadUrl":
			w.Write([]byte(jsonEnvelope("req-up", `{"Url":"https://example.com/upload","ExpireTime":100}`)))
		case "GetContextFileDownloadUrl":
			w.Write([]byte(jsonEnvelope("req-down", `{"Url":"https://example.com/download","ExpireTime":200}`)))
		default:
			t.Fatalf("unexpected action %q", r.PostForm.Get("Action"))
		}
	})

	up := client.Contexts.GetFileUploadUrl(context.Background(), "ctx-1", "/a.txt")
	if !up.Success || up.URL != "https://example.com/upload" {
		t.Fatalf("GetFileUploadUrl() = %+v, want success with upload URL", up)
	}

	down := client.Contexts.GetFileDownloadUrl(context.Background(), "ctx-1", "/a.txt")
	if !down.Success || down.URL != "https://example.com/download" {
		t.Fatalf("GetFileDownloadUrl() = %+v, want success with download URL", down)
	}
}

func TestContextDeleteFileHappyPath(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("Action") != "DeleteContextFile" {
			t.Fatalf("unexpected action %q", r.PostForm.Get("Action"))
		}
		w.Write([]byte(jsonEnvelope("req-delfile", `{}`)))
	})

	res := client.Contexts.DeleteFile(context.Background(), "ctx-1", "/a.txt")
	if !res.Success {
		t.Fatalf("DeleteFile() = %+v, want success", res.ResultMeta)
	}
}

func TestContextListFilesParsesEntries(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("Action") != "DescribeContextFiles" {
			t.Fatalf("unexpected action %q", r.PostForm.Get("Action"))
		}
		if r.PostForm.Get("PageNumber") != "2" {
			t.Fatalf("PageNumber = %q, want 2", r.PostForm.Get("PageNumber"))
		}
		w.Write([]byte(jsonEnvelope("req-files", `{"Count":1,"Entries":[{"FileId":"f1","FileName":"a.txt","FilePath":"/a.txt","FileType":"file","Size":5,"Status":"available"}]}`)))
	})

	res := client.Contexts.ListFiles(context.Background(), "ctx-1", "/", 2, 50)
	if !res.Success {
		t.Fatalf("ListFiles() = %+v, want success", res.ResultMeta)
	}
	if res.Count != 1 || len(res.Entries) != 1 || res.Entries[0].FileID != "f1" {
		t.Fatalf("Entries = %+v Count=%d, want one entry with FileId=f1", res.Entries, res.Count)
	}
}
