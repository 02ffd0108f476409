package agentbay

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNewRecyclePolicyRejectsWildcards(t *testing.T) {
	for _, bad := range []string{"a/*", "b?c", "d[e]f", "*"} {
		if _, err := NewRecyclePolicy(LifecycleForever, []string{bad}); err == nil {
			t.Fatalf("NewRecyclePolicy(%q) error = nil, want wildcard rejection", bad)
		}
	}
}

func TestNewRecyclePolicyAcceptsLiteralPaths(t *testing.T) {
	p, err := NewRecyclePolicy(Lifecycle30Day, []string{"/home/user/data"})
	if err != nil {
		t.Fatalf("NewRecyclePolicy() error = %v", err)
	}
	if p.Lifecycle != Lifecycle30Day || len(p.Paths) != 1 {
		t.Fatalf("unexpected policy: %+v", p)
	}
}

func TestNewWhiteListRejectsWildcardPath(t *testing.T) {
	if _, err := NewWhiteList("/a/*", nil); err == nil {
		t.Fatal("NewWhiteList(path with wildcard): error = nil, want rejection")
	}
}

func TestNewWhiteListRejectsWildcardExcludePath(t *testing.T) {
	if _, err := NewWhiteList("/a", []string{"/a/b?"}); err == nil {
		t.Fatal("NewWhiteList(excludePaths with wildcard): error = nil, want rejection")
	}
}

func TestNewWhiteListAcceptsLiteralPaths(t *testing.T) {
	wl, err := NewWhiteList("/a/b", []string{"/a/b/tmp"})
	if err != nil {
		t.Fatalf("NewWhiteList() error = %v", err)
	}
	if wl.Path != "/a/b" || len(wl.ExcludePaths) != 1 {
		t.Fatalf("unexpected whitelist: %+v", wl)
	}
}

func TestDefaultSyncPolicyJSONRoundTrip(t *testing.T) {
	original := DefaultSyncPolicy()

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded SyncPolicy
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !reflect.DeepEqual(original, &decoded) {
		t.Fatalf("round-trip mismatch:\noriginal: %+v\ndecoded:  %+v", original, &decoded)
	}
}

func TestCompleteSyncPolicyFillsOnlyUnsetFields(t *testing.T) {
	custom := &SyncPolicy{
		DeletePolicy: &DeletePolicy{SyncLocalFile: false},
	}
	filled := completeSyncPolicy(custom)

	if filled.DeletePolicy.SyncLocalFile != false {
		t.Fatal("completeSyncPolicy() overwrote an explicitly-set field")
	}
	if filled.UploadPolicy == nil || filled.DownloadPolicy == nil || filled.ExtractPolicy == nil ||
		filled.RecyclePolicy == nil || filled.BWList == nil {
		t.Fatalf("completeSyncPolicy() left a field nil: %+v", filled)
	}
}

func TestCompleteSyncPolicyNilInputReturnsDefault(t *testing.T) {
	filled := completeSyncPolicy(nil)
	if !reflect.DeepEqual(filled, DefaultSyncPolicy()) {
		t.Fatalf("completeSyncPolicy(nil) = %+v, want DefaultSyncPolicy()", filled)
	}
}

func TestNewContextSyncUsesDefaultPolicy(t *testing.T) {
	cs := NewContextSync("ctx-1", "/mnt/data")
	if !reflect.DeepEqual(cs.Policy, DefaultSyncPolicy()) {
		t.Fatalf("NewContextSync().Policy = %+v, want default", cs.Policy)
	}
}
