package agentbay

import "testing"

func TestNormalizeKeyChordAliasesCaseInsensitive(t *testing.T) {
	cases := map[string]string{
		"ctrl+c":        "Ctrl+c",
		"CONTROL+a":     "Ctrl+a",
		"Alt+Tab":       "Alt+Tab",
		"option+x":      "Alt+x",
		"SHIFT+F5":      "Shift+F5",
		"cmd+q":         "Meta+q",
		"command+space": "Meta+space",
		"win+d":         "Meta+d",
		"windows+l":     "Meta+l",
		"F5":            "F5",
	}
	for in, want := range cases {
		if got := normalizeKeyChord(in); got != want {
			t.Errorf("normalizeKeyChord(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizePressKeysArgsStringShape(t *testing.T) {
	args := map[string]any{"keys": "ctrl+shift+t"}
	normalizePressKeysArgs(args)
	if args["keys"] != "Ctrl+Shift+t" {
		t.Fatalf("keys = %v, want Ctrl+Shift+t", args["keys"])
	}
}

func TestNormalizePressKeysArgsStringSliceShape(t *testing.T) {
	args := map[string]any{"keys": []string{"ctrl+c", "alt+tab"}}
	normalizePressKeysArgs(args)
	got, ok := args["keys"].([]string)
	if !ok {
		t.Fatalf("keys type = %T, want []string", args["keys"])
	}
	if got[0] != "Ctrl+c" || got[1] != "Alt+tab" {
		t.Fatalf("keys = %v, want [Ctrl+c Alt+tab]", got)
	}
}

func TestNormalizePressKeysArgsAnySliceShape(t *testing.T) {
	args := map[string]any{"keys": []any{"ctrl+v", 42}}
	normalizePressKeysArgs(args)
	got, ok := args["keys"].([]any)
	if !ok {
		t.Fatalf("keys type = %T, want []any", args["keys"])
	}
	if got[0] != "Ctrl+v" {
		t.Fatalf("keys[0] = %v, want Ctrl+v", got[0])
	}
	if got[1] != 42 {
		t.Fatalf("keys[1] = %v, want untouched 42", got[1])
	}
}

func TestNormalizePressKeysArgsMissingKeyIsNoop(t *testing.T) {
	args := map[string]any{"other": "value"}
	normalizePressKeysArgs(args)
	if len(args) != 1 || args["other"] != "value" {
		t.Fatalf("args mutated unexpectedly: %v", args)
	}
}
