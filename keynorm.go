package agentbay

import "strings"

// modifierAliases maps case-insensitive modifier key spellings accepted
// from callers to the canonical name the remote press_keys tool expects.
var modifierAliases = map[string]string{
	"ctrl":    "Ctrl",
	"control": "Ctrl",
	"alt":     "Alt",
	"option":  "Alt",
	"shift":   "Shift",
	"cmd":     "Meta",
	"command": "Meta",
	"meta":    "Meta",
	"win":     "Meta",
	"windows": "Meta",
}

// normalizeKeyChord rewrites each "+"-joined key in a chord through
// modifierAliases, case-insensitively, leaving unrecognized keys (the
// non-modifier key itself, e.g. "a" or "F5") untouched.
func normalizeKeyChord(chord string) string {
	parts := strings.Split(chord, "+")
	for i, part := range parts {
		if canon, ok := modifierAliases[strings.ToLower(part)]; ok {
			parts[i] = canon
		}
	}
	return strings.Join(parts, "+")
}

// normalizePressKeysArgs rewrites the "keys" argument of a press_keys tool
// call in place, tolerating either a single chord string or a list of
// chords under the same key.
func normalizePressKeysArgs(args map[string]any) {
	raw, ok := args["keys"]
	if !ok {
		return
	}
	switch v := raw.(type) {
	case string:
		args["keys"] = normalizeKeyChord(v)
	case []string:
		out := make([]string, len(v))
		for i, chord := range v {
			out[i] = normalizeKeyChord(chord)
		}
		args["keys"] = out
	case []any:
		out := make([]any, len(v))
		for i, chord := range v {
			if s, ok := chord.(string); ok {
				out[i] = normalizeKeyChord(s)
			} else {
				out[i] = chord
			}
		}
		args["keys"] = out
	}
}
