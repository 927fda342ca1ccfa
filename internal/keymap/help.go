package keymap

import "strings"

// keyLabels are shown instead of raw key strings in help.
var keyLabels = map[string]string{
	" ":      "space",
	"down":   "↓",
	"up":     "↑",
	"left":   "←",
	"right":  "→",
	"pgdown": "pgdn",
}

// HelpEntry is one item of a help line.
type HelpEntry struct {
	Key         string
	Description string
}

// Help returns one entry per action of a context, in binding order. Only the
// first key of each binding is shown; digit ranges are collapsed to "1-9".
func Help(context string) []HelpEntry {
	var entries []HelpEntry
	seen := make(map[Action]bool)
	for _, b := range For(context) {
		if seen[b.Action] || len(b.Keys) == 0 {
			continue
		}
		seen[b.Action] = true
		entries = append(entries, HelpEntry{Key: label(b.Keys), Description: b.Description})
	}
	return entries
}

func label(keys []string) string {
	if len(keys) > 1 && isDigit(keys[0]) && isDigit(keys[len(keys)-1]) {
		return keys[0] + "-" + keys[len(keys)-1]
	}
	if l, ok := keyLabels[keys[0]]; ok {
		return l
	}
	return keys[0]
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

// HelpLine renders the entries as "key desc · key desc".
func HelpLine(entries []HelpEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Key+" "+strings.ToLower(e.Description))
	}
	return strings.Join(parts, " · ")
}
