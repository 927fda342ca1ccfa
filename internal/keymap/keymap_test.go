//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"strings"
	"testing"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		name            string
		context         string
		expectNonEmpty  bool
		expectMinLength int
	}{
		{"global context", ContextGlobal, true, 1},
		{"feed context", ContextFeed, true, 10},
		{"chat context", ContextChat, true, 2},
		{"unknown context returns empty", "unknown", false, 0},
		{"empty context returns empty", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByContext(tt.context)

			if tt.expectNonEmpty && len(result) == 0 {
				t.Errorf("ByContext(%q) returned empty, expected non-empty", tt.context)
			}

			if !tt.expectNonEmpty && len(result) != 0 {
				t.Errorf("ByContext(%q) returned %d items, expected empty", tt.context, len(result))
			}

			if len(result) < tt.expectMinLength {
				t.Errorf("ByContext(%q) returned %d items, expected at least %d", tt.context, len(result), tt.expectMinLength)
			}

			for _, binding := range result {
				if binding.Context != tt.context {
					t.Errorf("binding context = %q, want %q", binding.Context, tt.context)
				}
			}
		})
	}
}

func TestFeedBindings(t *testing.T) {
	feedBindings := ByContext(ContextFeed)

	expectedActions := []Action{
		ActionPlayPause,
		ActionToggleMute,
		ActionNextItem,
		ActionPrevItem,
		ActionSeekForward,
		ActionSeekBack,
		ActionBranch,
	}

	for _, action := range expectedActions {
		found := false
		for _, b := range feedBindings {
			if b.Action == action {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected action %q in feed bindings", action)
		}
	}
}

func TestBindingsHaveRequiredFields(t *testing.T) {
	for i, b := range Bindings {
		if b.Action == "" {
			t.Errorf("binding[%d] has empty Action", i)
		}
		if len(b.Keys) == 0 {
			t.Errorf("binding[%d] (%s) has no Keys", i, b.Action)
		}
		if b.Description == "" {
			t.Errorf("binding[%d] (%s) has empty Description", i, b.Action)
		}
		if b.Context == "" {
			t.Errorf("binding[%d] (%s) has empty Context", i, b.Action)
		}
	}
}

func TestNoKeyBoundTwiceInContext(t *testing.T) {
	for _, ctx := range []string{ContextFeed, ContextChat} {
		seen := make(map[string]Action)
		for _, b := range For(ctx) {
			for _, k := range b.Keys {
				if prev, ok := seen[k]; ok {
					t.Errorf("context %q: key %q bound to both %q and %q", ctx, k, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}
}

func TestHelp(t *testing.T) {
	entries := Help(ContextFeed)

	var branch, play bool
	for _, e := range entries {
		if e.Description == "Talk to a character" {
			branch = true
			if e.Key != "1-9" {
				t.Errorf("branch key = %q, want %q", e.Key, "1-9")
			}
		}
		if e.Description == "Play/pause" {
			play = true
			if e.Key != "space" {
				t.Errorf("play key = %q, want %q", e.Key, "space")
			}
		}
	}
	if !branch || !play {
		t.Errorf("Help(feed) missing entries: %+v", entries)
	}

	// ctrl+c and q both quit; only one entry is listed
	count := 0
	for _, e := range entries {
		if e.Description == "Quit" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Quit listed %d times, want 1", count)
	}
}

func TestHelpLine(t *testing.T) {
	line := HelpLine([]HelpEntry{{"space", "Play/pause"}, {"m", "Mute/unmute"}})

	if line != "space play/pause · m mute/unmute" {
		t.Errorf("HelpLine = %q", line)
	}
	if HelpLine(nil) != "" {
		t.Error("HelpLine(nil) should be empty")
	}
	if !strings.Contains(HelpLine(Help(ContextChat)), "enter send") {
		t.Errorf("chat help line = %q", HelpLine(Help(ContextChat)))
	}
}
