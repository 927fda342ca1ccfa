package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpCatalogLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "catalog operation",
			op:       OpCatalogLoad,
			err:      errors.New("no episodes"),
			expected: "Failed to load catalog: no episodes",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("autoplay denied"),
			expected: "Failed to start playback: autoplay denied",
		},
		{
			name:     "chat operation",
			op:       OpChatOpen,
			err:      errors.New("unknown character"),
			expected: "Failed to open chat: unknown character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpCatalogLoad,
			context:  "catalog.yaml",
			err:      nil,
			expected: "",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpStateSave,
			context:  "",
			err:      errors.New("disk full"),
			expected: "Failed to save position: disk full",
		},
		{
			name:     "context is quoted",
			op:       OpCatalogLoad,
			context:  "stories/noir.yaml",
			err:      errors.New("missing media url"),
			expected: "Failed to load catalog 'stories/noir.yaml': missing media url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}
