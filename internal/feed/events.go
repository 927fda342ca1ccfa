package feed

import "github.com/llehouerou/storyreel/internal/catalog"

// ActiveChange is emitted when the active item changes.
//
// Emitted by Observe when a different item crosses the visibility threshold,
// and by SetActive. Not emitted when the winning item is already active.
type ActiveChange struct {
	Previous int
	Current  int
}

// MuteChange is emitted when the shared mute flag changes.
type MuteChange struct {
	Muted bool
}

// BranchSelected is emitted when the viewer picks a trigger on the active item.
// The app opens a chat session in response.
type BranchSelected struct {
	Index     int
	Episode   catalog.Episode
	Character catalog.Character
	Trigger   catalog.Trigger
}

// ErrorEvent is emitted when a recoverable error occurs on an item.
type ErrorEvent struct {
	Operation string // e.g., "autoplay", "play"
	Index     int
	Err       error
}
