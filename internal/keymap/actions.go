// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Feed navigation
	ActionNextItem  Action = "next_item"
	ActionPrevItem  Action = "prev_item"
	ActionFirstItem Action = "first_item"
	ActionLastItem  Action = "last_item"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionToggleMute  Action = "toggle_mute"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionSeekStart   Action = "seek_start"

	// Branch actions (digit keys pick a trigger of the active episode)
	ActionBranch Action = "branch"

	// Chat overlay actions
	ActionChatSend  Action = "chat_send"
	ActionChatClose Action = "chat_close"
)
