package keymap

// Contexts a binding can belong to.
const (
	ContextGlobal = "global"
	ContextFeed   = "feed"
	ContextChat   = "chat"
)

// Binding maps keys to an action within a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"ctrl+c"}, "Quit", ContextGlobal},

	// Feed
	{ActionQuit, []string{"q"}, "Quit", ContextFeed},
	{ActionHelp, []string{"?"}, "Toggle help", ContextFeed},
	{ActionNextItem, []string{"j", "down", "pgdown"}, "Next episode", ContextFeed},
	{ActionPrevItem, []string{"k", "up", "pgup"}, "Previous episode", ContextFeed},
	{ActionFirstItem, []string{"g", "home"}, "First episode", ContextFeed},
	{ActionLastItem, []string{"G", "end"}, "Last episode", ContextFeed},
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", ContextFeed},
	{ActionToggleMute, []string{"m"}, "Mute/unmute", ContextFeed},
	{ActionSeekForward, []string{"right", "l"}, "Seek +5s", ContextFeed},
	{ActionSeekBack, []string{"left", "h"}, "Seek -5s", ContextFeed},
	{ActionSeekStart, []string{"0"}, "Restart episode", ContextFeed},
	{ActionBranch, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Talk to a character", ContextFeed},

	// Chat overlay
	{ActionChatSend, []string{"enter"}, "Send", ContextChat},
	{ActionChatClose, []string{"esc"}, "Back to the feed", ContextChat},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// For returns the bindings active in a context, global ones included.
func For(context string) []Binding {
	result := ByContext(ContextGlobal)
	if context != ContextGlobal {
		result = append(result, ByContext(context)...)
	}
	return result
}
