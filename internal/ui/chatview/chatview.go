// Package chatview renders the chat overlay: a header with the character's
// avatar badge, the scrolling transcript and the message input.
package chatview

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/storyreel/internal/catalog"
	"github.com/llehouerou/storyreel/internal/chat"
	"github.com/llehouerou/storyreel/internal/ui/render"
	"github.com/llehouerou/storyreel/internal/ui/styles"
)

const (
	// CharLimit caps a single message.
	CharLimit = 500

	typingLine = "…"
)

// Model is the chat overlay. It renders a chat.Session snapshot and owns the
// input field; sending and closing are decided by the caller.
type Model struct {
	input      textinput.Model
	transcript viewport.Model
	session    chat.Session
	// imgError marks characters whose avatar cannot be shown; their initial
	// is rendered instead.
	imgError map[string]bool
	width    int
	height   int
}

// New creates an empty chat overlay.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Say something…"
	ti.CharLimit = CharLimit
	ti.Prompt = "› "

	return Model{
		input:      ti,
		transcript: viewport.New(0, 0),
		imgError:   make(map[string]bool),
	}
}

// Open shows a session and focuses the input.
func (m *Model) Open(s chat.Session) tea.Cmd {
	m.input.Reset()
	m.checkAvatar(s.Character)
	m.SetSession(s)
	return m.input.Focus()
}

// Close blurs the input and forgets the session.
func (m *Model) Close() {
	m.input.Blur()
	m.input.Reset()
	m.session = chat.Session{}
	m.transcript.SetContent("")
}

// SetSession refreshes the transcript from a snapshot.
func (m *Model) SetSession(s chat.Session) {
	m.session = s
	m.refresh()
}

// Session returns the snapshot being shown.
func (m Model) Session() chat.Session {
	return m.session
}

// SetSize sets the overlay panel size (borders included).
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	inner := max(width-4, 10)
	m.input.Width = max(inner-lipgloss.Width(m.input.Prompt)-1, 1)
	m.transcript.Width = inner
	m.transcript.Height = max(height-6, 1)
	m.refresh()
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.input.Value()
}

// ClearInput empties the input field.
func (m *Model) ClearInput() {
	m.input.Reset()
}

// AvatarFailed reports whether the initial badge replaces a character's avatar.
func (m Model) AvatarFailed(characterID string) bool {
	return m.imgError[characterID]
}

// checkAvatar flags characters whose avatar a terminal cannot display.
func (m *Model) checkAvatar(ch catalog.Character) {
	if _, seen := m.imgError[ch.ID]; seen {
		return
	}
	m.imgError[ch.ID] = !displayableAvatar(ch.AvatarURL)
}

// displayableAvatar reports whether an avatar URL is an absolute http(s) URL.
func displayableAvatar(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Update forwards keys to the input and scroll keys to the transcript.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "pgup", "pgdown", "up", "down":
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		}
	}
	if _, ok := msg.(tea.MouseMsg); ok {
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) refresh() {
	m.transcript.SetContent(m.renderTranscript(m.transcript.Width))
	m.transcript.GotoBottom()
}

func (m Model) renderTranscript(width int) string {
	if width <= 0 {
		return ""
	}
	s := styles.T().S()
	bubbleWidth := max(width*3/4, 8)
	speaker := m.session.Character.Name
	if speaker == "" {
		speaker = m.session.Character.ID
	}

	var b strings.Builder
	for i, msg := range m.session.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		lines := render.Wrap(msg.Text, bubbleWidth-2)
		text := strings.Join(lines, "\n")
		if msg.Role == chat.RoleUser {
			bubble := s.User.Render(text)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		} else {
			b.WriteString(s.Active.Render(render.Truncate(speaker, width)))
			b.WriteString("\n")
			b.WriteString(s.Character.Render(text))
		}
		b.WriteString("\n")
	}
	if m.session.Pending {
		b.WriteString("\n")
		b.WriteString(s.Character.Render(typingLine))
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the overlay panel.
func (m Model) View() string {
	t := styles.T()
	s := t.S()
	inner := max(m.width-4, 10)

	ch := m.session.Character
	name := ch.Name
	if name == "" {
		name = ch.ID
	}
	badge := s.Badge
	if m.imgError[ch.ID] {
		badge = s.NoAvatar
	}
	avatar := badge.Render(ch.Initial())
	title := avatar + " " + s.Active.Render(render.Truncate(name, max(inner/2, 1)))
	sub := s.Subtle.Render(render.Truncate(m.session.EpisodeLabel, max(inner/3, 1)))
	header := render.Row(title, sub, inner)

	footer := m.input.View()
	if m.session.Pending {
		footer = s.Muted.Render(render.Truncate(ch.Name+" is typing…", inner))
	}
	hint := s.Subtle.Render("enter send · esc back to the feed")

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.transcript.View(),
		footer,
		hint,
	)

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Width(m.width - 2).
		Render(content)
}
