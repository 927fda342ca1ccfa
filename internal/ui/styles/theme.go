package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Magenta - active episode, character names
	Secondary lipgloss.Color // Amber - progress gradient end, badges

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color // Primary text (bright)
	FgMuted  lipgloss.Color // Secondary text (dimmed)
	FgSubtle lipgloss.Color // Tertiary text (very dim)

	// Backgrounds
	BgBase   lipgloss.Color // Card backgrounds
	BgBubble lipgloss.Color // Chat bubbles from the character

	// Borders
	Border      lipgloss.Color // Inactive card borders
	BorderFocus lipgloss.Color // Active card and chat borders

	// Status colors
	Success lipgloss.Color // Green - playing
	Error   lipgloss.Color // Red - errors
	Warning lipgloss.Color // Amber - muted, loading

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base      lipgloss.Style // Default text
	Muted     lipgloss.Style // Dimmed text
	Subtle    lipgloss.Style // Very dim text
	Title     lipgloss.Style // Bold, bright
	Active    lipgloss.Style // Active episode label
	Indicator lipgloss.Style // Transient play/pause glyph
	Badge     lipgloss.Style // Avatar initial badge
	NoAvatar  lipgloss.Style // Initial badge when the avatar failed
	User      lipgloss.Style // Viewer's chat lines
	Character lipgloss.Style // Character's chat lines
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#e879f9"),
	Secondary: lipgloss.Color("#fbbf24"),

	// Text hierarchy (grayscale)
	FgBase:   lipgloss.Color("#d4d4d4"),
	FgMuted:  lipgloss.Color("#8a8a8a"),
	FgSubtle: lipgloss.Color("#5c5c5c"),

	// Backgrounds
	BgBase:   lipgloss.Color("#141414"),
	BgBubble: lipgloss.Color("#2a2133"),

	// Borders
	Border:      lipgloss.Color("#3f3f3f"),
	BorderFocus: lipgloss.Color("#e879f9"),

	// Status
	Success: lipgloss.Color("#4ade80"),
	Error:   lipgloss.Color("#f87171"),
	Warning: lipgloss.Color("#fbbf24"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Active: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Indicator: lipgloss.NewStyle().
			Foreground(t.FgBase).
			Bold(true).
			Padding(0, 2),
		Badge: lipgloss.NewStyle().
			Foreground(t.BgBase).
			Background(t.Primary).
			Bold(true).
			Padding(0, 1),
		NoAvatar: lipgloss.NewStyle().
			Foreground(t.FgBase).
			Background(t.Border).
			Bold(true).
			Padding(0, 1),
		User: lipgloss.NewStyle().Foreground(t.FgBase),
		Character: lipgloss.NewStyle().
			Foreground(t.FgBase).
			Background(t.BgBubble).
			Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}

// CardStyle returns the border style of a feed card.
func (t *Theme) CardStyle(active bool) lipgloss.Style {
	border := t.Border
	if active {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}
