//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/storyreel/internal/catalog"
)

// Adapter connects the feed to MPRIS over D-Bus.
type Adapter struct {
	server   *server.Server
	commands chan Command
}

// New creates and starts a new MPRIS adapter.
func New(feed Feed) (*Adapter, error) {
	a := &Adapter{commands: make(chan Command, commandBufferSize)}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{feed: feed, commands: a.commands}
	a.server = server.NewServer("storyreel", rootAdapter, playerAdapter)

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Commands returns the control requests received from D-Bus.
func (a *Adapter) Commands() <-chan Command {
	return a.commands
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil // the TUI owns its lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Storyreel", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"video/mp4"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Queries read
// the feed directly; control calls are queued for the UI loop.
type playerAdapter struct {
	feed     Feed
	commands chan<- Command
}

func (p *playerAdapter) send(c Command) error {
	select {
	case p.commands <- c:
	default:
		// Drop if the UI is not keeping up
	}
	return nil
}

func (p *playerAdapter) Next() error {
	return p.send(Command{Kind: CommandNext})
}

func (p *playerAdapter) Previous() error {
	return p.send(Command{Kind: CommandPrevious})
}

func (p *playerAdapter) Pause() error {
	return p.send(Command{Kind: CommandPause})
}

func (p *playerAdapter) PlayPause() error {
	return p.send(Command{Kind: CommandPlayPause})
}

func (p *playerAdapter) Stop() error {
	return p.send(Command{Kind: CommandPause})
}

func (p *playerAdapter) Play() error {
	return p.send(Command{Kind: CommandPlay})
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.send(Command{Kind: CommandSeek, Offset: time.Duration(offset) * time.Microsecond})
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.send(Command{Kind: CommandSetPosition, Position: time.Duration(position) * time.Microsecond})
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	a := p.feed.Active()
	switch {
	case !a.Mounted:
		return types.PlaybackStatusStopped, nil
	case a.State.Playing:
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	a := p.feed.Active()
	ep := a.Episode
	cat := p.feed.Catalog()

	length := ep.Length()
	if a.Mounted && a.State.Duration > 0 {
		length = a.State.Duration
	}

	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(ep.ID)),
		Length:      types.Microseconds(length.Microseconds()),
		Title:       ep.Label,
		Artist:      characterNames(cat, ep),
		Album:       cat.Title,
		TrackNumber: a.Index + 1,
	}
	if art := avatarURL(cat, ep); art != "" {
		meta.ArtUrl = art
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	if a := p.feed.Active(); a.Mounted && a.State.Muted {
		return 0, nil
	}
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.feed.Active().State.Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.feed.Active().Index < p.feed.Len()-1, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.feed.Active().Index > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.feed.Len() > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// characterNames lists the characters reachable from an episode, once each.
func characterNames(cat *catalog.Catalog, ep catalog.Episode) []string {
	var names []string
	seen := make(map[string]bool)
	for _, tr := range ep.Triggers {
		if seen[tr.CharacterID] {
			continue
		}
		seen[tr.CharacterID] = true
		if ch, ok := cat.Character(tr.CharacterID); ok && ch.Name != "" {
			names = append(names, ch.Name)
		}
	}
	return names
}

// avatarURL returns the first http(s) avatar of the episode's characters.
func avatarURL(cat *catalog.Catalog, ep catalog.Episode) string {
	for _, tr := range ep.Triggers {
		ch, ok := cat.Character(tr.CharacterID)
		if !ok {
			continue
		}
		u, err := url.Parse(ch.AvatarURL)
		if err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
			return ch.AvatarURL
		}
	}
	return ""
}

func formatTrackID(episodeID string) string {
	h := fnv.New64a()
	h.Write([]byte(episodeID))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
