//go:build linux

package mpris

import (
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/storyreel/internal/catalog"
	"github.com/llehouerou/storyreel/internal/feed"
	"github.com/llehouerou/storyreel/internal/playback"
)

type fakeFeed struct {
	cat    *catalog.Catalog
	active int
	states map[int]playback.State
}

func (f *fakeFeed) Catalog() *catalog.Catalog { return f.cat }
func (f *fakeFeed) Len() int { return len(f.cat.Episodes) }

func (f *fakeFeed) Active() feed.ActiveItem {
	st, ok := f.states[f.active]
	return feed.ActiveItem{Index: f.active, Episode: f.cat.Episodes[f.active], State: st, Mounted: ok}
}

func newTestAdapter() (*playerAdapter, *fakeFeed, chan Command) {
	ff := &fakeFeed{cat: catalog.Default(), states: make(map[int]playback.State)}
	ch := make(chan Command, commandBufferSize)
	return &playerAdapter{feed: ff, commands: ch}, ff, ch
}

func TestPlayerAdapter_QueuesCommands(t *testing.T) {
	p, _, ch := newTestAdapter()

	require.NoError(t, p.Next())
	require.NoError(t, p.PlayPause())
	require.NoError(t, p.Seek(types.Microseconds(5_000_000)))
	require.NoError(t, p.SetPosition("", types.Microseconds(2_000_000)))
	require.NoError(t, p.Stop())

	assert.Equal(t, Command{Kind: CommandNext}, <-ch)
	assert.Equal(t, Command{Kind: CommandPlayPause}, <-ch)
	assert.Equal(t, Command{Kind: CommandSeek, Offset: 5 * time.Second}, <-ch)
	assert.Equal(t, Command{Kind: CommandSetPosition, Position: 2 * time.Second}, <-ch)
	assert.Equal(t, Command{Kind: CommandPause}, <-ch)
}

func TestPlayerAdapter_DropsWhenFull(t *testing.T) {
	p, _, ch := newTestAdapter()

	for range commandBufferSize + 4 {
		require.NoError(t, p.Next())
	}
	assert.Len(t, ch, commandBufferSize)
}

func TestPlayerAdapter_PlaybackStatus(t *testing.T) {
	p, feed, _ := newTestAdapter()

	status, err := p.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusStopped, status)

	feed.states[0] = playback.State{Playing: true}
	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPlaying, status)

	feed.states[0] = playback.State{}
	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPaused, status)
}

func TestPlayerAdapter_Metadata(t *testing.T) {
	p, feed, _ := newTestAdapter()
	feed.active = 0

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "EP 1", meta.Title)
	assert.Equal(t, feed.cat.Title, meta.Album)
	assert.Equal(t, []string{"Mara Okafor", "Ilias Brandt"}, meta.Artist)
	assert.Equal(t, 1, meta.TrackNumber)
	assert.Equal(t, types.Microseconds((48 * time.Second).Microseconds()), meta.Length)
	assert.Equal(t, "https://images.storyreel.dev/avatars/mara.jpg", meta.ArtUrl)
	assert.Equal(t, formatTrackID("ep1"), string(meta.TrackId))
}

func TestPlayerAdapter_Navigation(t *testing.T) {
	p, feed, _ := newTestAdapter()

	prev, _ := p.CanGoPrevious()
	next, _ := p.CanGoNext()
	assert.False(t, prev)
	assert.True(t, next)

	feed.active = feed.Len() - 1
	prev, _ = p.CanGoPrevious()
	next, _ = p.CanGoNext()
	assert.True(t, prev)
	assert.False(t, next)
}

func TestPlayerAdapter_PositionAndVolume(t *testing.T) {
	p, feed, _ := newTestAdapter()
	feed.states[0] = playback.State{Position: 3 * time.Second, Muted: true}

	pos, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(3_000_000), pos)

	vol, _ := p.Volume()
	assert.InDelta(t, 0, vol, 1e-9)
}

func TestFormatTrackID_Stable(t *testing.T) {
	assert.Equal(t, formatTrackID("ep1"), formatTrackID("ep1"))
	assert.NotEqual(t, formatTrackID("ep1"), formatTrackID("ep2"))
}
