// internal/playback/controller.go
package playback

import (
	"math"
	"time"

	"github.com/llehouerou/storyreel/internal/media"
)

// Controller owns one feed item's transient playback state and turns media
// element events into it. It is not safe for concurrent use; the feed
// serializes access.
type Controller struct {
	el media.Element

	loading   bool
	position  time.Duration
	duration  time.Duration
	progress  float64
	indicator Indicator
	ticket    int
	tickets   *Tickets
}

// Tickets hands out indicator tickets. Controllers sharing one Tickets never
// reuse each other's numbers, so a ticket issued before an item was
// remounted cannot match one issued after.
type Tickets struct {
	last int
}

// Next returns a ticket greater than every ticket returned before.
func (t *Tickets) Next() int {
	t.last++
	return t.last
}

// NewController creates a controller for el. It starts in the loading state.
// tickets may be shared between controllers; nil gives the controller its
// own counter.
func NewController(el media.Element, tickets *Tickets) *Controller {
	if tickets == nil {
		tickets = &Tickets{}
	}
	return &Controller{
		el:      el,
		loading: true,
		tickets: tickets,
	}
}

// Element returns the controlled media element.
func (c *Controller) Element() media.Element { return c.el }

// State returns a snapshot of the controller state.
func (c *Controller) State() State {
	return State{
		Loading:   c.loading,
		Playing:   c.Playing(),
		Muted:     c.el.Muted(),
		Position:  c.position,
		Duration:  c.duration,
		Progress:  c.progress,
		Indicator: c.indicator,
	}
}

// Playing reports whether the element is playing.
func (c *Controller) Playing() bool {
	return c.el.State() == media.Playing
}

// HandleEvent dispatches a media element event.
func (c *Controller) HandleEvent(e media.Event) {
	switch e.Kind {
	case media.EventReady:
		c.OnReady(e.Duration)
	case media.EventTimeUpdate:
		c.OnTimeUpdate(e.Position, e.Duration)
	}
}

// OnReady records the resource duration and clears the loading state.
func (c *Controller) OnReady(duration time.Duration) {
	c.duration = max(duration, 0)
	c.loading = false
	c.progress = Progress(c.position, c.duration)
}

// OnTimeUpdate records the playhead position.
func (c *Controller) OnTimeUpdate(position, duration time.Duration) {
	c.position = max(position, 0)
	c.duration = max(duration, 0)
	c.progress = Progress(c.position, c.duration)
}

// TogglePlay resumes a paused item or pauses a playing one and shows the
// matching indicator. The returned ticket identifies this indicator for
// ClearIndicator. If the element refuses to play, no indicator is shown and
// the error is returned.
func (c *Controller) TogglePlay() (int, error) {
	if c.Playing() {
		c.el.Pause()
		return c.showIndicator(IndicatorPause), nil
	}
	if err := c.el.Play(); err != nil {
		return c.ticket, err
	}
	return c.showIndicator(IndicatorPlay), nil
}

func (c *Controller) showIndicator(i Indicator) int {
	c.indicator = i
	c.ticket = c.tickets.Next()
	return c.ticket
}

// ClearIndicator hides the indicator if ticket is still the latest one.
// Older tickets are ignored so only the most recent indicator is shown for
// its full duration.
func (c *Controller) ClearIndicator(ticket int) bool {
	if ticket != c.ticket || c.indicator == IndicatorNone {
		return false
	}
	c.indicator = IndicatorNone
	return true
}

// Seek jumps to percent (0-100) of the duration and updates progress
// immediately. It is a no-op while the duration is unknown.
func (c *Controller) Seek(percent float64) (time.Duration, bool) {
	duration := c.knownDuration()
	if duration <= 0 || math.IsNaN(percent) {
		return 0, false
	}
	percent = min(max(percent, 0), 100)
	target := time.Duration(percent / 100 * float64(duration))
	c.el.SeekTo(target)
	c.position = target
	c.duration = duration
	c.progress = percent
	return target, true
}

// SeekBy moves the playhead by delta, clamped to the resource.
func (c *Controller) SeekBy(delta time.Duration) (time.Duration, bool) {
	duration := c.knownDuration()
	if duration <= 0 {
		return 0, false
	}
	target := min(max(c.el.Position()+delta, 0), duration)
	return c.Seek(float64(target) / float64(duration) * 100)
}

func (c *Controller) knownDuration() time.Duration {
	if c.duration > 0 {
		return c.duration
	}
	return c.el.Duration()
}

// SetMuted forwards the shared mute flag to the element.
func (c *Controller) SetMuted(muted bool) {
	c.el.SetMuted(muted)
}

// Activate rewinds to the start and starts playback. An autoplay refusal is
// returned for the caller to swallow; the item then stays paused.
func (c *Controller) Activate() error {
	c.el.SeekTo(0)
	c.position = 0
	c.progress = 0
	return c.el.Play()
}

// Deactivate pauses the item.
func (c *Controller) Deactivate() {
	c.el.Pause()
}

// Close releases the element.
func (c *Controller) Close() {
	c.el.Close()
}
