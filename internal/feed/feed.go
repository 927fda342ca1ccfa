// Package feed is the vertically scrolling feed: it owns the shared feed
// state (episodes, active index, mute flag), mounts a playback controller per
// visible item and keeps exactly one of them playing.
package feed

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/storyreel/internal/catalog"
	"github.com/llehouerou/storyreel/internal/media"
	"github.com/llehouerou/storyreel/internal/playback"
)

var (
	ErrEmptyFeed   = errors.New("feed has no episodes")
	ErrOutOfRange  = errors.New("index out of range")
	ErrFeedClosed  = errors.New("feed is closed")
	ErrNoTriggers  = errors.New("episode has no triggers")
	errNilFactory  = errors.New("nil element factory")
	errNilCatalog  = errors.New("nil catalog")
	errBadStartIdx = errors.New("start index out of range")
)

// ElementFactory creates the media element for an episode when it is mounted.
type ElementFactory func(ep catalog.Episode) media.Element

// Poller is implemented by elements that report events when polled rather
// than pushing them.
type Poller interface {
	Poll() []media.Event
}

// Options configures a Feed.
type Options struct {
	Threshold float64 // visible fraction needed to become active (default 0.6)
	// PreloadWindow is how many items on each side of the active one stay
	// mounted. Negative mounts every item.
	PreloadWindow int
	Muted         bool
	StartIndex    int
	Logger        *zap.Logger
}

// Feed is the feed container and selection engine.
type Feed struct {
	mu sync.Mutex

	cat        *catalog.Catalog
	items      []*playback.Controller // nil when unmounted
	active     int
	muted      bool
	threshold  float64
	window     int
	newElement ElementFactory
	tickets    playback.Tickets
	log        *zap.Logger

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// New creates a feed over the catalog episodes, mounts the items around
// opts.StartIndex and starts playing it.
func New(cat *catalog.Catalog, factory ElementFactory, opts Options) (*Feed, error) {
	if cat == nil {
		return nil, errNilCatalog
	}
	if factory == nil {
		return nil, errNilFactory
	}
	if len(cat.Episodes) == 0 {
		return nil, ErrEmptyFeed
	}
	if opts.StartIndex < 0 || opts.StartIndex >= len(cat.Episodes) {
		return nil, fmt.Errorf("%w: %d", errBadStartIdx, opts.StartIndex)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	f := &Feed{
		cat:        cat,
		items:      make([]*playback.Controller, len(cat.Episodes)),
		active:     opts.StartIndex,
		muted:      opts.Muted,
		threshold:  clampThreshold(opts.Threshold),
		window:     opts.PreloadWindow,
		newElement: factory,
		log:        log,
	}

	f.mu.Lock()
	f.mountWindowLocked()
	f.startActiveLocked()
	f.mu.Unlock()

	return f, nil
}

// Len returns the number of episodes.
func (f *Feed) Len() int { return len(f.cat.Episodes) }

// Catalog returns the catalog the feed was built from.
func (f *Feed) Catalog() *catalog.Catalog { return f.cat }

// Threshold returns the visibility threshold in use.
func (f *Feed) Threshold() float64 { return f.threshold }

// ActiveIndex returns the index of the active item.
func (f *Feed) ActiveIndex() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// ActiveEpisode returns the episode of the active item.
func (f *Feed) ActiveEpisode() catalog.Episode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cat.Episodes[f.active]
}

// ActiveItem is the active item as seen at one instant.
type ActiveItem struct {
	Index   int
	Episode catalog.Episode
	State   playback.State
	Mounted bool
}

// Active returns the active index, its episode and its playback state read
// under one lock, so a concurrent switch never yields a mixed result.
func (f *Feed) Active() ActiveItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := ActiveItem{Index: f.active, Episode: f.cat.Episodes[f.active]}
	if item := f.items[f.active]; item != nil {
		a.State = item.State()
		a.Mounted = true
	}
	return a
}

// Observe applies one batch of viewport observations. See selectActive for
// the selection rule. The pause of the previous item and the start of the
// new one happen under one lock, so no later batch sees both playing.
func (f *Feed) Observe(batch []Observation) (ActiveChange, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ActiveChange{}, false
	}

	next, ok := selectActive(batch, f.threshold, len(f.items))
	if !ok || next == f.active {
		return ActiveChange{}, false
	}
	return f.activateLocked(next), true
}

// SetActive makes index the active item directly.
func (f *Feed) SetActive(index int) (ActiveChange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ActiveChange{}, ErrFeedClosed
	}
	if index < 0 || index >= len(f.items) {
		return ActiveChange{}, fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	if index == f.active {
		return ActiveChange{Previous: index, Current: index}, nil
	}
	return f.activateLocked(index), nil
}

func (f *Feed) activateLocked(next int) ActiveChange {
	change := ActiveChange{Previous: f.active, Current: next}

	for i, item := range f.items {
		if item != nil && i != next && item.Playing() {
			item.Deactivate()
		}
	}

	f.active = next
	f.mountWindowLocked()
	f.startActiveLocked()

	f.log.Debug("active item changed",
		zap.Int("previous", change.Previous),
		zap.Int("current", change.Current),
		zap.String("episode", f.cat.Episodes[next].ID))

	f.broadcast(func(s *Subscription) { s.sendActive(change) })
	return change
}

// startActiveLocked rewinds and plays the active item. An autoplay refusal
// leaves it paused until the viewer toggles it.
func (f *Feed) startActiveLocked() {
	item := f.items[f.active]
	err := item.Activate()
	if err == nil {
		return
	}

	ev := ErrorEvent{Operation: "autoplay", Index: f.active, Err: err}
	if errors.Is(err, media.ErrAutoplayDenied) {
		f.log.Debug("autoplay denied", zap.Int("index", f.active))
	} else {
		ev.Operation = "play"
		f.log.Warn("failed to start playback", zap.Int("index", f.active), zap.Error(err))
	}
	f.broadcast(func(s *Subscription) { s.sendError(ev) })
}

func (f *Feed) inWindow(i int) bool {
	if f.window < 0 {
		return true
	}
	d := i - f.active
	if d < 0 {
		d = -d
	}
	return d <= f.window
}

func (f *Feed) mountWindowLocked() {
	for i, item := range f.items {
		switch {
		case f.inWindow(i) && item == nil:
			el := f.newElement(f.cat.Episodes[i])
			el.SetMuted(f.muted)
			f.items[i] = playback.NewController(el, &f.tickets)
		case !f.inWindow(i) && item != nil:
			item.Close()
			f.items[i] = nil
		}
	}
}

// Mounted reports whether item i currently has a controller.
func (f *Feed) Mounted(i int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return i >= 0 && i < len(f.items) && f.items[i] != nil
}

// ItemState returns the playback state of item i.
func (f *Feed) ItemState(i int) (playback.State, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.items) || f.items[i] == nil {
		return playback.State{}, false
	}
	return f.items[i].State(), true
}

// PlayingCount returns how many items are playing. It is never above one.
func (f *Feed) PlayingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, item := range f.items {
		if item != nil && item.Playing() {
			n++
		}
	}
	return n
}

// Muted returns the shared mute flag.
func (f *Feed) Muted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muted
}

// SetMuted sets the shared mute flag on every mounted item.
func (f *Feed) SetMuted(muted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.muted == muted {
		return
	}
	f.muted = muted
	for _, item := range f.items {
		if item != nil {
			item.SetMuted(muted)
		}
	}
	f.broadcast(func(s *Subscription) { s.sendMute(MuteChange{Muted: muted}) })
}

// ToggleMute flips the shared mute flag and returns the new value.
func (f *Feed) ToggleMute() bool {
	muted := !f.Muted()
	f.SetMuted(muted)
	return muted
}

// TogglePlay toggles the active item. It returns the item index and the
// indicator ticket to pass to ClearIndicator after playback.IndicatorTimeout.
func (f *Feed) TogglePlay() (index, ticket int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, 0, ErrFeedClosed
	}
	index = f.active
	ticket, err = f.items[index].TogglePlay()
	if err != nil {
		f.log.Debug("manual play refused", zap.Int("index", index), zap.Error(err))
		ev := ErrorEvent{Operation: "play", Index: index, Err: err}
		f.broadcast(func(s *Subscription) { s.sendError(ev) })
	}
	return index, ticket, err
}

// ClearIndicator clears item index's indicator if ticket is still current.
// Unmounted items are ignored.
func (f *Feed) ClearIndicator(index, ticket int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index >= len(f.items) || f.items[index] == nil {
		return false
	}
	return f.items[index].ClearIndicator(ticket)
}

// Seek jumps the active item to percent of its duration.
func (f *Feed) Seek(percent float64) (time.Duration, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, false
	}
	return f.items[f.active].Seek(percent)
}

// SeekBy moves the active item's playhead by delta.
func (f *Feed) SeekBy(delta time.Duration) (time.Duration, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, false
	}
	return f.items[f.active].SeekBy(delta)
}

// HandleEvent routes a media event to item index. Events for unmounted
// items are dropped.
func (f *Feed) HandleEvent(index int, e media.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index >= len(f.items) || f.items[index] == nil {
		return
	}
	f.items[index].HandleEvent(e)
}

// Poll collects events from every mounted element that implements Poller
// and dispatches them to the owning controllers.
func (f *Feed) Poll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item == nil {
			continue
		}
		p, ok := item.Element().(Poller)
		if !ok {
			continue
		}
		for _, e := range p.Poll() {
			item.HandleEvent(e)
		}
	}
}

// SelectTrigger picks trigger i on the active item and emits BranchSelected.
func (f *Feed) SelectTrigger(i int) (BranchSelected, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ep := f.cat.Episodes[f.active]
	if len(ep.Triggers) == 0 {
		return BranchSelected{}, fmt.Errorf("episode %q: %w", ep.ID, ErrNoTriggers)
	}
	ch, tr, err := f.cat.Branch(ep, i)
	if err != nil {
		return BranchSelected{}, err
	}

	ev := BranchSelected{Index: f.active, Episode: ep, Character: ch, Trigger: tr}
	f.log.Info("branch selected",
		zap.String("episode", ep.ID),
		zap.String("character", ch.ID),
		zap.String("trigger", tr.Label))
	f.broadcast(func(s *Subscription) { s.sendBranch(ev) })
	return ev, nil
}

// Subscribe creates a new event subscription.
func (f *Feed) Subscribe() *Subscription {
	f.subsMu.Lock()
	defer f.subsMu.Unlock()
	sub := newSubscription()
	f.subs = append(f.subs, sub)
	return sub
}

func (f *Feed) broadcast(send func(*Subscription)) {
	f.subsMu.RLock()
	defer f.subsMu.RUnlock()
	for _, sub := range f.subs {
		send(sub)
	}
}

// Close pauses and releases every item and signals subscribers.
func (f *Feed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	for i, item := range f.items {
		if item != nil {
			item.Close()
			f.items[i] = nil
		}
	}
	f.mu.Unlock()

	f.subsMu.Lock()
	for _, sub := range f.subs {
		sub.close()
	}
	f.subs = nil
	f.subsMu.Unlock()

	return nil
}
