package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/storyreel/internal/catalog"
	"github.com/llehouerou/storyreel/internal/chat"
	"github.com/llehouerou/storyreel/internal/feed"
	"github.com/llehouerou/storyreel/internal/keymap"
	"github.com/llehouerou/storyreel/internal/media"
	"github.com/llehouerou/storyreel/internal/mpris"
	"github.com/llehouerou/storyreel/internal/state"
	"github.com/llehouerou/storyreel/internal/ui/chatview"
	"github.com/llehouerou/storyreel/internal/viewport"
)

// DefaultReplyTimeout bounds a single completion call started by the UI.
const DefaultReplyTimeout = 30 * time.Second

var errNoBackend = errors.New("no completion backend")

// Options holds everything New needs.
type Options struct {
	Catalog *catalog.Catalog
	Feed    feed.Options
	Policy  *media.Policy
	// NewElement creates media elements; defaults to simulated elements
	// driven by Policy and the wall clock.
	NewElement   feed.ElementFactory
	Backend      chat.Backend
	StateMgr     state.Interface
	HistoryLimit int
	ReplyTimeout time.Duration
	Logger       *zap.Logger
}

// Model is the root application model containing all state.
type Model struct {
	Catalog      *catalog.Catalog
	Feed         *feed.Feed
	Viewport     *viewport.Viewport
	Chat         *chat.Manager
	ChatView     chatview.Model
	Backend      chat.Backend
	Policy       *media.Policy
	StateMgr     state.Interface
	Log          *zap.Logger
	Views        map[string]int
	Remote       <-chan mpris.Command // media key and desktop widget requests
	ChatOpen     bool
	ShowHelp     bool
	StatusMsg    string
	ReplyTimeout time.Duration
	Width        int
	Height       int

	feedSub       *feed.Subscription
	feedKeys      *keymap.Resolver
	chatKeys      *keymap.Resolver
	animating     bool
	statusVersion int
}

// New creates the application model, resuming the saved position when the
// state manager has one for this catalog.
func New(opts Options) (Model, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	policy := opts.Policy
	if policy == nil {
		policy = media.NewPolicy(media.AutoplayMuted)
	}
	factory := opts.NewElement
	if factory == nil {
		factory = func(ep catalog.Episode) media.Element {
			return media.NewSimulated(ep.MediaURL, ep.Length(), policy, time.Now)
		}
	}
	backend := opts.Backend
	if backend == nil {
		backend = chat.BackendFunc(func(context.Context, chat.Request) (string, error) {
			return "", errNoBackend
		})
	}
	timeout := opts.ReplyTimeout
	if timeout == 0 {
		timeout = DefaultReplyTimeout
	}

	feedOpts := opts.Feed
	feedOpts.Logger = log
	views := map[string]int{}
	if opts.StateMgr != nil && opts.Catalog != nil {
		feedOpts = restoreResume(opts.StateMgr, opts.Catalog, feedOpts, log)
		v, err := opts.StateMgr.Views(opts.Catalog.Title)
		if err != nil {
			log.Warn("failed to load view counts", zap.Error(err))
		}
		if v != nil {
			views = v
		}
	}

	f, err := feed.New(opts.Catalog, factory, feedOpts)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		Catalog:      opts.Catalog,
		Feed:         f,
		Viewport:     viewport.New(f.Len(), f.ActiveIndex()),
		Chat:         chat.NewManager(chat.Options{HistoryLimit: opts.HistoryLimit, Logger: log}),
		ChatView:     chatview.New(),
		Backend:      backend,
		Policy:       policy,
		StateMgr:     opts.StateMgr,
		Log:          log,
		Views:        views,
		ReplyTimeout: timeout,
		feedSub:      f.Subscribe(),
		feedKeys:     keymap.ForContext(keymap.ContextFeed),
		chatKeys:     keymap.ForContext(keymap.ContextChat),
	}
	m.recordView(f.ActiveIndex())
	// The startup autoplay attempt happens before anyone is subscribed.
	if st, ok := f.ItemState(f.ActiveIndex()); ok && !st.Playing {
		m.StatusMsg = autoplayBlockedStatus
	}
	return m, nil
}

// restoreResume points the feed options at the saved episode and mute flag.
// An episode that no longer exists in the catalog keeps the configured start.
func restoreResume(mgr state.Interface, cat *catalog.Catalog, opts feed.Options, log *zap.Logger) feed.Options {
	saved, err := mgr.GetResume(cat.Title)
	if err != nil {
		log.Warn("failed to load resume state", zap.Error(err))
		return opts
	}
	if saved == nil {
		return opts
	}
	if i := cat.IndexOf(saved.EpisodeID); i >= 0 {
		opts.StartIndex = i
	}
	opts.Muted = saved.Muted
	return opts
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(), m.WatchFeedEvents(), m.WatchRemote()}
	if m.StatusMsg != "" {
		cmds = append(cmds, StatusTimeoutCmd(m.statusVersion))
	}
	return tea.Batch(cmds...)
}

// Close releases the feed and writes the resume state.
func (m Model) Close() {
	m.Chat.Close()
	m.saveResume()
	if err := m.Feed.Close(); err != nil {
		m.Log.Warn("failed to close feed", zap.Error(err))
	}
}
