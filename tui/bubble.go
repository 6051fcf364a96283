package tui

import (
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/vidfeed-cli/vidfeed/feed"
	"github.com/vidfeed-cli/vidfeed/internal/ui"
	"github.com/vidfeed-cli/vidfeed/key"
	"github.com/vidfeed-cli/vidfeed/session"
	"github.com/vidfeed-cli/vidfeed/style"
	"github.com/vidfeed-cli/vidfeed/util"
)

// sessionEventMsg carries one tagged session notification into the update loop.
type sessionEventMsg struct {
	index int
	event feed.Event
}

// recordsLoadedMsg delivers the fetched catalog.
type recordsLoadedMsg []feed.Record

// statefulBubble encapsulates the comprehensive application state, including component models and workflow tracking.
// It owns the feed controller: controller state is only ever touched inside Update, with session
// goroutines marshaling their events in through sessionEventChannel.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	feedC    list.Model
	historyC list.Model
	helpC    help.Model

	controller *feed.Controller
	sessions   map[int]*session.Session

	recordsChannel      chan []feed.Record
	sessionEventChannel chan sessionEventMsg
	errorChannel        chan error

	lastError error

	width, height int
	notifier      *ui.Model

	options *Options
}

// OnSessionEvent implements session.Observer. It runs on session
// goroutines, so it only funnels the event into the update loop.
func (b *statefulBubble) OnSessionEvent(index int, event feed.Event) {
	b.sessionEventChannel <- sessionEventMsg{index: index, event: event}
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState facilitates an idempotent transition to a target state, recording the previous state in the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != loadingState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.feedC.SetSize(width-xx, height-yy)
	b.feedC.Help.Width = width - xx

	b.historyC.SetSize(width-xx, height-yy)
	b.historyC.Help.Width = width - xx

	b.width = width - x
	b.height = height - y
	b.helpC.Width = width - xx
}

// closeSessions tears down every live playback session.
func (b *statefulBubble) closeSessions() {
	for _, s := range b.sessions {
		util.Ignore(s.Close)
	}
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		sessions: make(map[int]*session.Session),

		recordsChannel:      make(chan []feed.Record),
		sessionEventChannel: make(chan sessionEventMsg, 64),
		errorChannel:        make(chan error),

		notifier: &ui.Model{},
		options:  options,
	}

	bubble.controller = feed.New(func(index int, record feed.Record) feed.Session {
		s := session.New(index, record, &bubble)
		bubble.sessions[index] = s
		return s
	})

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, description bool, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.feedC = makeList("Feed", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1),
		),
	})
	bubble.feedC.SetStatusBarItemName("video", "videos")

	bubble.historyC = makeList("History", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Yellow).Padding(0, 1),
		),
	})
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
