// Package tui is the terminal user interface of the chat client. All domain
// state lives in the session, presence, typing, pipeline, and staging
// components; the TUI subscribes to the bus and renders what it is told.
package tui

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/Prantik123321/Chat-all/internal/bus"
	"github.com/Prantik123321/Chat-all/internal/notify"
	"github.com/Prantik123321/Chat-all/internal/pipeline"
	"github.com/Prantik123321/Chat-all/internal/presence"
	"github.com/Prantik123321/Chat-all/internal/session"
	"github.com/Prantik123321/Chat-all/internal/staging"
	"github.com/Prantik123321/Chat-all/internal/status"
	"github.com/Prantik123321/Chat-all/internal/tui/keys"
	"github.com/Prantik123321/Chat-all/internal/tui/ui"
	"github.com/Prantik123321/Chat-all/internal/tui/views"
	"github.com/Prantik123321/Chat-all/internal/typing"
)

// Page names. The chat page is always present; the others are overlays.
const (
	pageChat    = "chat"
	pageAttach  = "attach"
	pagePreview = "preview"
	pageEmoji   = "emoji"
)

// Deps are the domain components the TUI renders and drives.
type Deps struct {
	Profile  string
	Theme    *ui.Theme
	State    *session.State
	Machine  *status.Machine
	Presence *presence.Tracker
	Typing   *typing.Coordinator
	Pipeline *pipeline.Pipeline
	Stager   *staging.Stager
	Notifier *notify.Notifier
	Bus      *bus.Bus
	Logger   *zap.Logger
}

// App is the TUI application shell.
type App struct {
	app      *tview.Application
	pages    *tview.Pages
	registry *keys.Registry
	deps     Deps

	msgView   *views.MessageView
	roster    *views.Roster
	composer  *views.Composer
	statusBar *views.StatusBar
	typingBar *views.TypingBar
	flashBar  *ui.FlashBar
	attach    *views.AttachPrompt
	preview   *views.AttachPreview
	emoji     *views.EmojiPicker

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(deps Deps) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := deps.Theme

	a := &App{
		app:       tview.NewApplication(),
		pages:     tview.NewPages(),
		registry:  keys.NewRegistry(),
		deps:      deps,
		msgView:   views.NewMessageView(theme),
		roster:    views.NewRoster(theme),
		composer:  views.NewComposer(theme),
		statusBar: views.NewStatusBar(theme),
		typingBar: views.NewTypingBar(theme),
		flashBar:  ui.NewFlashBar(theme),
		attach:    views.NewAttachPrompt(theme),
		preview:   views.NewAttachPreview(theme),
		emoji:     views.NewEmojiPicker(theme),
		ctx:       ctx,
		cancel:    cancel,
	}

	a.statusBar.SetProfile(deps.Profile)
	a.statusBar.SetIdentity(deps.State.Identity())
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal("quit", &keys.Action{
		Key:         tcell.KeyCtrlC,
		Description: "^C:quit",
		Visible:     true,
		Handler:     func() { a.app.Stop() },
	})
	a.registry.AddScoped(pageChat, "attach", &keys.Action{
		Key:         tcell.KeyCtrlA,
		Description: "^A:attach",
		Visible:     true,
		Handler:     func() { a.showAttach() },
	})
	a.registry.AddScoped(pageChat, "emoji", &keys.Action{
		Key:         tcell.KeyCtrlE,
		Description: "^E:emoji",
		Visible:     true,
		Handler:     func() { a.showEmoji() },
	})
	a.statusBar.SetHints(a.registry.Hints(pageChat))
}

func (a *App) setupCallbacks() {
	a.composer.SetOnChange(func(text string) {
		a.deps.Typing.InputChanged(text)
	})

	a.composer.SetOnSend(func(text string) {
		if a.deps.Machine.Current() != status.Connected {
			a.deps.Notifier.Error("Not connected to server")
			return
		}
		a.composer.SetText("")
		go func() {
			err := a.deps.Pipeline.SendText(text)
			if err != nil && !errors.Is(err, pipeline.ErrEmptyMessage) {
				a.deps.Logger.Warn("send failed", zap.Error(err))
			}
		}()
	})

	a.attach.SetOnSubmit(func(path string) {
		// Rejection notices the stager itself; keep the prompt open so
		// the user can correct the path.
		if err := a.deps.Stager.Stage(path); err != nil {
			return
		}
		a.pages.HidePage(pageAttach)
		a.app.SetFocus(a.composer)
	})
	a.attach.SetOnCancel(func() {
		a.deps.Stager.Cancel()
		a.dismissOverlays()
	})

	a.preview.SetOnSend(func() {
		staged, err := a.deps.Stager.Confirm()
		a.dismissOverlays()
		if err != nil {
			return
		}
		go func() {
			if err := a.deps.Pipeline.SendAttachment(staged.Kind, staged.Data, staged.FileName); err != nil {
				a.deps.Logger.Warn("attachment send failed", zap.Error(err))
			}
		}()
	})
	a.preview.SetOnCancel(func() {
		a.deps.Stager.Cancel()
		a.dismissOverlays()
	})

	a.emoji.SetOnPick(func(emoji string) {
		a.dismissOverlays()
		a.composer.InsertText(emoji)
	})
}

func (a *App) setupLayout() {
	chatColumn := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.msgView, 0, 1, false).
		AddItem(a.typingBar, 1, 0, false).
		AddItem(a.composer, 1, 0, true)

	chatLayout := tview.NewFlex().
		AddItem(chatColumn, 0, 1, true).
		AddItem(a.roster, 26, 0, false)

	a.pages.AddPage(pageChat, chatLayout, true, true)
	a.pages.AddPage(pageAttach, center(a.attach, 64, 3), true, false)
	a.pages.AddPage(pagePreview, a.preview, true, false)
	a.pages.AddPage(pageEmoji, center(a.emoji, 36, 16), true, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.flashBar, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(root, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		front, _ := a.pages.GetFrontPage()

		if event.Key() == tcell.KeyEscape && front != pageChat {
			// Dismissing the staging surface implicitly cancels the
			// staged attachment.
			if front == pageAttach || front == pagePreview {
				a.deps.Stager.Cancel()
			}
			a.dismissOverlays()
			return nil
		}

		if a.registry.HandleEvent(front, event) {
			return nil
		}

		return event
	})
}

// center wraps a primitive in a grid that centers it at a fixed size.
func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(p, 1, 1, 1, 1, 0, 0, true)
}

func (a *App) showAttach() {
	a.attach.SetText("")
	a.pages.ShowPage(pageAttach)
	a.app.SetFocus(a.attach)
}

func (a *App) showPreview(staged *staging.Staged) {
	a.preview.Show(staged)
	a.pages.HidePage(pageAttach)
	a.pages.ShowPage(pagePreview)
	a.app.SetFocus(a.preview)
}

func (a *App) showEmoji() {
	a.pages.ShowPage(pageEmoji)
	a.app.SetFocus(a.emoji)
}

func (a *App) dismissOverlays() {
	a.pages.HidePage(pageAttach)
	a.pages.HidePage(pagePreview)
	a.pages.HidePage(pageEmoji)
	a.app.SetFocus(a.composer)
}

// consumeEvents applies bus events to the views. Runs on its own goroutine;
// every mutation goes through QueueUpdateDraw.
func (a *App) consumeEvents() {
	events, cancel := a.deps.Bus.Subscribe("", 64)
	defer cancel()

	for {
		select {
		case <-a.ctx.Done():
			return
		case ev := <-events:
			a.app.QueueUpdateDraw(func() {
				a.apply(ev)
			})
		}
	}
}

func (a *App) apply(ev bus.Event) {
	switch ev.Kind {
	case bus.KindStatusChanged:
		if change, ok := ev.Payload.(status.StatusChange); ok {
			a.statusBar.SetState(change.To)
		}

	case bus.KindIdentityChanged:
		self := a.deps.State.Identity()
		a.statusBar.SetIdentity(self)
		a.roster.Update(a.deps.Presence.Users(), self)

	case bus.KindRosterReplaced:
		a.roster.Update(a.deps.Presence.Users(), a.deps.State.Identity())

	case bus.KindFeedAppended:
		if entry, ok := ev.Payload.(pipeline.Entry); ok {
			a.msgView.Append(entry)
		}

	case bus.KindFeedReplaced:
		a.msgView.Reload(a.deps.Pipeline.Feed().Entries())

	case bus.KindTypingChanged:
		a.typingBar.Update(a.deps.Typing.Remote())

	case bus.KindNoticePosted, bus.KindNoticeFading, bus.KindNoticeDismissed:
		a.flashBar.Update(a.deps.Notifier.Current())

	case bus.KindStagingReady:
		if staged, ok := ev.Payload.(staging.Staged); ok {
			a.showPreview(&staged)
		}

	case bus.KindStagingFailed, bus.KindStagingCleared:
		// Nothing to preview; make sure no stale overlay lingers.
		if front, _ := a.pages.GetFrontPage(); front == pagePreview {
			a.dismissOverlays()
		}
	}
}

// Run starts the event consumer and the tview main loop. Blocks until quit.
func (a *App) Run() error {
	go a.consumeEvents()
	return a.app.Run()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
