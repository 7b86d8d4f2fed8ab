package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/taxdesk/internal/adapters/driving/tui/views/report"
	"github.com/custodia-labs/taxdesk/internal/core/domain"
	"github.com/custodia-labs/taxdesk/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// App is the only writer of its workspace. Gateway calls run as commands
// and come back as messages carrying the request that issued them, so the
// workspace can drop results that no longer apply.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for gateway calls.
	ctx context.Context

	// ws holds the documents, the report session and the conversation.
	ws *domain.Workspace

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// documentsView lists the documents.
	documentsView *documents.View

	// reportView shows the active report and conversation.
	reportView *report.View

	// statusBar shows notices and hints.
	statusBar *status.Bar

	// backend is the configured backend URL, shown in the status bar.
	backend string

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	ws := domain.NewWorkspace()

	app := &App{
		ports:         ports,
		ctx:           context.Background(),
		ws:            ws,
		styles:        s,
		keymap:        km,
		documentsView: documents.NewView(s, ws),
		reportView:    report.NewView(s, ws),
		statusBar:     status.NewBar(s, km),
		currentView:   messages.ViewDocuments,
	}

	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			app.backend = settings.Gateway.BaseURL
		}
	}
	app.syncStatus()

	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It starts the one-time document fetch.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("taxdesk - Tax Reports"),
		a.loadDocuments(),
		a.reportView.Init(),
	)
}

// loadDocuments returns the fetch command, or nil if a fetch was already issued.
func (a *App) loadDocuments() tea.Cmd {
	if !a.ws.Store().BeginLoad() {
		return nil
	}
	ctx := a.ctx
	assistant := a.ports.Assistant
	return func() tea.Msg {
		docs, err := assistant.ListDocuments(ctx)
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

// generate returns the command executing req.
func (a *App) generate(req domain.GenerateRequest) tea.Cmd {
	ctx := a.ctx
	assistant := a.ports.Assistant
	return func() tea.Msg {
		r, err := assistant.GenerateReport(ctx, req)
		return messages.ReportGenerated{Request: req, Report: r, Err: err}
	}
}

// ask returns the command executing req.
func (a *App) ask(req domain.AskRequest) tea.Cmd {
	ctx := a.ctx
	assistant := a.ports.Assistant
	return func() tea.Msg {
		answer, err := assistant.Ask(ctx, req)
		return messages.AnswerReceived{Request: req, Answer: answer, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewReport:
			a.reportView, cmd = a.reportView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "?" || msg.String() == "q" {
				a.setView(messages.ViewDocuments)
			}
		}
		return a, cmd

	case messages.DocumentsLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			logger.Warn("load documents: %v", msg.Err)
		}
		notice := a.ws.Store().CompleteLoad(msg.Documents, msg.Err)
		a.syncStatus()
		return a, a.statusBar.Show(notice)

	case messages.DocumentChosen:
		doc, ok := a.ws.Store().Find(msg.DocumentID)
		if !ok {
			a.err = fmt.Errorf("document %q: %w", msg.DocumentID, domain.ErrNotFound)
			return a, nil
		}
		req, notice := a.ws.Select(doc)
		a.reportView.Reset()
		a.setView(messages.ViewReport)
		return a, tea.Batch(a.statusBar.Show(notice), a.generate(req))

	case messages.ReportGenerated:
		notice := a.ws.CompleteGeneration(msg.Request, msg.Report, msg.Err)
		if notice.IsZero() {
			logger.Debug("Discarded stale report for %s (token %d)", msg.Request.DocumentID, msg.Request.Token)
			return a, nil
		}
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.reportView.Refresh()
		return a, a.statusBar.Show(notice)

	case messages.MessageSubmitted:
		req, ok := a.ws.Send(msg.Text)
		if !ok {
			return a, nil
		}
		a.reportView.ResetInput()
		a.reportView.Refresh()
		return a, a.ask(req)

	case messages.AnswerReceived:
		if !a.ws.CompleteAsk(msg.Request, msg.Answer, msg.Err) {
			logger.Debug("Discarded stale answer (epoch %d)", msg.Request.Epoch)
			return a, nil
		}
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.reportView.Refresh()
		return a, nil

	case messages.NoticeExpired:
		a.statusBar.Expire(msg.Seq)
		return a, nil

	case messages.ViewChanged:
		a.setView(msg.View)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case spinner.TickMsg:
		a.reportView, cmd = a.reportView.Update(msg)
		return a, cmd
	}

	// Forward other messages (cursor blink) to the report view.
	if a.currentView == messages.ViewReport {
		a.reportView, cmd = a.reportView.Update(msg)
	}
	return a, cmd
}

// setView switches the active view and its status hints.
func (a *App) setView(v messages.ViewType) {
	a.currentView = v
	a.syncStatus()
}

// syncStatus updates the status bar's idle message and hints.
func (a *App) syncStatus() {
	store := a.ws.Store()
	msg := fmt.Sprintf("%d documents", store.Len())
	if store.Loading() {
		msg = documents.TextLoading
	}
	if a.backend != "" {
		msg += " @ " + a.backend
	}
	a.statusBar.SetMessage(msg)

	switch a.currentView {
	case messages.ViewDocuments:
		a.statusBar.SetBindings(a.keymap.DocumentsHelp())
	case messages.ViewReport:
		a.statusBar.SetBindings(a.keymap.ReportHelp())
	case messages.ViewHelp:
		a.statusBar.SetBindings(a.keymap.ShortHelp())
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewReport:
		body = a.reportView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.documentsView.View()
	}

	// Pin the status bar to the last line.
	lines := strings.Count(body, "\n") + 1
	if pad := a.height - lines - 1; pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to documents"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Workspace returns the workspace the app owns.
func (a *App) Workspace() *domain.Workspace {
	return a.ws
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Notice returns the notice in the status bar.
func (a *App) Notice() domain.Notice {
	return a.statusBar.Notice()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.documentsView.SetDimensions(width, height-1)
	a.reportView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
