package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
)

// historyMsg delivers the session's stored messages at startup.
type historyMsg struct {
	messages []domain.Message
	err      error
}

// answerMsg delivers the outcome of one question.
type answerMsg struct {
	question string
	answer   domain.Answer
	err      error
}

// App is the chat TUI. One question is in flight at a time; the input
// is disabled while an answer is pending.
type App struct {
	ports   *Ports
	ctx     context.Context
	styles  *Styles
	session *domain.Session

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	transcript []string
	pending    bool
	err        error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the chat TUI for a session.
func NewApp(ports *Ports, session *domain.Session) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if session == nil {
		return nil, errors.New("tui: session is required")
	}

	input := textinput.New()
	input.Placeholder = "Ask a question about the article..."
	input.CharLimit = 500
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		styles:  DefaultStyles(),
		session: session,
		input:   input,
		spinner: sp,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init loads the stored conversation.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadHistory)
}

func (a *App) loadHistory() tea.Msg {
	messages, err := a.ports.Session.ListMessages(a.ctx, a.session.ID)
	return historyMsg{messages: messages, err: err}
}

// ask answers one question and persists the exchange.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := a.ports.Chat.AnswerQuestion(a.ctx, a.session.ID, question)
		if err != nil {
			return answerMsg{question: question, err: err}
		}
		if err := a.ports.Session.RecordExchange(a.ctx, a.session.ID, question, answer); err != nil {
			return answerMsg{question: question, err: err}
		}
		return answerMsg{question: question, answer: answer}
	}
}

// Update handles incoming messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			question := strings.TrimSpace(a.input.Value())
			if a.pending || question == "" {
				return a, nil
			}
			a.err = nil
			a.pending = true
			a.input.Reset()
			a.appendUser(question)
			return a, tea.Batch(a.spinner.Tick, a.ask(question))
		}

	case historyMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		for i := range msg.messages {
			switch msg.messages[i].Role {
			case domain.RoleUser:
				a.appendUser(msg.messages[i].Text)
			case domain.RoleAssistant:
				a.appendAssistant(msg.messages[i].Text, msg.messages[i].Citations)
			}
		}
		return a, nil

	case answerMsg:
		a.pending = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.appendAssistant(msg.answer.Text, &msg.answer.Citations)
		return a, nil

	case spinner.TickMsg:
		if !a.pending {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a *App) appendUser(text string) {
	a.transcript = append(a.transcript, a.styles.User.Render("You: ")+text)
	a.refreshViewport()
}

func (a *App) appendAssistant(text string, citations *domain.Citations) {
	entry := a.styles.Assistant.Render("WikiTalk: ") + text
	if citations != nil && len(citations.Sections) > 0 {
		entry += "\n" + a.styles.Citations.Render("  sections: "+strings.Join(uniqueSections(citations.Sections), ", "))
	}
	if citations != nil && citations.External {
		entry += "\n" + a.styles.Citations.Render("  (external search)")
	}
	a.transcript = append(a.transcript, entry)
	a.refreshViewport()
}

func (a *App) refreshViewport() {
	if !a.ready {
		return
	}
	a.viewport.SetContent(strings.Join(a.transcript, "\n\n"))
	a.viewport.GotoBottom()
}

func (a *App) resize() {
	// Header, input box with border, and hint line share the screen with
	// the transcript viewport.
	const chrome = 6
	height := a.height - chrome
	if height < 1 {
		height = 1
	}
	if !a.ready {
		a.viewport = viewport.New(a.width, height)
		a.ready = true
	} else {
		a.viewport.Width = a.width
		a.viewport.Height = height
	}
	a.input.Width = a.width - 6
	a.refreshViewport()
}

// View renders the chat screen.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := a.styles.Title.Render("WikiTalk") + "  " +
		a.styles.Article.Render(a.session.ArticleTitle) +
		a.styles.Muted.Render("  ("+a.session.Language+")")

	var status string
	switch {
	case a.err != nil:
		status = a.styles.Error.Render("error: " + a.err.Error())
	case a.pending:
		status = a.spinner.View() + a.styles.Muted.Render(" thinking...")
	default:
		status = a.styles.Muted.Render("enter to ask  ·  esc to quit")
	}

	return header + "\n" +
		a.viewport.View() + "\n" +
		a.styles.InputBorder.Width(a.width-2).Render(a.input.View()) + "\n" +
		status
}

// uniqueSections keeps the first occurrence of each section name.
func uniqueSections(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
