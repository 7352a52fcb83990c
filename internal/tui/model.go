package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qa/internal/domain"
)

// Answerer is the TUI-facing subset of the question-answering service.
type Answerer interface {
	Answer(ctx context.Context, query string) (domain.Answer, error)
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service   Answerer
	input     textinput.Model
	viewport  viewport.Model
	answer    domain.Answer
	corpus    string
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a new TUI model instance. corpus is a one-line description of
// the loaded corpus shown under the title.
func New(service Answerer, corpus string) Model {
	ti := textinput.New()
	ti.Prompt = "Query: "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, input: ti, viewport: vp, corpus: corpus, status: "Loaded. Type a question."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header, corpus line, status, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResults())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				ans, err := m.service.Answer(context.Background(), q)
				m.lastQuery = q
				if err != nil {
					m.status = "Error: " + err.Error()
					m.answer = domain.Answer{}
				} else {
					m.answer = ans
					m.status = fmt.Sprintf("%d sentence(s) for %q from %s", len(ans.Sentences), q, strings.Join(ans.Documents, ", "))
				}
				m.cursor = 0
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "down":
			if n := len(m.answer.Sentences); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "up":
			if n := len(m.answer.Sentences); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current results.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Corpus Questions")
	corpus := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.corpus)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + corpus + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderResults() string {
	if len(m.answer.Sentences) == 0 {
		if m.lastQuery == "" {
			return "No results yet."
		}
		return "No matching sentences."
	}
	var b strings.Builder
	for i, sent := range m.answer.Sentences {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%d. %s\n", marker, i+1, highlightTerms(sent, m.answer.Query))
	}
	return strings.TrimRight(b.String(), "\n")
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	unicodeWordRe  = regexp.MustCompile(`\p{L}+`)
)

// highlightTerms marks the words of sentence that are query terms.
func highlightTerms(sentence string, query domain.Query) string {
	if query.Len() == 0 {
		return sentence
	}
	return unicodeWordRe.ReplaceAllStringFunc(sentence, func(w string) string {
		if query.Contains(strings.ToLower(w)) {
			return highlightStyle.Render(w)
		}
		return w
	})
}
