// Package tui implements the interactive guess loop: show the solver's
// suggestion, read five-letter color feedback, prune, repeat until all
// green.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/detrilemma/pokle-solver/internal/deck"
	"github.com/detrilemma/pokle-solver/internal/solver"
)

// Model is the Bubble Tea model for the guess loop
type Model struct {
	solver *solver.Solver
	logger *log.Logger

	feedbackInput textinput.Model

	guess     solver.Board
	remaining int
	history   []guessRecord
	errMsg    string
	won       bool
	quitting  bool
}

type guessRecord struct {
	guess    solver.Board
	feedback solver.Feedback
}

// New creates the model for an already solved puzzle and fetches the first
// suggestion.
func New(sv *solver.Solver, logger *log.Logger) (*Model, error) {
	guess, err := sv.Suggest()
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = "gyeeg"
	ti.Focus()
	ti.CharLimit = 9
	ti.Width = 20
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	return &Model{
		solver:        sv,
		logger:        logger.WithPrefix("tui"),
		feedbackInput: ti,
		guess:         guess,
		remaining:     len(sv.Remaining()),
	}, nil
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.won {
				m.quitting = true
				return m, tea.Quit
			}
			m.submitFeedback()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.feedbackInput, cmd = m.feedbackInput.Update(msg)
	return m, cmd
}

func (m *Model) submitFeedback() {
	raw := strings.ReplaceAll(strings.TrimSpace(m.feedbackInput.Value()), " ", "")
	m.feedbackInput.SetValue("")

	feedback, err := solver.ParseFeedback(raw)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""

	remaining, err := m.solver.ApplyFeedback(feedback)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.history = append(m.history, guessRecord{guess: m.guess, feedback: feedback})
	m.remaining = len(remaining)
	m.logger.Debug("feedback applied", "feedback", feedback, "remaining", m.remaining)

	if feedback.AllGreen() {
		m.won = true
		return
	}

	guess, err := m.solver.Suggest()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.guess = guess
}

// View renders the loop state
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Pokle Solver"))
	b.WriteString("\n\n")

	for _, record := range m.history {
		b.WriteString(renderFeedbackBoard(record.guess, record.feedback))
		b.WriteString("\n")
	}

	if m.won {
		b.WriteString("\n")
		b.WriteString(SuccessStyle.Render("Solved! " + m.guess.String()))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press enter to exit."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Guess: %s\n", renderBoard(m.guess)))
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%d candidate boards remaining", m.remaining)))
	b.WriteString("\n\n")
	b.WriteString("Enter feedback (g=green, y=yellow, e=grey):\n")
	b.WriteString(m.feedbackInput.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(InfoStyle.Render("esc to quit"))
	b.WriteString("\n")
	return b.String()
}

func renderBoard(board solver.Board) string {
	parts := make([]string, 0, 7)
	for i, card := range board.Cards() {
		if i == 3 || i == 4 {
			parts = append(parts, InfoStyle.Render("|"))
		}
		parts = append(parts, renderCard(card))
	}
	return strings.Join(parts, " ")
}

func renderFeedbackBoard(board solver.Board, feedback solver.Feedback) string {
	parts := make([]string, 0, 7)
	for i, card := range board.Cards() {
		if i == 3 || i == 4 {
			parts = append(parts, InfoStyle.Render("|"))
		}
		text := " " + card.Rank.String() + card.Suit.Symbol() + " "
		switch feedback[i] {
		case solver.Green:
			parts = append(parts, GreenFeedbackStyle.Render(text))
		case solver.Yellow:
			parts = append(parts, YellowFeedbackStyle.Render(text))
		default:
			parts = append(parts, GreyFeedbackStyle.Render(text))
		}
	}
	return strings.Join(parts, " ")
}

func renderCard(card deck.Card) string {
	text := card.Rank.String() + card.Suit.Symbol()
	if card.IsRed() {
		return RedCardStyle.Render(text)
	}
	return BlackCardStyle.Render(text)
}
