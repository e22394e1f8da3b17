package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iarmy/compta/internal/cli"
	"github.com/iarmy/compta/internal/compta"
	"github.com/iarmy/compta/internal/model"
)

// State represents what the editor is currently asking of the user.
type State int

// Editor states.
const (
	StateList State = iota
	StateRename
	StateColumn
	StateAlias
	StateConfirm
)

// Model holds the editor state. All edits flow through the session's
// typed mutations; the session's OnChange callback drives autosave.
type Model struct {
	session  *compta.Session
	pending  *compta.Confirmation
	status   string
	input    textinput.Model
	keymap   KeyMap
	cursor   int
	state    State
	width    int
	quitting bool
}

// New creates an editor over a session.
func New(session *compta.Session) Model {
	input := textinput.New()
	input.CharLimit = model.MaxNameLength
	return Model{
		session: session,
		keymap:  DefaultKeyMap(),
		input:   input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.state {
		case StateList:
			return m.updateList(msg)
		case StateConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateInput(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keywords := m.session.Keywords()

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(keywords)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.AddKeyword):
		m.cursor = m.session.AddKeyword()
		m.status = ""

	case key.Matches(msg, m.keymap.Rename):
		if m.cursor < len(keywords) {
			m.state = StateRename
			m.input.SetValue(keywords[m.cursor].Name)
			m.input.Placeholder = "NOM"
			m.input.Focus()
		}

	case key.Matches(msg, m.keymap.SetColumn):
		if m.cursor < len(keywords) {
			m.state = StateColumn
			m.input.SetValue(keywords[m.cursor].Column)
			m.input.Placeholder = "A-Z"
			m.input.Focus()
		}

	case key.Matches(msg, m.keymap.AddAlias):
		if m.cursor < len(keywords) {
			m.state = StateAlias
			m.input.SetValue("")
			m.input.Placeholder = "ex: ticket resto"
			m.input.Focus()
		}

	case key.Matches(msg, m.keymap.DeleteAlias):
		if m.cursor < len(keywords) {
			visible := keywords[m.cursor].VisibleAliases()
			if len(visible) > 0 {
				m.session.DeleteAlias(m.cursor, len(visible)-1)
			}
		}

	case key.Matches(msg, m.keymap.Delete):
		if m.cursor < len(keywords) {
			res := m.session.DeleteKeyword(m.cursor)
			if res.Outcome == compta.NeedsConfirmation {
				m.pending = res.Confirmation
				m.state = StateConfirm
			} else if res.IsApplied() {
				m.clampCursor()
			}
		}
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		m.session.Confirm(m.pending)
		m.pending = nil
		m.state = StateList
		m.clampCursor()
	case key.Matches(msg, m.keymap.Cancel):
		m.session.Cancel(m.pending)
		m.pending = nil
		m.state = StateList
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.state = StateList
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		value := m.input.Value()
		m.input.Blur()
		state := m.state
		m.state = StateList

		switch state {
		case StateRename:
			res := m.session.SetKeywordName(m.cursor, value)
			m.status = m.feedback(res, value, "Mot-cle enregistre")
		case StateColumn:
			res := m.session.SetKeywordColumn(m.cursor, strings.ToUpper(strings.TrimSpace(value)))
			m.status = m.feedback(res, value, "Colonne enregistree")
		case StateAlias:
			res := m.session.AddAlias(m.cursor, value)
			m.status = m.feedback(res, strings.ToLower(strings.TrimSpace(value)), "Alias ajoute")
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// feedback converts a mutation result into a toast line. Silent
// rejections clear the status.
func (m Model) feedback(res compta.MutationResult, value, success string) string {
	switch res.Outcome {
	case compta.Applied:
		return cli.FormatSuccess(success)
	case compta.Rejected:
		if res.Conflict != nil {
			return cli.FormatWarning(conflictMessage(res.Conflict, value))
		}
	}
	return ""
}

// conflictMessage phrases a conflict the way the rest of the product
// speaks to the user.
func conflictMessage(c *compta.Conflict, value string) string {
	switch c.Type {
	case compta.ConflictKeyword:
		return fmt.Sprintf("%q existe deja", value)
	case compta.ConflictAlias:
		return fmt.Sprintf("%q est deja un alias de %s", value, c.Name)
	}
	return fmt.Sprintf("%q est deja utilise", value)
}

func (m *Model) clampCursor() {
	if n := len(m.session.Keywords()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render("Compta · mots-cles"))
	b.WriteString("\n\n")

	keywords := m.session.Keywords()
	if len(keywords) == 0 {
		b.WriteString(cli.SubtleStyle.Render("Aucun mot-cle. Appuie sur 'a' pour commencer."))
		b.WriteString("\n")
	}
	for i, k := range keywords {
		b.WriteString(m.renderKeyword(i, k))
		b.WriteString("\n")
	}

	switch m.state {
	case StateRename, StateColumn, StateAlias:
		b.WriteString("\n" + m.input.View() + "\n")
	case StateConfirm:
		b.WriteString("\n" + cli.WarningStyle.Render(
			fmt.Sprintf("Supprimer %q ? (y/n)", m.pending.Description)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(cli.RenderPreview(m.session.Preview()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + cli.SubtleStyle.Render(
		"a add · r rename · c column · t alias · x drop alias · d delete · q quit"))
	return b.String()
}

func (m Model) renderKeyword(i int, k model.Keyword) string {
	marker := "  "
	if i == m.cursor {
		marker = lipgloss.NewStyle().Foreground(cli.PrimaryColor).Render("> ")
	}

	name := k.Name
	if name == "" {
		name = cli.SubtleStyle.Render("(sans nom)")
	}
	column := k.Column
	if column == "" {
		column = cli.WarningStyle.Render("?")
	}

	line := fmt.Sprintf("%s%s → %s", marker, name, column)
	if header, ok := m.session.Headers()[k.Column]; ok && k.Column != "" {
		line += cli.SubtleStyle.Render(" · " + header)
	}
	if aliases := k.VisibleAliases(); len(aliases) > 0 {
		line += cli.SubtleStyle.Render("  [" + strings.Join(aliases, ", ") + "]")
	}
	return line
}
