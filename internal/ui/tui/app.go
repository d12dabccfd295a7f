// Package tui renders the game screen in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datathieves/internal/domain"
	"datathieves/internal/format"
)

const (
	title      = "Data Thieves"
	helpText   = "Collect Data to level up your Automatic Data sources."
	toastTTL   = 2 * time.Second
	cardHeight = 7
)

type model struct {
	theme Theme
	keys  keyMap
	help  help.Model
	deps  Deps

	state *domain.GameState

	cursor     int
	offset     int
	showDialog bool

	toast    string
	toastSeq int

	width  int
	height int
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	return model{
		theme: DefaultTheme(),
		keys:  defaultKeys(),
		help:  help.New(),
		deps:  deps,
	}
}

func (m model) Init() tea.Cmd {
	return waitForState(m.deps.Game.GameState())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case stateMsg:
		if !msg.ok {
			return m, tea.Quit
		}
		m.state = msg.st
		if m.state != nil && m.cursor >= len(m.state.AvailableJobs) {
			m.cursor = max(0, len(m.state.AvailableJobs)-1)
		}
		m.clampScroll()
		return m, waitForState(m.deps.Game.GameState())

	case intentDoneMsg:
		if msg.err == nil {
			return m, nil
		}
		m.deps.Log.Debug().Err(msg.err).Str("intent", msg.intent).Msg("tui.intent_failed")
		m.toastSeq++
		m.toast = friendlyError(msg.err)
		return m, toastAfter(m.toastSeq, toastTTL)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
		return m, cmdQuit(m.deps.Game)
	}
	if m.showDialog {
		m.showDialog = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, cmdQuit(m.deps.Game)
	case key.Matches(msg, m.keys.Help):
		m.showDialog = true
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		return m, cmdReset(m.deps.Game)
	}

	if m.state == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Collect):
		return m, cmdCollect(m.deps.Game)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampScroll()
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.AvailableJobs)-1 {
			m.cursor++
		}
		m.clampScroll()
	case key.Matches(msg, m.keys.Buy):
		if job, ok := m.selectedJob(); ok && !m.state.HasWorker(job.ID) {
			return m, cmdBuy(m.deps.Game, job)
		}
	case key.Matches(msg, m.keys.Upgrade):
		if job, ok := m.selectedJob(); ok {
			return m, cmdUpgrade(m.deps.Game, job)
		}
	}
	return m, nil
}

func (m model) selectedJob() (domain.GameJob, bool) {
	if m.state == nil || m.cursor < 0 || m.cursor >= len(m.state.AvailableJobs) {
		return domain.GameJob{}, false
	}
	return m.state.AvailableJobs[m.cursor], true
}

// visibleCards is how many job cards fit below the header. Zero height
// means the size is unknown, so everything is shown.
func (m model) visibleCards() int {
	if m.height == 0 {
		return 1 << 30
	}
	return max(1, (m.height-12)/cardHeight)
}

func (m *model) clampScroll() {
	n := m.visibleCards()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+n {
		m.offset = m.cursor - n + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	var b strings.Builder
	b.WriteString(m.theme.Button.Render("Help") + "\n\n")
	b.WriteString(m.theme.Title.Render(title) + "\n\n")
	b.WriteString(m.theme.Danger.Render("Reset Data") + "\n\n")

	if m.showDialog {
		b.WriteString(m.theme.Dialog.Render(helpText) + "\n")
		b.WriteString(m.theme.Help.Render("press any key to close"))
		return wrap.Render(b.String())
	}

	if m.state != nil {
		b.WriteString(m.theme.Bank.Render(fmt.Sprintf("Data Bank: %s Data", format.HumanReadable(m.state.StashedMoney))) + "\n")
		b.WriteString(m.theme.Button.Render("Collect Data") + "\n\n")
		b.WriteString(m.renderJobs())
	}

	if m.toast != "" {
		b.WriteString("\n" + m.theme.Toast.Render(m.toast))
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return wrap.Render(b.String())
}

func (m model) renderJobs() string {
	jobs := m.state.AvailableJobs
	end := min(len(jobs), m.offset+m.visibleCards())

	cards := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		cards = append(cards, m.renderJob(jobs[i], i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m model) renderJob(job domain.GameJob, selected bool) string {
	details := strings.Join([]string{
		job.Name,
		fmt.Sprintf("Level: %d", job.Level.Level),
		fmt.Sprintf("Cost: %s Data", format.HumanReadable(job.Level.Cost)),
		fmt.Sprintf("Earns: %s Data", format.HumanReadable(job.Level.Earn)),
		fmt.Sprintf("Duration: %d Seconds", format.Seconds(job.Level.Duration)),
	}, "\n")

	var purchase string
	if m.state.HasWorker(job.ID) {
		purchase = m.theme.Owned.Render("Purchased")
	} else {
		purchase = m.theme.Button.Render("Purchase")
	}
	actions := lipgloss.JoinVertical(lipgloss.Left, purchase, "", m.theme.Button.Render("Upgrade"))

	row := lipgloss.JoinHorizontal(lipgloss.Top, details, "    ", actions)
	if selected {
		return m.theme.Selected.Render(row)
	}
	return m.theme.Card.Render(row)
}
