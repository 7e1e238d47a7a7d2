package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/stepd"
)

// StepSource is the live step counter the view binds to.
type StepSource interface {
	Bind(fn stepd.Listener) int
	Unbind()
	AddManualSteps(n int) (int, error)
}

// StepsMsg carries a new total from the bound listener.
type StepsMsg int

type addedMsg struct {
	total int
	err   error
}

type stepsKeyMap struct {
	Add  key.Binding
	Quit key.Binding
	Help key.Binding
}

func (k stepsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Quit, k.Help}
}

func (k stepsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Add}, {k.Quit, k.Help}}
}

func defaultStepsKeyMap(increment int) stepsKeyMap {
	return stepsKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "+"),
			key.WithHelp("a", fmt.Sprintf("add %d steps", increment)),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// StepsModel shows today's steps against the goal and refreshes whenever
// the daemon publishes a new total.
type StepsModel struct {
	source    StepSource
	updates   <-chan int
	total     int
	goal      int
	strideCm  float64
	increment int
	bar       progress.Model
	help      help.Model
	keys      stepsKeyMap
	err       error
}

func NewStepsModel(source StepSource, updates <-chan int, total, goal int, strideCm float64, increment int) StepsModel {
	return StepsModel{
		source:    source,
		updates:   updates,
		total:     total,
		goal:      goal,
		strideCm:  strideCm,
		increment: increment,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:      help.New(),
		keys:      defaultStepsKeyMap(increment),
	}
}

func waitForSteps(updates <-chan int) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-updates
		if !ok {
			return nil
		}
		return StepsMsg(n)
	}
}

func (m StepsModel) Init() tea.Cmd {
	return waitForSteps(m.updates)
}

func (m StepsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StepsMsg:
		m.total = int(msg)
		m.err = nil
		return m, waitForSteps(m.updates)
	case addedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.total = msg.total
			m.err = nil
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-8, 10), 60)
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Add):
			source, n := m.source, m.increment
			return m, func() tea.Msg {
				total, err := source.AddManualSteps(n)
				return addedMsg{total: total, err: err}
			}
		}
	}
	return m, nil
}

func (m StepsModel) Total() int { return m.total }

func (m StepsModel) View() string {
	data := models.NewStepData("", m.total, m.strideCm, time.Time{})
	pct := models.Percentage(m.total, m.goal)

	s := titleStyle.Render("Steps today") + "\n\n"
	s += fmt.Sprintf("%d / %d steps\n", m.total, m.goal)
	s += m.bar.ViewAs(float64(pct)/100) + "\n\n"
	s += mutedStyle.Render(fmt.Sprintf("%.2f km · %.0f kcal · %d active min", data.DistanceKm, data.Calories, data.ActiveMinutes)) + "\n"
	if pct >= 100 {
		s += SuccessStyle.Render("Goal reached!") + "\n"
	}
	if m.err != nil {
		s += dangerStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	s += "\n" + m.help.View(m.keys)
	return docStyle.Render(s)
}

// RunStepsWatch binds a live view to source until the user quits.
func RunStepsWatch(source StepSource, goal int, strideCm float64, increment int) error {
	updates := make(chan int, 16)
	total := source.Bind(func(n int) {
		select {
		case updates <- n:
		default:
		}
	})
	defer source.Unbind()

	m := NewStepsModel(source, updates, total, goal, strideCm, increment)
	_, err := tea.NewProgram(m).Run()
	return err
}
