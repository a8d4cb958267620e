package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type countMsg struct{}

// counter increments on countMsg and on "+", quits on "q".
type counter struct {
	n     int
	width int
}

func (c counter) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return countMsg{} },
		func() tea.Msg { return countMsg{} },
	)
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case countMsg:
		c.n++
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			return c, func() tea.Msg { return countMsg{} }
		case "q":
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c counter) View() string {
	return "count=" + string(rune('0'+c.n))
}

func TestDriver_DrainsBatchesAndFollowUps(t *testing.T) {
	d := New(t, counter{}, WithSize(80, 24))
	d.Init()
	assert.Equal(t, 80, d.Model.(counter).width)
	d.RequireViewContains("count=2")

	d.PressKey('+')
	d.RequireViewContains("count=3")
}

func TestDriver_QuitStopsFurtherInput(t *testing.T) {
	d := New(t, counter{})
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d.PressKey('+')
	assert.Equal(t, 0, d.Model.(counter).n)
}
