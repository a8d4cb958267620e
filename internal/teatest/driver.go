// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of running a tea.Program, the Driver calls Update directly and
// executes every returned Cmd in turn, feeding the resulting messages back
// until the queue is empty.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxSteps bounds how many messages a single Send may process.
const MaxSteps = 100

// cmdTimeout is how long a Cmd may run before it is abandoned. Timer-based
// Cmds such as cursor blinks never finish in time and are dropped.
const cmdTimeout = time.Second

// Driver wraps a tea.Model under test.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.Quit has been returned by the model.
	Quitting bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New creates a Driver. Call Init to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init runs the model's Init command to completion.
func (d *Driver) Init() {
	d.T.Helper()
	d.run(d.Model.Init())
}

// Send dispatches msg and runs the resulting commands to completion.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd)
}

// PressKey sends a rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Press sends a special key such as tea.KeyUp or tea.KeyCtrlC.
func (d *Driver) Press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// View returns the model's rendered output.
func (d *Driver) View() string {
	return d.Model.View()
}

// RequireViewContains fails the test unless the view contains every want.
func (d *Driver) RequireViewContains(want ...string) {
	d.T.Helper()
	view := d.View()
	for _, w := range want {
		if !strings.Contains(view, w) {
			d.T.Fatalf("view does not contain %q:\n%s", w, view)
		}
	}
}

func (d *Driver) run(first tea.Cmd) {
	d.T.Helper()
	queue := []tea.Cmd{first}
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= MaxSteps {
			d.T.Logf("teatest: step limit (%d) reached", MaxSteps)
			return
		}
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}

		msg, ok := execWithTimeout(cmd)
		if !ok || msg == nil || isBlink(msg) {
			continue
		}

		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			d.Quitting = true
			d.Model, _ = d.Model.Update(msg)
			return
		default:
			var next tea.Cmd
			d.Model, next = d.Model.Update(msg)
			queue = append(queue, next)
		}
	}
}

func execWithTimeout(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
