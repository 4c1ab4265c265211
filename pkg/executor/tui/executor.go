package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartshare/panel/pkg/history"
	"github.com/smartshare/panel/pkg/panel"
	"github.com/smartshare/panel/pkg/render"
	"github.com/smartshare/panel/pkg/types"
)

// Executor runs the panel controller behind an interactive terminal
// interface and blocks until the user exits.
type Executor struct {
	controller *panel.Controller
	program    *tea.Program
	settings   types.SummarizationSettings
}

// NewExecutor creates a TUI executor for the given controller.
func NewExecutor(controller *panel.Controller, settings types.SummarizationSettings) *Executor {
	return &Executor{controller: controller, settings: settings}
}

// Run starts the controller and the TUI program. The controller is shut
// down when the program exits.
func (e *Executor) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go e.controller.Run(runCtx)

	renderer, err := render.NewTerminal(80)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &model{
		spinner:  sp,
		channels: e.controller.Channels(),
		renderer: renderer,
		state:    types.StateInitializing,
		settings: e.settings,
	}
	if hist := e.controller.History(); hist != nil {
		m.entries = func() ([]history.Entry, error) { return hist.List() }
	}

	e.program = tea.NewProgram(m, tea.WithAltScreen())

	go func() {
		// Forward controller events into the TUI; the channel closes when
		// the controller stops.
		for event := range e.controller.Channels().Event {
			e.program.Send(event)
		}
		e.program.Send(controllerStoppedMsg{})
	}()

	_, runErr := e.program.Run()

	// Stop the controller; its event channel closes, ending the forwarder.
	cancel()
	if runErr != nil {
		return fmt.Errorf("running TUI program: %w", runErr)
	}
	return nil
}
