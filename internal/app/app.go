package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/justinav/pamoka/internal/archive"
	"github.com/justinav/pamoka/internal/plan"
	"github.com/justinav/pamoka/internal/router"
	"github.com/justinav/pamoka/internal/screen"
	"github.com/justinav/pamoka/internal/screens/form"
	"github.com/justinav/pamoka/internal/screens/welcome"
	"github.com/justinav/pamoka/internal/ui/layout"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	PlanRepo archive.PlanRepo
	Settings *archive.Settings
	Session  *plan.Session

	// ModelID is shown in the header; empty when no provider is
	// configured.
	ModelID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	modelID string
	width   int
	height  int
}

// newAppModel creates the root model. The onboarding screen shows once;
// afterwards the app opens straight on the lesson form.
func newAppModel(opts Options) AppModel {
	formFactory := func() screen.Screen {
		return form.New(opts.Session, opts.PlanRepo)
	}

	var initial screen.Screen
	shown := false
	if opts.Settings != nil {
		_, shown, _ = opts.Settings.Get(context.Background(), archive.KeyWelcomeShown)
	}
	if shown {
		initial = formFactory()
	} else {
		initial = welcome.New(opts.Settings, formFactory)
	}

	return AppModel{
		router:  router.New(initial),
		modelID: opts.ModelID,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens that consume esc themselves (refinement input,
			// confirmation dialogs) get it first; the router only pops
			// when the active screen returned no command for it.
			if m.router.Depth() > 1 {
				if escConsumer, ok := m.router.Active().(EscHandler); ok && escConsumer.HandlesEsc() {
					break
				}
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// EscHandler lets a screen claim the esc key for its own state instead
// of triggering navigation back.
type EscHandler interface {
	HandlesEsc() bool
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.modelID, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Naviguoti"},
			{Key: "Enter", Description: "Pasirinkti"},
			{Key: "Ctrl+C", Description: "Išeiti"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
