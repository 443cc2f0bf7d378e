package welcome

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/justinav/pamoka/internal/archive"
	"github.com/justinav/pamoka/internal/router"
	"github.com/justinav/pamoka/internal/screen"
	"github.com/justinav/pamoka/internal/ui/components"
	"github.com/justinav/pamoka/internal/ui/layout"
	"github.com/justinav/pamoka/internal/ui/theme"
)

const banner = `
 ██████╗  █████╗ ███╗   ███╗ ██████╗ ██╗  ██╗ █████╗
 ██╔══██╗██╔══██╗████╗ ████║██╔═══██╗██║ ██╔╝██╔══██╗
 ██████╔╝███████║██╔████╔██║██║   ██║█████╔╝ ███████║
 ██╔═══╝ ██╔══██║██║╚██╔╝██║██║   ██║██╔═██╗ ██╔══██║
 ██║     ██║  ██║██║ ╚═╝ ██║╚██████╔╝██║  ██╗██║  ██║
 ╚═╝     ╚═╝  ╚═╝╚═╝     ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝`

// WelcomeScreen is the one-time onboarding screen. It is only shown
// until the teacher continues past it once; the flag is persisted.
type WelcomeScreen struct {
	settings    *archive.Settings
	formFactory func() screen.Screen
	menu        components.Menu
	leaving     bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that transitions to the screen produced
// by formFactory.
func New(settings *archive.Settings, formFactory func() screen.Screen) *WelcomeScreen {
	w := &WelcomeScreen{
		settings:    settings,
		formFactory: formFactory,
	}

	w.menu = components.NewMenu([]components.MenuItem{
		{Label: "Pradėti", Action: w.transition},
		{Label: "Išeiti", Action: func() tea.Cmd { return tea.Quit }},
	})
	return w
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Naviguoti"},
		{Key: "Enter", Description: "Pasirinkti"},
		{Key: "Ctrl+C", Description: "Išeiti"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return nil
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	w.menu, cmd = w.menu.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.leaving {
		return nil
	}
	w.leaving = true

	// Persist best-effort; failure just means the screen shows again.
	if w.settings != nil {
		_ = w.settings.Set(context.Background(), archive.KeyWelcomeShown, "1")
	}

	formScreen := w.formFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: formScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Primary).Render(banner))
	sections = append(sections, "")

	tagline := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Pamokų planavimo asistentas mokytojams")
	sections = append(sections, tagline)
	sections = append(sections, "")

	intro := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(60).
		Render("Užpildykite pamokos informaciją, o asistentas parengs " +
			"diferencijuotą pamokos planą: veiklas, namų darbus ir įrašą " +
			"el. dienynui. Planą galite tikslinti, išsaugoti archyve ir " +
			"eksportuoti į PDF.")
	sections = append(sections, intro)
	sections = append(sections, "")

	sections = append(sections, w.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
