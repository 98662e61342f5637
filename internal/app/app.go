package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kulugbekwork/lema/internal/coursegen"
	"github.com/kulugbekwork/lema/internal/lessongen"
	"github.com/kulugbekwork/lema/internal/router"
	"github.com/kulugbekwork/lema/internal/screen"
	"github.com/kulugbekwork/lema/internal/screens/home"
	"github.com/kulugbekwork/lema/internal/store"
	"github.com/kulugbekwork/lema/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	st     *store.Store
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(st *store.Store, courseSvc *coursegen.Service, lessonSvc *lessongen.Service) AppModel {
	homeScreen := home.New(st, courseSvc, lessonSvc)
	return AppModel{
		router: router.New(homeScreen),
		st:     st,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
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

	header := layout.RenderHeader(title, m.plan(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
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

// plan reads the current entitlement for the header badge so webhook
// driven changes show up without a restart.
func (m AppModel) plan() string {
	profile, err := m.st.Profiles().Local(context.Background())
	if err != nil || !profile.Premium {
		return "free"
	}
	return "premium"
}

// Run starts the Bubble Tea program.
func Run(st *store.Store, courseSvc *coursegen.Service, lessonSvc *lessongen.Service) error {
	p := tea.NewProgram(newAppModel(st, courseSvc, lessonSvc))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
