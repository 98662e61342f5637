package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kulugbekwork/lema/internal/coursegen"
	"github.com/kulugbekwork/lema/internal/lessongen"
	"github.com/kulugbekwork/lema/internal/router"
	"github.com/kulugbekwork/lema/internal/screen"
	"github.com/kulugbekwork/lema/internal/screens/courses"
	"github.com/kulugbekwork/lema/internal/screens/goal"
	"github.com/kulugbekwork/lema/internal/store"
	"github.com/kulugbekwork/lema/internal/ui/components"
	"github.com/kulugbekwork/lema/internal/ui/layout"
	"github.com/kulugbekwork/lema/internal/ui/theme"
)

// HomeScreen is the main entry screen of the application.
type HomeScreen struct {
	menu        components.Menu
	premium     bool
	courseCount int64
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen wired to the local profile.
func New(st *store.Store, courseSvc *coursegen.Service, lessonSvc *lessongen.Service) *HomeScreen {
	ctx := context.Background()

	var premium bool
	var profileID string
	if profile, err := st.Profiles().Local(ctx); err == nil {
		premium = profile.Premium
		profileID = profile.ID
	}

	courseCount, _ := st.Courses().CountByProfile(ctx, profileID)

	items := []components.MenuItem{
		{Label: "NEW COURSE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: goal.New(st, courseSvc, lessonSvc, profileID)}
			}
		}},
		{Label: "MY COURSES", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: courses.NewList(st, lessonSvc, profileID)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:        components.NewMenu(items),
		premium:     premium,
		courseCount: courseCount,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("Lema"))
	sections = append(sections, theme.Subtitle.Width(width).Render("Learn anything, one lesson at a time"))
	sections = append(sections, "")

	plan := "free plan"
	if h.premium {
		plan = "premium"
	}
	stats := fmt.Sprintf("%s  ·  %d course(s)", plan, h.courseCount)
	sections = append(sections, lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(stats))
	sections = append(sections, "")

	menu := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(h.menu.View())
	sections = append(sections, menu)

	content := strings.Join(sections, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
