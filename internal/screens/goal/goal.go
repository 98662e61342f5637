package goal

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kulugbekwork/lema/internal/coursegen"
	"github.com/kulugbekwork/lema/internal/lessongen"
	"github.com/kulugbekwork/lema/internal/router"
	"github.com/kulugbekwork/lema/internal/screen"
	"github.com/kulugbekwork/lema/internal/screens/courses"
	"github.com/kulugbekwork/lema/internal/store"
	"github.com/kulugbekwork/lema/internal/ui/components"
	"github.com/kulugbekwork/lema/internal/ui/layout"
	"github.com/kulugbekwork/lema/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// GoalScreen asks the user what they want to learn and builds a course
// outline from the answer. Input is disabled while generation runs.
type GoalScreen struct {
	st         *store.Store
	courseSvc  *coursegen.Service
	lessonSvc  *lessongen.Service
	profileID  string
	input      components.TextInput
	generating bool
	frame      int
	errMsg     string
}

var _ screen.Screen = (*GoalScreen)(nil)
var _ screen.KeyHintProvider = (*GoalScreen)(nil)

// New creates a new GoalScreen.
func New(st *store.Store, courseSvc *coursegen.Service, lessonSvc *lessongen.Service, profileID string) *GoalScreen {
	return &GoalScreen{
		st:        st,
		courseSvc: courseSvc,
		lessonSvc: lessonSvc,
		profileID: profileID,
		input:     components.NewTextInput("e.g. Spanish for travel, intro to statistics...", 200),
	}
}

func (g *GoalScreen) Init() tea.Cmd {
	return g.input.Init()
}

func (g *GoalScreen) Title() string {
	return "New Course"
}

func (g *GoalScreen) KeyHints() []layout.KeyHint {
	if g.generating {
		return []layout.KeyHint{}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Create course"},
		{Key: "Esc", Description: "Back"},
	}
}

func (g *GoalScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !g.generating {
			return g, nil
		}
		g.frame++
		return g, g.spinnerTick()

	case courseCreatedMsg:
		g.generating = false
		if msg.Err != nil {
			g.errMsg = friendlyError(msg.Err)
			return g, nil
		}
		return g, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: courses.NewDetail(g.st, g.lessonSvc, g.profileID, *msg.Course),
			}
		}

	case tea.KeyMsg:
		if g.generating {
			return g, nil
		}
		switch msg.String() {
		case "esc":
			return g, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			goalText := g.input.Value()
			if goalText == "" {
				g.errMsg = "Tell me what you want to learn first."
				return g, nil
			}
			g.errMsg = ""
			g.generating = true
			return g, tea.Batch(g.createCourse(goalText), g.spinnerTick())
		}
	}

	if g.generating {
		return g, nil
	}
	var cmd tea.Cmd
	g.input, cmd = g.input.Update(msg)
	return g, cmd
}

func (g *GoalScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("What do you want to learn?"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Describe a goal and Lema will design a course for you."))
	b.WriteString("\n\n\n")

	inputBox := theme.Card.Width(min(width-4, 70)).Render(g.input.View())
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(inputBox))
	b.WriteString("\n\n")

	if g.generating {
		spinner := spinnerFrames[g.frame%len(spinnerFrames)]
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render(spinner + " Designing your course..."))
	} else if g.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(g.errMsg))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Render(b.String())
}

func (g *GoalScreen) createCourse(goalText string) tea.Cmd {
	return func() tea.Msg {
		course, err := g.courseSvc.Create(context.Background(), g.profileID, goalText)
		return courseCreatedMsg{Course: course, Err: err}
	}
}

func (g *GoalScreen) spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func friendlyError(err error) string {
	if errors.Is(err, coursegen.ErrCourseLimit) {
		return "The free plan includes one course. Upgrade to premium for unlimited courses."
	}
	if errors.Is(err, coursegen.ErrEmptyGoal) {
		return "Tell me what you want to learn first."
	}
	return "Course generation failed. Check your connection and try again."
}
