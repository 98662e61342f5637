package courses

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kulugbekwork/lema/internal/lessongen"
	"github.com/kulugbekwork/lema/internal/router"
	"github.com/kulugbekwork/lema/internal/screen"
	"github.com/kulugbekwork/lema/internal/store"
	"github.com/kulugbekwork/lema/internal/ui/layout"
	"github.com/kulugbekwork/lema/internal/ui/theme"
)

// ListScreen shows the profile's courses.
type ListScreen struct {
	st        *store.Store
	lessonSvc *lessongen.Service
	profileID string

	courses     []store.Course
	cursor      int
	loaded      bool
	deleteArmed bool
	errMsg      string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

// NewList creates the course list screen.
func NewList(st *store.Store, lessonSvc *lessongen.Service, profileID string) *ListScreen {
	return &ListScreen{
		st:        st,
		lessonSvc: lessonSvc,
		profileID: profileID,
	}
}

func (l *ListScreen) Init() tea.Cmd {
	return l.loadCourses()
}

func (l *ListScreen) Title() string {
	return "My Courses"
}

func (l *ListScreen) KeyHints() []layout.KeyHint {
	if l.deleteArmed {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete course"},
			{Key: "N", Description: "Keep it"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		l.loaded = true
		if msg.Err != nil {
			l.errMsg = "Could not load courses."
			return l, nil
		}
		l.courses = msg.Courses
		if l.cursor >= len(l.courses) {
			l.cursor = len(l.courses) - 1
		}
		if l.cursor < 0 {
			l.cursor = 0
		}
		return l, nil

	case courseDeletedMsg:
		if msg.Err != nil {
			l.errMsg = "Delete failed."
			return l, nil
		}
		return l, l.loadCourses()

	case tea.KeyMsg:
		if l.deleteArmed {
			switch msg.String() {
			case "y", "Y":
				l.deleteArmed = false
				return l, l.deleteCourse(l.courses[l.cursor].ID)
			default:
				l.deleteArmed = false
			}
			return l, nil
		}

		switch msg.String() {
		case "esc":
			return l, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
			}
		case "down", "j":
			if l.cursor < len(l.courses)-1 {
				l.cursor++
			}
		case "enter":
			if l.cursor < len(l.courses) {
				course := l.courses[l.cursor]
				return l, func() tea.Msg {
					return router.PushScreenMsg{
						Screen: NewDetail(l.st, l.lessonSvc, l.profileID, course),
					}
				}
			}
		case "d", "D":
			if l.cursor < len(l.courses) {
				l.deleteArmed = true
			}
		}
	}

	return l, nil
}

func (l *ListScreen) View(width, height int) string {
	if !l.loaded {
		return centered(width, height, theme.Hint.Render("Loading courses..."))
	}
	if l.errMsg != "" {
		return centered(width, height, lipgloss.NewStyle().Foreground(theme.Error).Render(l.errMsg))
	}
	if len(l.courses) == 0 {
		return centered(width, height,
			theme.Subtitle.Render("No courses yet.")+"\n\n"+
				theme.Hint.Render("Go back and pick NEW COURSE to start learning."))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("My Courses"))
	b.WriteString("\n\n")

	for i, c := range l.courses {
		line := fmt.Sprintf("%s\n%s", c.Title, c.Description)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		marker := "  "
		if i == l.cursor {
			style = theme.Selected
			marker = "▸ "
		}
		card := theme.Card.Width(min(width-4, 76)).Render(style.Render(marker + line))
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card))
		b.WriteString("\n")
	}

	if l.deleteArmed {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("Delete %q and all its progress? (y/n)", l.courses[l.cursor].Title)))
	}

	return b.String()
}

func (l *ListScreen) loadCourses() tea.Cmd {
	return func() tea.Msg {
		list, err := l.st.Courses().ListByProfile(context.Background(), l.profileID)
		return coursesLoadedMsg{Courses: list, Err: err}
	}
}

func (l *ListScreen) deleteCourse(id string) tea.Cmd {
	return func() tea.Msg {
		return courseDeletedMsg{Err: l.st.Courses().Delete(context.Background(), id)}
	}
}

func centered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
