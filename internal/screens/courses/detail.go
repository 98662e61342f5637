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
	lessonscreen "github.com/kulugbekwork/lema/internal/screens/lesson"
	"github.com/kulugbekwork/lema/internal/store"
	"github.com/kulugbekwork/lema/internal/ui/layout"
	"github.com/kulugbekwork/lema/internal/ui/theme"
)

// lessonRow is one selectable lesson in the flattened course tree.
type lessonRow struct {
	moduleTitle string
	firstInMod  bool
	lesson      store.Lesson
	completed   bool
}

// DetailScreen shows one course's modules and lessons with completion
// marks, and opens the lesson player on selection.
type DetailScreen struct {
	st        *store.Store
	lessonSvc *lessongen.Service
	profileID string
	course    store.Course

	rows   []lessonRow
	cursor int
	loaded bool
	errMsg string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// NewDetail creates the course detail screen.
func NewDetail(st *store.Store, lessonSvc *lessongen.Service, profileID string, course store.Course) *DetailScreen {
	return &DetailScreen{
		st:        st,
		lessonSvc: lessonSvc,
		profileID: profileID,
		course:    course,
	}
}

func (d *DetailScreen) Init() tea.Cmd {
	return d.loadTree()
}

func (d *DetailScreen) Title() string {
	return d.course.Title
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start lesson"},
		{Key: "Esc", Description: "Back"},
	}
}

// progress is refreshed every time the screen regains focus, so
// completion marks stay current after a lesson finishes.
func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case treeLoadedMsg:
		d.loaded = true
		if msg.Err != nil {
			d.errMsg = "Could not load the course."
			return d, nil
		}
		d.rows = flatten(msg)
		if d.cursor >= len(d.rows) {
			d.cursor = 0
		}
		return d, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return d, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(d.rows)-1 {
				d.cursor++
			}
		case "enter":
			if d.cursor < len(d.rows) {
				row := d.rows[d.cursor]
				return d, func() tea.Msg {
					return router.PushScreenMsg{
						Screen: lessonscreen.New(d.st, d.lessonSvc, d.profileID, row.lesson),
					}
				}
			}
		case "r":
			return d, d.loadTree()
		}
	}

	return d, nil
}

func (d *DetailScreen) View(width, height int) string {
	if !d.loaded {
		return centered(width, height, theme.Hint.Render("Loading course..."))
	}
	if d.errMsg != "" {
		return centered(width, height, lipgloss.NewStyle().Foreground(theme.Error).Render(d.errMsg))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(d.course.Title))
	if d.course.Description != "" {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(width).Render(d.course.Description))
	}
	b.WriteString("\n\n")

	indent := strings.Repeat(" ", max((width-70)/2, 2))
	for i, row := range d.rows {
		if row.firstInMod {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(indent)
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(row.moduleTitle))
			b.WriteString("\n")
		}

		mark := "·"
		if row.completed {
			mark = "✓"
		}
		line := fmt.Sprintf("%s %s  (%d min)", mark, row.lesson.Title, row.lesson.DurationMinutes)

		b.WriteString(indent)
		if i == d.cursor {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else if row.completed {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("  " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (d *DetailScreen) loadTree() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		modules, err := d.st.Courses().Modules(ctx, d.course.ID)
		if err != nil {
			return treeLoadedMsg{Err: err}
		}

		lessons := make(map[string][]store.Lesson, len(modules))
		var lessonIDs []string
		for _, m := range modules {
			ls, err := d.st.Courses().ModuleLessons(ctx, m.ID)
			if err != nil {
				return treeLoadedMsg{Err: err}
			}
			lessons[m.ID] = ls
			for _, l := range ls {
				lessonIDs = append(lessonIDs, l.ID)
			}
		}

		progress, err := d.st.Progresses().ForLessons(ctx, d.profileID, lessonIDs)
		if err != nil {
			return treeLoadedMsg{Err: err}
		}

		return treeLoadedMsg{Modules: modules, Lessons: lessons, Progress: progress}
	}
}

func flatten(msg treeLoadedMsg) []lessonRow {
	var rows []lessonRow
	for _, m := range msg.Modules {
		first := true
		for _, l := range msg.Lessons[m.ID] {
			p, ok := msg.Progress[l.ID]
			rows = append(rows, lessonRow{
				moduleTitle: m.Title,
				firstInMod:  first,
				lesson:      l,
				completed:   ok && p.Completed,
			})
			first = false
		}
	}
	return rows
}
