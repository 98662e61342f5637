package lesson

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kulugbekwork/lema/internal/lessongen"
	"github.com/kulugbekwork/lema/internal/marklite"
	"github.com/kulugbekwork/lema/internal/router"
	"github.com/kulugbekwork/lema/internal/screen"
	"github.com/kulugbekwork/lema/internal/sequence"
	"github.com/kulugbekwork/lema/internal/store"
	"github.com/kulugbekwork/lema/internal/ui/components"
	"github.com/kulugbekwork/lema/internal/ui/layout"
	"github.com/kulugbekwork/lema/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// LessonScreen plays one lesson as an ordered walk of slides and quiz
// questions. Forward movement is blocked by unanswered questions;
// finishing requires reaching the end with every question answered.
type LessonScreen struct {
	st        *store.Store
	svc       *lessongen.Service
	profileID string
	lesson    store.Lesson

	seq      *sequence.Sequence
	mc       components.MultiChoice
	onChoice bool

	loading  bool
	frame    int
	finished bool
	notice   string
	errMsg   string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates the lesson player for one lesson.
func New(st *store.Store, svc *lessongen.Service, profileID string, lesson store.Lesson) *LessonScreen {
	return &LessonScreen{
		st:        st,
		svc:       svc,
		profileID: profileID,
		lesson:    lesson,
		loading:   true,
	}
}

func (l *LessonScreen) Init() tea.Cmd {
	return tea.Batch(l.loadContent(), l.spinnerTick())
}

func (l *LessonScreen) Title() string {
	return l.lesson.Title
}

func (l *LessonScreen) KeyHints() []layout.KeyHint {
	if l.loading || l.errMsg != "" {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if l.finished {
		return []layout.KeyHint{{Key: "Esc", Description: "Back to course"}}
	}
	hints := []layout.KeyHint{{Key: "←/→", Description: "Navigate"}}
	if l.onChoice {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Answer"})
	}
	if l.seq != nil && l.seq.CanComplete() {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Finish lesson"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	return hints
}

func (l *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !l.loading {
			return l, nil
		}
		l.frame++
		return l, l.spinnerTick()

	case contentReadyMsg:
		l.loading = false
		if msg.Err != nil {
			l.errMsg = "Could not prepare this lesson. Go back and try again."
			return l, nil
		}
		l.seq = sequence.Build(msg.Slides, msg.Questions, msg.Answers)
		if l.seq.Empty() {
			l.errMsg = "This lesson has no content yet."
			return l, nil
		}
		l.syncChoice()
		return l, nil

	case answerSavedMsg:
		if msg.Err != nil {
			l.notice = "Answer could not be saved; progress may not survive a restart."
		}
		return l, nil

	case completedMsg:
		if msg.Err != nil {
			l.notice = "Could not record completion."
			return l, nil
		}
		l.finished = true
		return l, nil

	case tea.KeyMsg:
		return l.handleKey(msg)
	}

	return l, nil
}

func (l *LessonScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "esc" {
		return l, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if l.loading || l.errMsg != "" || l.finished || l.seq == nil {
		return l, nil
	}

	l.notice = ""

	switch msg.String() {
	case "left", "h":
		if l.seq.Retreat() {
			l.syncChoice()
		}
		return l, nil

	case "right", "l":
		return l, l.forward()
	}

	if l.onChoice && !l.mc.Locked {
		wasLocked := l.mc.Locked
		var cmd tea.Cmd
		l.mc, cmd = l.mc.Update(msg)
		if !wasLocked && l.mc.Locked {
			return l, tea.Batch(cmd, l.submitAnswer(l.mc.Chosen))
		}
		return l, cmd
	}

	if msg.String() == "enter" {
		return l, l.forward()
	}

	return l, nil
}

// forward advances the cursor, or finishes the lesson at the end.
func (l *LessonScreen) forward() tea.Cmd {
	if l.seq.Blocked() {
		l.notice = "Answer the question to continue."
		return nil
	}
	if l.seq.AtEnd() {
		if l.seq.CanComplete() {
			return l.complete()
		}
		l.notice = "Answer every question to finish the lesson."
		return nil
	}
	l.seq.Advance()
	l.syncChoice()
	return nil
}

// syncChoice rebuilds the multi-choice component for the current item,
// restoring the locked state for questions answered earlier.
func (l *LessonScreen) syncChoice() {
	item, ok := l.seq.Current()
	if !ok || item.Kind != sequence.KindQuestion {
		l.onChoice = false
		return
	}

	q := item.Question
	l.mc = components.NewMultiChoice(
		q.QuestionText,
		[]string{q.OptionA, q.OptionB, q.OptionC, q.OptionD},
		q.CorrectAnswer,
	)
	l.mc.Explanation = q.Explanation
	if state, answered := l.seq.AnswerFor(q.ID); answered {
		l.mc.Lock(state.Selected)
	}
	l.onChoice = true
}

func (l *LessonScreen) View(width, height int) string {
	if l.loading {
		spinner := spinnerFrames[l.frame%len(spinnerFrames)]
		return centered(width, height,
			lipgloss.NewStyle().Foreground(theme.Secondary).Render(spinner+" Writing your lesson...")+
				"\n\n"+theme.Hint.Render("First visits take a moment while the content is generated."))
	}
	if l.errMsg != "" {
		return centered(width, height, lipgloss.NewStyle().Foreground(theme.Error).Render(l.errMsg))
	}
	if l.finished {
		return centered(width, height,
			theme.Correct.Render("Lesson complete ✓")+"\n\n"+
				theme.Hint.Render("Press Esc to go back to the course."))
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Step %d of %d  ·  Questions %d/%d",
			l.seq.Cursor()+1, l.seq.Len(),
			l.seq.QuestionsAnswered(), l.seq.QuestionsTotal())))
	b.WriteString("\n\n")

	contentWidth := min(width-8, 76)
	item, _ := l.seq.Current()

	var body string
	if item.Kind == sequence.KindSlide {
		slide := item.Slide
		body = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(slide.Title) +
			"\n\n" + marklite.Render(slide.Content, contentWidth)
	} else {
		body = l.mc.View()
	}

	card := theme.Card.Width(contentWidth + 4).Render(body)
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card))

	if l.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(l.notice))
	} else if l.seq.CanComplete() {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("All done. Press Enter to finish the lesson."))
	}

	return b.String()
}

// loadContent generates the lesson on first visit, then loads slides,
// questions and previously saved answers. Touching progress records
// the visit for "last accessed" ordering.
func (l *LessonScreen) loadContent() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		slides, questions, err := l.svc.Ensure(ctx, l.lesson.ID)
		if err != nil {
			return contentReadyMsg{Err: err}
		}

		ids := make([]string, len(questions))
		for i, q := range questions {
			ids[i] = q.ID
		}
		answers, err := l.st.Answers().ForQuestions(ctx, l.profileID, ids)
		if err != nil {
			return contentReadyMsg{Err: err}
		}

		_ = l.st.Progresses().Touch(ctx, l.profileID, l.lesson.ID)

		return contentReadyMsg{Slides: slides, Questions: questions, Answers: answers}
	}
}

func (l *LessonScreen) submitAnswer(chosen string) tea.Cmd {
	item, ok := l.seq.Current()
	if !ok || item.Kind != sequence.KindQuestion {
		return nil
	}
	state, err := l.seq.SubmitAnswer(chosen)
	if err != nil {
		return nil
	}
	questionID := item.Question.ID
	return func() tea.Msg {
		return answerSavedMsg{Err: l.st.Answers().Upsert(context.Background(), &store.Answer{
			ProfileID:      l.profileID,
			QuestionID:     questionID,
			SelectedAnswer: state.Selected,
			IsCorrect:      state.Correct,
		})}
	}
}

func (l *LessonScreen) complete() tea.Cmd {
	return func() tea.Msg {
		return completedMsg{Err: l.st.Progresses().MarkCompleted(context.Background(), l.profileID, l.lesson.ID)}
	}
}

func (l *LessonScreen) spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func centered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
