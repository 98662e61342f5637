package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kulugbekwork/lema/internal/ui/theme"
)

var optionLetters = []string{"a", "b", "c", "d"}

// MultiChoice is a four-option quiz question selector. Once an answer
// is submitted the component locks: the correct option turns green,
// a wrong pick turns red, and further input is ignored.
type MultiChoice struct {
	Question      string
	Options       []string
	CorrectLetter string
	Explanation   string

	Selected int
	Locked   bool
	Chosen   string
}

// NewMultiChoice creates an unanswered question component.
func NewMultiChoice(question string, options []string, correctLetter string) MultiChoice {
	return MultiChoice{
		Question:      question,
		Options:       options,
		CorrectLetter: strings.ToLower(correctLetter),
		Selected:      0,
	}
}

// Lock marks the question as already answered with the given letter,
// used when restoring a previously submitted answer.
func (m *MultiChoice) Lock(chosenLetter string) {
	m.Locked = true
	m.Chosen = strings.ToLower(chosenLetter)
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. Enter submits and locks the
// component; the caller reads Chosen afterwards to persist the answer.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "a", "b", "c", "d":
		for i, l := range optionLetters {
			if l == kmsg.String() && i < len(m.Options) {
				m.Selected = i
			}
		}
	case "enter":
		m.Locked = true
		m.Chosen = optionLetters[m.Selected]
	}

	return m, nil
}

// View renders the question with its options and, once locked, the
// outcome plus explanation.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		letter := optionLetters[i]
		prefix := "  "
		if i == m.Selected && !m.Locked {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, letter, opt)

		if m.Locked {
			switch {
			case letter == m.CorrectLetter:
				s += theme.Correct.Render(line) + "\n"
			case letter == m.Chosen:
				s += theme.Incorrect.Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == m.Selected {
				s += theme.Selected.Render(line) + "\n"
			} else {
				s += theme.Unselected.Render(line) + "\n"
			}
		}
	}

	if m.Locked {
		s += "\n"
		if m.IsCorrect() {
			s += theme.Correct.Render("Correct!") + "\n"
		} else {
			s += theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer is %s.", m.CorrectLetter)) + "\n"
		}
		if m.Explanation != "" {
			s += theme.Hint.Render(m.Explanation) + "\n"
		}
	}

	return s
}

// IsCorrect returns true if the submitted answer matches the correct option.
func (m MultiChoice) IsCorrect() bool {
	return m.Locked && m.Chosen == m.CorrectLetter
}
