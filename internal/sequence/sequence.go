package sequence

import (
	"errors"
	"sort"
	"strings"

	"github.com/kulugbekwork/lema/internal/store"
)

// ErrNotQuestion is returned when SubmitAnswer is called while the
// cursor is on a slide.
var ErrNotQuestion = errors.New("current item is not a question")

// ErrAlreadyAnswered is returned when SubmitAnswer is called for a
// question that already has a recorded answer.
var ErrAlreadyAnswered = errors.New("question already answered")

// Kind tags a sequence item as a slide or a question.
type Kind int

const (
	KindSlide Kind = iota
	KindQuestion
)

// Item is one entry in the linearized lesson walk. Exactly one of
// Slide or Question is set, matching Kind.
type Item struct {
	Kind     Kind
	Position float64
	Slide    *store.Slide
	Question *store.Question
}

// AnswerState is the recorded outcome for one question.
type AnswerState struct {
	Selected string
	Correct  bool
}

// Sequence linearizes a lesson's slides and questions into one ordered,
// navigable walk with a single cursor. Slides sit at their slide number,
// questions at slide number + 0.5, so a question lands directly after
// the slide it tests. An unanswered question blocks all forward
// movement past it.
//
// The sequence holds answer state in memory only; persisting answers
// is the caller's job.
type Sequence struct {
	items   []Item
	cursor  int
	answers map[string]AnswerState // keyed by question ID
}

// Build constructs a Sequence from a lesson's slides and questions.
// answered seeds the in-memory state from previously persisted answers
// so locked options survive a reload. The sort is stable: position
// collisions keep input order rather than reordering unpredictably.
func Build(slides []store.Slide, questions []store.Question, answered map[string]store.Answer) *Sequence {
	items := make([]Item, 0, len(slides)+len(questions))
	for i := range slides {
		items = append(items, Item{
			Kind:     KindSlide,
			Position: float64(slides[i].SlideNumber),
			Slide:    &slides[i],
		})
	}
	for i := range questions {
		items = append(items, Item{
			Kind:     KindQuestion,
			Position: float64(questions[i].SlideNumber) + 0.5,
			Question: &questions[i],
		})
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Position < items[b].Position
	})

	answers := make(map[string]AnswerState, len(answered))
	for id, a := range answered {
		answers[id] = AnswerState{Selected: a.SelectedAnswer, Correct: a.IsCorrect}
	}

	return &Sequence{items: items, answers: answers}
}

// Len returns the total item count.
func (s *Sequence) Len() int { return len(s.items) }

// Empty reports whether the sequence has no content.
func (s *Sequence) Empty() bool { return len(s.items) == 0 }

// Cursor returns the current 0-based index.
func (s *Sequence) Cursor() int { return s.cursor }

// Current returns the item at the cursor, or false when the sequence
// is empty.
func (s *Sequence) Current() (Item, bool) {
	if s.Empty() {
		return Item{}, false
	}
	return s.items[s.cursor], true
}

// AtStart reports whether the cursor is on the first item.
func (s *Sequence) AtStart() bool { return s.cursor == 0 }

// AtEnd reports whether the cursor is on the last item.
func (s *Sequence) AtEnd() bool {
	return !s.Empty() && s.cursor == len(s.items)-1
}

// Blocked reports whether the current item is a question without a
// recorded answer. A blocked cursor cannot advance.
func (s *Sequence) Blocked() bool {
	cur, ok := s.Current()
	if !ok || cur.Kind != KindQuestion {
		return false
	}
	_, answered := s.answers[cur.Question.ID]
	return !answered
}

// Advance moves the cursor forward by one, clamped to the last index.
// It is a no-op returning false when blocked on an unanswered question
// or already at the end.
func (s *Sequence) Advance() bool {
	if s.Empty() || s.AtEnd() || s.Blocked() {
		return false
	}
	s.cursor++
	return true
}

// Retreat moves the cursor back by one, clamped to index 0. Always
// permitted.
func (s *Sequence) Retreat() bool {
	if s.cursor == 0 {
		return false
	}
	s.cursor--
	return true
}

// SubmitAnswer records the selected option for the current question.
// Correctness is computed against the question's stored correct option,
// never taken from the caller. Returns ErrNotQuestion when the cursor
// is on a slide and ErrAlreadyAnswered when state already exists.
func (s *Sequence) SubmitAnswer(option string) (AnswerState, error) {
	cur, ok := s.Current()
	if !ok || cur.Kind != KindQuestion {
		return AnswerState{}, ErrNotQuestion
	}
	if _, answered := s.answers[cur.Question.ID]; answered {
		return AnswerState{}, ErrAlreadyAnswered
	}

	option = strings.ToLower(option)
	state := AnswerState{
		Selected: option,
		Correct:  option == strings.ToLower(cur.Question.CorrectAnswer),
	}
	s.answers[cur.Question.ID] = state
	return state, nil
}

// AnswerFor returns the recorded state for a question ID.
func (s *Sequence) AnswerFor(questionID string) (AnswerState, bool) {
	state, ok := s.answers[questionID]
	return state, ok
}

// QuestionsTotal returns the number of questions in the sequence.
func (s *Sequence) QuestionsTotal() int {
	n := 0
	for _, it := range s.items {
		if it.Kind == KindQuestion {
			n++
		}
	}
	return n
}

// QuestionsAnswered returns how many questions have recorded answers.
func (s *Sequence) QuestionsAnswered() int {
	n := 0
	for _, it := range s.items {
		if it.Kind == KindQuestion {
			if _, ok := s.answers[it.Question.ID]; ok {
				n++
			}
		}
	}
	return n
}

// AllAnswered reports whether every question has a recorded answer.
func (s *Sequence) AllAnswered() bool {
	return s.QuestionsAnswered() == s.QuestionsTotal()
}

// CanComplete reports whether the lesson may be finished: cursor on the
// final item and every question answered. At the final item with an
// unanswered question somewhere, neither completing nor advancing is
// possible until it is answered.
func (s *Sequence) CanComplete() bool {
	return s.AtEnd() && s.AllAnswered()
}
