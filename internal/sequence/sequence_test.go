package sequence

import (
	"errors"
	"testing"

	"github.com/kulugbekwork/lema/internal/store"
)

func slide(id string, n int) store.Slide {
	return store.Slide{ID: id, SlideNumber: n, Title: "slide " + id}
}

func question(id string, n int, correct string) store.Question {
	return store.Question{ID: id, SlideNumber: n, CorrectAnswer: correct}
}

func TestBuild_InterleavesQuestionsAfterSlides(t *testing.T) {
	slides := []store.Slide{slide("s1", 1), slide("s2", 2), slide("s3", 3)}
	questions := []store.Question{question("q1", 2, "a")}

	seq := Build(slides, questions, nil)

	if seq.Len() != 4 {
		t.Fatalf("len = %d, want 4", seq.Len())
	}

	wantKinds := []Kind{KindSlide, KindSlide, KindQuestion, KindSlide}
	wantPos := []float64{1, 2, 2.5, 3}
	for i, it := range seq.items {
		if it.Kind != wantKinds[i] {
			t.Errorf("item %d kind = %v, want %v", i, it.Kind, wantKinds[i])
		}
		if it.Position != wantPos[i] {
			t.Errorf("item %d position = %v, want %v", i, it.Position, wantPos[i])
		}
	}
}

func TestBuild_GapTolerantSlideNumbers(t *testing.T) {
	slides := []store.Slide{slide("s1", 1), slide("s5", 5), slide("s9", 9)}
	questions := []store.Question{question("q1", 5, "b")}

	seq := Build(slides, questions, nil)

	if seq.Len() != 4 {
		t.Fatalf("len = %d, want 4", seq.Len())
	}
	// Question at 5.5 lands between slide 5 and slide 9.
	if seq.items[2].Kind != KindQuestion {
		t.Errorf("item 2 should be the question, got kind %v", seq.items[2].Kind)
	}
}

func TestBuild_StableOrderForTiedQuestions(t *testing.T) {
	slides := []store.Slide{slide("s1", 1)}
	questions := []store.Question{
		question("qa", 1, "a"),
		question("qb", 1, "b"),
	}

	seq := Build(slides, questions, nil)

	if seq.items[1].Question.ID != "qa" || seq.items[2].Question.ID != "qb" {
		t.Errorf("tied questions reordered: %s, %s",
			seq.items[1].Question.ID, seq.items[2].Question.ID)
	}
}

func TestCurrent_EmptySequence(t *testing.T) {
	seq := Build(nil, nil, nil)
	if _, ok := seq.Current(); ok {
		t.Error("empty sequence should have no current item")
	}
	if seq.Advance() {
		t.Error("advance on empty sequence should be a no-op")
	}
	if seq.CanComplete() {
		t.Error("empty sequence should not be completable")
	}
}

func TestAdvance_BlockedByUnansweredQuestion(t *testing.T) {
	slides := []store.Slide{slide("s1", 1), slide("s2", 2), slide("s3", 3)}
	questions := []store.Question{question("q1", 2, "a")}
	seq := Build(slides, questions, nil)

	if !seq.Advance() { // s1 → s2
		t.Fatal("advance from slide should succeed")
	}
	if !seq.Advance() { // s2 → q1
		t.Fatal("advance onto question should succeed")
	}
	if seq.Advance() {
		t.Fatal("advance past unanswered question must be a no-op")
	}
	if seq.Cursor() != 2 {
		t.Fatalf("cursor moved to %d despite gate", seq.Cursor())
	}

	if _, err := seq.SubmitAnswer("b"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !seq.Advance() {
		t.Fatal("advance after answering should succeed")
	}
	cur, _ := seq.Current()
	if cur.Kind != KindSlide || cur.Slide.ID != "s3" {
		t.Errorf("expected slide s3 after question, got %+v", cur)
	}
}

func TestAdvance_ClampedAtEnd(t *testing.T) {
	seq := Build([]store.Slide{slide("s1", 1)}, nil, nil)
	if seq.Advance() {
		t.Error("advance at last index should be a no-op")
	}
	if !seq.AtEnd() {
		t.Error("single-item sequence starts at end")
	}
}

func TestRetreat_AlwaysPermittedAndClamped(t *testing.T) {
	slides := []store.Slide{slide("s1", 1), slide("s2", 2)}
	questions := []store.Question{question("q1", 2, "a")}
	seq := Build(slides, questions, nil)

	if seq.Retreat() {
		t.Error("retreat at index 0 should be a no-op")
	}

	seq.Advance()
	seq.Advance() // on q1, unanswered
	if !seq.Retreat() {
		t.Error("retreat from unanswered question must be permitted")
	}
	if seq.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", seq.Cursor())
	}
}

func TestSubmitAnswer_ComputesCorrectness(t *testing.T) {
	questions := []store.Question{question("q1", 1, "c")}
	seq := Build([]store.Slide{slide("s1", 1)}, questions, nil)
	seq.Advance()

	state, err := seq.SubmitAnswer("C")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !state.Correct {
		t.Error("case-insensitive match should be correct")
	}
	if state.Selected != "c" {
		t.Errorf("selected = %q, want normalized %q", state.Selected, "c")
	}
}

func TestSubmitAnswer_OnSlideRejected(t *testing.T) {
	seq := Build([]store.Slide{slide("s1", 1)}, nil, nil)
	if _, err := seq.SubmitAnswer("a"); !errors.Is(err, ErrNotQuestion) {
		t.Fatalf("expected ErrNotQuestion, got: %v", err)
	}
}

func TestSubmitAnswer_SecondSubmissionRejected(t *testing.T) {
	questions := []store.Question{question("q1", 1, "a")}
	seq := Build([]store.Slide{slide("s1", 1)}, questions, nil)
	seq.Advance()

	if _, err := seq.SubmitAnswer("b"); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := seq.SubmitAnswer("a"); !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got: %v", err)
	}

	// Recorded state still reflects the first submission.
	state, ok := seq.AnswerFor("q1")
	if !ok || state.Selected != "b" || state.Correct {
		t.Errorf("state = %+v, want first submission preserved", state)
	}
}

func TestBuild_SeedsPersistedAnswers(t *testing.T) {
	slides := []store.Slide{slide("s1", 1), slide("s2", 2)}
	questions := []store.Question{question("q1", 1, "a")}
	answered := map[string]store.Answer{
		"q1": {QuestionID: "q1", SelectedAnswer: "a", IsCorrect: true},
	}
	seq := Build(slides, questions, answered)

	seq.Advance() // onto q1
	if seq.Blocked() {
		t.Error("previously answered question must not block")
	}
	if !seq.Advance() {
		t.Error("advance past seeded answer should succeed")
	}

	state, ok := seq.AnswerFor("q1")
	if !ok || !state.Correct || state.Selected != "a" {
		t.Errorf("seeded state = %+v", state)
	}

	// A seeded answer is locked like a session answer.
	seq.Retreat()
	if _, err := seq.SubmitAnswer("b"); !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered for seeded question, got: %v", err)
	}
}

func TestCanComplete_GateRequiresEndAndAllAnswered(t *testing.T) {
	slides := []store.Slide{slide("s1", 1), slide("s2", 2)}
	questions := []store.Question{question("q1", 2, "a")}
	seq := Build(slides, questions, nil)

	if seq.CanComplete() {
		t.Error("not at end: complete must be unavailable")
	}

	seq.Advance() // s2
	seq.Advance() // q1 (last item), unanswered

	if !seq.AtEnd() {
		t.Fatal("expected cursor at end")
	}
	// Dead end: at the last item with an unanswered question neither
	// advancing nor completing is available.
	if seq.Advance() {
		t.Error("advance at end must be a no-op")
	}
	if seq.CanComplete() {
		t.Error("unanswered question at end must block completion")
	}

	if _, err := seq.SubmitAnswer("a"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !seq.CanComplete() {
		t.Error("complete must be available once all questions answered")
	}
}

func TestQuestionCounts(t *testing.T) {
	slides := []store.Slide{slide("s1", 1), slide("s2", 2), slide("s3", 3)}
	questions := []store.Question{question("q1", 1, "a"), question("q2", 3, "b")}
	seq := Build(slides, questions, nil)

	if seq.Len() != 5 {
		t.Errorf("len = %d, want slides+questions = 5", seq.Len())
	}
	if seq.QuestionsTotal() != 2 {
		t.Errorf("total = %d, want 2", seq.QuestionsTotal())
	}
	if seq.QuestionsAnswered() != 0 {
		t.Errorf("answered = %d, want 0", seq.QuestionsAnswered())
	}

	seq.Advance() // q1
	seq.SubmitAnswer("a")
	if seq.QuestionsAnswered() != 1 {
		t.Errorf("answered = %d, want 1", seq.QuestionsAnswered())
	}
	if seq.AllAnswered() {
		t.Error("one question still unanswered")
	}
}
