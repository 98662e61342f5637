package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kulugbekwork/lema/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"), logger.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLocalProfileIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.Profiles().Local(ctx)
	if err != nil {
		t.Fatalf("first Local: %v", err)
	}
	second, err := st.Profiles().Local(ctx)
	if err != nil {
		t.Fatalf("second Local: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("Local created a second profile: %s vs %s", first.ID, second.ID)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Profiles().GetByID(context.Background(), "missing")
	if err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSetEntitlementOverwritesPremiumKeepsIDs(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p, _ := st.Profiles().Local(ctx)

	granted, err := st.Profiles().SetEntitlement(ctx, p.ID, true, "cust_1", "sub_1")
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if !granted.Premium || granted.BillingCustomerID != "cust_1" || granted.BillingSubscriptionID != "sub_1" {
		t.Fatalf("granted = %+v", granted)
	}

	// Revocation with empty IDs drops premium but keeps the stored
	// billing identifiers for the portal redirect.
	revoked, err := st.Profiles().SetEntitlement(ctx, p.ID, false, "", "")
	if err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked.Premium {
		t.Error("premium not revoked")
	}
	if revoked.BillingCustomerID != "cust_1" || revoked.BillingSubscriptionID != "sub_1" {
		t.Errorf("billing IDs lost on revoke: %+v", revoked)
	}
}

func TestSetEntitlementUnknownProfile(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Profiles().SetEntitlement(context.Background(), "ghost", true, "", "")
	if err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAnswerUpsertReplaces(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p, _ := st.Profiles().Local(ctx)

	a := &Answer{ProfileID: p.ID, QuestionID: "q1", SelectedAnswer: "a", IsCorrect: false}
	if err := st.Answers().Upsert(ctx, a); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	b := &Answer{ProfileID: p.ID, QuestionID: "q1", SelectedAnswer: "c", IsCorrect: true}
	if err := st.Answers().Upsert(ctx, b); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := st.Answers().ForQuestions(ctx, p.ID, []string{"q1"})
	if err != nil {
		t.Fatalf("ForQuestions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	if got["q1"].SelectedAnswer != "c" || !got["q1"].IsCorrect {
		t.Errorf("answer = %+v", got["q1"])
	}
}

func TestProgressTouchThenComplete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p, _ := st.Profiles().Local(ctx)

	if err := st.Progresses().Touch(ctx, p.ID, "l1"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	got, _ := st.Progresses().ForLessons(ctx, p.ID, []string{"l1"})
	if got["l1"].Completed {
		t.Error("touch must not mark completed")
	}

	if err := st.Progresses().MarkCompleted(ctx, p.ID, "l1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	got, _ = st.Progresses().ForLessons(ctx, p.ID, []string{"l1"})
	if !got["l1"].Completed || got["l1"].CompletedAt == nil {
		t.Errorf("progress = %+v", got["l1"])
	}

	// A later touch must not clear completion.
	if err := st.Progresses().Touch(ctx, p.ID, "l1"); err != nil {
		t.Fatalf("second touch: %v", err)
	}
	got, _ = st.Progresses().ForLessons(ctx, p.ID, []string{"l1"})
	if !got["l1"].Completed {
		t.Error("touch cleared completion")
	}
}

func TestCourseTreeDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p, _ := st.Profiles().Local(ctx)

	course := &Course{ProfileID: p.ID, Title: "Go", Goal: "learn go"}
	if err := st.Courses().Create(ctx, course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	mod := &Module{CourseID: course.ID, Title: "Basics", OrderIndex: 0}
	if err := st.Courses().CreateModule(ctx, mod); err != nil {
		t.Fatalf("create module: %v", err)
	}
	les := &Lesson{ModuleID: mod.ID, Title: "Syntax", OrderIndex: 0}
	if err := st.Courses().CreateLesson(ctx, les); err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	if err := st.Lessons().InsertSlide(ctx, &Slide{LessonID: les.ID, SlideNumber: 1, Title: "Hello"}); err != nil {
		t.Fatalf("insert slide: %v", err)
	}

	if err := st.Courses().Delete(ctx, course.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := st.Courses().Get(ctx, course.ID); err != ErrNotFound {
		t.Errorf("course still present: %v", err)
	}
	slides, err := st.Lessons().Slides(ctx, les.ID)
	if err != nil {
		t.Fatalf("slides: %v", err)
	}
	if len(slides) != 0 {
		t.Errorf("slides left behind: %d", len(slides))
	}
}

func TestReset(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	p, _ := st.Profiles().Local(ctx)

	course := &Course{ProfileID: p.ID, Title: "Go", Goal: "learn go"}
	if err := st.Courses().Create(ctx, course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	st.Profiles().IncrementCoursesCreated(ctx, p.ID)
	st.Answers().Upsert(ctx, &Answer{ProfileID: p.ID, QuestionID: "q1", SelectedAnswer: "a"})
	st.Progresses().Touch(ctx, p.ID, "l1")

	if err := st.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	courses, _ := st.Courses().ListByProfile(ctx, p.ID)
	if len(courses) != 0 {
		t.Errorf("courses remain: %d", len(courses))
	}
	answers, _ := st.Answers().ForQuestions(ctx, p.ID, []string{"q1"})
	if len(answers) != 0 {
		t.Error("answers remain")
	}
	after, _ := st.Profiles().GetByID(ctx, p.ID)
	if after == nil || after.CoursesCreated != 0 {
		t.Errorf("profile counter not reset: %+v", after)
	}
	// Profile itself survives a reset.
	if after.ID != p.ID {
		t.Error("profile deleted by reset")
	}
}
