package store

import (
	"context"

	"gorm.io/gorm"
)

// LessonContext carries the human-readable strings handed to the content
// generator alongside a lesson title.
type LessonContext struct {
	Lesson Lesson
	Module Module
	Course Course
}

// LessonRepo manages lessons and their generated content.
type LessonRepo interface {
	// Get fetches one lesson, ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Lesson, error)

	// Context resolves the lesson together with its module and course.
	Context(ctx context.Context, lessonID string) (*LessonContext, error)

	// Slides returns a lesson's slides ordered by slide number.
	Slides(ctx context.Context, lessonID string) ([]Slide, error)

	// Questions returns a lesson's questions ordered by slide number.
	Questions(ctx context.Context, lessonID string) ([]Question, error)

	// InsertSlide persists one generated slide.
	InsertSlide(ctx context.Context, s *Slide) error

	// InsertQuestion persists one generated question.
	InsertQuestion(ctx context.Context, q *Question) error

	// MarkContentGenerated flips the lesson's content flag.
	MarkContentGenerated(ctx context.Context, lessonID string) error
}

type lessonRepo struct {
	db *gorm.DB
}

func (r *lessonRepo) Get(ctx context.Context, id string) (*Lesson, error) {
	var l Lesson
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (r *lessonRepo) Context(ctx context.Context, lessonID string) (*LessonContext, error) {
	lesson, err := r.Get(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	var mod Module
	if err := r.db.WithContext(ctx).First(&mod, "id = ?", lesson.ModuleID).Error; err != nil {
		return nil, notFound(err)
	}

	var course Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", mod.CourseID).Error; err != nil {
		return nil, notFound(err)
	}

	return &LessonContext{Lesson: *lesson, Module: mod, Course: course}, nil
}

func (r *lessonRepo) Slides(ctx context.Context, lessonID string) ([]Slide, error) {
	var out []Slide
	err := r.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("slide_number ASC").
		Find(&out).Error
	return out, err
}

func (r *lessonRepo) Questions(ctx context.Context, lessonID string) ([]Question, error) {
	var out []Question
	err := r.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("slide_number ASC").
		Find(&out).Error
	return out, err
}

func (r *lessonRepo) InsertSlide(ctx context.Context, s *Slide) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *lessonRepo) InsertQuestion(ctx context.Context, q *Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *lessonRepo) MarkContentGenerated(ctx context.Context, lessonID string) error {
	res := r.db.WithContext(ctx).Model(&Lesson{}).
		Where("id = ?", lessonID).
		Update("content_generated", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
