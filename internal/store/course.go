package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// CourseRepo manages the course → module → lesson hierarchy.
type CourseRepo interface {
	// Create inserts the course row.
	Create(ctx context.Context, c *Course) error

	// CreateModule inserts a module row.
	CreateModule(ctx context.Context, m *Module) error

	// CreateLesson inserts a lesson row.
	CreateLesson(ctx context.Context, l *Lesson) error

	// ListByProfile returns a profile's courses, newest first.
	ListByProfile(ctx context.Context, profileID string) ([]Course, error)

	// Get fetches one course, ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Course, error)

	// Modules returns a course's modules in order.
	Modules(ctx context.Context, courseID string) ([]Module, error)

	// ModuleLessons returns a module's lessons in order.
	ModuleLessons(ctx context.Context, moduleID string) ([]Lesson, error)

	// CountByProfile returns the number of courses a profile currently has.
	CountByProfile(ctx context.Context, profileID string) (int64, error)

	// Delete removes a course and its content.
	Delete(ctx context.Context, id string) error
}

type courseRepo struct {
	db *gorm.DB
}

func (r *courseRepo) Create(ctx context.Context, c *Course) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *courseRepo) CreateModule(ctx context.Context, m *Module) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *courseRepo) CreateLesson(ctx context.Context, l *Lesson) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *courseRepo) ListByProfile(ctx context.Context, profileID string) ([]Course, error) {
	var out []Course
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *courseRepo) Get(ctx context.Context, id string) (*Course, error) {
	var c Course
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *courseRepo) Modules(ctx context.Context, courseID string) ([]Module, error) {
	var out []Module
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_index ASC").
		Find(&out).Error
	return out, err
}

func (r *courseRepo) ModuleLessons(ctx context.Context, moduleID string) ([]Lesson, error) {
	var out []Lesson
	err := r.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("order_index ASC").
		Find(&out).Error
	return out, err
}

func (r *courseRepo) CountByProfile(ctx context.Context, profileID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Course{}).
		Where("profile_id = ?", profileID).
		Count(&n).Error
	return n, err
}

// Delete removes the course tree bottom-up. There is no transaction around
// course creation either; the two paths share the same partial-failure
// posture (surfaced, not compensated).
func (r *courseRepo) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)

	modules, err := r.Modules(ctx, id)
	if err != nil {
		return err
	}
	for _, m := range modules {
		lessons, err := r.ModuleLessons(ctx, m.ID)
		if err != nil {
			return err
		}
		for _, l := range lessons {
			if err := db.Where("lesson_id = ?", l.ID).Delete(&Slide{}).Error; err != nil {
				return fmt.Errorf("delete slides: %w", err)
			}
			if err := db.Where("lesson_id = ?", l.ID).Delete(&Question{}).Error; err != nil {
				return fmt.Errorf("delete questions: %w", err)
			}
		}
		if err := db.Where("module_id = ?", m.ID).Delete(&Lesson{}).Error; err != nil {
			return fmt.Errorf("delete lessons: %w", err)
		}
	}
	if err := db.Where("course_id = ?", id).Delete(&Module{}).Error; err != nil {
		return fmt.Errorf("delete modules: %w", err)
	}
	return db.Delete(&Course{}, "id = ?", id).Error
}
