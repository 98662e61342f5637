package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepo tracks lesson completion per profile.
type ProgressRepo interface {
	// MarkCompleted upserts a completed progress row for the lesson.
	MarkCompleted(ctx context.Context, profileID, lessonID string) error

	// Touch upserts the last-accessed timestamp without changing completion.
	Touch(ctx context.Context, profileID, lessonID string) error

	// ForLessons returns the profile's progress rows for the given lesson
	// IDs, keyed by lesson ID.
	ForLessons(ctx context.Context, profileID string, lessonIDs []string) (map[string]Progress, error)
}

type progressRepo struct {
	db *gorm.DB
}

func (r *progressRepo) MarkCompleted(ctx context.Context, profileID, lessonID string) error {
	now := time.Now()
	p := Progress{
		ProfileID:      profileID,
		LessonID:       lessonID,
		Completed:      true,
		CompletedAt:    &now,
		LastAccessedAt: now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "profile_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"completed", "completed_at", "last_accessed_at",
		}),
	}).Create(&p).Error
}

func (r *progressRepo) Touch(ctx context.Context, profileID, lessonID string) error {
	p := Progress{
		ProfileID:      profileID,
		LessonID:       lessonID,
		LastAccessedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_accessed_at"}),
	}).Create(&p).Error
}

func (r *progressRepo) ForLessons(ctx context.Context, profileID string, lessonIDs []string) (map[string]Progress, error) {
	out := make(map[string]Progress, len(lessonIDs))
	if len(lessonIDs) == 0 {
		return out, nil
	}

	var rows []Progress
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND lesson_id IN ?", profileID, lessonIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, p := range rows {
		out[p.LessonID] = p
	}
	return out, nil
}
