package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnswerRepo persists quiz answers with upsert-by-(profile,question)
// semantics: a second submission overwrites the first.
type AnswerRepo interface {
	// Upsert writes the answer, replacing any existing row for the same
	// profile and question.
	Upsert(ctx context.Context, a *Answer) error

	// ForQuestions returns the profile's answers for the given question IDs,
	// keyed by question ID. Used to re-derive locked option state on load.
	ForQuestions(ctx context.Context, profileID string, questionIDs []string) (map[string]Answer, error)
}

type answerRepo struct {
	db *gorm.DB
}

func (r *answerRepo) Upsert(ctx context.Context, a *Answer) error {
	a.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "profile_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_answer", "is_correct", "updated_at",
		}),
	}).Create(a).Error
}

func (r *answerRepo) ForQuestions(ctx context.Context, profileID string, questionIDs []string) (map[string]Answer, error) {
	out := make(map[string]Answer, len(questionIDs))
	if len(questionIDs) == 0 {
		return out, nil
	}

	var rows []Answer
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND question_id IN ?", profileID, questionIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, a := range rows {
		out[a.QuestionID] = a
	}
	return out, nil
}
