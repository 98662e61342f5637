package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ProfileRepo manages profiles and their entitlement state.
type ProfileRepo interface {
	// GetByID fetches a profile, ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*Profile, error)

	// GetByEmail fetches a profile by its stored email, ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*Profile, error)

	// Local returns the single local profile, creating it on first use.
	Local(ctx context.Context) (*Profile, error)

	// SetEntitlement overwrites the premium flag and, when non-empty, the
	// stored billing identifiers. This is the reconciler's write path.
	SetEntitlement(ctx context.Context, id string, premium bool, customerID, subscriptionID string) (*Profile, error)

	// IncrementCoursesCreated bumps the lifetime created-course counter.
	IncrementCoursesCreated(ctx context.Context, id string) error
}

type profileRepo struct {
	db *gorm.DB
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	if err := r.db.WithContext(ctx).First(&p, "email = ?", email).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *profileRepo) Local(ctx context.Context) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&p).Error
	if err == nil {
		return &p, nil
	}
	if notFound(err) != ErrNotFound {
		return nil, err
	}

	p = Profile{Email: localProfileEmail()}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create local profile: %w", err)
	}
	return &p, nil
}

func (r *profileRepo) SetEntitlement(ctx context.Context, id string, premium bool, customerID, subscriptionID string) (*Profile, error) {
	updates := map[string]any{"premium": premium}
	if customerID != "" {
		updates["billing_customer_id"] = customerID
	}
	if subscriptionID != "" {
		updates["billing_subscription_id"] = subscriptionID
	}

	res := r.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *profileRepo) IncrementCoursesCreated(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&Profile{}).
		Where("id = ?", id).
		UpdateColumn("courses_created", gorm.Expr("courses_created + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// localProfileEmail is a placeholder identity for the single-user TUI; a
// real billing email replaces it when the user goes through checkout.
func localProfileEmail() string {
	return "local@lema"
}
