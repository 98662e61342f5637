package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/kulugbekwork/lema/internal/logger"
	"github.com/kulugbekwork/lema/internal/store"
)

// ErrProfileNotFound means the event referenced a profile that does
// not exist.
var ErrProfileNotFound = errors.New("profile not found for billing event")

// Outcome describes what a reconcile pass did. Processed is false for
// ignored events and unresolvable users; both are acknowledged
// successfully so the provider does not retry them.
type Outcome struct {
	Processed bool
	Message   string
	ProfileID string
	Premium   bool
}

// Reconciler applies subscription lifecycle events to profile
// entitlement state. Each call is independent; re-delivery of the same
// event is a pure overwrite and lands in the same end state.
type Reconciler struct {
	profiles store.ProfileRepo
	log      *logger.Logger
}

// NewReconciler creates an entitlement reconciler.
func NewReconciler(profiles store.ProfileRepo, log *logger.Logger) *Reconciler {
	return &Reconciler{profiles: profiles, log: log}
}

// Reconcile processes one decoded event. Unrecognized events and
// events whose user cannot be resolved return a non-processed Outcome
// with nil error. A resolved but missing profile returns
// ErrProfileNotFound.
func (r *Reconciler) Reconcile(ctx context.Context, ev *Event) (Outcome, error) {
	if !ev.Recognized() {
		return Outcome{Message: "event not processed"}, nil
	}

	profileID, err := r.resolveProfile(ctx, ev)
	if err != nil {
		return Outcome{}, err
	}
	if profileID == "" {
		// Acknowledge so the provider does not retry a poison pill,
		// but leave a trace for the operator.
		r.log.Warn("billing event user unresolvable",
			"event", ev.Meta.EventName,
			"email", ev.Data.Attributes.UserEmail,
			"subscription_id", ev.Data.ID.String(),
		)
		return Outcome{Message: "no user found, skipping update"}, nil
	}

	premium := ev.Meta.EventName != EventSubscriptionCancelled &&
		ev.Data.Attributes.Status == "active"

	_, err = r.profiles.SetEntitlement(ctx, profileID, premium,
		ev.Data.Attributes.CustomerID.String(), ev.Data.ID.String())
	if errors.Is(err, store.ErrNotFound) {
		return Outcome{}, fmt.Errorf("%w: %s", ErrProfileNotFound, profileID)
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("update entitlement: %w", err)
	}

	r.log.Info("entitlement updated",
		"profile_id", profileID,
		"premium", premium,
		"event", ev.Meta.EventName,
	)
	return Outcome{
		Processed: true,
		ProfileID: profileID,
		Premium:   premium,
	}, nil
}

// resolveProfile prefers the embedded user ID and falls back to the
// billing email. Returns "" when neither resolves.
func (r *Reconciler) resolveProfile(ctx context.Context, ev *Event) (string, error) {
	if id := ev.UserID(); id != "" {
		return id, nil
	}

	email := ev.Data.Attributes.UserEmail
	if email == "" {
		return "", nil
	}

	profile, err := r.profiles.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup profile by email: %w", err)
	}
	return profile.ID, nil
}
