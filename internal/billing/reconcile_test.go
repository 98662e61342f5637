package billing

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kulugbekwork/lema/internal/logger"
	"github.com/kulugbekwork/lema/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), logger.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func subscriptionEvent(name, userID, status string) *Event {
	ev := &Event{}
	ev.Meta.EventName = name
	if userID != "" {
		ev.Meta.CustomData = &EventCustomData{UserID: userID}
	}
	ev.Data.ID = "sub_123"
	ev.Data.Attributes.Status = status
	ev.Data.Attributes.CustomerID = "cust_456"
	return ev
}

func TestReconcile_PaymentSuccessGrantsPremium(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	profile, err := st.Profiles().Local(ctx)
	if err != nil {
		t.Fatalf("local profile: %v", err)
	}

	r := NewReconciler(st.Profiles(), logger.Nop())
	out, err := r.Reconcile(ctx, subscriptionEvent(EventSubscriptionPaymentSuccess, profile.ID, "active"))
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !out.Processed || !out.Premium {
		t.Fatalf("outcome = %+v, want processed premium", out)
	}

	got, err := st.Profiles().GetByID(ctx, profile.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !got.Premium {
		t.Error("premium flag not set")
	}
	if got.BillingCustomerID != "cust_456" || got.BillingSubscriptionID != "sub_123" {
		t.Errorf("billing IDs = %q, %q", got.BillingCustomerID, got.BillingSubscriptionID)
	}
}

func TestReconcile_CancellationRevokesPremium(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	profile, err := st.Profiles().Local(ctx)
	if err != nil {
		t.Fatalf("local profile: %v", err)
	}
	if _, err := st.Profiles().SetEntitlement(ctx, profile.ID, true, "cust_456", "sub_123"); err != nil {
		t.Fatalf("seed entitlement: %v", err)
	}

	r := NewReconciler(st.Profiles(), logger.Nop())

	// Cancellation revokes even when the reported status is "active".
	out, err := r.Reconcile(ctx, subscriptionEvent(EventSubscriptionCancelled, profile.ID, "active"))
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !out.Processed || out.Premium {
		t.Fatalf("outcome = %+v, want processed non-premium", out)
	}

	got, _ := st.Profiles().GetByID(ctx, profile.ID)
	if got.Premium {
		t.Error("premium flag should be revoked")
	}
}

func TestReconcile_InactiveStatusRevokesPremium(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	profile, _ := st.Profiles().Local(ctx)
	st.Profiles().SetEntitlement(ctx, profile.ID, true, "", "")

	r := NewReconciler(st.Profiles(), logger.Nop())
	out, err := r.Reconcile(ctx, subscriptionEvent(EventSubscriptionUpdated, profile.ID, "past_due"))
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if out.Premium {
		t.Error("non-active status must not grant premium")
	}
}

func TestReconcile_UnrecognizedEventIgnored(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	profile, _ := st.Profiles().Local(ctx)

	r := NewReconciler(st.Profiles(), logger.Nop())
	out, err := r.Reconcile(ctx, subscriptionEvent("order_created", profile.ID, "active"))
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if out.Processed {
		t.Error("unrecognized event must not be processed")
	}

	got, _ := st.Profiles().GetByID(ctx, profile.ID)
	if got.Premium {
		t.Error("unrecognized event must not mutate entitlement")
	}
}

func TestReconcile_EmailFallbackResolution(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	profile, _ := st.Profiles().Local(ctx)

	ev := subscriptionEvent(EventSubscriptionCreated, "", "active")
	ev.Data.Attributes.UserEmail = profile.Email

	r := NewReconciler(st.Profiles(), logger.Nop())
	out, err := r.Reconcile(ctx, ev)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !out.Processed || out.ProfileID != profile.ID {
		t.Fatalf("outcome = %+v, want resolution via email", out)
	}

	got, _ := st.Profiles().GetByID(ctx, profile.ID)
	if !got.Premium {
		t.Error("premium not granted after email resolution")
	}
}

func TestReconcile_UnresolvableUserAcknowledged(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	ev := subscriptionEvent(EventSubscriptionCreated, "", "active")
	ev.Data.Attributes.UserEmail = "nobody@example.com"

	r := NewReconciler(st.Profiles(), logger.Nop())
	out, err := r.Reconcile(ctx, ev)
	if err != nil {
		t.Fatalf("unresolvable user must be acknowledged, got: %v", err)
	}
	if out.Processed {
		t.Error("unresolvable user must not be marked processed")
	}
}

func TestReconcile_MissingProfileIsNotFound(t *testing.T) {
	st := newTestStore(t)
	r := NewReconciler(st.Profiles(), logger.Nop())

	_, err := r.Reconcile(context.Background(),
		subscriptionEvent(EventSubscriptionCreated, "ghost-id", "active"))
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got: %v", err)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	profile, _ := st.Profiles().Local(ctx)
	r := NewReconciler(st.Profiles(), logger.Nop())

	ev := subscriptionEvent(EventSubscriptionUpdated, profile.ID, "active")
	if _, err := r.Reconcile(ctx, ev); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	first, _ := st.Profiles().GetByID(ctx, profile.ID)

	if _, err := r.Reconcile(ctx, ev); err != nil {
		t.Fatalf("second delivery: %v", err)
	}
	second, _ := st.Profiles().GetByID(ctx, profile.ID)

	if first.Premium != second.Premium ||
		first.BillingCustomerID != second.BillingCustomerID ||
		first.BillingSubscriptionID != second.BillingSubscriptionID {
		t.Errorf("re-delivery changed state: %+v vs %+v", first, second)
	}
}

func TestDecodeEvent_TypedBoundary(t *testing.T) {
	raw := []byte(`{
		"meta": {"event_name": "subscription_created", "custom_data": {"user_id": "u1"}},
		"data": {"id": 987, "type": "subscriptions", "attributes": {"status": "active", "customer_id": 42}}
	}`)

	ev, err := DecodeEvent(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.UserID() != "u1" {
		t.Errorf("user id = %q", ev.UserID())
	}
	// Numeric IDs decode to their string form.
	if ev.Data.ID.String() != "987" || ev.Data.Attributes.CustomerID.String() != "42" {
		t.Errorf("ids = %q, %q", ev.Data.ID, ev.Data.Attributes.CustomerID)
	}

	if _, err := DecodeEvent([]byte(`{"data":{}}`)); err == nil {
		t.Error("payload without event_name must fail decode")
	}
	if _, err := DecodeEvent([]byte(`not json`)); err == nil {
		t.Error("malformed payload must fail decode")
	}
}
