package server

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/kulugbekwork/lema/internal/billing"
	"github.com/kulugbekwork/lema/internal/logger"
	"github.com/kulugbekwork/lema/internal/store"
)

const testSecret = "whsec_test"

func newTestRouter(t *testing.T, upstream string) (*store.Store, http.Handler) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), logger.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	opts := []billing.ClientOption{}
	if upstream != "" {
		opts = append(opts, billing.WithBaseURL(upstream))
	}
	client, err := billing.NewClient("key", "store-1", opts...)
	if err != nil {
		t.Fatalf("billing client: %v", err)
	}

	log := logger.Nop()
	router := NewRouter(RouterConfig{
		WebhookHandler: NewWebhookHandler(testSecret, billing.NewReconciler(st.Profiles(), log), log),
		BillingHandler: NewBillingHandler(client, st.Profiles(), log),
		Logger:         log,
	})
	return st, router
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func webhookBody(event, userID, status string) []byte {
	return []byte(fmt.Sprintf(`{
		"meta": {"event_name": %q, "custom_data": {"user_id": %q}},
		"data": {"id": "sub_1", "type": "subscriptions", "attributes": {"status": %q, "customer_id": "cust_1"}}
	}`, event, userID, status))
}

func postWebhook(router http.Handler, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/billing", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("X-Signature", signature)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWebhook_GrantsPremium(t *testing.T) {
	st, router := newTestRouter(t, "")
	ctx := context.Background()

	profile, err := st.Profiles().Local(ctx)
	if err != nil {
		t.Fatalf("local profile: %v", err)
	}

	body := webhookBody("subscription_payment_success", profile.ID, "active")
	w := postWebhook(router, body, "sha256="+sign(body))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success   bool `json:"success"`
		IsPremium bool `json:"is_premium"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || !resp.IsPremium {
		t.Errorf("response = %+v", resp)
	}

	got, _ := st.Profiles().GetByID(ctx, profile.ID)
	if !got.Premium || got.BillingSubscriptionID != "sub_1" {
		t.Errorf("profile = %+v", got)
	}
}

func TestWebhook_BadSignatureRejected(t *testing.T) {
	st, router := newTestRouter(t, "")
	ctx := context.Background()

	profile, _ := st.Profiles().Local(ctx)
	body := webhookBody("subscription_created", profile.ID, "active")

	w := postWebhook(router, body, "sha256=deadbeef")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	got, _ := st.Profiles().GetByID(ctx, profile.ID)
	if got.Premium {
		t.Error("rejected webhook must not mutate")
	}
}

func TestWebhook_MissingSignatureRejected(t *testing.T) {
	st, router := newTestRouter(t, "")
	profile, _ := st.Profiles().Local(context.Background())

	body := webhookBody("subscription_created", profile.ID, "active")
	w := postWebhook(router, body, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestWebhook_UnrecognizedEventAcknowledged(t *testing.T) {
	_, router := newTestRouter(t, "")

	body := webhookBody("order_created", "whoever", "active")
	w := postWebhook(router, body, sign(body))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 ack", w.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Message == "" {
		t.Error("ignored event should carry a message")
	}
}

func TestWebhook_UnknownProfileIs404(t *testing.T) {
	_, router := newTestRouter(t, "")

	body := webhookBody("subscription_created", "ghost", "active")
	w := postWebhook(router, body, sign(body))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestWebhook_MalformedPayloadIs400(t *testing.T) {
	_, router := newTestRouter(t, "")

	body := []byte(`{"data": {}}`)
	w := postWebhook(router, body, sign(body))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestWebhook_RedeliveryIdempotent(t *testing.T) {
	st, router := newTestRouter(t, "")
	ctx := context.Background()

	profile, _ := st.Profiles().Local(ctx)
	body := webhookBody("subscription_updated", profile.ID, "active")
	sig := sign(body)

	if w := postWebhook(router, body, sig); w.Code != http.StatusOK {
		t.Fatalf("first delivery: %d", w.Code)
	}
	first, _ := st.Profiles().GetByID(ctx, profile.ID)

	if w := postWebhook(router, body, sig); w.Code != http.StatusOK {
		t.Fatalf("second delivery: %d", w.Code)
	}
	second, _ := st.Profiles().GetByID(ctx, profile.ID)

	if first.Premium != second.Premium || first.BillingSubscriptionID != second.BillingSubscriptionID {
		t.Errorf("re-delivery changed state: %+v vs %+v", first, second)
	}
}

func TestCheckout_ValidatesFields(t *testing.T) {
	_, router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/checkout",
		bytes.NewReader([]byte(`{"email":"a@b.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCheckout_ReturnsURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"attributes":{"url":"https://pay.example.com/c/x"}}}`))
	}))
	defer upstream.Close()

	_, router := newTestRouter(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout",
		bytes.NewReader([]byte(`{"productId":"v1","email":"a@b.com","userId":"u1"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success     bool   `json:"success"`
		CheckoutURL string `json:"checkoutUrl"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success || resp.CheckoutURL != "https://pay.example.com/c/x" {
		t.Errorf("response = %+v", resp)
	}
}

func TestBillingPortal_NoSubscriptionIs404(t *testing.T) {
	st, router := newTestRouter(t, "")
	profile, _ := st.Profiles().Local(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/api/billing-portal?userId="+profile.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestBillingPortal_ReturnsPortalURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"attributes":{"urls":{"customer_portal":"https://pay.example.com/portal"}}}}`))
	}))
	defer upstream.Close()

	st, router := newTestRouter(t, upstream.URL)
	ctx := context.Background()
	profile, _ := st.Profiles().Local(ctx)
	st.Profiles().SetEntitlement(ctx, profile.ID, true, "cust_1", "sub_1")

	req := httptest.NewRequest(http.MethodGet, "/api/billing-portal?userId="+profile.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		URL string `json:"url"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.URL != "https://pay.example.com/portal" {
		t.Errorf("url = %q", resp.URL)
	}
}

func TestHealthcheck(t *testing.T) {
	_, router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
