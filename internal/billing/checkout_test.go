package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateCheckout_ReturnsURL(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"data":{"attributes":{"url":"https://pay.example.com/c/abc"}}}`))
	}))
	defer srv.Close()

	c, err := NewClient("key", "store-1", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	url, err := c.CreateCheckout(context.Background(), "variant-9", "a@b.com", "user-1")
	if err != nil {
		t.Fatalf("create checkout: %v", err)
	}
	if url != "https://pay.example.com/c/abc" {
		t.Errorf("url = %q", url)
	}
	if gotPath != "/v1/checkouts" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer key" {
		t.Errorf("auth = %q", gotAuth)
	}

	// The user ID must ride along as checkout custom data.
	data := gotBody["data"].(map[string]any)
	attrs := data["attributes"].(map[string]any)
	custom := attrs["checkout_data"].(map[string]any)["custom"].(map[string]any)
	if custom["user_id"] != "user-1" {
		t.Errorf("custom user_id = %v", custom["user_id"])
	}
}

func TestCreateCheckout_SurfacesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":[{"detail":"variant not found"}]}`))
	}))
	defer srv.Close()

	c, _ := NewClient("key", "store-1", WithBaseURL(srv.URL))
	_, err := c.CreateCheckout(context.Background(), "bad", "a@b.com", "u1")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "billing API 422: variant not found" {
		t.Errorf("error = %q", got)
	}
}

func TestCreateCheckout_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c, _ := NewClient("key", "store-1", WithBaseURL(srv.URL))
	_, err := c.CreateCheckout(context.Background(), "v", "a@b.com", "u1")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "billing API returned status 502" {
		t.Errorf("error = %q", got)
	}
}

func TestPortalURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/subscriptions/sub_7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"data":{"attributes":{"urls":{"customer_portal":"https://pay.example.com/portal"}}}}`))
	}))
	defer srv.Close()

	c, _ := NewClient("key", "store-1", WithBaseURL(srv.URL))
	url, err := c.PortalURL(context.Background(), "sub_7")
	if err != nil {
		t.Fatalf("portal url: %v", err)
	}
	if url != "https://pay.example.com/portal" {
		t.Errorf("url = %q", url)
	}
}

func TestPortalURL_NoSubscription(t *testing.T) {
	c, _ := NewClient("key", "store-1")
	if _, err := c.PortalURL(context.Background(), ""); err == nil {
		t.Fatal("expected error without subscription ID")
	}
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	if _, err := NewClient("", "store"); err == nil {
		t.Error("expected error without API key")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Error("expected error without store ID")
	}
}
