package billing

import (
	"fmt"
	"os"
)

// Config holds billing integration settings.
type Config struct {
	// WebhookSecret signs incoming lifecycle events. Required: the
	// webhook endpoint refuses to operate without it.
	WebhookSecret string

	// APIKey and StoreID authenticate outbound provider API calls.
	APIKey  string
	StoreID string

	// ProductID is the premium subscription variant offered at checkout.
	ProductID string
}

// ConfigFromEnv reads billing settings from LEMA_BILLING_* env vars.
func ConfigFromEnv() Config {
	return Config{
		WebhookSecret: os.Getenv("LEMA_BILLING_WEBHOOK_SECRET"),
		APIKey:        os.Getenv("LEMA_BILLING_API_KEY"),
		StoreID:       os.Getenv("LEMA_BILLING_STORE_ID"),
		ProductID:     os.Getenv("LEMA_BILLING_PRODUCT_ID"),
	}
}

// ValidateWebhook checks the settings the webhook endpoint needs.
func (c Config) ValidateWebhook() error {
	if c.WebhookSecret == "" {
		return fmt.Errorf("LEMA_BILLING_WEBHOOK_SECRET is required: unsigned webhooks are rejected")
	}
	return nil
}
