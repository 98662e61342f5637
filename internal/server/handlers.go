package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kulugbekwork/lema/internal/billing"
	"github.com/kulugbekwork/lema/internal/logger"
	"github.com/kulugbekwork/lema/internal/store"
)

// WebhookHandler receives billing lifecycle events and applies them
// through the reconciler.
type WebhookHandler struct {
	secret     string
	reconciler *billing.Reconciler
	log        *logger.Logger
}

// NewWebhookHandler creates the webhook endpoint handler.
func NewWebhookHandler(secret string, reconciler *billing.Reconciler, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{secret: secret, reconciler: reconciler, log: log}
}

// Handle processes POST /webhooks/billing. The signature covers the
// exact raw body, so the body is read before any decoding.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	err = billing.VerifySignature(h.secret, body, c.GetHeader("X-Signature"))
	switch {
	case errors.Is(err, billing.ErrMissingSecret):
		h.log.Error("webhook rejected: no secret configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook secret not configured"})
		return
	case errors.Is(err, billing.ErrBadSignature):
		h.log.Warn("webhook rejected: bad signature")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signature verification failed"})
		return
	}

	ev, err := billing.DecodeEvent(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.reconciler.Reconcile(c.Request.Context(), ev)
	switch {
	case errors.Is(err, billing.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	case err != nil:
		h.log.Error("webhook reconcile failed", "event", ev.Meta.EventName, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update premium status"})
		return
	}

	if !out.Processed {
		c.JSON(http.StatusOK, gin.H{"message": out.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"is_premium": out.Premium,
	})
}

// BillingHandler serves checkout session and customer portal requests.
type BillingHandler struct {
	client   *billing.Client
	profiles store.ProfileRepo
	log      *logger.Logger
}

// NewBillingHandler creates the checkout/portal handler.
func NewBillingHandler(client *billing.Client, profiles store.ProfileRepo, log *logger.Logger) *BillingHandler {
	return &BillingHandler{client: client, profiles: profiles, log: log}
}

type checkoutRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Email     string `json:"email" binding:"required"`
	UserID    string `json:"userId" binding:"required"`
}

// CreateCheckout handles POST /api/checkout.
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields: productId, email, userId"})
		return
	}

	url, err := h.client.CreateCheckout(c.Request.Context(), req.ProductID, req.Email, req.UserID)
	if err != nil {
		h.log.Error("create checkout failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"checkoutUrl": url,
	})
}

// BillingPortal handles GET /api/billing-portal?userId=...
func (h *BillingHandler) BillingPortal(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing userId"})
		return
	}

	profile, err := h.profiles.GetByID(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	if profile.BillingSubscriptionID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no subscription on file"})
		return
	}

	url, err := h.client.PortalURL(c.Request.Context(), profile.BillingSubscriptionID)
	if err != nil {
		h.log.Error("billing portal lookup failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// HealthCheck handles GET /healthcheck.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
