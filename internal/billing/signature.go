package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrMissingSecret means no webhook secret is configured. Verification
// fails closed rather than accepting unsigned requests.
var ErrMissingSecret = errors.New("webhook secret not configured")

// ErrBadSignature means the supplied signature does not match the body.
var ErrBadSignature = errors.New("invalid webhook signature")

// VerifySignature checks the hex HMAC-SHA256 signature of the exact raw
// request body. The header value may carry a "sha256=" prefix and any
// hex case. Comparison is constant time.
func VerifySignature(secret string, body []byte, header string) error {
	if secret == "" {
		return ErrMissingSecret
	}

	sig := strings.TrimSpace(header)
	if rest, ok := strings.CutPrefix(strings.ToLower(sig), "sha256="); ok {
		sig = rest
	} else {
		sig = strings.ToLower(sig)
	}

	received, err := hex.DecodeString(sig)
	if err != nil || len(received) == 0 {
		return ErrBadSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	if !hmac.Equal(received, mac.Sum(nil)) {
		return ErrBadSignature
	}
	return nil
}
