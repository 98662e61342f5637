package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_KnownVector(t *testing.T) {
	// RFC 4231 test case 2.
	secret := "Jefe"
	body := []byte("what do ya want for nothing?")
	want := "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"

	if got := sign(secret, body); got != want {
		t.Fatalf("hmac = %s, want %s", got, want)
	}
	if err := VerifySignature(secret, body, want); err != nil {
		t.Fatalf("reference signature rejected: %v", err)
	}
}

func TestVerifySignature_AcceptsPrefixAndCase(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"meta":{"event_name":"subscription_created"}}`)
	sig := sign(secret, body)

	for _, header := range []string{
		sig,
		"sha256=" + sig,
		strings.ToUpper(sig),
		"SHA256=" + strings.ToUpper(sig),
		"  " + sig + "  ",
	} {
		if err := VerifySignature(secret, body, header); err != nil {
			t.Errorf("header %q rejected: %v", header, err)
		}
	}
}

func TestVerifySignature_RejectsTamperedBody(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"amount":100}`)
	sig := sign(secret, body)

	tampered := []byte(`{"amount":999}`)
	if err := VerifySignature(secret, tampered, sig); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got: %v", err)
	}
}

func TestVerifySignature_RejectsWrongSecret(t *testing.T) {
	body := []byte(`{}`)
	sig := sign("right-secret", body)

	if err := VerifySignature("wrong-secret", body, sig); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got: %v", err)
	}
}

func TestVerifySignature_RejectsGarbageHeader(t *testing.T) {
	for _, header := range []string{"", "not-hex", "sha256=", "sha256=zz"} {
		if err := VerifySignature("secret", []byte(`{}`), header); !errors.Is(err, ErrBadSignature) {
			t.Errorf("header %q: expected ErrBadSignature, got: %v", header, err)
		}
	}
}

func TestVerifySignature_FailsClosedWithoutSecret(t *testing.T) {
	body := []byte(`{}`)
	sig := sign("anything", body)
	if err := VerifySignature("", body, sig); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got: %v", err)
	}
}
