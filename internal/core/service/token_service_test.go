package service

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/securelogin/auth-service/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_IssueVerify_RoundTrip(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret")
	svc.now = fixedClock(issued)

	token, err := svc.Issue("1", false)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	sess, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if sess.Subject != "1" {
		t.Fatalf("expected subject 1, got %q", sess.Subject)
	}
	if !sess.ExpiresAt.Equal(issued.Add(24 * time.Hour)) {
		t.Fatalf("expected expiry 1 day after issuance, got %v", sess.ExpiresAt)
	}
}

func TestTokenService_Issue_UniqueTokens(t *testing.T) {
	svc := NewTokenService("secret")

	a, _ := svc.Issue("1", false)
	b, _ := svc.Issue("1", false)
	if a == b {
		t.Fatalf("two tokens for the same subject must differ")
	}
}

func TestTokenService_Expiry_Default(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret")
	svc.now = fixedClock(issued)

	token, err := svc.Issue("1", false)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	svc.now = fixedClock(issued.Add(23 * time.Hour))
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token should still be valid before 1 day: %v", err)
	}

	svc.now = fixedClock(issued.Add(24*time.Hour + time.Minute))
	_, err = svc.Verify(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expiry must match the ErrTokenInvalid class")
	}
}

func TestTokenService_Expiry_Extended(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret")
	svc.now = fixedClock(issued)

	token, err := svc.Issue("1", true)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	svc.now = fixedClock(issued.Add(29 * 24 * time.Hour))
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("extended token should still be valid before 30 days: %v", err)
	}

	svc.now = fixedClock(issued.Add(30*24*time.Hour + time.Minute))
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_Verify_WrongKey(t *testing.T) {
	token, err := NewTokenService("secret").Issue("1", false)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	sess, err := NewTokenService("other").Verify(token)
	if !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
	if sess != nil {
		t.Fatalf("session must never be returned on failure, got %+v", sess)
	}
}

func TestTokenService_Verify_TamperedSignature(t *testing.T) {
	svc := NewTokenService("secret")
	token, _ := svc.Issue("1", false)

	dot := strings.LastIndex(token, ".")
	sig := []byte(token[dot+1:])
	if sig[0] == 'A' {
		sig[0] = 'Q'
	} else {
		sig[0] = 'A'
	}
	tampered := token[:dot+1] + string(sig)

	sess, err := svc.Verify(tampered)
	if err == nil || !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected a token-invalid class error, got %v", err)
	}
	if sess != nil {
		t.Fatalf("session must never be returned on failure, got %+v", sess)
	}
}

func TestTokenService_Verify_ForgedPayload(t *testing.T) {
	svc := NewTokenService("secret")
	token, _ := svc.Issue("1", false)

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var claims map[string]any
	if err := json.Unmarshal(payload, &claims); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	claims["sub"] = "2"
	forged, _ := json.Marshal(claims)
	parts[1] = base64.RawURLEncoding.EncodeToString(forged)

	sess, err := svc.Verify(strings.Join(parts, "."))
	if !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
	if sess != nil {
		t.Fatalf("forged payload must not yield a session")
	}
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc := NewTokenService("secret")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", token, err)
		}
	}
}
