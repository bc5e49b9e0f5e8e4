package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/example/forum-platform/internal/platform/auth"
)

func newIssuer() Issuer {
	return Issuer{
		Secret:         []byte("test-jwt-secret-32-bytes-padded!"),
		AccessTokenTTL: time.Hour,
	}
}

// ─── NewAccessToken tests ────────────────────────────────────────────────────

func TestNewAccessToken_HappyPath(t *testing.T) {
	iss := newIssuer()
	now := time.Now().UTC()

	tok, exp, err := iss.NewAccessToken("user-1", "dicoding", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok == "" {
		t.Fatal("expected non-empty token")
	}
	if !exp.After(now) {
		t.Fatalf("expected expiry after now, got %v", exp)
	}

	claims, err := iss.ParseAccessToken(tok)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject 'user-1', got %q", claims.Subject)
	}
	if claims.Username != "dicoding" {
		t.Fatalf("expected username 'dicoding', got %q", claims.Username)
	}
}

func TestNewAccessToken_VerifiedByPlatformAuth(t *testing.T) {
	iss := newIssuer()
	tok, _, err := iss.NewAccessToken("user-1", "dicoding", time.Now())
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims, err := auth.JWTVerifier{Secret: iss.Secret}.Parse(tok)
	if err != nil {
		t.Fatalf("verifier rejected issued token: %v", err)
	}
	if claims.Subject != "user-1" || claims.Username != "dicoding" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestNewAccessToken_MissingSecret(t *testing.T) {
	iss := Issuer{Secret: nil, AccessTokenTTL: time.Hour}
	_, _, err := iss.NewAccessToken("user-1", "dicoding", time.Now())
	if err == nil {
		t.Fatal("expected error when secret is empty")
	}
}

func TestNewAccessToken_ZeroTime_UsesNow(t *testing.T) {
	iss := newIssuer()
	before := time.Now().Add(-time.Second)
	tok, exp, err := iss.NewAccessToken("user-1", "dicoding", time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exp.After(before) {
		t.Fatalf("expected expiry after 'before', got %v", exp)
	}
	if _, err := iss.ParseAccessToken(tok); err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
}

// ─── ParseAccessToken tests ──────────────────────────────────────────────────

func TestParseAccessToken_Expired(t *testing.T) {
	iss := Issuer{
		Secret:         []byte("test-jwt-secret-32-bytes-padded!"),
		AccessTokenTTL: -time.Hour,
	}
	tok, _, err := iss.NewAccessToken("user-1", "dicoding", time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := iss.ParseAccessToken(tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	iss1 := newIssuer()
	iss2 := Issuer{Secret: []byte("different-secret-32-bytes-padded"), AccessTokenTTL: time.Hour}

	tok, _, err := iss1.NewAccessToken("user-1", "dicoding", time.Now())
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := iss2.ParseAccessToken(tok); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseAccessToken_TamperedPayload(t *testing.T) {
	iss := newIssuer()
	tok, _, err := iss.NewAccessToken("user-1", "dicoding", time.Now())
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatal("expected 3 parts")
	}
	tampered := parts[0] + ".dGFtcGVyZWQ." + parts[2]
	if _, err := iss.ParseAccessToken(tampered); err == nil {
		t.Fatal("expected error for tampered token")
	}
}
