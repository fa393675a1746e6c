package token_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cdah-platform/access-hub/pkg/token"
)

var testSecret = []byte("unit-test-secret")

func testClaims(ttl time.Duration) token.Claims {
	now := time.Now().UTC().Truncate(time.Second)
	return token.Claims{
		Subject:   "u-1",
		Email:     "alice@example.org",
		Name:      "Alice",
		Role:      "analyst",
		Org:       "Example Health",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
}

func TestHS256Codec_RoundTrip(t *testing.T) {
	t.Parallel()
	codec := token.NewHS256Codec(testSecret, "cdah-hub")

	claims := testClaims(time.Hour)
	raw, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded != claims {
		t.Errorf("claims mismatch: got %+v, want %+v", decoded, claims)
	}
}

func TestHS256Codec_Decode_Malformed(t *testing.T) {
	t.Parallel()
	codec := token.NewHS256Codec(testSecret, "cdah-hub")

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := codec.Decode(raw); !errors.Is(err, token.ErrInvalidFormat) {
			t.Errorf("Decode(%q) = %v, want ErrInvalidFormat", raw, err)
		}
	}
}

func TestHS256Codec_Decode_TamperedPayload(t *testing.T) {
	t.Parallel()
	codec := token.NewHS256Codec(testSecret, "cdah-hub")

	raw, err := codec.Encode(testClaims(time.Hour))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// splice in the payload of a token signed with a different secret
	other := token.NewHS256Codec([]byte("other-secret"), "cdah-hub")
	forged, err := other.Encode(testClaims(time.Hour))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	parts := strings.Split(raw, ".")
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	if _, err := codec.Decode(tampered); !errors.Is(err, token.ErrInvalidFormat) {
		t.Errorf("Decode(tampered) = %v, want ErrInvalidFormat", err)
	}
}

func TestHS256Codec_Decode_WrongSecret(t *testing.T) {
	t.Parallel()
	minter := token.NewHS256Codec(testSecret, "cdah-hub")
	other := token.NewHS256Codec([]byte("other-secret"), "cdah-hub")

	raw, err := minter.Encode(testClaims(time.Hour))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := other.Decode(raw); !errors.Is(err, token.ErrInvalidFormat) {
		t.Errorf("Decode with wrong secret = %v, want ErrInvalidFormat", err)
	}
}

func TestHS256Codec_Decode_WrongIssuer(t *testing.T) {
	t.Parallel()
	minter := token.NewHS256Codec(testSecret, "some-other-hub")
	codec := token.NewHS256Codec(testSecret, "cdah-hub")

	raw, err := minter.Encode(testClaims(time.Hour))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := codec.Decode(raw); !errors.Is(err, token.ErrInvalidFormat) {
		t.Errorf("Decode with wrong issuer = %v, want ErrInvalidFormat", err)
	}
}

func TestHS256Codec_Decode_DoesNotEnforceExpiry(t *testing.T) {
	t.Parallel()
	codec := token.NewHS256Codec(testSecret, "cdah-hub")

	// the codec is structural only; expiry policy belongs to the Verifier
	raw, err := codec.Encode(testClaims(-time.Hour))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := codec.Decode(raw); err != nil {
		t.Errorf("Decode of expired claims = %v, want nil", err)
	}
}

func TestUnsignedCodec_RoundTrip(t *testing.T) {
	t.Parallel()
	codec := token.NewUnsignedCodec()

	claims := testClaims(time.Hour)
	raw, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded != claims {
		t.Errorf("claims mismatch: got %+v, want %+v", decoded, claims)
	}
}

func TestUnsignedCodec_Decode_Malformed(t *testing.T) {
	t.Parallel()
	codec := token.NewUnsignedCodec()

	for _, raw := range []string{"not-a-token!!!", "bm90LWpzb24"} {
		if _, err := codec.Decode(raw); !errors.Is(err, token.ErrInvalidFormat) {
			t.Errorf("Decode(%q) = %v, want ErrInvalidFormat", raw, err)
		}
	}
}
