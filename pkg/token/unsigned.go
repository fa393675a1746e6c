package token

import (
	"encoding/base64"
	"encoding/json"
)

// UnsignedCodec encodes claims as base64url JSON with no signature. Any
// holder of a credential can forge or replay its claims, so this codec
// exists only as a test double; production wiring uses HS256Codec.
type UnsignedCodec struct{}

// NewUnsignedCodec returns the unsigned test-double codec.
func NewUnsignedCodec() UnsignedCodec {
	return UnsignedCodec{}
}

func (UnsignedCodec) Encode(claims Claims) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

func (UnsignedCodec) Decode(raw string) (Claims, error) {
	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Claims{}, ErrInvalidFormat
	}
	claims := Claims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, ErrInvalidFormat
	}
	return claims, nil
}
