package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// HS256Codec signs claims as a compact JWT using HMAC-SHA256. This is the
// production codec: a credential can only be minted by a holder of the
// secret, and any alteration of the claims invalidates the signature.
type HS256Codec struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

// NewHS256Codec builds a codec around a shared secret. The issuer name is
// embedded in every credential and checked on decode when non-empty.
func NewHS256Codec(secret []byte, issuer string) *HS256Codec {
	return &HS256Codec{
		secret: secret,
		issuer: issuer,
		// Expiry policy lives in the Verifier so expired and malformed
		// credentials stay distinguishable.
		parser: jwt.NewParser(jwt.WithoutClaimsValidation()),
	}
}

func (c *HS256Codec) Encode(claims Claims) (string, error) {
	mc := jwt.MapClaims{
		"sub":   claims.Subject,
		"email": claims.Email,
		"iat":   claims.IssuedAt,
		"exp":   claims.ExpiresAt,
	}
	if claims.Name != "" {
		mc["name"] = claims.Name
	}
	if claims.Role != "" {
		mc["role"] = claims.Role
	}
	if claims.Org != "" {
		mc["org"] = claims.Org
	}
	if c.issuer != "" {
		mc["iss"] = c.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(c.secret)
}

func (c *HS256Codec) Decode(raw string) (Claims, error) {
	parsed, err := c.parser.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidFormat
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidFormat
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidFormat
	}
	if c.issuer != "" {
		if iss, _ := mc["iss"].(string); iss != "" && iss != c.issuer {
			return Claims{}, ErrInvalidFormat
		}
	}

	claims := Claims{}
	claims.Subject, _ = mc["sub"].(string)
	claims.Email, _ = mc["email"].(string)
	claims.Name, _ = mc["name"].(string)
	claims.Role, _ = mc["role"].(string)
	claims.Org, _ = mc["org"].(string)
	claims.IssuedAt = numericClaim(mc["iat"])
	claims.ExpiresAt = numericClaim(mc["exp"])
	return claims, nil
}

func numericClaim(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	default:
		return 0
	}
}
