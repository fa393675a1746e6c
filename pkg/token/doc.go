// Package token implements the session credential at the heart of the CDAH
// access hub: minting, verification, and the URL handoff encoding that
// carries a session from the hub into a child application.
//
// The package separates three concerns:
//
//   - Codec: the wire format. HS256Codec signs claims as a compact JWT;
//     UnsignedCodec is a reversible base64/JSON encoding kept only as a
//     test double.
//   - Issuer: mints an immutable, bounded-lifetime credential from an
//     authenticated identity snapshot.
//   - Verifier: decodes a raw credential and applies the validation policy
//     (structure, required claims, expiry, and — on the issuing side —
//     subject resolution).
//
// # Issuing (hub side)
//
//	codec := token.NewHS256Codec(secret, "cdah-hub")
//	issuer := token.NewIssuer(codec)
//
//	sess, err := issuer.Issue(token.Identity{
//	    ID:    user.ID,
//	    Email: user.Email,
//	    Name:  user.Name,
//	    Role:  string(user.Role),
//	    Org:   user.Org,
//	})
//
// # Verifying (child application side)
//
// Child applications construct a Verifier without a SubjectResolver; they
// have no user store and trust the embedded claims. The issuing application
// passes its own store so stale subjects are rejected:
//
//	verifier := token.NewVerifier(codec, nil) // child mode
//	sess, err := verifier.Decode(ctx, raw)
//
// # Handoff
//
// A credential travels between applications as the sso_token query
// parameter. AppendToLocation embeds it in an outbound URL, FromLocation
// extracts it on arrival, and ScrubLocation removes it so the credential is
// not retained in history or referrers.
package token
