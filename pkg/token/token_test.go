package token_test

import (
	"net/url"
	"testing"

	"github.com/cdah-platform/access-hub/pkg/token"
)

func TestHandoff_AppendExtractRoundTrip(t *testing.T) {
	t.Parallel()
	base, _ := url.Parse("https://registry.cdah.test/cases?view=recent")
	raw := "header.payload.signature"

	handoff := token.AppendToLocation(base, raw)
	if got := token.FromLocation(handoff); got != raw {
		t.Errorf("FromLocation = %q, want %q", got, raw)
	}

	// original location is untouched
	if token.FromLocation(base) != "" {
		t.Error("AppendToLocation mutated its input URL")
	}
	// other query parameters survive
	if handoff.Query().Get("view") != "recent" {
		t.Error("AppendToLocation dropped existing query parameters")
	}
}

func TestHandoff_FromLocation_Absent(t *testing.T) {
	t.Parallel()
	u, _ := url.Parse("https://registry.cdah.test/")
	if got := token.FromLocation(u); got != "" {
		t.Errorf("FromLocation = %q, want empty", got)
	}
}

func TestHandoff_ScrubLocation(t *testing.T) {
	t.Parallel()
	base, _ := url.Parse("https://registry.cdah.test/cases?view=recent")
	handoff := token.AppendToLocation(base, "some-token")

	scrubbed := token.ScrubLocation(handoff)
	if token.FromLocation(scrubbed) != "" {
		t.Error("ScrubLocation left the token in place")
	}
	if scrubbed.Query().Get("view") != "recent" {
		t.Error("ScrubLocation dropped unrelated query parameters")
	}
	// scrubbing is also non-mutating
	if token.FromLocation(handoff) != "some-token" {
		t.Error("ScrubLocation mutated its input URL")
	}
}
