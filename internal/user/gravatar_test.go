package user

import (
	"strings"
	"testing"
)

func TestGravatarURLDeterministic(t *testing.T) {
	a := GravatarURL("a@x.com")
	b := GravatarURL("a@x.com")
	if a != b {
		t.Fatalf("expected deterministic URL, got %s and %s", a, b)
	}
}

func TestGravatarURLNormalizesEmail(t *testing.T) {
	if GravatarURL("a@x.com") != GravatarURL("  A@X.COM  ") {
		t.Fatal("expected case and whitespace to be normalized")
	}
}

func TestGravatarURLShape(t *testing.T) {
	url := GravatarURL("a@x.com")
	if !strings.HasPrefix(url, "https://www.gravatar.com/avatar/") {
		t.Fatalf("unexpected prefix: %s", url)
	}
	if !strings.HasSuffix(url, "?s=200&r=g&d=mp") {
		t.Fatalf("unexpected params: %s", url)
	}
	if GravatarURL("a@x.com") == GravatarURL("b@x.com") {
		t.Fatal("expected different emails to produce different URLs")
	}
}
