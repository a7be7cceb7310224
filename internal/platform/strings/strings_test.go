package strings

import (
	"testing"

	kit "github.com/sspenst/thinky.gg-sub004/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()
	if got := IfEmpty([]string{"ts"}, []string{"least_moves"}); got[0] != "ts" {
		t.Fatalf("IfEmpty kept = %v", got)
	}
	if got := IfEmpty(nil, []string{"least_moves"}); got[0] != "least_moves" {
		t.Fatalf("IfEmpty default = %v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()
	if got := MustString("search", "module name"); got != "search" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = MustString("  ", "module name") })
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"search":     "/search",
		"/search/":   "/search",
		" /meta ":    "/meta",
		"//search//": "/search",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { _ = MustPrefix(" / ") })
}
