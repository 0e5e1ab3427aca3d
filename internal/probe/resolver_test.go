package probe

import (
	"context"
	"testing"
)

func TestResolve_EmptyHostname(t *testing.T) {
	r := NewResolver()
	_, err := r.Resolve(context.Background(), "")
	if err == nil {
		t.Fatalf("want error for empty hostname")
	}
	if err.Error() != "Could not extract hostname from URL" {
		t.Fatalf("wrong message: %q", err.Error())
	}
}

func TestResolve_Localhost(t *testing.T) {
	r := NewResolver()
	ip, err := r.Resolve(context.Background(), "localhost")
	if err != nil {
		t.Fatalf("localhost should resolve: %v", err)
	}
	if ip == "" {
		t.Fatalf("want a resolved address")
	}
}

func TestResolve_Unresolvable(t *testing.T) {
	r := NewResolver()
	_, err := r.Resolve(context.Background(), "no-such-host.invalid")
	if err == nil {
		t.Fatalf("want resolution failure for reserved .invalid name")
	}
}

func TestHostname(t *testing.T) {
	cases := []struct {
		raw, want string
	}{
		{"https://example.com/path", "example.com"},
		{"http://example.com:8080", "example.com"},
		{"not a url", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Hostname(c.raw); got != c.want {
			t.Fatalf("Hostname(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}
