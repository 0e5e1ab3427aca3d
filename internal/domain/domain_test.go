package domain

import "testing"

func TestSkipped(t *testing.T) {
	o := Skipped("http_availability[https://example.com]", "Skipped due to DNS failure")
	if o.Status != StatusSkipped {
		t.Fatalf("want skipped status, got %q", o.Status)
	}
	if o.Duration != 0 {
		t.Fatalf("skipped outcome must have zero duration, got %f", o.Duration)
	}
	if o.SkipReason != "Skipped due to DNS failure" {
		t.Fatalf("reason wrong: %q", o.SkipReason)
	}
}

func TestFailed(t *testing.T) {
	cases := []struct {
		status Status
		want   bool
	}{
		{StatusPass, false},
		{StatusFail, true},
		{StatusError, true},
		{StatusSkipped, false},
	}
	for _, c := range cases {
		if got := (Outcome{Status: c.status}).Failed(); got != c.want {
			t.Fatalf("Failed() for %q = %v, want %v", c.status, got, c.want)
		}
	}
}
