// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	urls := strings.TrimSpace(os.Getenv("TEST_URLS"))
	redirects := strings.TrimSpace(os.Getenv("TEST_MAX-REDIRECTS"))
	timeout := strings.TrimSpace(os.Getenv("TEST_TIMEOUT"))
	checkHTTP := strings.TrimSpace(os.Getenv("TEST_CHECK-HTTP-AVAILABILITY"))
	checkHTTPS := strings.TrimSpace(os.Getenv("TEST_CHECK-HTTPS-AVAILABILITY"))
	reportDir := strings.TrimSpace(os.Getenv("REPORT_DIR"))

	if urls == "" {
		warn("TEST_URLS is empty — the run will produce a single skipped case.")
	} else {
		ok("TEST_URLS=" + urls)
	}

	if redirects != "" {
		if n, err := strconv.Atoi(redirects); err != nil || n < 0 {
			fail("TEST_MAX-REDIRECTS must be a non-negative integer, got " + redirects)
		}
		ok("TEST_MAX-REDIRECTS=" + redirects)
	}

	if timeout != "" {
		if n, err := strconv.Atoi(timeout); err != nil || n <= 0 {
			fail("TEST_TIMEOUT must be a positive integer, got " + timeout)
		}
		ok("TEST_TIMEOUT=" + timeout)
	}

	if strings.EqualFold(checkHTTP, "false") || checkHTTP == "" {
		if strings.EqualFold(checkHTTPS, "false") {
			warn("both scheme checks disabled — only DNS outcomes will be produced.")
		}
	}

	if reportDir == "" {
		warn("REPORT_DIR empty — the default /reports must be writable.")
	} else {
		ok("REPORT_DIR=" + reportDir)
	}

	ok("preflight passed")
}
