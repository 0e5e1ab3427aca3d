package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	URLs         []string // base URLs to probe
	MaxRedirects int      // redirect-count ceiling per check
	Timeout      int      // per-check timeout in seconds
	CheckHTTP    bool     // probe the http scheme
	CheckHTTPS   bool     // probe the https scheme
	VerifySSL    bool     // certificate verification on https hops

	SuiteName string // report suite name
	ReportDir string // where the JUnit XML lands
	LogDir    string // logs directory
	Webhook   string // optional Slack webhook for failed runs
}

// ServeConfig holds the extra knobs for API mode.
type ServeConfig struct {
	Addr          string        // bind address
	DBPath        string        // sqlite path; empty means in-memory history
	APIKeys       []string      // empty disables auth
	CheckInterval time.Duration // periodic re-probe; 0 disables
}

// FromEnv reads the harness configuration. Numeric settings are
// validated: a negative redirect limit or a non-numeric timeout is a
// configuration error, not something to silently coerce to zero.
func FromEnv() (Config, error) {
	cfg := Config{
		URLs:       splitURLs(os.Getenv("TEST_URLS")),
		Timeout:    30,
		CheckHTTP:  boolEnv("TEST_CHECK-HTTP-AVAILABILITY", false),
		CheckHTTPS: boolEnv("TEST_CHECK-HTTPS-AVAILABILITY", true),
		VerifySSL:  boolEnv("TEST_VERIFY-SSL", true),
		SuiteName:  "resource-availability",
		ReportDir:  "/reports",
		LogDir:     "logs",
		Webhook:    os.Getenv("SLACK_WEBHOOK"),
	}

	if v := os.Getenv("TEST_MAX-REDIRECTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("TEST_MAX-REDIRECTS: %q is not an integer", v)
		}
		if n < 0 {
			return cfg, fmt.Errorf("TEST_MAX-REDIRECTS: must be >= 0, got %d", n)
		}
		cfg.MaxRedirects = n
	}

	if v := os.Getenv("TEST_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("TEST_TIMEOUT: %q is not an integer", v)
		}
		if n <= 0 {
			return cfg, fmt.Errorf("TEST_TIMEOUT: must be > 0, got %d", n)
		}
		cfg.Timeout = n
	}

	if v := os.Getenv("TS_NAME"); v != "" {
		cfg.SuiteName = v
	}
	if v := os.Getenv("REPORT_DIR"); v != "" {
		cfg.ReportDir = v
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}

	return cfg, nil
}

// ServeFromEnv reads the API-mode settings.
func ServeFromEnv() ServeConfig {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	interval := time.Duration(0)
	if v := os.Getenv("CHECK_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			interval = time.Duration(ms) * time.Millisecond
		}
	}

	return ServeConfig{
		Addr:          addr,
		DBPath:        os.Getenv("DB_PATH"),
		APIKeys:       splitList(os.Getenv("API_KEYS")),
		CheckInterval: interval,
	}
}

// splitURLs handles the harness convention of an optionally
// bracket-wrapped, comma-separated URL list.
func splitURLs(raw string) []string {
	raw = strings.Trim(strings.TrimSpace(raw), "[]")
	return splitList(raw)
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func boolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return strings.EqualFold(v, "true")
}
