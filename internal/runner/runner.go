package runner

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/resourceprobe/internal/config"
	"github.com/hamed0406/resourceprobe/internal/domain"
	"github.com/hamed0406/resourceprobe/internal/probe"
)

// Prober walks one URL's redirect chain. Satisfied by *probe.Prober;
// tests substitute fakes.
type Prober interface {
	Probe(ctx context.Context, target string) probe.Result
}

// Resolver answers hostname lookups. Satisfied by *probe.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, hostname string) (string, error)
}

// Runner sequences the checks for each URL: DNS first, then HTTP and
// HTTPS as configured. Later checks are skipped when DNS fails, so
// ordering within one URL is fixed; distinct URLs share no state.
type Runner struct {
	Logger   *zap.Logger
	Resolver Resolver
	Prober   Prober
	Cfg      config.Config
}

func New(logger *zap.Logger, cfg config.Config) *Runner {
	return &Runner{
		Logger:   logger,
		Resolver: probe.NewResolver(),
		Prober:   probe.NewProber(cfg.Timeout, cfg.MaxRedirects, cfg.VerifySSL),
		Cfg:      cfg,
	}
}

// Run probes every configured URL in order. With no URLs configured
// it short-circuits to a single skipped outcome and never touches the
// network.
func (r *Runner) Run(ctx context.Context) []domain.Outcome {
	if len(r.Cfg.URLs) == 0 {
		r.Logger.Warn("no_urls_configured")
		return []domain.Outcome{domain.Skipped("resource_availability", "No URL(s) configured")}
	}

	var outcomes []domain.Outcome
	for _, u := range r.Cfg.URLs {
		outcomes = append(outcomes, r.RunURL(ctx, u)...)
	}
	return outcomes
}

// RunURL produces the ordered outcomes for one URL.
func (r *Runner) RunURL(ctx context.Context, rawurl string) []domain.Outcome {
	outcomes := make([]domain.Outcome, 0, 3)

	dns := r.safeCheck(dnsCase(rawurl), func() domain.Outcome {
		return r.dnsCheck(ctx, rawurl)
	})
	outcomes = append(outcomes, dns)
	r.logOutcome(dns)

	for _, scheme := range []string{"http", "https"} {
		if scheme == "http" && !r.Cfg.CheckHTTP {
			continue
		}
		if scheme == "https" && !r.Cfg.CheckHTTPS {
			continue
		}

		name := availabilityCase(scheme, rawurl)
		var out domain.Outcome
		if dns.Failed() {
			out = domain.Skipped(name, "Skipped due to DNS failure")
		} else {
			sc := scheme
			out = r.safeCheck(name, func() domain.Outcome {
				return r.availabilityCheck(ctx, rawurl, sc)
			})
		}
		outcomes = append(outcomes, out)
		r.logOutcome(out)
	}

	return outcomes
}

func (r *Runner) dnsCheck(ctx context.Context, rawurl string) domain.Outcome {
	hostname := probe.Hostname(rawurl)
	start := time.Now()
	var con console

	out := domain.Outcome{
		CaseName: dnsCase(rawurl),
		Status:   domain.StatusPass,
		Properties: []domain.Property{
			{Key: "url", Value: rawurl},
			{Key: "hostname", Value: hostname},
		},
	}

	con.outf("Resolving hostname: %s", hostname)
	ip, err := r.Resolver.Resolve(ctx, hostname)
	if err != nil {
		con.errf("DNS resolution failed: %s", err)
		out.Status = domain.StatusFail
		out.FailureMessage = fmt.Sprintf("DNS resolution failed for %s", hostname)
		out.FailureDetail = err.Error()
	} else {
		con.outf("resolved_ip: %s", ip)
		out.Properties = append(out.Properties, domain.Property{Key: "resolved_ip", Value: ip})
	}

	out.Duration = time.Since(start).Seconds()
	out.Stdout, out.Stderr = con.text()
	return out
}

func (r *Runner) availabilityCheck(ctx context.Context, rawurl, scheme string) domain.Outcome {
	target := forceScheme(rawurl, scheme)
	upper := strings.ToUpper(scheme)

	// verification only ever applies to https hops
	effVerify := true
	if scheme == "https" {
		effVerify = r.Cfg.VerifySSL
	}

	out := domain.Outcome{
		CaseName: availabilityCase(scheme, rawurl),
		Status:   domain.StatusPass,
		Properties: []domain.Property{
			{Key: "verify_ssl", Value: strconv.FormatBool(effVerify)},
		},
	}

	var con console
	res := r.Prober.Probe(ctx, target)

	con.outf("response_time_s: %.3f", res.Elapsed)
	if res.StatusCode != 0 {
		con.outf("status_code: %d", res.StatusCode)
	}

	if res.CrossedScheme {
		con.outf("redirects_to: %s", res.FinalURL)
		con.outf("OK: %s endpoint reachable (redirects to %s)", upper, strings.ToUpper(schemeOf(res.FinalURL)))
	} else {
		if res.FinalURL != target {
			con.outf("final_url: %s", res.FinalURL)
		}

		switch {
		case res.Elapsed >= float64(r.Cfg.Timeout):
			// budget violation, reported as a failure even when the
			// transport also timed out underneath
			msg := fmt.Sprintf("Response time %.3fs exceeded timeout of %ds", res.Elapsed, r.Cfg.Timeout)
			con.errf("Checking %s availability for: %s", upper, target)
			con.errf("Timeout: %ds, Max redirects: %d, Verify SSL: %t", r.Cfg.Timeout, r.Cfg.MaxRedirects, effVerify)
			con.errf("%s", msg)
			out.Status = domain.StatusFail
			out.FailureMessage = msg
			out.FailureDetail = msg
			if res.Err != "" {
				out.FailureDetail = res.Err
			}
		case res.Err != "":
			con.errf("Checking %s availability for: %s", upper, target)
			con.errf("Timeout: %ds, Max redirects: %d, Verify SSL: %t", r.Cfg.Timeout, r.Cfg.MaxRedirects, effVerify)
			con.errf("Availability check failed: %s", res.Err)
			out.Status = domain.StatusFail
			out.FailureMessage = fmt.Sprintf("%s availability check failed", upper)
			out.FailureDetail = res.Err
		default:
			con.outf("OK: %s available, status %d in %.3fs", upper, res.StatusCode, res.Elapsed)
		}
	}

	out.StatusCode = res.StatusCode
	out.FinalURL = res.FinalURL
	out.Duration = res.Elapsed
	out.Stdout, out.Stderr = con.text()
	return out
}

// safeCheck turns a panic inside a check into an error-kind outcome
// instead of taking down the rest of the run.
func (r *Runner) safeCheck(caseName string, fn func() domain.Outcome) (out domain.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.Logger.Error("check_panic",
				zap.String("case", caseName),
				zap.Any("panic", rec),
			)
			out = domain.Outcome{
				CaseName:    caseName,
				Status:      domain.StatusError,
				ErrorDetail: fmt.Sprint(rec),
			}
		}
	}()
	return fn()
}

func (r *Runner) logOutcome(o domain.Outcome) {
	r.Logger.Info("check_done",
		zap.String("case", o.CaseName),
		zap.String("status", string(o.Status)),
		zap.Int("status_code", o.StatusCode),
		zap.Float64("duration_s", o.Duration),
		zap.String("final_url", o.FinalURL),
	)
}

func dnsCase(rawurl string) string {
	return fmt.Sprintf("dns_resolution[%s]", rawurl)
}

func availabilityCase(scheme, rawurl string) string {
	return fmt.Sprintf("%s_availability[%s]", scheme, rawurl)
}

// forceScheme rewrites the URL's scheme while keeping everything else.
func forceScheme(rawurl, scheme string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return rawurl
	}
	u.Scheme = scheme
	return u.String()
}

func schemeOf(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return ""
	}
	return u.Scheme
}
