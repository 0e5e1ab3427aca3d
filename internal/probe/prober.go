package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result is what one redirect-following probe returns.
//
// StatusCode is 0 when no response was received at all (timeout,
// connection error). Elapsed is cumulative across every hop attempted
// and is populated on every return path, errors included.
type Result struct {
	StatusCode    int
	FinalURL      string
	Elapsed       float64 // seconds
	Err           string  // empty on success
	CrossedScheme bool    // a redirect left the initial scheme
}

// Prober issues GET requests and walks redirect chains by hand.
// Automatic client-side redirect following is disabled because the
// scheme-boundary and redirect-count policy must be evaluated per hop
// before continuing.
type Prober struct {
	timeoutSecs  int
	maxRedirects int
	verifySSL    bool

	strict   *http.Client // default certificate verification
	insecure *http.Client // InsecureSkipVerify, https hops only
}

func NewProber(timeoutSecs, maxRedirects int, verifySSL bool) *Prober {
	timeout := time.Duration(timeoutSecs) * time.Second
	noFollow := func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Prober{
		timeoutSecs:  timeoutSecs,
		maxRedirects: maxRedirects,
		verifySSL:    verifySSL,
		strict: &http.Client{
			Timeout:       timeout,
			CheckRedirect: noFollow,
		},
		insecure: &http.Client{
			Timeout:       timeout,
			CheckRedirect: noFollow,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// Probe requests target and follows same-scheme redirects up to the
// configured limit. A redirect whose Location crosses the http/https
// boundary stops the walk and is reported as informational, not an
// error: forcing http over to https is expected infrastructure
// behavior, not a defect.
func (p *Prober) Probe(ctx context.Context, target string) Result {
	initial, err := url.Parse(target)
	if err != nil {
		return Result{FinalURL: target, Err: err.Error()}
	}
	initialScheme := initial.Scheme
	current := target
	followed := 0
	start := time.Now()

	for {
		resp, err := p.get(ctx, current)
		elapsed := time.Since(start).Seconds()
		if err != nil {
			if isTimeout(err) {
				return Result{
					FinalURL: current,
					Elapsed:  elapsed,
					Err:      fmt.Sprintf("Request timed out after %ds", p.timeoutSecs),
				}
			}
			return Result{FinalURL: current, Elapsed: elapsed, Err: err.Error()}
		}
		code := resp.StatusCode
		resp.Body.Close()

		switch {
		case code >= 200 && code < 300:
			return Result{StatusCode: code, FinalURL: current, Elapsed: elapsed}

		case code >= 300 && code < 400:
			loc := resp.Header.Get("Location")
			if loc == "" {
				return Result{
					StatusCode: code,
					FinalURL:   current,
					Elapsed:    elapsed,
					Err:        fmt.Sprintf("Redirect response %d had no Location header", code),
				}
			}
			next, err := resolveRef(current, loc)
			if err != nil {
				return Result{StatusCode: code, FinalURL: current, Elapsed: elapsed, Err: err.Error()}
			}
			if schemeOf(next) != initialScheme {
				return Result{
					StatusCode:    code,
					FinalURL:      next,
					Elapsed:       elapsed,
					CrossedScheme: true,
				}
			}
			if followed >= p.maxRedirects {
				return Result{
					StatusCode: code,
					FinalURL:   current,
					Elapsed:    elapsed,
					Err: fmt.Sprintf("Redirect limit reached (%d); last status %d at %s",
						p.maxRedirects, code, current),
				}
			}
			current = next
			followed++

		default:
			return Result{
				StatusCode: code,
				FinalURL:   current,
				Elapsed:    elapsed,
				Err:        fmt.Sprintf("Unexpected status code %d", code),
			}
		}
	}
}

func (p *Prober) get(ctx context.Context, rawurl string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, err
	}
	return p.client(rawurl).Do(req)
}

// client picks the transport for one hop. Verification is only ever
// relaxed on https hops; an http hop always gets the strict client,
// so no verification state leaks between hops of differing scheme.
func (p *Prober) client(rawurl string) *http.Client {
	if !p.verifySSL && strings.HasPrefix(rawurl, "https://") {
		return p.insecure
	}
	return p.strict
}

// resolveRef joins a Location header value against the URL it came
// from, per standard relative-reference resolution.
func resolveRef(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	next, err := b.Parse(ref)
	if err != nil {
		return "", err
	}
	return next.String(), nil
}

func schemeOf(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return ""
	}
	return u.Scheme
}

func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
