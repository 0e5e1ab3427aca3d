package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Resolver answers a single question: does this hostname resolve,
// and to what address. One attempt per call, OS resolver, no retries.
type Resolver struct {
	r *net.Resolver
}

func NewResolver() *Resolver {
	return &Resolver{r: &net.Resolver{}} // OS resolver
}

// Resolve returns the first address the system resolver reports for
// hostname. An empty hostname fails without touching the network.
func (d *Resolver) Resolve(ctx context.Context, hostname string) (string, error) {
	if hostname == "" {
		return "", errors.New("Could not extract hostname from URL")
	}
	addrs, err := d.r.LookupHost(ctx, hostname)
	if err != nil {
		return "", err
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("no addresses found for %s", hostname)
	}
	return addrs[0], nil
}

// Hostname pulls the host out of a URL string; empty when the URL has
// no authority component worth resolving.
func Hostname(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
