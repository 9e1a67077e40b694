package oracle

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// throttledTransport puts a hard token-bucket ceiling on outbound
// requests, underneath the window limiter's per-minute budget.
type throttledTransport struct {
	base http.RoundTripper
	lim  *rate.Limiter
}

func (t *throttledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.lim.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

func newHTTPClient(ceilingRPS float64) *http.Client {
	if ceilingRPS <= 0 {
		ceilingRPS = 1.0
	}
	return &http.Client{
		Timeout: 60 * time.Second,
		Transport: &throttledTransport{
			base: http.DefaultTransport,
			lim:  rate.NewLimiter(rate.Limit(ceilingRPS), 1),
		},
	}
}
