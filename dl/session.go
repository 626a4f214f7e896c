package dl

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/imroc/req/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"

	maxBackoff = 120 * time.Second
)

var retryStatus = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

var idempotentMethods = map[string]bool{
	http.MethodHead:    true,
	http.MethodGet:     true,
	http.MethodOptions: true,
}

// RetryPolicy is handed to the session once and never changes afterwards.
type RetryPolicy struct {
	// Count is the maximum number of retries after the first attempt.
	Count int
	// BackoffFactor scales the delay before retry n: the first retry is
	// immediate, later ones wait factor * 2^(n-1) seconds.
	BackoffFactor float64
}

// Backoff returns the delay before the given retry attempt (1-based).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if p.BackoffFactor <= 0 || attempt <= 1 {
		return 0
	}
	d := p.BackoffFactor * math.Pow(2, float64(attempt-1)) * float64(time.Second)
	if d > float64(maxBackoff) {
		return maxBackoff
	}
	return time.Duration(d)
}

func (p RetryPolicy) shouldRetry(resp *req.Response, err error) bool {
	if resp == nil || resp.Request == nil || !idempotentMethods[resp.Request.Method] {
		return false
	}
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	return resp.Response != nil && retryStatus[resp.StatusCode]
}

func (p RetryPolicy) interval(resp *req.Response, attempt int) time.Duration {
	if d, ok := retryAfter(resp); ok {
		return d
	}
	return p.Backoff(attempt)
}

// retryAfter honours a Retry-After header on 413, 429 and 503 responses.
func retryAfter(resp *req.Response) (time.Duration, bool) {
	if resp == nil || resp.Response == nil {
		return 0, false
	}
	switch resp.StatusCode {
	case http.StatusRequestEntityTooLarge, http.StatusTooManyRequests, http.StatusServiceUnavailable:
	default:
		return 0, false
	}
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if t, err := http.ParseTime(v); err == nil {
		d = time.Until(t)
	} else {
		return 0, false
	}
	if d < 0 {
		d = 0
	}
	if d > maxBackoff {
		d = maxBackoff
	}
	return d, true
}

// newSession builds the http client for one download. It does no I/O.
func newSession(policy RetryPolicy, timeout time.Duration, logger logrus.FieldLogger) *req.Client {
	client := req.C().
		SetLogger(logger).
		SetUserAgent(userAgent).
		DisableAutoReadResponse().
		// the whole transfer has no deadline, only the stages below do
		SetTimeout(0)

	if timeout > 0 {
		dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}
		client = client.SetDial(dialer.DialContext).SetTLSHandshakeTimeout(timeout)
		client.GetTransport().SetResponseHeaderTimeout(timeout)
	}

	if policy.Count > 0 {
		client = client.SetCommonRetryCount(policy.Count).
			SetCommonRetryCondition(policy.shouldRetry).
			SetCommonRetryInterval(policy.interval).
			SetCommonRetryHook(func(resp *req.Response, err error) {
				entry := logger
				reason := "transport error"
				if err != nil {
					reason = err.Error()
				}
				if resp != nil {
					if resp.Request != nil {
						entry = logger.WithField("attempt", resp.Request.RetryAttempt)
					}
					if resp.Response != nil {
						reason = resp.Status
						_ = resp.Body.Close()
					}
				}
				entry.Warnf("retrying: %s", reason)
			})
	}
	return client
}
