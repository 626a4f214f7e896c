package dl

import (
	"io"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTimeout       = 10 * time.Second
	DefaultRetries       = 3
	DefaultBackoffFactor = 0.3

	DefaultProgressInterval = time.Second
)

var ErrInvalidConfig = errors.New("invalid config")

// Config describes one download. A DownLoader keeps its own copy.
type Config struct {
	URL      string
	Dir      string // 保存的目录, created if missing
	FileName string // empty: derived from the url

	// Timeout bounds dial, TLS handshake, waiting for headers and any
	// pause between body reads. It is not a deadline for the whole transfer.
	// Zero disables it.
	Timeout       time.Duration
	RetryCount    int
	BackoffFactor float64

	Logger logrus.FieldLogger
	Output io.Writer // progress bar, nil means os.Stdout
	Debug  bool      // log request and response details

	// ProgressInterval is the minimum time between two progress bar redraws.
	ProgressInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Timeout:       DefaultTimeout,
		RetryCount:    DefaultRetries,
		BackoffFactor: DefaultBackoffFactor,

		ProgressInterval: DefaultProgressInterval,
	}
}

func (c Config) Validate() error {
	if c.URL == "" {
		return errors.Wrap(ErrInvalidConfig, "url is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return errors.Wrapf(ErrInvalidConfig, "parse url %q: %v", c.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Wrapf(ErrInvalidConfig, "unsupported scheme %q", u.Scheme)
	}
	if c.Dir == "" {
		return errors.Wrap(ErrInvalidConfig, "destination directory is required")
	}
	if c.RetryCount < 0 {
		return errors.Wrapf(ErrInvalidConfig, "retry count must be >= 0, got %d", c.RetryCount)
	}
	if c.BackoffFactor < 0 {
		return errors.Wrapf(ErrInvalidConfig, "backoff factor must be >= 0, got %v", c.BackoffFactor)
	}
	if c.ProgressInterval < 0 {
		return errors.Wrapf(ErrInvalidConfig, "progress interval must be >= 0, got %s", c.ProgressInterval)
	}
	if c.Timeout < 0 {
		return errors.Wrapf(ErrInvalidConfig, "timeout must be >= 0, got %s", c.Timeout)
	}
	return nil
}

func (c Config) retryPolicy() RetryPolicy {
	return RetryPolicy{Count: c.RetryCount, BackoffFactor: c.BackoffFactor}
}
