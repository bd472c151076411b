package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// HTTP downloads an export, retrying transient failures.
type HTTP struct {
	url      string
	maxBytes int64
	client   *retryablehttp.Client
	logger   *zap.Logger
}

// NewHTTP creates an HTTP source for cfg.URL.
func NewHTTP(cfg Config, logger *zap.Logger) *HTTP {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Retries
	client.RetryWaitMin = 250 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = leveledLogger{logger.Sugar()}
	if cfg.TimeoutSeconds > 0 {
		client.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &HTTP{url: cfg.URL, maxBytes: cfg.MaxBytes, client: client, logger: logger}
}

// Name omits the query string, which usually carries a signature.
func (h *HTTP) Name() string {
	u, err := url.Parse(h.url)
	if err != nil {
		return "http"
	}
	return u.Scheme + "://" + u.Host + u.Path
}

func (h *HTTP) Read(ctx context.Context) ([]byte, error) {
	started := time.Now()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid input URL: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download input: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to download input: unexpected status %s", resp.Status)
	}

	data, err := readLimited(resp.Body, h.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read input body: %w", err)
	}

	h.logger.Info("input downloaded",
		zap.String("source", h.Name()),
		zap.String("size", humanize.Bytes(uint64(len(data)))),
		zap.Duration("elapsed", time.Since(started)))
	return data, nil
}

// leveledLogger routes retryablehttp logs to zap.
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}
