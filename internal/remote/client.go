// Package remote talks to the planetary catalog, the chat model and the
// space-weather feed.
//
// Every call takes a context, waits on a shared rate limiter and reports to
// the metrics collector. Failures never reach the frame loop: callers turn
// them into the fixed fallback strings in fallback.go.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/metrics"
)

var (
	ErrHTTPStatus   = errors.New("remote: unexpected status")
	ErrNoCandidates = errors.New("remote: no candidates in reply")
	ErrNoEvents     = errors.New("remote: no events")
	ErrMalformed    = errors.New("remote: malformed response")
	ErrNotFound     = errors.New("remote: body not found")
)

const maxBody = 4 << 20

// StatusError is returned for any response with status >= 400.
type StatusError struct {
	API    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote: %s returned %s", e.API, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrHTTPStatus }

type Options struct {
	HTTPClient    *http.Client
	Timeout       time.Duration
	RatePerSecond float64
	Logger        *zap.Logger
	Metrics       *metrics.Collector
}

type base struct {
	api     string
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
	metrics *metrics.Collector
}

func newBase(api string, opts Options) base {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = config.DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	rps := opts.RatePerSecond
	if rps <= 0 {
		rps = config.DefaultRatePerSecond
	}
	return base{
		api:     api,
		http:    hc,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		log:     logging.OrNop(opts.Logger).With(zap.String("api", api)),
		metrics: opts.Metrics,
	}
}

// do sends req and decodes a JSON body into out.
func (b *base) do(ctx context.Context, req *http.Request, out any) (err error) {
	start := time.Now()
	defer func() {
		d := time.Since(start)
		b.metrics.RecordRemote(b.api, err, d)
		if err != nil {
			b.log.Debug("request failed", zap.Error(err), zap.Duration("took", d))
		} else {
			b.log.Debug("request done", zap.Duration("took", d))
		}
	}()

	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := b.http.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%s: %w", b.api, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return &StatusError{API: b.api, Code: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, b.api, err)
	}
	return nil
}

func (b *base) getJSON(ctx context.Context, url string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")
	return b.do(ctx, req, out)
}

func (b *base) postJSON(ctx context.Context, url string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return b.do(ctx, req, out)
}

// Clients bundles the three API clients built from one config section.
type Clients struct {
	Catalog *CatalogClient
	Chat    *ChatClient
	News    *NewsClient
}

func NewClients(cfg config.RemoteConfig, log *zap.Logger, m *metrics.Collector) *Clients {
	opts := Options{
		Timeout:       cfg.Timeout,
		RatePerSecond: cfg.RatePerSecond,
		Logger:        log,
		Metrics:       m,
	}
	return &Clients{
		Catalog: NewCatalogClient(cfg.CatalogURL, cfg.CatalogKey, opts),
		Chat:    NewChatClient(cfg.ChatURL, cfg.ChatKey, opts),
		News:    NewNewsClient(cfg.NewsURL, cfg.NewsKey, opts),
	}
}
