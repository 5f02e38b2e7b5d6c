// Package session builds the shared HTTP client used for every fetch in a batch.
package session

import (
	"net/http"
	"net/http/cookiejar"

	"github.com/go-resty/resty/v2"

	"spcuadros/internal/config"
	"spcuadros/internal/logger"
)

// DefaultAccept is sent unless overridden by configured headers.
const DefaultAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// BuildHeaders creates the session headers with defaults applied first so that
// configured entries win.
func BuildHeaders(cfg config.HTTPConfig) http.Header {
	headers := http.Header{}

	headers.Set("Accept", DefaultAccept)
	if cfg.UserAgent != "" {
		headers.Set("User-Agent", cfg.UserAgent)
	}
	if cfg.Referer != "" {
		headers.Set("Referer", cfg.Referer)
	}

	for key, value := range cfg.Headers {
		headers.Set(key, value)
	}

	return headers
}

// New returns a resty client carrying the session headers and a cookie jar.
// Retries are handled by the fetcher, so resty's own retry count stays at zero.
// A nil log disables request tracing.
func New(cfg config.HTTPConfig, log *logger.Logger) (*resty.Client, error) {
	client := resty.New()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetRetryCount(0)

	for key, values := range BuildHeaders(cfg) {
		if len(values) > 0 {
			client.SetHeader(key, values[0])
		}
	}

	if log != nil {
		instrument(client, log)
	}

	return client, nil
}

func instrument(client *resty.Client, log *logger.Logger) {
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		log.Debug("start request", "method", req.Method, "url", req.URL)
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		log.Debug("end request",
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"bytes", len(res.Body()),
			"elapsed", res.Time(),
		)
		return nil
	})
}
