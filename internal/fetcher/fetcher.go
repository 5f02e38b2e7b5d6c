// Package fetcher downloads one resource with bounded retries, decoding and
// structurally validating every try.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"spcuadros/internal/config"
	"spcuadros/internal/logger"
	"spcuadros/internal/models"
)

// Fetch errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrInvalidPayload       = errors.New("invalid payload")
	ErrRetriesExhausted     = errors.New("retries exhausted")
)

// PayloadValidator decides whether decoded text is worth extracting.
type PayloadValidator interface {
	Validate(text string) error
}

// State is a step of one fetch attempt.
type State int

// Attempt states.
const (
	StatePending State = iota
	StateFetching
	StateValidating
	StateSuccess
	StateRetry
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFetching:
		return "fetching"
	case StateValidating:
		return "validating"
	case StateSuccess:
		return "success"
	case StateRetry:
		return "retry"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result carries the artifact (nil unless the fetch succeeded) and every try.
type Result struct {
	Artifact *models.RawArtifact
	Attempts []AttemptResult
}

// Fetcher runs the fetch-decode-validate cycle for a resource.
type Fetcher struct {
	client    *resty.Client
	policy    config.RetryPolicy
	validator PayloadValidator
	log       *logger.Logger
	sleep     func(ctx context.Context, d time.Duration) error
}

// New creates a fetcher. The client is shared and only read.
func New(client *resty.Client, policy config.RetryPolicy, v PayloadValidator, log *logger.Logger) *Fetcher {
	if log == nil {
		log = logger.Discard()
	}

	return &Fetcher{
		client:    client,
		policy:    policy,
		validator: v,
		log:       log,
		sleep:     sleepContext,
	}
}

// Fetch tries ref up to MaxAttempts times. Transport errors and invalid
// payloads are retried the same way. The returned error wraps
// ErrRetriesExhausted together with the last failure, or the context error if
// ctx ends first.
func (f *Fetcher) Fetch(ctx context.Context, ref models.ResourceRef) (*Result, error) {
	log := f.log.With("index", ref.Index, "url", ref.URL)
	res := &Result{}

	var (
		state    = StatePending
		attempt  int
		started  time.Time
		resp     *response
		text     string
		encoding string
		lastErr  error
	)

	for {
		switch state {
		case StatePending:
			attempt++
			started = time.Now()
			state = StateFetching

		case StateFetching:
			var err error

			resp, err = f.get(ctx, ref.URL)
			if err != nil {
				lastErr = err
				res.Attempts = append(res.Attempts, newAttempt(attempt, started, resp, err))
				log.Warn("fetch failed", "attempt", attempt, "max_attempts", f.policy.MaxAttempts, "error", err)
				state = StateRetry

				continue
			}

			text, encoding = Decode(resp.body, resp.contentType)
			text = Clean(text)
			state = StateValidating

		case StateValidating:
			if err := f.validator.Validate(text); err != nil {
				lastErr = fmt.Errorf("%w: %w", ErrInvalidPayload, err)
				res.Attempts = append(res.Attempts, newAttempt(attempt, started, resp, lastErr))
				log.Warn("invalid payload", "attempt", attempt, "max_attempts", f.policy.MaxAttempts, "length", len(text), "reason", err)
				state = StateRetry

				continue
			}

			res.Attempts = append(res.Attempts, newAttempt(attempt, started, resp, nil))
			state = StateSuccess

		case StateSuccess:
			log.Debug("fetched", "attempt", attempt, "encoding", encoding, "length", len(text))
			res.Artifact = &models.RawArtifact{
				Ref:      ref,
				Text:     text,
				Encoding: encoding,
				Attempts: attempt,
			}

			return res, nil

		case StateRetry:
			if ctx.Err() != nil {
				return res, fmt.Errorf("fetch cancelled after %d attempts: %w", attempt, ctx.Err())
			}

			if attempt >= f.policy.MaxAttempts {
				state = StateExhausted

				continue
			}

			if err := f.sleep(ctx, f.policy.GetRetryDelay(attempt+1)); err != nil {
				return res, fmt.Errorf("fetch cancelled after %d attempts: %w", attempt, err)
			}

			state = StatePending

		case StateExhausted:
			log.Error("retries exhausted", "attempts", attempt, "error", lastErr)

			return res, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempt, lastErr)
		}
	}
}

type response struct {
	body        []byte
	contentType string
	statusCode  int
}

// get issues one GET bounded by the policy timeout. Non-2xx is an error.
func (f *Fetcher) get(ctx context.Context, url string) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, f.policy.GetTimeout())
	defer cancel()

	r, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	resp := &response{
		body:        r.Body(),
		contentType: r.Header().Get("Content-Type"),
		statusCode:  r.StatusCode(),
	}

	if !r.IsSuccess() {
		return resp, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, r.StatusCode())
	}

	return resp, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
