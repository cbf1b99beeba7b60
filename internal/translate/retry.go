package translate

import (
	"context"
	"math"
	"math/rand"
	"time"

	"persian-translator/internal/config"
	"persian-translator/internal/logger"
)

// RetrierConfig configures the retry controller.
type RetrierConfig struct {
	// MaxAttempts is the total number of attempts per call, including the
	// first one.
	MaxAttempts int
	// BaseDelay is the backoff delay for the first retry.
	BaseDelay time.Duration
	// MaxDelay caps every computed delay.
	MaxDelay time.Duration
	// RequestsPerMinute bounds the request rate over a sliding window.
	RequestsPerMinute int
}

// Retrier wraps remote calls with a sliding-window rate limiter and
// exponential backoff with jitter. Every call reaches a terminal state:
// it either returns a result or a classified error within MaxAttempts.
type Retrier struct {
	cfg     RetrierConfig
	limiter *rateLimiter

	// sleep and jitter are injection points for tests. sleep honors
	// context cancellation; jitter returns a value in [0, 1).
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() float64
}

// NewRetrier creates a Retrier from the given configuration.
func NewRetrier(cfg RetrierConfig) *Retrier {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = time.Duration(config.MaxBackoffSeconds * float64(time.Second))
	}
	r := &Retrier{
		cfg:    cfg,
		sleep:  sleepCtx,
		jitter: rand.Float64,
	}
	r.limiter = &rateLimiter{
		perMinute: cfg.RequestsPerMinute,
		now:       time.Now,
		sleep:     r.doSleep,
	}
	return r
}

// Do runs fn until it succeeds, fails permanently, or MaxAttempts is
// reached. Rate-limit hints from the provider override the computed
// backoff delay.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	var lastErr *Error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		if err := r.limiter.waitIfNeeded(ctx); err != nil {
			return "", NewError(KindTransient, "cancelled while rate limited", err)
		}

		out, err := fn(ctx)
		r.limiter.recordRequest()
		if err == nil {
			return out, nil
		}

		lastErr = Classify(err)
		if !lastErr.Retryable() {
			logger.Error("translation failed permanently", lastErr,
				logger.Int("attempt", attempt))
			return "", lastErr
		}
		if attempt == r.cfg.MaxAttempts {
			break
		}

		delay := r.backoffDelay(attempt, lastErr)
		logger.Warn("translation attempt failed, retrying",
			logger.Int("attempt", attempt),
			logger.Int("maxAttempts", r.cfg.MaxAttempts),
			logger.Float64("delaySeconds", delay.Seconds()),
			logger.Err(lastErr))

		if err := r.doSleep(ctx, delay); err != nil {
			return "", NewError(KindTransient, "cancelled during backoff", err)
		}
	}

	logger.Error("translation attempts exhausted", lastErr,
		logger.Int("attempts", r.cfg.MaxAttempts))
	return "", lastErr
}

// backoffDelay computes the delay before the next attempt. Provider hints
// win for rate-limit errors; everything else gets exponential backoff
// with up to 30% jitter, capped at MaxDelay.
func (r *Retrier) backoffDelay(attempt int, terr *Error) time.Duration {
	if terr.Kind == KindRateLimited && terr.RetryAfter > 0 {
		if terr.RetryAfter > r.cfg.MaxDelay {
			return r.cfg.MaxDelay
		}
		return terr.RetryAfter
	}
	if terr.RetryAfter > 0 {
		return terr.RetryAfter
	}

	delay := float64(r.cfg.BaseDelay) * math.Pow(2, float64(attempt-1))
	delay += delay * 0.3 * r.jitter()
	if delay > float64(r.cfg.MaxDelay) {
		delay = float64(r.cfg.MaxDelay)
	}
	return time.Duration(delay)
}

func (r *Retrier) doSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	return r.sleep(ctx, d)
}

// sleepCtx sleeps for d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// rateLimiter tracks request timestamps over a sliding one-minute window.
type rateLimiter struct {
	perMinute  int
	timestamps []time.Time
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
}

// waitIfNeeded blocks until the window has capacity for one more request.
func (l *rateLimiter) waitIfNeeded(ctx context.Context) error {
	if l.perMinute <= 0 {
		return nil
	}

	now := l.now()
	kept := l.timestamps[:0]
	for _, ts := range l.timestamps {
		if now.Sub(ts) < time.Minute {
			kept = append(kept, ts)
		}
	}
	l.timestamps = kept

	if len(l.timestamps) >= l.perMinute-1 && len(l.timestamps) > 0 {
		oldest := l.timestamps[0]
		// Wait until the oldest request leaves the window, plus a one
		// second buffer.
		wait := time.Minute - now.Sub(oldest) + time.Second
		if wait > time.Minute {
			wait = time.Minute
		}
		if wait > 0 {
			logger.Info("rate limit approaching, waiting",
				logger.Float64("seconds", wait.Seconds()))
			return l.sleep(ctx, wait)
		}
	}
	return nil
}

// recordRequest notes that a request was made.
func (l *rateLimiter) recordRequest() {
	l.timestamps = append(l.timestamps, l.now())
}
