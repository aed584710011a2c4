package latency

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Config controls a repeated run.
type Config struct {
	// Count is the number of requests to send
	Count int

	// Rate is the maximum number of requests per second (0 means unlimited)
	Rate float64
}

// Func performs one request and reports its HTTP status, or 0 when there
// was no response.
type Func func(ctx context.Context, iteration int) (statusCode int, err error)

// Run calls fn cfg.Count times in sequence, paced by cfg.Rate, and returns the
// recorded latencies. Request errors are recorded, not returned. Run stops
// early with ctx.Err() when ctx is done, returning what was recorded so far.
func Run(ctx context.Context, cfg Config, fn Func) (Summary, error) {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Rate), 1)
	}

	rec := NewRecorder()
	for i := 0; i < cfg.Count; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return rec.Summary(), err
		}

		start := time.Now()
		status, err := fn(ctx, i)
		rec.Record(time.Since(start), status, err)
	}

	return rec.Summary(), nil
}
