package latency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Summary(t *testing.T) {
	rec := NewRecorder()
	for i := 1; i <= 100; i++ {
		rec.Record(time.Duration(i)*time.Millisecond, 200, nil)
	}
	rec.Record(0, 0, errors.New("connection refused"))
	rec.Record(2*time.Hour, 504, errors.New("timeout"))

	s := rec.Summary()
	assert.Equal(t, int64(102), s.Count)
	assert.Equal(t, int64(2), s.Failed)
	assert.Equal(t, map[int]int{200: 100, 504: 1}, s.StatusCodes)
	assert.Equal(t, []int{200, 504}, s.Statuses())

	assert.Equal(t, time.Microsecond, s.Min, "zero durations are clamped to the histogram minimum")
	assert.InDelta(t, float64(time.Hour), float64(s.Max), float64(time.Hour)/500, "values above the maximum are clamped")
	assert.InDelta(t, float64(50*time.Millisecond), float64(s.P50), float64(2*time.Millisecond))
	assert.InDelta(t, float64(90*time.Millisecond), float64(s.P90), float64(2*time.Millisecond))
	assert.True(t, s.P99 >= s.P95 && s.P95 >= s.P90 && s.P90 >= s.P50)
}

func TestRecorder_Empty(t *testing.T) {
	s := NewRecorder().Summary()
	assert.Zero(t, s.Count)
	assert.Zero(t, s.P99)
	assert.Empty(t, s.Statuses())
}

func TestRun(t *testing.T) {
	var seen []int
	s, err := Run(context.Background(), Config{Count: 5}, func(ctx context.Context, i int) (int, error) {
		seen = append(seen, i)
		if i == 3 {
			return 0, errors.New("boom")
		}
		return 200, nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, seen)
	assert.Equal(t, int64(5), s.Count)
	assert.Equal(t, int64(1), s.Failed)
	assert.Equal(t, map[int]int{200: 4}, s.StatusCodes)
}

func TestRun_Rate(t *testing.T) {
	start := time.Now()
	s, err := Run(context.Background(), Config{Count: 3, Rate: 50}, func(ctx context.Context, i int) (int, error) {
		return 200, nil
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), s.Count)
	// One token is available immediately, the next two arrive 20ms apart.
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s, err := Run(ctx, Config{Count: 10}, func(ctx context.Context, i int) (int, error) {
		if i == 1 {
			cancel()
		}
		return 200, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(2), s.Count)
}
