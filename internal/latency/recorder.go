// Package latency records response times of repeated fetches and paces them.
package latency

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// histogramMin is the minimum recordable value in microseconds.
	histogramMin     = 1
	// histogramMax is the maximum recordable value in microseconds (1 hour).
	histogramMax     = 3600000000
	histogramSigFigs = 3
)

// Recorder aggregates request latencies in an HDR histogram.
//
// Recorder is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	hist     *hdrhistogram.Histogram
	failed   int64
	statuses map[int]int
}

// Summary is a point-in-time view of a Recorder.
type Summary struct {
	Count  int64
	Failed int64

	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
	P50  time.Duration
	P90  time.Duration
	P95  time.Duration
	P99  time.Duration

	// StatusCodes counts responses per HTTP status. Failed requests without a
	// response are not included.
	StatusCodes map[int]int
}

// Statuses returns the recorded status codes in ascending order.
func (s Summary) Statuses() []int {
	codes := make([]int, 0, len(s.StatusCodes))
	for code := range s.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist:     hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
		statuses: make(map[int]int),
	}
}

// Record adds one request. A non-nil err marks the request as failed;
// statusCode is ignored when it is zero.
func (r *Recorder) Record(d time.Duration, statusCode int, err error) {
	micros := d.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// RecordValue only fails for out of range values, which are clamped above.
	_ = r.hist.RecordValue(micros)
	if err != nil {
		r.failed++
	}
	if statusCode != 0 {
		r.statuses[statusCode]++
	}
}

// Summary returns the aggregated statistics.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	statuses := make(map[int]int, len(r.statuses))
	for code, n := range r.statuses {
		statuses[code] = n
	}

	s := Summary{
		Count:       r.hist.TotalCount(),
		Failed:      r.failed,
		StatusCodes: statuses,
	}
	if s.Count == 0 {
		return s
	}

	s.Min = micros(r.hist.Min())
	s.Max = micros(r.hist.Max())
	s.Mean = time.Duration(r.hist.Mean() * float64(time.Microsecond))
	s.P50 = micros(r.hist.ValueAtQuantile(50))
	s.P90 = micros(r.hist.ValueAtQuantile(90))
	s.P95 = micros(r.hist.ValueAtQuantile(95))
	s.P99 = micros(r.hist.ValueAtQuantile(99))
	return s
}

func micros(v int64) time.Duration {
	return time.Duration(v) * time.Microsecond
}
