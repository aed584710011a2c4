package client

import (
	"context"
	"crypto/tls"
	"io"
	"net/http/httptrace"
	"sync"
	"time"
)

// Fetch sends the drafted request and returns the decoded JSON response.
// It is equivalent to FetchWith(ctx, Overrides{}).
func (c *Client) Fetch(ctx context.Context) (*Response, error) {
	return c.FetchWith(ctx, Overrides{})
}

// FetchWith sends the drafted request with per-call overrides.
//
// The draft is cleared before the request is sent. The request is cancelled
// when the client timeout expires, reported as ErrTimeout, or when ctx is
// done, reported as ErrTransport. The timer is released when FetchWith returns.
//
// Example:
//
//	resp, err := c.SetPath("/publications").FetchWith(ctx, client.Overrides{
//	    Headers: map[string]string{"Accept-Language": "nl-NL"},
//	})
//	if errors.Is(err, client.ErrTimeout) {
//	    // safe to retry
//	}
func (c *Client) FetchWith(ctx context.Context, ov Overrides) (*Response, error) {
	s := c.take()

	ctx, cancel := context.WithTimeoutCause(ctx, s.timeout, ErrTimeout)
	defer cancel()

	req, err := s.Build(ctx, ov)
	if err != nil {
		return nil, &Error{Kind: ErrRequest, Method: s.Method(ov), URL: s.URL(), Err: err}
	}
	method, url := req.Method, req.URL.String()

	if c.debugHook != nil {
		c.debugHook(method, url)
	}

	trace := newTracer(time.Now())
	req = req.WithContext(httptrace.WithClientTrace(ctx, trace.clientTrace()))

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, method, url, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, transportError(ctx, method, url, err)
	}
	timing := trace.finish()

	resp, err := NewResponse(httpResp.StatusCode, httpResp.Header, body)
	if err != nil {
		return nil, &Error{Kind: ErrDecode, Method: method, URL: url, Err: err}
	}
	resp.Status = httpResp.Status
	resp.Timing = timing

	return resp, nil
}

// tracer records connection phase durations. Dial callbacks may fire on
// transport goroutines after the round trip returns, hence the mutex.
type tracer struct {
	mu     sync.Mutex
	timing TimingInfo

	dnsStart, connectStart, tlsStart, wroteRequest time.Time
}

func newTracer(start time.Time) *tracer {
	return &tracer{timing: TimingInfo{StartTime: start}}
}

func (t *tracer) record(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn()
}

// finish stamps the total time and returns a copy of the timings.
func (t *tracer) finish() TimingInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timing.TotalTime = time.Since(t.timing.StartTime)
	return t.timing
}

func (t *tracer) clientTrace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			t.record(func() { t.dnsStart = time.Now() })
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			t.record(func() { t.timing.DNSLookupTime = time.Since(t.dnsStart) })
		},
		ConnectStart: func(network, addr string) {
			t.record(func() { t.connectStart = time.Now() })
		},
		ConnectDone: func(network, addr string, err error) {
			if err == nil {
				t.record(func() { t.timing.TCPConnectTime = time.Since(t.connectStart) })
			}
		},
		TLSHandshakeStart: func() {
			t.record(func() { t.tlsStart = time.Now() })
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			if err == nil {
				t.record(func() { t.timing.TLSHandshakeTime = time.Since(t.tlsStart) })
			}
		},
		WroteRequest: func(httptrace.WroteRequestInfo) {
			t.record(func() { t.wroteRequest = time.Now() })
		},
		GotFirstResponseByte: func() {
			t.record(func() {
				if !t.wroteRequest.IsZero() {
					t.timing.TimeToFirstByte = time.Since(t.wroteRequest)
				}
			})
		},
	}
}
