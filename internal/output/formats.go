package output

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/prepr/client"
	"github.com/wesleyorama2/prepr/internal/latency"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates an output format name.
func ParseFormat(name string) (OutputFormat, error) {
	switch OutputFormat(name) {
	case FormatText, FormatJSON, FormatYAML:
		return OutputFormat(name), nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", name)
}

// FormatProvider is an interface for different output formatters
type FormatProvider interface {
	FormatRequest(method, url string) string
	FormatResponse(resp *client.Response) string
	FormatSummary(s latency.Summary) string
}

// RequestData represents the structured data of a request
type RequestData struct {
	Method    string `json:"method" yaml:"method"`
	URL       string `json:"url" yaml:"url"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// TimingData represents detailed timing information for a request
type TimingData struct {
	DNSLookup       int64 `json:"dnsLookupMs,omitempty" yaml:"dnsLookupMs,omitempty"`
	TCPConnection   int64 `json:"tcpConnectionMs,omitempty" yaml:"tcpConnectionMs,omitempty"`
	TLSHandshake    int64 `json:"tlsHandshakeMs,omitempty" yaml:"tlsHandshakeMs,omitempty"`
	TimeToFirstByte int64 `json:"timeToFirstByteMs,omitempty" yaml:"timeToFirstByteMs,omitempty"`
	Total           int64 `json:"totalMs" yaml:"totalMs"`
}

// ResponseData represents the structured data of a response
type ResponseData struct {
	StatusCode int               `json:"statusCode" yaml:"statusCode"`
	Status     string            `json:"status" yaml:"status"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body       interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	Timing     *TimingData       `json:"timing,omitempty" yaml:"timing,omitempty"`
	Timestamp  string            `json:"timestamp" yaml:"timestamp"`
}

// SummaryData represents the latency summary of a repeated fetch
type SummaryData struct {
	Count       int64       `json:"count" yaml:"count"`
	Failed      int64       `json:"failed" yaml:"failed"`
	MinMs       float64     `json:"minMs" yaml:"minMs"`
	MeanMs      float64     `json:"meanMs" yaml:"meanMs"`
	MaxMs       float64     `json:"maxMs" yaml:"maxMs"`
	P50Ms       float64     `json:"p50Ms" yaml:"p50Ms"`
	P90Ms       float64     `json:"p90Ms" yaml:"p90Ms"`
	P95Ms       float64     `json:"p95Ms" yaml:"p95Ms"`
	P99Ms       float64     `json:"p99Ms" yaml:"p99Ms"`
	StatusCodes map[int]int `json:"statusCodes,omitempty" yaml:"statusCodes,omitempty"`
}

func newResponseData(resp *client.Response, verbose bool) ResponseData {
	data := ResponseData{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       resp.Data,
		Timestamp:  time.Now().Format(time.RFC3339),
	}

	if verbose {
		data.Headers = make(map[string]string, len(resp.Headers))
		for key, values := range resp.Headers {
			if len(values) > 0 {
				data.Headers[key] = values[0]
			}
		}

		t := resp.Timing
		data.Timing = &TimingData{
			DNSLookup:       t.DNSLookupTime.Milliseconds(),
			TCPConnection:   t.TCPConnectTime.Milliseconds(),
			TLSHandshake:    t.TLSHandshakeTime.Milliseconds(),
			TimeToFirstByte: t.TimeToFirstByte.Milliseconds(),
			Total:           t.TotalTime.Milliseconds(),
		}
	}

	return data
}

func newSummaryData(s latency.Summary) SummaryData {
	return SummaryData{
		Count:       s.Count,
		Failed:      s.Failed,
		MinMs:       msFloat(s.Min),
		MeanMs:      msFloat(s.Mean),
		MaxMs:       msFloat(s.Max),
		P50Ms:       msFloat(s.P50),
		P90Ms:       msFloat(s.P90),
		P95Ms:       msFloat(s.P95),
		P99Ms:       msFloat(s.P99),
		StatusCodes: s.StatusCodes,
	}
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Verbose bool
	Pretty  bool
}

func (f *JSONFormatter) marshal(v interface{}, what string) string {
	var output []byte
	var err error
	if f.Pretty {
		output, err = json.MarshalIndent(v, "", "  ")
	} else {
		output, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf(`{"error": "Failed to marshal %s: %s"}`, what, err)
	}
	return string(output) + "\n"
}

// FormatRequest formats a request as JSON
func (f *JSONFormatter) FormatRequest(method, url string) string {
	return f.marshal(RequestData{
		Method:    method,
		URL:       url,
		Timestamp: time.Now().Format(time.RFC3339),
	}, "request")
}

// FormatResponse formats a response as JSON
func (f *JSONFormatter) FormatResponse(resp *client.Response) string {
	return f.marshal(newResponseData(resp, f.Verbose), "response")
}

// FormatSummary formats a latency summary as JSON
func (f *JSONFormatter) FormatSummary(s latency.Summary) string {
	return f.marshal(newSummaryData(s), "summary")
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	Verbose bool
}

func (f *YAMLFormatter) marshal(v interface{}, what string) string {
	output, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: Failed to marshal %s: %s\n", what, err)
	}
	return "---\n" + string(output)
}

// FormatRequest formats a request as YAML
func (f *YAMLFormatter) FormatRequest(method, url string) string {
	return f.marshal(RequestData{
		Method:    method,
		URL:       url,
		Timestamp: time.Now().Format(time.RFC3339),
	}, "request")
}

// FormatResponse formats a response as YAML
func (f *YAMLFormatter) FormatResponse(resp *client.Response) string {
	return f.marshal(newResponseData(resp, f.Verbose), "response")
}

// FormatSummary formats a latency summary as YAML
func (f *YAMLFormatter) FormatSummary(s latency.Summary) string {
	return f.marshal(newSummaryData(s), "summary")
}

// GetFormatter returns the appropriate formatter for the given format
func GetFormatter(format OutputFormat, verbose bool, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Verbose: verbose, Pretty: !noColor}
	case FormatYAML:
		return &YAMLFormatter{Verbose: verbose}
	default:
		return NewFormatter(verbose, noColor)
	}
}

func msFloat(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.2fms", msFloat(d))
}
