package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/wesleyorama2/prepr/client"
	"github.com/wesleyorama2/prepr/internal/latency"
)

// Formatter is responsible for formatting requests and responses in text format
type Formatter struct {
	Verbose bool
	NoColor bool

	scheme *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		scheme:  Scheme(noColor),
	}
}

// FormatRequest formats an outgoing request line for display
func (f *Formatter) FormatRequest(method, url string) string {
	return fmt.Sprintf("▶ REQUEST: %s %s\n", f.scheme.Method.Sprint(method), f.scheme.URL.Sprint(url))
}

// FormatResponse formats a response for display
func (f *Formatter) FormatResponse(resp *client.Response) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		f.scheme.Status(resp.StatusCode).Sprint(resp.Status),
		resp.Timing.TotalTime.Milliseconds()))

	if f.Verbose {
		t := resp.Timing
		buf.WriteString("  Timing:\n")
		buf.WriteString(fmt.Sprintf("    DNS Lookup:      %dms\n", t.DNSLookupTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    TCP Connection:  %dms\n", t.TCPConnectTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    TLS Handshake:   %dms\n", t.TLSHandshakeTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Time to First Byte: %dms\n", t.TimeToFirstByte.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Total:           %dms\n", t.TotalTime.Milliseconds()))

		buf.WriteString("  Headers:\n")
		keys := make([]string, 0, len(resp.Headers))
		for key := range resp.Headers {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, value := range resp.Headers[key] {
				buf.WriteString(fmt.Sprintf("    %s: %s\n",
					f.scheme.HeaderKey.Sprint(key), f.scheme.HeaderValue.Sprint(value)))
			}
		}
	}

	if body := resp.Body(); len(body) > 0 {
		buf.WriteString("  Body:\n")
		buf.WriteString(formatJSONString(string(body)))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatSummary formats the latency summary of a repeated fetch
func (f *Formatter) FormatSummary(s latency.Summary) string {
	var buf strings.Builder

	icon := SuccessIcon(f.NoColor)
	if s.Failed > 0 {
		icon = ErrorIcon(f.NoColor)
	}

	buf.WriteString(fmt.Sprintf("%s %s: %d requests, %d failed\n",
		icon, f.scheme.Highlight.Sprint("SUMMARY"), s.Count, s.Failed))
	if s.Count == 0 {
		return buf.String()
	}

	buf.WriteString(fmt.Sprintf("  Latency: min %s  mean %s  max %s\n", ms(s.Min), ms(s.Mean), ms(s.Max)))
	buf.WriteString(fmt.Sprintf("  Percentiles: p50 %s  p90 %s  p95 %s  p99 %s\n", ms(s.P50), ms(s.P90), ms(s.P95), ms(s.P99)))

	if codes := s.Statuses(); len(codes) > 0 {
		buf.WriteString("  Status codes:\n")
		for _, code := range codes {
			buf.WriteString(fmt.Sprintf("    %s: %d\n", f.scheme.Status(code).Sprint(code), s.StatusCodes[code]))
		}
	}

	return buf.String()
}

// FormatError formats an error line for display on stderr
func (f *Formatter) FormatError(err error) string {
	return fmt.Sprintf("%s %s\n", ErrorIcon(f.NoColor), f.scheme.Error.Sprint(err.Error()))
}

// formatJSONString attempts to pretty-print a JSON string
func formatJSONString(s string) string {
	var prettyJSON bytes.Buffer
	err := json.Indent(&prettyJSON, []byte(s), "  ", "  ")
	if err != nil {
		return s
	}
	return "  " + prettyJSON.String()
}
