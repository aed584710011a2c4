package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// TimingInfo stores timing information for a request.
// Phases that did not happen, such as DNS on a reused connection, are zero.
type TimingInfo struct {
	// StartTime is when the request started
	StartTime time.Time

	// DNSLookupTime is the time spent looking up the DNS address
	DNSLookupTime time.Duration

	// TCPConnectTime is the time spent establishing a TCP connection
	TCPConnectTime time.Duration

	// TLSHandshakeTime is the time spent performing the TLS handshake (for HTTPS)
	TLSHandshakeTime time.Duration

	// TimeToFirstByte is the time from sending the request to the first response byte
	TimeToFirstByte time.Duration

	// TotalTime is the total time from request start until the body was read
	TotalTime time.Duration
}

// Response is a decoded Prepr API response.
//
// The status code is informational only: Fetch returns non-2xx responses
// as long as their body is valid JSON.
type Response struct {
	// StatusCode is the HTTP status code (e.g., 200, 404, 500)
	StatusCode int

	// Status is the HTTP status string (e.g., "200 OK")
	Status string

	// Headers contains the response headers
	Headers http.Header

	// Data is the JSON body decoded into map[string]any, []any or a scalar
	Data any

	// Timing contains timing information
	Timing TimingInfo

	body []byte
}

// NewResponse decodes a JSON body into a Response. It is what Fetch uses
// once the body has been read, and is handy for stubbing responses in tests.
func NewResponse(statusCode int, header http.Header, body []byte) (*Response, error) {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: statusCode,
		Status:     fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Headers:    header,
		Data:       data,
		body:       body,
	}, nil
}

// Body returns the raw response body.
func (r *Response) Body() []byte {
	return r.body
}

// Decode unmarshals the response body into v.
//
// Example:
//
//	var page struct {
//	    Items []struct {
//	        Title string `json:"title"`
//	    } `json:"items"`
//	    Total int `json:"total"`
//	}
//	if err := resp.Decode(&page); err != nil {
//	    log.Fatal(err)
//	}
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.body, v)
}

// Get returns the value at a gjson path, for example "items.0.title" or "data.Page.title".
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.body, path)
}

// Object returns Data as a JSON object, or nil when the body is not an object.
func (r *Response) Object() map[string]any {
	obj, _ := r.Data.(map[string]any)
	return obj
}

// IsSuccess returns true if the response status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
