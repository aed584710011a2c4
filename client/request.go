package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/wesleyorama2/prepr/querystring"
)

const (
	headerAuthorization = "Authorization"
	headerABTesting     = "Prepr-ABTesting"
	headerCustomerID    = "Prepr-Customer-Id"
	headerContentType   = "Content-Type"

	contentTypeJSON = "application/json"
)

// Overrides adjusts a single Fetch.
//
// Precedence, lowest to highest:
//  1. builder headers: Authorization, Prepr-ABTesting, Prepr-Customer-Id
//  2. Headers (caller wins on collisions)
//  3. Content-Type: application/json when a GraphQL query is set
//  4. ContentType
//
// Method and Body replace the builder's values when non-empty.
type Overrides struct {
	Method      string
	Headers     map[string]string
	Body        []byte
	ContentType string
}

// snapshot is the immutable view of a Client used by one Fetch.
type snapshot struct {
	token        string
	baseURL      string
	timeout      time.Duration
	customerID   string
	abBucket     int
	hasABTesting bool
	draft
}

type graphQLBody struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// URL returns baseURL + path + "?" + query string. The "?" is always present.
func (s snapshot) URL() string {
	return s.baseURL + s.path + "?" + s.QueryString()
}

// QueryString encodes the filter expression followed by sort, limit and skip.
func (s snapshot) QueryString() string {
	var parts []string

	if encoded := querystring.Encode(normalizeFields(s.query)); encoded != "" {
		parts = append(parts, encoded)
	}
	if s.sort != "" {
		parts = append(parts, "sort="+querystring.Escape(s.sort))
	}
	if s.limit != 0 {
		parts = append(parts, "limit="+strconv.Itoa(s.limit))
	}
	if s.skip != 0 {
		parts = append(parts, "skip="+strconv.Itoa(s.skip))
	}

	return strings.Join(parts, "&")
}

// normalizeFields removes whitespace from a top-level "fields" string, so
// "title, slug" and "title,slug" select the same fields.
func normalizeFields(query querystring.Value) querystring.Value {
	fields, ok := query.Lookup("fields")
	if !ok || fields.Kind() != querystring.KindString {
		return query
	}
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, fields.Text())
	return query.With("fields", querystring.String(stripped))
}

// Header builds the request headers following the Overrides precedence.
func (s snapshot) Header(ov Overrides) http.Header {
	header := http.Header{}
	header.Set(headerAuthorization, "Bearer "+s.token)

	if s.hasABTesting {
		header.Set(headerABTesting, strconv.Itoa(s.abBucket))
	}
	if s.customerID != "" {
		header.Set(headerCustomerID, s.customerID)
	}

	for key, value := range ov.Headers {
		header.Set(key, value)
	}

	if s.graphQLQuery != "" {
		header.Set(headerContentType, contentTypeJSON)
	}
	if ov.ContentType != "" {
		header.Set(headerContentType, ov.ContentType)
	}

	return header
}

// Method returns the HTTP method: POST for GraphQL, GET otherwise, unless overridden.
func (s snapshot) Method(ov Overrides) string {
	if ov.Method != "" {
		return ov.Method
	}
	if s.graphQLQuery != "" {
		return http.MethodPost
	}
	return http.MethodGet
}

// Body returns the request body, or nil when the request has none.
func (s snapshot) Body(ov Overrides) ([]byte, error) {
	if len(ov.Body) > 0 {
		return ov.Body, nil
	}
	if s.graphQLQuery == "" {
		return nil, nil
	}
	return json.Marshal(graphQLBody{
		Query:     s.graphQLQuery,
		Variables: s.graphQLVariables,
	})
}

// Build constructs the *http.Request for this snapshot.
func (s snapshot) Build(ctx context.Context, ov Overrides) (*http.Request, error) {
	body, err := s.Body(ov)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, s.Method(ov), s.URL(), bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header = s.Header(ov)

	return req, nil
}
