package client

import (
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/wesleyorama2/prepr/abtest"
	"github.com/wesleyorama2/prepr/querystring"
)

// Client is a fluent request builder and executor for the Prepr API.
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	httpClient *http.Client
	debugHook  func(method, url string)

	mu           sync.Mutex
	token        string
	baseURL      string
	timeout      time.Duration
	customerID   string
	abBucket     int
	hasABTesting bool
	draft        draft
}

// draft is the request-scoped state cleared by every Fetch.
type draft struct {
	path             string
	query            querystring.Value
	sort             string
	limit            int
	skip             int
	graphQLQuery     string
	graphQLVariables map[string]any
}

// NewClient creates a new Prepr client with the given options.
//
// Example:
//
//	c := client.NewClient(
//	    client.WithToken("my-access-token"),
//	    client.WithTimeout(2*time.Second),
//	    client.WithCustomerID("customer-1"),
//	)
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		timeout:    DefaultTimeout,
	}

	for _, option := range options {
		option(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}

	return c
}

// assignBucket must be called with mu held or before the client is shared.
func (c *Client) assignBucket(userID string) {
	c.abBucket = abtest.Bucket(userID)
	c.hasABTesting = true
}

// SetToken replaces the bearer access token.
// Returns the Client to allow method chaining.
func (c *Client) SetToken(token string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	return c
}

// SetCustomerID replaces the Prepr-Customer-Id header value.
// Returns the Client to allow method chaining.
func (c *Client) SetCustomerID(customerID string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customerID = customerID
	return c
}

// SetUserID assigns the client to the A/B testing bucket of userID,
// replacing any previous assignment.
// Returns the Client to allow method chaining.
func (c *Client) SetUserID(userID string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assignBucket(userID)
	return c
}

// SetTimeout replaces the per-request deadline. A non-positive value restores DefaultTimeout.
// Returns the Client to allow method chaining.
func (c *Client) SetTimeout(timeout time.Duration) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = timeout
	return c
}

// SetQuery sets the filter expression encoded into the query string.
// Returns the Client to allow method chaining.
func (c *Client) SetQuery(query querystring.Value) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.query = query
	return c
}

// SetSort sets the sort query parameter.
// Returns the Client to allow method chaining.
func (c *Client) SetSort(field string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.sort = field
	return c
}

// SetLimit sets the limit query parameter. Zero leaves it out.
// Returns the Client to allow method chaining.
func (c *Client) SetLimit(limit int) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.limit = limit
	return c
}

// SetSkip sets the skip query parameter. Zero leaves it out.
// Returns the Client to allow method chaining.
func (c *Client) SetSkip(skip int) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.skip = skip
	return c
}

// SetPath sets the endpoint path appended to the base URL.
// Returns the Client to allow method chaining.
func (c *Client) SetPath(path string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.path = path
	return c
}

// SetGraphQLQuery sets the GraphQL query text. A non-empty query turns the
// request into a POST with a JSON body.
// Returns the Client to allow method chaining.
func (c *Client) SetGraphQLQuery(query string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.graphQLQuery = query
	return c
}

// SetGraphQLVariables sets the GraphQL variables object.
// Returns the Client to allow method chaining.
func (c *Client) SetGraphQLVariables(variables map[string]any) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.graphQLVariables = variables
	return c
}

// Reset clears the request draft without sending anything.
// Returns the Client to allow method chaining.
func (c *Client) Reset() *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = draft{}
	return c
}

// Token returns the current access token.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// BaseURL returns the origin prepended to every request path.
func (c *Client) BaseURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseURL
}

// Timeout returns the effective per-request deadline.
func (c *Client) Timeout() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return effectiveTimeout(c.timeout)
}

// CustomerID returns the Prepr-Customer-Id header value.
func (c *Client) CustomerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customerID
}

// ABTestBucket returns the A/B testing bucket and whether one has been assigned.
func (c *Client) ABTestBucket() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.abBucket, c.hasABTesting
}

func effectiveTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return DefaultTimeout
	}
	return timeout
}

// take captures configuration and draft, then clears the draft.
func (c *Client) take() snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := snapshot{
		token:        c.token,
		baseURL:      c.baseURL,
		timeout:      effectiveTimeout(c.timeout),
		customerID:   c.customerID,
		abBucket:     c.abBucket,
		hasABTesting: c.hasABTesting,
		draft:        c.draft,
	}
	s.graphQLVariables = maps.Clone(c.draft.graphQLVariables)
	c.draft = draft{}

	return s
}
