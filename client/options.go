package client

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the origin used when no base URL is configured.
	DefaultBaseURL = "https://cdn.prepr.io"

	// DefaultTimeout is the per-request deadline used when no timeout is configured.
	DefaultTimeout = 4 * time.Second
)

// Options is the construction bundle for a Client. Zero fields are left at their defaults.
type Options struct {
	// Token is the bearer access token.
	Token string

	// BaseURL is prepended to every request path. Defaults to DefaultBaseURL.
	BaseURL string

	// Timeout is the per-request deadline. Defaults to DefaultTimeout.
	Timeout time.Duration

	// UserID, when set, assigns the client to an A/B testing bucket.
	UserID string

	// CustomerID is sent as the Prepr-Customer-Id header when set.
	CustomerID string
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// WithOptions applies every non-zero field of o.
func WithOptions(o Options) ClientOption {
	return func(c *Client) {
		if o.Token != "" {
			c.token = o.Token
		}
		if o.BaseURL != "" {
			c.baseURL = o.BaseURL
		}
		if o.Timeout != 0 {
			c.timeout = o.Timeout
		}
		if o.UserID != "" {
			c.assignBucket(o.UserID)
		}
		if o.CustomerID != "" {
			c.customerID = o.CustomerID
		}
	}
}

// WithToken sets the bearer access token.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithBaseURL sets the origin prepended to every request path.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the per-request deadline.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserID assigns the client to the A/B testing bucket of userID.
func WithUserID(userID string) ClientOption {
	return func(c *Client) {
		c.assignBucket(userID)
	}
}

// WithCustomerID sets the Prepr-Customer-Id header value.
func WithCustomerID(customerID string) ClientOption {
	return func(c *Client) {
		c.customerID = customerID
	}
}

// WithHTTPClient sets a custom *http.Client for this client.
// Use this for custom transports, proxies or TLS settings. Its Timeout field
// still applies in addition to the client timeout.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithDebugHook registers a function called with the method and final URL of
// every request right before it is sent.
func WithDebugHook(hook func(method, url string)) ClientOption {
	return func(c *Client) {
		c.debugHook = hook
	}
}
