package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/prepr/querystring"
)

func TestSnapshot_URL(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(c *Client)
		expected string
	}{
		{
			name:     "Bare request keeps the question mark",
			setup:    func(c *Client) {},
			expected: "https://cdn.prepr.io?",
		},
		{
			name: "Path and fields",
			setup: func(c *Client) {
				c.SetPath("/publications").
					SetQuery(querystring.Map(querystring.F("fields", querystring.String("title,slug"))))
			},
			expected: "https://cdn.prepr.io/publications?fields=title%2Cslug",
		},
		{
			name: "Whitespace is removed from fields",
			setup: func(c *Client) {
				c.SetQuery(querystring.Map(querystring.F("fields", querystring.String(" title, slug ,\tid"))))
			},
			expected: "https://cdn.prepr.io?fields=title%2Cslug%2Cid",
		},
		{
			name: "Nested filter",
			setup: func(c *Client) {
				c.SetPath("/publications").SetQuery(querystring.Map(
					querystring.F("and", querystring.List(
						querystring.Map(querystring.F("slug", querystring.Map(querystring.F("eq", querystring.String("x"))))),
					)),
				))
			},
			expected: "https://cdn.prepr.io/publications?and[0][slug][eq]=x",
		},
		{
			name: "Sort limit and skip follow the filter",
			setup: func(c *Client) {
				c.SetPath("/tags").
					SetQuery(querystring.Map(querystring.F("fields", querystring.String("body")))).
					SetSort("-created_on").
					SetLimit(10).
					SetSkip(20)
			},
			expected: "https://cdn.prepr.io/tags?fields=body&sort=-created_on&limit=10&skip=20",
		},
		{
			name: "Sort limit and skip without a filter",
			setup: func(c *Client) {
				c.SetSort("title asc").SetLimit(5)
			},
			expected: "https://cdn.prepr.io?sort=title+asc&limit=5",
		},
		{
			name: "Zero limit and skip are left out",
			setup: func(c *Client) {
				c.SetLimit(0).SetSkip(0).SetSort("")
			},
			expected: "https://cdn.prepr.io?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient()
			tt.setup(c)
			assert.Equal(t, tt.expected, c.take().URL())
		})
	}
}

func TestSnapshot_SortLimitSkipAppearOnce(t *testing.T) {
	c := NewClient().
		SetQuery(querystring.Map(querystring.F("locale", querystring.String("en-GB")))).
		SetSort("title").
		SetLimit(3).
		SetSkip(6)

	values, err := url.ParseQuery(c.take().QueryString())
	require.NoError(t, err)

	assert.Equal(t, []string{"en-GB"}, values["locale"])
	assert.Equal(t, []string{"title"}, values["sort"])
	assert.Equal(t, []string{"3"}, values["limit"])
	assert.Equal(t, []string{"6"}, values["skip"])
}

func TestSnapshot_Header(t *testing.T) {
	t.Run("Empty token still sends a bearer header", func(t *testing.T) {
		h := NewClient().take().Header(Overrides{})

		assert.Equal(t, "Bearer ", h.Get("Authorization"))
		assert.Empty(t, h.Get("Prepr-ABTesting"))
		assert.Empty(t, h.Get("Prepr-Customer-Id"))
		assert.Empty(t, h.Get("Content-Type"))
	})

	t.Run("Builder headers", func(t *testing.T) {
		h := NewClient(
			WithToken("secret"),
			WithUserID("user-123"),
			WithCustomerID("customer-1"),
		).take().Header(Overrides{})

		assert.Equal(t, "Bearer secret", h.Get("Authorization"))
		assert.Equal(t, "6318", h.Get("Prepr-ABTesting"))
		assert.Equal(t, "customer-1", h.Get("Prepr-Customer-Id"))
	})

	t.Run("Caller headers override builder headers", func(t *testing.T) {
		h := NewClient(WithToken("secret"), WithCustomerID("customer-1")).take().Header(Overrides{
			Headers: map[string]string{
				"authorization":     "Bearer other",
				"Prepr-Customer-Id": "customer-2",
				"X-Extra":           "1",
			},
		})

		assert.Equal(t, "Bearer other", h.Get("Authorization"))
		assert.Equal(t, "customer-2", h.Get("Prepr-Customer-Id"))
		assert.Equal(t, "1", h.Get("X-Extra"))
		assert.Len(t, h.Values("Authorization"), 1)
	})

	t.Run("GraphQL content type is reasserted over caller headers", func(t *testing.T) {
		h := NewClient().SetGraphQLQuery("{ a }").take().Header(Overrides{
			Headers: map[string]string{"Content-Type": "text/plain"},
		})

		assert.Equal(t, "application/json", h.Get("Content-Type"))
	})

	t.Run("Top-level content type wins over GraphQL", func(t *testing.T) {
		h := NewClient().SetGraphQLQuery("{ a }").take().Header(Overrides{
			Headers:     map[string]string{"Content-Type": "text/plain"},
			ContentType: "application/graphql+json",
		})

		assert.Equal(t, "application/graphql+json", h.Get("Content-Type"))
	})

	t.Run("Caller content type stands without GraphQL", func(t *testing.T) {
		h := NewClient().take().Header(Overrides{
			Headers: map[string]string{"Content-Type": "text/plain"},
		})

		assert.Equal(t, "text/plain", h.Get("Content-Type"))
	})
}

func TestSnapshot_Build(t *testing.T) {
	t.Run("REST request is a GET without body", func(t *testing.T) {
		req, err := NewClient().SetPath("/publications").take().Build(context.Background(), Overrides{})
		require.NoError(t, err)

		assert.Equal(t, http.MethodGet, req.Method)
		assert.Nil(t, req.Body)
	})

	t.Run("GraphQL request is a JSON POST", func(t *testing.T) {
		req, err := NewClient().
			SetPath("/graphql").
			SetGraphQLQuery("query { Page { title } }").
			SetGraphQLVariables(map[string]any{"slug": "home"}).
			take().Build(context.Background(), Overrides{})
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"query":"query { Page { title } }","variables":{"slug":"home"}}`, string(body))
	})

	t.Run("GraphQL variables default to null", func(t *testing.T) {
		body, err := NewClient().SetGraphQLQuery("{ a }").take().Body(Overrides{})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(body, &decoded))
		assert.Contains(t, decoded, "variables")
		assert.Nil(t, decoded["variables"])
	})

	t.Run("Overrides replace method and body", func(t *testing.T) {
		req, err := NewClient().SetGraphQLQuery("{ a }").take().Build(context.Background(), Overrides{
			Method: http.MethodPut,
			Body:   []byte(`{"custom":true}`),
		})
		require.NoError(t, err)

		assert.Equal(t, http.MethodPut, req.Method)
		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"custom":true}`, string(body))
	})

	t.Run("Empty override body keeps the GraphQL body", func(t *testing.T) {
		body, err := NewClient().SetGraphQLQuery("{ a }").take().Body(Overrides{Body: []byte{}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"query":"{ a }","variables":null}`, string(body))
	})

	t.Run("Unencodable variables fail", func(t *testing.T) {
		_, err := NewClient().
			SetGraphQLQuery("{ a }").
			SetGraphQLVariables(map[string]any{"bad": make(chan int)}).
			take().Build(context.Background(), Overrides{})
		assert.Error(t, err)
	})
}

func TestClient_TakeClearsDraftOnly(t *testing.T) {
	c := NewClient(WithToken("secret"), WithUserID("user-123"), WithCustomerID("c")).
		SetPath("/publications").
		SetQuery(querystring.Map(querystring.F("fields", querystring.String("title")))).
		SetSort("title").
		SetLimit(1).
		SetSkip(2).
		SetGraphQLQuery("{ a }").
		SetGraphQLVariables(map[string]any{"a": 1})

	first := c.take()
	assert.Equal(t, "/publications", first.path)

	second := c.take()
	assert.Equal(t, draft{}, second.draft)
	assert.Equal(t, "secret", second.token)
	assert.Equal(t, "c", second.customerID)
	assert.True(t, second.hasABTesting)
	assert.Equal(t, 6318, second.abBucket)
}

func TestClient_SnapshotIsIsolated(t *testing.T) {
	variables := map[string]any{"slug": "home"}
	c := NewClient().SetPath("/graphql").SetGraphQLQuery("{ a }").SetGraphQLVariables(variables)

	s := c.take()

	c.SetPath("/other").SetToken("changed")
	variables["slug"] = "mutated"

	assert.Equal(t, "/graphql", s.path)
	assert.Equal(t, "", s.token)
	assert.Equal(t, "home", s.graphQLVariables["slug"])
}
