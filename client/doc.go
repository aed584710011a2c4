// Package client provides a fluent HTTP client for the Prepr content API.
//
// A Client carries long-lived configuration (access token, base URL,
// timeout, customer id and A/B testing bucket) plus a request draft that is
// built up with chained setters: path, filter query, sort, limit, skip and
// GraphQL query/variables. Fetch turns the draft into a single HTTP request,
// executes it under the configured timeout and returns the decoded JSON body.
//
// Basic Usage:
//
//	c := client.NewClient(
//	    client.WithToken("my-access-token"),
//	    client.WithUserID("user-123"),
//	)
//
//	resp, err := c.
//	    SetPath("/publications").
//	    SetQuery(querystring.Map(querystring.F("fields", querystring.String("title,slug")))).
//	    SetSort("-created_on").
//	    SetLimit(10).
//	    Fetch(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(resp.Get("items.0.title").String())
//
// GraphQL Example:
//
//	resp, err := c.
//	    SetPath("/graphql").
//	    SetGraphQLQuery(`query ($slug: String) { Page(slug: $slug) { title } }`).
//	    SetGraphQLVariables(map[string]any{"slug": "home"}).
//	    Fetch(ctx)
//
// Request Lifecycle:
//
// Fetch captures the configuration and the draft at the moment it is called
// and clears the draft before any I/O starts, so the next Fetch starts from an
// empty path, query, sort, limit, skip and GraphQL query whether the previous
// call succeeded or not. Configuration survives across calls.
//
// Responses are returned regardless of their HTTP status code: a 404 with a
// JSON body is a successful Fetch. Only transport failures, the local timeout
// and bodies that are not valid JSON produce errors; use errors.Is with
// ErrTimeout, ErrTransport, ErrDecode and ErrRequest to tell them apart.
//
// Thread Safety:
//
// Client is safe for concurrent use. Because each Fetch works on its own
// snapshot, the Client may be reconfigured while earlier requests are still in
// flight. Concurrent callers that share one Client share one draft, so a
// draft should be built and fetched by a single goroutine at a time.
package client
