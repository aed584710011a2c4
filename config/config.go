package config

import (
	"fmt"
	"maps"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/prepr/client"
	"github.com/wesleyorama2/prepr/querystring"
)

// Config represents the top-level configuration file structure.
type Config struct {
	// Environments defines API targets with tokens, base URLs and default headers
	Environments map[string]Environment `yaml:"environments"`

	// Requests defines named REST and GraphQL request templates
	Requests map[string]Request `yaml:"requests"`
}

// Environment represents one Prepr API target.
type Environment struct {
	// Token is the access token sent as a bearer credential
	Token string `yaml:"token"`

	// BaseURL overrides the default CDN endpoint
	BaseURL string `yaml:"baseUrl"`

	// Timeout is the per-request deadline
	Timeout Duration `yaml:"timeout"`

	// CustomerID is sent as the customer id header
	CustomerID string `yaml:"customerId"`

	// UserID enables A/B testing and selects the bucket
	UserID string `yaml:"userId"`

	// Headers are default headers added to all requests in this environment
	Headers map[string]string `yaml:"headers"`

	// Vars are variables that can be used in request templates
	Vars map[string]string `yaml:"variables"`
}

// Request represents a saved request template.
type Request struct {
	// Path is appended to the base URL (can include {{variables}})
	Path string `yaml:"path"`

	// Query is the nested filter object, encoded in bracket notation
	Query Query `yaml:"query"`

	Sort  string `yaml:"sort"`
	Limit int    `yaml:"limit"`
	Skip  int    `yaml:"skip"`

	// Headers are request-specific headers
	Headers map[string]string `yaml:"headers"`

	// GraphQL turns the request into a POST with a JSON body
	GraphQL *GraphQL `yaml:"graphql"`
}

// GraphQL holds the operation of a GraphQL request.
type GraphQL struct {
	Query     string         `yaml:"query"`
	Variables map[string]any `yaml:"variables"`
}

// DefaultGraphQLPath is used by GraphQL requests that do not set a path.
const DefaultGraphQLPath = "/graphql"

// Duration is a timeout written either as a duration string ("4s", "1 minute")
// or as an integer number of milliseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: timeout must be a duration string or milliseconds", node.Line)
	}

	if node.ShortTag() == "!!int" {
		var ms int64
		if err := node.Decode(&ms); err != nil {
			return err
		}
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	parsed, err := ParseDurationString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid timeout %q: %w", node.Line, node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Query is a filter object whose key order is kept as written in the file.
type Query struct {
	querystring.Value
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (q *Query) UnmarshalYAML(node *yaml.Node) error {
	v, err := valueFromNode(node)
	if err != nil {
		return err
	}
	q.Value = v
	return nil
}

func valueFromNode(node *yaml.Node) (querystring.Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return querystring.Null(), nil
		}
		return valueFromNode(node.Content[0])

	case yaml.AliasNode:
		return valueFromNode(node.Alias)

	case yaml.MappingNode:
		fields := make([]querystring.Field, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := valueFromNode(node.Content[i+1])
			if err != nil {
				return querystring.Value{}, err
			}
			fields = append(fields, querystring.F(node.Content[i].Value, v))
		}
		return querystring.Map(fields...), nil

	case yaml.SequenceNode:
		items := make([]querystring.Value, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := valueFromNode(child)
			if err != nil {
				return querystring.Value{}, err
			}
			items = append(items, v)
		}
		return querystring.List(items...), nil

	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return querystring.Null(), nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return querystring.Value{}, err
			}
			return querystring.Bool(b), nil
		case "!!int":
			var n int64
			if err := node.Decode(&n); err != nil {
				return querystring.Value{}, err
			}
			return querystring.Int(n), nil
		case "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return querystring.Value{}, err
			}
			return querystring.Float(f), nil
		}
		return querystring.String(node.Value), nil
	}

	return querystring.Value{}, fmt.Errorf("line %d: unsupported query value", node.Line)
}

// ClientOptions converts the environment into options for client.NewClient.
func (e Environment) ClientOptions() []client.ClientOption {
	return []client.ClientOption{
		client.WithOptions(client.Options{
			Token:      e.Token,
			BaseURL:    e.BaseURL,
			Timeout:    time.Duration(e.Timeout),
			UserID:     e.UserID,
			CustomerID: e.CustomerID,
		}),
	}
}

// IsGraphQL reports whether the request is sent as a GraphQL POST.
func (r Request) IsGraphQL() bool {
	return r.GraphQL != nil
}

// Expand returns a copy of the request with {{variable}} placeholders replaced
// in the path, query string values, headers and the GraphQL operation.
func (r Request) Expand(vars map[string]string) Request {
	if len(vars) == 0 {
		return r
	}

	out := r
	out.Path = ProcessEnvironment(r.Path, vars)
	out.Sort = ProcessEnvironment(r.Sort, vars)
	out.Query = Query{expandValue(r.Query.Value, vars)}
	out.Headers = ProcessEnvironmentInMap(r.Headers, vars)

	if r.GraphQL != nil {
		out.GraphQL = &GraphQL{
			Query:     ProcessEnvironment(r.GraphQL.Query, vars),
			Variables: expandAny(r.GraphQL.Variables, vars).(map[string]any),
		}
	}
	return out
}

func expandValue(v querystring.Value, vars map[string]string) querystring.Value {
	switch v.Kind() {
	case querystring.KindString:
		return querystring.String(ProcessEnvironment(v.Text(), vars))
	case querystring.KindList:
		items := make([]querystring.Value, 0, v.Len())
		for _, item := range v.Items() {
			items = append(items, expandValue(item, vars))
		}
		return querystring.List(items...)
	case querystring.KindMap:
		fields := make([]querystring.Field, 0, v.Len())
		for _, f := range v.Fields() {
			fields = append(fields, querystring.F(f.Key, expandValue(f.Value, vars)))
		}
		return querystring.Map(fields...)
	}
	return v
}

func expandAny(v any, vars map[string]string) any {
	switch t := v.(type) {
	case string:
		return ProcessEnvironment(t, vars)
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = expandAny(item, vars)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = expandAny(item, vars)
		}
		return out
	}
	return v
}

// Apply loads the request into the client draft and returns the client for chaining.
func (r Request) Apply(c *client.Client) *client.Client {
	path := r.Path
	if r.GraphQL != nil {
		if path == "" {
			path = DefaultGraphQLPath
		}
		c.SetGraphQLQuery(r.GraphQL.Query)
		if r.GraphQL.Variables != nil {
			c.SetGraphQLVariables(maps.Clone(r.GraphQL.Variables))
		}
	}

	c.SetPath(path)
	if !r.Query.IsNull() {
		c.SetQuery(r.Query.Value)
	}
	if r.Sort != "" {
		c.SetSort(r.Sort)
	}
	if r.Limit != 0 {
		c.SetLimit(r.Limit)
	}
	if r.Skip != 0 {
		c.SetSkip(r.Skip)
	}
	return c
}

// Overrides returns the per-call overrides for the request: the environment
// headers merged with the request headers, the request taking precedence.
func (r Request) Overrides(env Environment) client.Overrides {
	headers := MergeEnvironments(env.Headers, r.Headers)
	if len(headers) == 0 {
		return client.Overrides{}
	}
	return client.Overrides{Headers: ProcessEnvironmentInMap(headers, env.Vars)}
}
