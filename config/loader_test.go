package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/prepr/querystring"
)

const sampleConfig = `
environments:
  production:
    token: ${PREPR_TEST_TOKEN}
    baseUrl: https://cdn.prepr.io
    timeout: 4s
    customerId: c-1
    userId: u-1
    headers:
      X-Extra: 1
    variables:
      locale: en-GB
  staging:
    baseUrl: https://staging.example.com
    timeout: 1500
requests:
  articles:
    path: /publications
    query:
      fields: "title, slug"
      locale: "{{locale}}"
      created_on:
        gte: "2024-01-01"
    sort: -created_on
    limit: 10
  home:
    graphql:
      query: "query ($slug: String) { Page(slug: $slug) { title } }"
      variables:
        slug: home
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("PREPR_TEST_TOKEN", "secret")
	path := writeFile(t, "prepr.yaml", sampleConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	prod := cfg.Environments["production"]
	assert.Equal(t, "secret", prod.Token)
	assert.Equal(t, "https://cdn.prepr.io", prod.BaseURL)
	assert.Equal(t, 4*time.Second, time.Duration(prod.Timeout))
	assert.Equal(t, "c-1", prod.CustomerID)
	assert.Equal(t, "u-1", prod.UserID)
	assert.Equal(t, "1", prod.Headers["X-Extra"])
	assert.Equal(t, "en-GB", prod.Vars["locale"])

	staging := cfg.Environments["staging"]
	assert.Equal(t, 1500*time.Millisecond, time.Duration(staging.Timeout))

	articles := cfg.Requests["articles"]
	assert.Equal(t, "/publications", articles.Path)
	assert.Equal(t, "-created_on", articles.Sort)
	assert.Equal(t, 10, articles.Limit)
	assert.False(t, articles.IsGraphQL())

	var keys []string
	for _, f := range articles.Query.Fields() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"fields", "locale", "created_on"}, keys, "query keys keep file order")

	home := cfg.Requests["home"]
	require.True(t, home.IsGraphQL())
	assert.Contains(t, home.GraphQL.Query, "$slug", "bare $ references are not expanded")
	assert.Equal(t, "home", home.GraphQL.Variables["slug"])
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "prepr.json", `{"environments": {"default": {"token": "t", "timeout": 250}}, "requests": {"list": {"path": "/items", "query": {"b": 1, "a": [true, null]}}}}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, time.Duration(cfg.Environments["default"].Timeout))

	want := querystring.Map(
		querystring.F("b", querystring.Int(1)),
		querystring.F("a", querystring.List(querystring.Bool(true), querystring.Null())),
	)
	assert.True(t, want.Equal(cfg.Requests["list"].Query.Value))
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config file not found")
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "environments: [")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
	})

	t.Run("Schema violation", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "environments:\n  prod:\n    tokn: x\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
		assert.Contains(t, err.Error(), "tokn")
	})

	t.Run("Semantic violation", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "requests:\n  empty:\n    sort: title\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "requests.empty.path")
	})

	t.Run("Bad timeout", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "environments:\n  prod:\n    timeout: soon\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid timeout")
	})
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("PREPR_TEST_A", "alpha")

	got := ExpandEnv([]byte("a=${PREPR_TEST_A} b=${PREPR_TEST_UNSET_B} c=$PREPR_TEST_A"))
	assert.Equal(t, "a=alpha b= c=$PREPR_TEST_A", string(got))
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "PREPR_DOTENV_TOKEN=from-file\nPREPR_DOTENV_KEEP=from-file\n")
	t.Setenv("PREPR_DOTENV_KEEP", "from-process")
	t.Cleanup(func() { os.Unsetenv("PREPR_DOTENV_TOKEN") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("PREPR_DOTENV_TOKEN"))
	assert.Equal(t, "from-process", os.Getenv("PREPR_DOTENV_KEEP"))

	err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadDotEnv_NoDefaultFile(t *testing.T) {
	chdir(t, t.TempDir())
	assert.NoError(t, LoadDotEnv())
}

func TestParseDurationString(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"4s", 4 * time.Second, false},
		{"250ms", 250 * time.Millisecond, false},
		{" 1m30s ", 90 * time.Second, false},
		{"30 seconds", 30 * time.Second, false},
		{"1 minute", time.Minute, false},
		{"2 hours", 2 * time.Hour, false},
		{"500 milliseconds", 500 * time.Millisecond, false},
		{"", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDurationString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessEnvironment(t *testing.T) {
	vars := map[string]string{"locale": "nl-NL", "slug": "home"}

	assert.Equal(t, "/pages/home?l=nl-NL", ProcessEnvironment("/pages/{{slug}}?l={{locale}}", vars))
	assert.Equal(t, "{{missing}}", ProcessEnvironment("{{missing}}", vars))
	assert.Equal(t, "{ a { b } }", ProcessEnvironment("{ a { b } }", vars))

	// Values are inserted as-is, whatever order the map is visited in.
	chained := map[string]string{"a": "{{b}}", "b": "x"}
	for i := 0; i < 20; i++ {
		assert.Equal(t, "{{b}}-x", ProcessEnvironment("{{a}}-{{b}}", chained))
	}

	assert.Nil(t, ProcessEnvironmentInMap(nil, vars))
	assert.Equal(t, map[string]string{"X": "nl-NL"}, ProcessEnvironmentInMap(map[string]string{"X": "{{locale}}"}, vars))
}

func TestMergeEnvironments(t *testing.T) {
	got := MergeEnvironments(
		map[string]string{"a": "1", "b": "1"},
		map[string]string{"b": "2", "c": "2"},
	)
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "2"}, got)
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
