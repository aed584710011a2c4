package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/prepr/internal/schema"
)

//go:embed schema.json
var schemaSource string

var configSchema = schema.MustCompile("prepr-config.json", schemaSource)

// envPattern matches ${NAME} references. Bare $NAME is left alone since
// GraphQL operations use it for variables.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// placeholderPattern matches {{name}} variable references.
var placeholderPattern = regexp.MustCompile(`\{\{[^{}]+\}\}`)

// ErrInvalidConfig is returned when a configuration file fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads a YAML or JSON configuration file from the given path.
//
// ${NAME} references are expanded from the process environment before parsing.
// The document is then checked against the configuration schema and
// ValidateConfig.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses configuration data. See Load.
func Parse(data []byte) (*Config, error) {
	data = ExpandEnv(data)

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if errs := configSchema.Validate(raw); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, errs)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if errs := ValidateConfig(&config); len(errs) > 0 {
		messages := make([]string, len(errs))
		for i, e := range errs {
			messages[i] = e.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
	}

	return &config, nil
}

// ExpandEnv replaces ${NAME} references with the value of the environment
// variable NAME. Unset variables expand to the empty string.
func ExpandEnv(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}

// LoadDotEnv loads variables from .env files into the process environment.
// Variables that are already set are not overridden. With no arguments it
// loads ./.env when that file exists.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		files = []string{".env"}
	}

	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("error loading env file: %w", err)
	}
	return nil
}

// ParseDurationString parses a duration string.
// Supports formats like "30s", "5m", "1h", "1 minute", "30 seconds".
func ParseDurationString(duration string) (time.Duration, error) {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return 0, fmt.Errorf("duration cannot be empty")
	}

	if d, err := time.ParseDuration(duration); err == nil {
		return d, nil
	}

	duration = strings.ToLower(duration)
	duration = strings.ReplaceAll(duration, " ", "")

	// Longest words first so "seconds" is not left as "s" + "s".
	replacements := []struct{ word, abbrev string }{
		{"milliseconds", "ms"},
		{"millisecond", "ms"},
		{"seconds", "s"},
		{"second", "s"},
		{"minutes", "m"},
		{"minute", "m"},
		{"hours", "h"},
		{"hour", "h"},
	}

	for _, r := range replacements {
		duration = strings.ReplaceAll(duration, r.word, r.abbrev)
	}

	return time.ParseDuration(duration)
}

// ProcessEnvironment replaces {{name}} placeholders in input with values from env.
// Substituted values are not scanned again. Unknown placeholders are kept.
func ProcessEnvironment(input string, env map[string]string) string {
	if len(env) == 0 {
		return input
	}
	return placeholderPattern.ReplaceAllStringFunc(input, func(match string) string {
		if value, ok := env[match[2:len(match)-2]]; ok {
			return value
		}
		return match
	})
}

// ProcessEnvironmentInMap applies ProcessEnvironment to every value of input.
func ProcessEnvironmentInMap(input map[string]string, env map[string]string) map[string]string {
	if input == nil {
		return nil
	}

	result := make(map[string]string, len(input))
	for key, value := range input {
		result[key] = ProcessEnvironment(value, env)
	}
	return result
}

// MergeEnvironments merges two maps, values in override taking precedence.
func MergeEnvironments(base, override map[string]string) map[string]string {
	result := make(map[string]string, len(base)+len(override))

	for key, value := range base {
		result[key] = value
	}

	for key, value := range override {
		result[key] = value
	}

	return result
}
