package config

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/wesleyorama2/prepr/querystring"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the dotted path to the invalid field
	Path string

	// Message describes the validation error
	Message string
}

// Error returns the error message.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateConfig validates the configuration and returns a slice of validation errors.
// An empty slice indicates the configuration is valid. Errors are ordered by path.
//
// Example:
//
//	errors := config.ValidateConfig(cfg)
//	if len(errors) > 0 {
//	    for _, err := range errors {
//	        log.Printf("Validation error: %s", err)
//	    }
//	}
func ValidateConfig(config *Config) []ValidationError {
	var errors []ValidationError

	if len(config.Environments) == 0 && len(config.Requests) == 0 {
		errors = append(errors, ValidationError{
			Path:    "environments",
			Message: "at least one environment or request is required",
		})
	}

	for name, env := range config.Environments {
		if env.BaseURL != "" {
			u, err := url.Parse(env.BaseURL)
			if err != nil || u.Scheme == "" || u.Host == "" {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("environments.%s.baseUrl", name),
					Message: "baseUrl must be an absolute URL",
				})
			}
		}

		if env.Timeout < 0 {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("environments.%s.timeout", name),
				Message: "timeout cannot be negative",
			})
		}

		for header := range env.Headers {
			if header == "" {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("environments.%s.headers", name),
					Message: "header names cannot be empty",
				})
			}
		}
	}

	for name, req := range config.Requests {
		if req.GraphQL == nil && req.Path == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.path", name),
				Message: "path is required for REST requests",
			})
		}

		if req.GraphQL != nil && req.GraphQL.Query == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.graphql.query", name),
				Message: "query is required",
			})
		}

		if req.Limit < 0 {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.limit", name),
				Message: "limit cannot be negative",
			})
		}

		if req.Skip < 0 {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.skip", name),
				Message: "skip cannot be negative",
			})
		}

		if !req.Query.IsNull() && req.Query.Kind() != querystring.KindMap {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.query", name),
				Message: "query must be an object",
			})
		}
	}

	sort.Slice(errors, func(i, j int) bool {
		return errors[i].Path < errors[j].Path
	})

	return errors
}

// ValidateEnvironment validates that an environment exists in the configuration.
func ValidateEnvironment(config *Config, envName string) error {
	if _, ok := config.Environments[envName]; !ok {
		return fmt.Errorf("environment not found: %s", envName)
	}
	return nil
}

// ValidateRequest validates that a request exists in the configuration.
func ValidateRequest(config *Config, reqName string) error {
	if _, ok := config.Requests[reqName]; !ok {
		return fmt.Errorf("request not found: %s", reqName)
	}
	return nil
}

// GetEnvironmentNames returns the sorted environment names in the configuration.
func GetEnvironmentNames(config *Config) []string {
	names := make([]string, 0, len(config.Environments))
	for name := range config.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetRequestNames returns the sorted request names in the configuration.
func GetRequestNames(config *Config) []string {
	names := make([]string, 0, len(config.Requests))
	for name := range config.Requests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
