package output

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Select extracts a value from a JSON document.
//
// The path is either a gjson path ("items.0.title", "items.#.slug") or a
// simple JSONPath expression ("$.items[0].title"). Strings are returned
// unquoted, other values as raw JSON.
func Select(json []byte, path string) (string, error) {
	if len(json) == 0 {
		return "", fmt.Errorf("empty JSON document")
	}

	if path == "" {
		return "", fmt.Errorf("empty path expression")
	}

	result := gjson.GetBytes(json, convertToGjsonPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}

	if result.Type == gjson.String {
		return result.String(), nil
	}
	return result.Raw, nil
}

// convertToGjsonPath converts a JSONPath expression to a gjson path.
// Paths that do not start with "$" are returned unchanged.
func convertToGjsonPath(path string) string {
	if !strings.HasPrefix(path, "$") {
		return path
	}

	path = strings.TrimPrefix(path, "$")
	if path == "" {
		return "@this"
	}

	path = strings.TrimPrefix(path, ".")

	// Bracketed member names: $['name'] and $["name"]
	for _, quote := range []string{"'", "\""} {
		path = strings.ReplaceAll(path, "["+quote, ".")
		path = strings.ReplaceAll(path, quote+"]", "")
	}

	// Array indices: $.items[0].title -> items.0.title
	path = strings.ReplaceAll(path, "[", ".")
	path = strings.ReplaceAll(path, "]", "")

	return strings.TrimPrefix(path, ".")
}
