package output

import "testing"

func TestSelect(t *testing.T) {
	doc := []byte(`{"items":[{"title":"Hello","slug":"hello","tags":["a","b"]},{"title":"World","slug":"world","tags":[]}],"total":2,"next":null}`)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"gjson string", "items.0.title", "Hello", false},
		{"gjson number", "total", "2", false},
		{"gjson query", "items.#.slug", `["hello","world"]`, false},
		{"JSONPath string", "$.items[1].title", "World", false},
		{"JSONPath array", "$.items[0].tags", `["a","b"]`, false},
		{"JSONPath quoted member", "$['total']", "2", false},
		{"Null", "next", "null", false},
		{"Root", "$", string(doc), false},
		{"Missing", "items.5.title", "", true},
		{"Empty path", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(doc, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Select() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Select() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := Select(nil, "total"); err == nil {
		t.Error("Expected error for empty document")
	}
}

func TestConvertToGjsonPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"items.0.title", "items.0.title"},
		{"$", "@this"},
		{"$.items[0].title", "items.0.title"},
		{"$[0]", "0"},
		{`$["data"]["Page"]`, "data.Page"},
		{"$['items'][2]", "items.2"},
	}

	for _, tt := range tests {
		if got := convertToGjsonPath(tt.input); got != tt.want {
			t.Errorf("convertToGjsonPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
