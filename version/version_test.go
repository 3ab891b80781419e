package version

import "testing"

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		build    string
		expected string
	}{
		{build: "", expected: "0.1.0"},
		{build: "dev-3", expected: "0.1.0-dev-3"},
		{build: "bad build!", expected: "0.1.0"},
	}
	for _, test := range tests {
		result := formatVersion(test.build)
		if result != test.expected {
			t.Errorf("TestFormatVersion: build %q: got %s, want %s", test.build, result, test.expected)
		}
	}
}
