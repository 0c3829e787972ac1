package discovery

import (
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		files    []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			files:    []string{"lib.rs", "api_tests.rs", "db_tests.rs"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			files:    []string{"lib.rs", "api_tests.rs", "db_tests.rs"},
			pattern:  "*_tests.rs",
			expected: 2,
		},
		{
			name:     "wildcard pattern matches substring",
			files:    []string{"lib.rs", "api_tests.rs", "db_tests.rs", "api_client.rs"},
			pattern:  "*api*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			files:    []string{"lib.rs", "api_tests.rs", "db_tests.rs"},
			pattern:  "db",
			expected: 1,
		},
		{
			name:     "no matches",
			files:    []string{"lib.rs", "api_tests.rs"},
			pattern:  "*missing*",
			expected: 0,
		},
		{
			name:     "full path matches base name only",
			files:    []string{"/src/api/lib.rs", "/src/db/lib.rs", "/src/api/mod.rs"},
			pattern:  "lib.rs",
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.files, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty file list", func(t *testing.T) {
		result := filter.FilterByName([]string{}, "*.rs")
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})

	t.Run("pattern with multiple wildcards", func(t *testing.T) {
		files := []string{"user_service_tests.rs", "user_api_tests.rs", "payment_tests.rs"}
		result := filter.FilterByName(files, "*user*tests*")
		if len(result) != 2 {
			t.Errorf("expected 2 matches, got %d", len(result))
		}
	})

	t.Run("only wildcards match everything", func(t *testing.T) {
		if !matchName("lib.rs", "**") {
			t.Error("expected ** to match")
		}
	})
}
