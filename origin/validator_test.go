package origin

import "testing"

func TestValidator_ExactMatchOnly(t *testing.T) {
	validator := NewValidator([]string{
		"https://thmscmpg.github.io",
		"http://localhost:4000",
	})

	cases := []struct {
		name   string
		origin string
		allow  bool
	}{
		{"listed origin", "https://thmscmpg.github.io", true},
		{"listed origin with trailing slash", "https://thmscmpg.github.io/", true},
		{"listed origin different case", "HTTPS://THMSCMPG.GITHUB.IO", true},
		{"localhost", "http://localhost:4000", true},
		{"unlisted origin", "https://evil.example", false},
		{"superstring of listed origin", "https://thmscmpg.github.io.evil.example", false},
		{"substring of listed origin", "https://thmscmpg", false},
		{"listed host wrong scheme", "http://thmscmpg.github.io", false},
		{"empty origin", "", false},
		{"whitespace origin", "   ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validator.Allow(tc.origin); got != tc.allow {
				t.Fatalf("Allow(%q) = %v, want %v", tc.origin, got, tc.allow)
			}
		})
	}
}

func TestValidator_ReplaceSwapsWholeSet(t *testing.T) {
	validator := NewValidator([]string{"https://old.example"})
	if !validator.Allow("https://old.example") {
		t.Fatalf("expected initial origin allowed")
	}

	validator.Replace([]string{"https://new.example"})
	if validator.Allow("https://old.example") {
		t.Fatalf("expected old origin denied after replace")
	}
	if !validator.Allow("https://new.example") {
		t.Fatalf("expected new origin allowed after replace")
	}
}

func TestValidator_OriginsReturnsSortedNormalizedSet(t *testing.T) {
	validator := NewValidator([]string{" https://B.example/ ", "https://a.example", ""})
	origins := validator.Origins()
	if len(origins) != 2 {
		t.Fatalf("expected blank entries skipped, got %v", origins)
	}
	if origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Fatalf("expected sorted normalized origins, got %v", origins)
	}
}
