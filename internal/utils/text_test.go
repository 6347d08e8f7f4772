package utils

import (
	"reflect"
	"testing"
)

func TestCapitalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"lowercase word", "launch", "Launch"},
		{"already capitalized", "Launch", "Launch"},
		{"trims before upper-casing", "  write spec ", "Write spec"},
		{"rest unchanged", "iPHONE app", "IPHONE app"},
		{"non-ascii first rune", "élan", "Élan"},
		{"digit first", "2024 plan", "2024 plan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Capitalize(tt.input); got != tt.want {
				t.Errorf("Capitalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil input", nil, []string{}},
		{"whitespace collapsed to underscore", []string{"front  end"}, []string{"front_end"}},
		{"punctuation stripped", []string{"c++", "q&a!"}, []string{"c", "qa"}},
		{"empties dropped", []string{"", " ", "!!"}, []string{}},
		{"duplicates removed keeping first", []string{"go", "web", "go"}, []string{"go", "web"}},
		{"duplicates after normalization", []string{"big data", "big_data"}, []string{"big_data"}},
		{"surrounding whitespace trimmed", []string{"  ops "}, []string{"ops"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"work, home ,work", []string{"work", "home"}},
		{"side project,,urgent!", []string{"side_project", "urgent"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseTags(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
