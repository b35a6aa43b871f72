package render

import (
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected []string
	}{
		{
			name:     "empty text yields no lines",
			text:     "",
			width:    60,
			expected: nil,
		},
		{
			name:     "whitespace only yields no lines",
			text:     " \t\n ",
			width:    60,
			expected: nil,
		},
		{
			name:     "short text is one line",
			text:     "Server chassis, rev B",
			width:    60,
			expected: []string{"Server chassis, rev B"},
		},
		{
			name:     "newlines become single spaces and tabs expand",
			text:     "two\n\nwords\there",
			width:    60,
			expected: []string{"two  words   here"},
		},
		{
			name:     "runs of spaces are kept inside a line",
			text:     "Line one.\nLine two,  double spaced.",
			width:    60,
			expected: []string{"Line one. Line two,  double spaced."},
		},
		{
			name:     "leading whitespace is kept on the first line only",
			text:     "  indented text wraps here",
			width:    16,
			expected: []string{"  indented text", "wraps here"},
		},
		{
			name:     "whitespace at a break is dropped",
			text:     "aaa   bbb",
			width:    4,
			expected: []string{"aaa", "bbb"},
		},
		{
			name:     "greedy fill",
			text:     "aaa bbb ccc ddd",
			width:    7,
			expected: []string{"aaa bbb", "ccc ddd"},
		},
		{
			name:     "long word fills remaining space then continues",
			text:     "ab cdefghijkl",
			width:    5,
			expected: []string{"ab cd", "efghi", "jkl"},
		},
		{
			name:     "long word on empty line",
			text:     "abcdefghij",
			width:    4,
			expected: []string{"abcd", "efgh", "ij"},
		},
		{
			name:     "breaks after the hyphen of a hyphenated word",
			text:     "Inspection of the second production unit for order 47 hot-swap drive cages.",
			width:    60,
			expected: []string{"Inspection of the second production unit for order 47 hot-", "swap drive cages."},
		},
		{
			name:     "single letter prefix is not a hyphen break",
			text:     "an x-ray",
			width:    5,
			expected: []string{"an", "x-ray"},
		},
		{
			name:     "numeric part numbers do not split at hyphens",
			text:     "P/N 875-123-B21 fits",
			width:    15,
			expected: []string{"P/N 875-123-B21", "fits"},
		},
		{
			name:     "long word splits after its last fitting hyphen",
			text:     "12345-67890123",
			width:    8,
			expected: []string{"12345-", "67890123"},
		},
		{
			name:     "em-dash is its own chunk",
			text:     "alpha--beta",
			width:    7,
			expected: []string{"alpha--", "beta"},
		},
		{
			name:     "multibyte runes count once",
			text:     "héllo wörld",
			width:    5,
			expected: []string{"héllo", "wörld"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.text, tt.width)
			if len(result) != len(tt.expected) {
				t.Fatalf("Expected %d lines %q, got %d lines %q", len(tt.expected), tt.expected, len(result), result)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("Line %d: expected %q, got %q", i, tt.expected[i], result[i])
				}
			}
		})
	}
}

func TestWrapThreeHundredCharacters(t *testing.T) {
	text := strings.Repeat("abcd ", 60)
	if len(text) != 300 {
		t.Fatalf("Expected 300 characters, got %d", len(text))
	}

	lines := Wrap(text, DescriptionColumns)
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d: %q", len(lines), lines)
	}
	for i, line := range lines {
		if len([]rune(line)) > DescriptionColumns {
			t.Errorf("Line %d is %d characters, over the %d column limit", i, len(line), DescriptionColumns)
		}
	}
}
