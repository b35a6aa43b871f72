package render

import (
	"strings"
	"unicode"
)

const tabSize = 8

// Wrap fills text into lines of at most width runes with the classic
// text-wrap rules:
//   - tabs expand to multiples of 8 columns and every other ASCII whitespace
//     rune becomes one space; runs are not merged
//   - lines break at spaces, after hyphens inside words, and around em-dashes
//     written as "--"
//   - whitespace is dropped at the start of continuation lines and at the end
//     of every line, but kept inside a line and at the very start of the text
//   - words longer than a line are split, after their last fitting hyphen
//     when there is one
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	chunks := splitChunks(normalizeSpace(text))
	var lines []string

	for len(chunks) > 0 {
		if len(lines) > 0 && isBlank(chunks[0]) {
			chunks = chunks[1:]
		}

		var cur [][]rune
		curLen := 0
		for len(chunks) > 0 && curLen+len(chunks[0]) <= width {
			cur = append(cur, chunks[0])
			curLen += len(chunks[0])
			chunks = chunks[1:]
		}

		if len(chunks) > 0 && len(chunks[0]) > width {
			head, rest := splitLongWord(chunks[0], width-curLen)
			cur = append(cur, head)
			chunks[0] = rest
		}

		if len(cur) > 0 && isBlank(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}
		if len(cur) > 0 {
			var b strings.Builder
			for _, c := range cur {
				b.WriteString(string(c))
			}
			lines = append(lines, b.String())
		}
	}
	return lines
}

// splitLongWord cuts the head that fits in room off chunk
func splitLongWord(chunk []rune, room int) ([]rune, []rune) {
	if room < 1 {
		room = 1
	}
	end := room
	if len(chunk) > room {
		if h := lastIndexRune(chunk[:room], '-'); h > 0 && hasNonHyphen(chunk[:h]) {
			end = h + 1
		}
	}
	return chunk[:end], chunk[end:]
}

// normalizeSpace expands tabs and turns the remaining ASCII whitespace into spaces
func normalizeSpace(text string) []rune {
	out := make([]rune, 0, len(text))
	col := 0
	for _, r := range text {
		switch r {
		case '\t':
			n := tabSize - col%tabSize
			for i := 0; i < n; i++ {
				out = append(out, ' ')
			}
			col += n
		case '\n', '\r':
			out = append(out, ' ')
			col = 0
		case '\v', '\f':
			out = append(out, ' ')
			col++
		default:
			out = append(out, r)
			col++
		}
	}
	return out
}

// splitChunks cuts text into space runs, em-dashes and words, where a word
// ends after a hyphen that joins two letter runs ("hot-" "swap")
func splitChunks(text []rune) [][]rune {
	var chunks [][]rune
	n := len(text)

	for i := 0; i < n; {
		var j int
		switch {
		case isSpace(text[i]):
			j = i + 1
			for j < n && isSpace(text[j]) {
				j++
			}
		case i > 0 && isWordPunct(text[i-1]) && emDashAt(text, i) > 0:
			j = i + emDashAt(text, i)
		default:
			j = wordEnd(text, i)
		}
		chunks = append(chunks, text[i:j])
		i = j
	}
	return chunks
}

// wordEnd returns the end of the shortest word chunk starting at i
func wordEnd(text []rune, i int) int {
	n := len(text)
	for j := i + 1; ; j++ {
		if j < n && text[j] == '-' && hyphenBreak(text, j) {
			return j + 1
		}
		if j == n || isSpace(text[j]) {
			return j
		}
		if isWordPunct(text[j-1]) && emDashAt(text, j) > 0 {
			return j
		}
	}
}

// hyphenBreak reports whether the hyphen at j splits a hyphenated word: it
// follows two letters or a single-letter segment, and a letter follows it
func hyphenBreak(text []rune, j int) bool {
	before := (j >= 2 && isLetter(text[j-2]) && isLetter(text[j-1])) ||
		(j >= 3 && isLetter(text[j-3]) && text[j-2] == '-' && isLetter(text[j-1]))
	if !before || j+1 >= len(text) || !isLetter(text[j+1]) {
		return false
	}
	k := j + 2
	if k < len(text) && text[k] == '-' {
		k++
	}
	return k < len(text) && isLetter(text[k])
}

// emDashAt returns the length of a run of two or more hyphens at i that is
// followed by a word character, or 0
func emDashAt(text []rune, i int) int {
	k := i
	for k < len(text) && text[k] == '-' {
		k++
	}
	if k-i < 2 || k >= len(text) || !isWordChar(text[k]) {
		return 0
	}
	return k - i
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isLetter(r rune) bool {
	return isWordChar(r) && !unicode.IsDigit(r)
}

func isWordPunct(r rune) bool {
	return isWordChar(r) || strings.ContainsRune(`!"'&.,?`, r)
}

func isBlank(chunk []rune) bool {
	return strings.TrimSpace(string(chunk)) == ""
}

func lastIndexRune(s []rune, r rune) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == r {
			return i
		}
	}
	return -1
}

func hasNonHyphen(s []rune) bool {
	for _, r := range s {
		if r != '-' {
			return true
		}
	}
	return false
}
