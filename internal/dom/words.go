package dom

import "regexp"

// whitespace matches what a JavaScript /\s+/ matches
var whitespace = regexp.MustCompile(`[\s\x0B\p{Z}\x{FEFF}]+`)

// CountWords counts words the way text.split(/\s+/).length does in the
// browser: empty text is one word, and leading or trailing whitespace
// each add an empty token.
func CountWords(text string) int {
	return len(whitespace.Split(text, -1))
}
