package expr

import (
	"strings"
	"unicode"
)

// Translate rewrites calculator notation into JS expression syntax.
//
//   - a ^ b becomes a ** b.
//   - A unary minus becomes (-1)*, so -x^2 reads as -(x^2) the way it is
//     written on paper. JS rejects a bare -x ** 2. A minus straight after
//     ^ is left alone since JS accepts 2 ** -1.
func Translate(src string) string {
	var b strings.Builder
	b.Grow(len(src) + 8)

	var prev rune // last non-space rune written, 0 at start
	for _, r := range src {
		switch {
		case r == '^':
			b.WriteString("**")
			prev = '^'
			continue
		case r == '-' && !endsOperand(prev) && prev != '^':
			b.WriteString("(-1)*")
			prev = '*'
			continue
		}
		b.WriteRune(r)
		if !unicode.IsSpace(r) {
			prev = r
		}
	}
	return b.String()
}

// endsOperand reports whether r can close an operand, making a following
// minus binary.
func endsOperand(r rune) bool {
	switch r {
	case 0:
		return false
	case ')', ']', '.', '_', '$':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
