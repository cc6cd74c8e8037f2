package xmltext

import (
	"unicode"
	"unicode/utf8"
)

var nameStartByteLUT = [utf8.RuneSelf]bool{
	':': true,
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true, 'F': true, 'G': true,
	'H': true, 'I': true, 'J': true, 'K': true, 'L': true, 'M': true, 'N': true,
	'O': true, 'P': true, 'Q': true, 'R': true, 'S': true, 'T': true, 'U': true,
	'V': true, 'W': true, 'X': true, 'Y': true, 'Z': true,
	'_': true,
	'a': true, 'b': true, 'c': true, 'd': true, 'e': true, 'f': true, 'g': true,
	'h': true, 'i': true, 'j': true, 'k': true, 'l': true, 'm': true, 'n': true,
	'o': true, 'p': true, 'q': true, 'r': true, 's': true, 't': true, 'u': true,
	'v': true, 'w': true, 'x': true, 'y': true, 'z': true,
}

var nameByteLUT = [utf8.RuneSelf]bool{
	'-': true, '.': true,
	'0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true,
	':': true,
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true, 'F': true, 'G': true,
	'H': true, 'I': true, 'J': true, 'K': true, 'L': true, 'M': true, 'N': true,
	'O': true, 'P': true, 'Q': true, 'R': true, 'S': true, 'T': true, 'U': true,
	'V': true, 'W': true, 'X': true, 'Y': true, 'Z': true,
	'_': true,
	'a': true, 'b': true, 'c': true, 'd': true, 'e': true, 'f': true, 'g': true,
	'h': true, 'i': true, 'j': true, 'k': true, 'l': true, 'm': true, 'n': true,
	'o': true, 'p': true, 'q': true, 'r': true, 's': true, 't': true, 'u': true,
	'v': true, 'w': true, 'x': true, 'y': true, 'z': true,
}

// Non-ASCII names are approximated with the Unicode letter and mark classes.
func isNameStartRune(r rune) bool {
	if r < utf8.RuneSelf {
		return nameStartByteLUT[r]
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isNameRune(r rune) bool {
	if r < utf8.RuneSelf {
		return nameByteLUT[r]
	}
	return isNameStartRune(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc) || r == 0xB7
}

// nameLen returns the length of the XML name at the start of data, or 0.
// complete is false when the name may continue past the end of data.
func nameLen(data []byte) (n int, complete bool) {
	for n < len(data) {
		b := data[n]
		if b < utf8.RuneSelf {
			ok := nameByteLUT[b]
			if n == 0 {
				ok = nameStartByteLUT[b]
			}
			if !ok {
				return n, true
			}
			n++
			continue
		}
		if !utf8.FullRune(data[n:]) {
			return n, false
		}
		r, size := utf8.DecodeRune(data[n:])
		ok := isNameRune(r)
		if n == 0 {
			ok = isNameStartRune(r)
		}
		if r == utf8.RuneError || !ok {
			return n, true
		}
		n += size
	}
	return n, false
}
