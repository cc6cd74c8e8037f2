package xmltext

import "unicode/utf8"

var whitespaceLUT = [256]bool{
	'\t': true,
	'\n': true,
	'\r': true,
	' ':  true,
}

type charDataByteClass uint8

const (
	charDataByteOK charDataByteClass = iota
	charDataByteAmp
	charDataByteRightBracket
	charDataByteGreater
	charDataByteInvalid
	charDataByteNonASCII
)

var charDataByteClassLUT = func() [256]charDataByteClass {
	var lut [256]charDataByteClass
	for i := 0; i < len(lut); i++ {
		b := byte(i)
		switch {
		case b >= utf8.RuneSelf:
			lut[i] = charDataByteNonASCII
		case b == '&':
			lut[i] = charDataByteAmp
		case b == ']':
			lut[i] = charDataByteRightBracket
		case b == '>':
			lut[i] = charDataByteGreater
		case b < 0x20 && b != 0x9 && b != 0xA && b != 0xD:
			lut[i] = charDataByteInvalid
		default:
			lut[i] = charDataByteOK
		}
	}
	return lut
}()

// isValidXMLChar reports whether r is a valid XML 1.0 character.
func isValidXMLChar(r rune) bool {
	switch {
	case r == 0x9 || r == 0xA || r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	default:
		return false
	}
}

// validateXMLChars returns the index of the first invalid character, or -1.
func validateXMLChars(data []byte) int {
	for i := 0; i < len(data); {
		if data[i] < utf8.RuneSelf {
			if charDataByteClassLUT[data[i]] == charDataByteInvalid {
				return i
			}
			i++
			continue
		}
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		if !isValidXMLChar(r) {
			return i
		}
		i += size
	}
	return -1
}

// scanCharData validates character data.
// It returns the index of the first offending byte or -1, whether the data
// contains entity references, and the cause.
func scanCharData(data []byte) (int, bool, error) {
	bracketRun := 0
	needs := false
	for i := 0; i < len(data); {
		switch charDataByteClassLUT[data[i]] {
		case charDataByteAmp:
			needs = true
			bracketRun = 0
			i++
		case charDataByteRightBracket:
			bracketRun++
			i++
		case charDataByteGreater:
			if bracketRun >= 2 {
				return i - 2, needs, errInvalidToken
			}
			bracketRun = 0
			i++
		case charDataByteInvalid:
			return i, needs, errInvalidChar
		case charDataByteNonASCII:
			bracketRun = 0
			r, size := utf8.DecodeRune(data[i:])
			if (r == utf8.RuneError && size == 1) || !isValidXMLChar(r) {
				return i, needs, errInvalidChar
			}
			i += size
		default:
			bracketRun = 0
			i++
		}
	}
	return -1, needs, nil
}

func isWhitespace(b byte) bool {
	return whitespaceLUT[b]
}

// IsWhitespace reports whether data consists only of XML whitespace.
func IsWhitespace(data []byte) bool {
	for _, b := range data {
		if !whitespaceLUT[b] {
			return false
		}
	}
	return true
}
