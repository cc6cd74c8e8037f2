package xmltext

import (
	"bytes"
	"unicode/utf8"
)

var standardEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": "\"",
}

// UnescapeInto appends data to dst with entity and character references expanded.
// Only the five predefined entities are recognized.
func UnescapeInto(dst []byte, data []byte) ([]byte, error) {
	return unescapeInto(dst, data, 0)
}

func unescapeInto(dst []byte, data []byte, maxTokenSize int) ([]byte, error) {
	start := len(dst)
	for len(data) > 0 {
		amp := bytes.IndexByte(data, '&')
		if amp < 0 {
			dst = append(dst, data...)
			break
		}
		dst = append(dst, data[:amp]...)
		data = data[amp:]
		consumed, replacement, r, isNumeric, err := parseEntityRef(data)
		if err != nil {
			return dst, err
		}
		if isNumeric {
			dst = utf8.AppendRune(dst, r)
		} else {
			dst = append(dst, replacement...)
		}
		if maxTokenSize > 0 && len(dst)-start > maxTokenSize {
			return dst, errTokenTooLarge
		}
		data = data[consumed:]
	}
	return dst, nil
}

// parseEntityRef parses the reference at the start of data, which begins with '&'.
func parseEntityRef(data []byte) (int, string, rune, bool, error) {
	if len(data) < 2 {
		return 0, "", 0, false, ErrInvalidEntity
	}
	semi := bytes.IndexByte(data[1:], ';')
	if semi <= 0 {
		return 0, "", 0, false, ErrInvalidEntity
	}
	semi++
	ref := data[1:semi]
	if ref[0] == '#' {
		r, err := parseNumericEntity(ref)
		if err != nil {
			return 0, "", 0, false, err
		}
		return semi + 1, "", r, true, nil
	}
	replacement, ok := standardEntities[string(ref)]
	if !ok {
		return 0, "", 0, false, ErrInvalidEntity
	}
	return semi + 1, replacement, 0, false, nil
}

func parseNumericEntity(ref []byte) (rune, error) {
	if len(ref) < 2 {
		return 0, ErrInvalidCharRef
	}
	base := 10
	start := 1
	if ref[1] == 'x' {
		base = 16
		start = 2
	}
	if start >= len(ref) {
		return 0, ErrInvalidCharRef
	}
	var value uint64
	for i := start; i < len(ref); i++ {
		b := ref[i]
		var digit byte
		switch {
		case b >= '0' && b <= '9':
			digit = b - '0'
		case base == 16 && b >= 'a' && b <= 'f':
			digit = b - 'a' + 10
		case base == 16 && b >= 'A' && b <= 'F':
			digit = b - 'A' + 10
		default:
			return 0, ErrInvalidCharRef
		}
		value = value*uint64(base) + uint64(digit)
		if value > utf8.MaxRune {
			return 0, ErrInvalidCharRef
		}
	}
	r := rune(value)
	if !isValidXMLChar(r) {
		return 0, ErrInvalidCharRef
	}
	return r, nil
}
