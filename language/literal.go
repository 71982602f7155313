package language

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errStringTemplate = errors.New("string template")

// parseInteger parses decimal, hex and binary integer literals with an optional L suffix.
// Values that do not fit in 32 bits are reported as long.
func parseInteger(text string) (int64, bool, error) {
	isLong := false
	if strings.HasSuffix(text, "L") {
		isLong = true
		text = text[:len(text)-1]
	}
	negative := strings.HasPrefix(text, "-")
	text = strings.TrimPrefix(text, "-")
	text = strings.ReplaceAll(text, "_", "")
	base := 10
	switch {
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		base, text = 16, text[2:]
	case strings.HasPrefix(text, "0b"), strings.HasPrefix(text, "0B"):
		base, text = 2, text[2:]
	}
	magnitude, err := strconv.ParseUint(text, base, 64)
	if err != nil {
		return 0, false, err
	}
	if negative {
		if magnitude > uint64(math.MaxInt64)+1 {
			return 0, false, fmt.Errorf("value out of range")
		}
		value := -int64(magnitude)
		return value, isLong || value < math.MinInt32, nil
	}
	if magnitude > math.MaxInt64 {
		return 0, false, fmt.Errorf("value out of range")
	}
	value := int64(magnitude)
	return value, isLong || value > math.MaxInt32, nil
}

// unquote strips string delimiters and resolves escapes; raw strings keep their text
func unquote(text string) (string, error) {
	if strings.HasPrefix(text, `"""`) && strings.HasSuffix(text, `"""`) && len(text) >= 6 {
		body := text[3 : len(text)-3]
		if hasTemplate(body, false) {
			return "", errStringTemplate
		}
		return body, nil
	}
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", fmt.Errorf("malformed string literal")
	}
	body := text[1 : len(text)-1]
	if hasTemplate(body, true) {
		return "", errStringTemplate
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' {
			sb.WriteByte(ch)
			continue
		}
		if i+1 >= len(body) {
			return "", fmt.Errorf("unterminated escape")
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case '"', '\'', '\\', '$':
			sb.WriteByte(body[i])
		case 'u':
			if i+4 >= len(body) {
				return "", fmt.Errorf("invalid unicode escape")
			}
			code, err := strconv.ParseUint(body[i+1:i+5], 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid unicode escape: %w", err)
			}
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], rune(code))
			sb.Write(buf[:n])
			i += 4
		default:
			return "", fmt.Errorf("invalid escape \\%c", body[i])
		}
	}
	return sb.String(), nil
}

// hasTemplate detects $name and ${...} interpolation outside escapes
func hasTemplate(body string, escapes bool) bool {
	for i := 0; i < len(body)-1; i++ {
		if escapes && body[i] == '\\' {
			i++
			continue
		}
		if body[i] != '$' {
			continue
		}
		next := body[i+1]
		if next == '{' || next == '_' || (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z') {
			return true
		}
	}
	return false
}
