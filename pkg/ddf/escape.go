package ddf

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
)

// unquote decodes a single or double quoted literal using C escapes.
func unquote(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != lit[len(lit)-1] || (lit[0] != '"' && lit[0] != '\'') {
		return "", eris.Errorf("malformed string literal %s", lit)
	}
	quote := lit[0]
	body := lit[1 : len(lit)-1]
	if strings.IndexByte(body, '\\') < 0 {
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for len(body) > 0 {
		c := body[0]
		if c != '\\' {
			sb.WriteByte(c)
			body = body[1:]
			continue
		}
		if len(body) < 2 {
			return "", eris.New("string literal ends with a lone backslash")
		}
		switch body[1] {
		case '\'', '"', '?':
			sb.WriteByte(body[1])
			body = body[2:]
			continue
		}
		v, multibyte, tail, err := strconv.UnquoteChar(body, quote)
		if err != nil {
			return "", eris.Errorf("invalid escape sequence near %q", truncate(body, 6))
		}
		if v < utf8.RuneSelf || !multibyte {
			sb.WriteByte(byte(v))
		} else {
			sb.WriteRune(v)
		}
		body = tail
	}
	return sb.String(), nil
}

// quote renders s as a double quoted literal. Bytes above 0x7f are written verbatim so UTF-8
// text stays readable.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '"':
			sb.WriteString(`\"`)
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			if c < 0x20 || c == 0x7f {
				sb.WriteByte('\\')
				sb.WriteByte('0' + c>>6)
				sb.WriteByte('0' + (c>>3)&7)
				sb.WriteByte('0' + c&7)
				continue
			}
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
