package ddf

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/argus-labs/godesc/pkg/assert"
)

const indentUnit = "  "

// Marshal writes m in the engine's canonical layout: two-space indentation, one field per line
// and multi-line strings split after every newline into adjacent literals.
func Marshal(m *Message) []byte {
	var buf bytes.Buffer
	writeMessage(&buf, m, 0)
	return buf.Bytes()
}

func writeMessage(buf *bytes.Buffer, m *Message, depth int) {
	if m == nil {
		return
	}
	for _, f := range m.Fields {
		writeField(buf, f, depth)
	}
}

func writeField(buf *bytes.Buffer, f *Field, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	buf.WriteString(indent)
	buf.WriteString(f.Name)

	switch f.Kind {
	case KindMessage:
		buf.WriteString(" {\n")
		writeMessage(buf, f.Message, depth+1)
		buf.WriteString(indent)
		buf.WriteString("}\n")
	case KindString:
		buf.WriteString(": ")
		writeString(buf, f.Value, indent)
		buf.WriteByte('\n')
	case KindNumber, KindIdent:
		buf.WriteString(": ")
		buf.WriteString(f.Value)
		buf.WriteByte('\n')
	case KindUndefined:
		assert.Unreachable("field %q has no kind", f.Name)
	}
}

// writeString emits "a\n" "b\n" "" style continuation lines aligned with the field name.
func writeString(buf *bytes.Buffer, s, indent string) {
	if !strings.Contains(s, "\n") {
		buf.WriteString(quote(s))
		return
	}
	for i, line := range strings.SplitAfter(s, "\n") {
		if i > 0 {
			buf.WriteByte('\n')
			buf.WriteString(indent)
		}
		buf.WriteString(quote(line))
	}
}

// FormatFloat renders v with single precision the way the engine's editor does: "0.0", "47.0",
// "1.187844", and "1.0E-4" outside [1e-3, 1e7).
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	f := float64(float32(v))
	abs := math.Abs(f)
	if abs == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	if abs >= 1e7 || abs < 1e-3 {
		s := strconv.FormatFloat(f, 'e', -1, 32)
		mantissa, exp, _ := strings.Cut(s, "e")
		if !strings.Contains(mantissa, ".") {
			mantissa += ".0"
		}
		n, err := strconv.Atoi(exp)
		assert.That(err == nil, "bad exponent in %q", s)
		return mantissa + "E" + strconv.Itoa(n)
	}

	s := strconv.FormatFloat(f, 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
