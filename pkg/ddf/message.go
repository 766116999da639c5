// Package ddf reads and writes the engine's text data format: a protobuf text format dialect
// made of `name: value` scalars and `name { ... }` messages.
package ddf

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the lexical kind of a field value.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindString
	KindNumber
	KindIdent
	KindMessage
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindIdent:
		return "identifier"
	case KindMessage:
		return "message"
	case KindUndefined:
		return "undefined"
	default:
		return "undefined"
	}
}

// Field is a single `name: value` or `name { ... }` entry.
// For strings Value holds the unescaped text, for numbers and identifiers the literal token.
type Field struct {
	Name    string
	Pos     Position
	Kind    Kind
	Value   string
	Message *Message
}

// Message is an ordered list of fields. Repeated fields appear once per occurrence.
type Message struct {
	Pos    Position
	Fields []*Field
}

// Get returns the last occurrence of name, or nil.
func (m *Message) Get(name string) *Field {
	if m == nil {
		return nil
	}
	for i := len(m.Fields) - 1; i >= 0; i-- {
		if m.Fields[i].Name == name {
			return m.Fields[i]
		}
	}
	return nil
}

// All returns every occurrence of name in document order.
func (m *Message) All(name string) []*Field {
	if m == nil {
		return nil
	}
	var out []*Field
	for _, f := range m.Fields {
		if f.Name == name {
			out = append(out, f)
		}
	}
	return out
}

// Has reports whether name occurs at least once.
func (m *Message) Has(name string) bool {
	return m.Get(name) != nil
}

// Unknown returns the first field whose name is not in allowed, or nil.
func (m *Message) Unknown(allowed ...string) *Field {
	if m == nil {
		return nil
	}
	for _, f := range m.Fields {
		known := false
		for _, a := range allowed {
			if f.Name == a {
				known = true
				break
			}
		}
		if !known {
			return f
		}
	}
	return nil
}

// AddString appends a string field.
func (m *Message) AddString(name, value string) {
	m.Fields = append(m.Fields, &Field{Name: name, Kind: KindString, Value: value})
}

// AddFloat appends a number field formatted the way the engine writes floats.
func (m *Message) AddFloat(name string, value float64) {
	m.Fields = append(m.Fields, &Field{Name: name, Kind: KindNumber, Value: FormatFloat(value)})
}

// AddInt appends an integer number field.
func (m *Message) AddInt(name string, value int64) {
	m.Fields = append(m.Fields, &Field{Name: name, Kind: KindNumber, Value: strconv.FormatInt(value, 10)})
}

// AddIdent appends an identifier field, used for enums and booleans.
func (m *Message) AddIdent(name, value string) {
	m.Fields = append(m.Fields, &Field{Name: name, Kind: KindIdent, Value: value})
}

// AddMessage appends a nested message and returns it.
func (m *Message) AddMessage(name string) *Message {
	child := &Message{}
	m.Fields = append(m.Fields, &Field{Name: name, Kind: KindMessage, Message: child})
	return child
}

func (f *Field) kindError(want Kind) *Error {
	return Errorf(f.Pos, "field %q: expected %s, got %s", f.Name, want, f.Kind)
}

// AsString returns the value of a string field.
func (f *Field) AsString() (string, error) {
	if f.Kind != KindString {
		return "", f.kindError(KindString)
	}
	return f.Value, nil
}

// AsFloat returns the value of a number field. The identifiers inf and nan are accepted.
func (f *Field) AsFloat() (float64, error) {
	switch f.Kind {
	case KindNumber:
		raw := strings.TrimRight(f.Value, "fF")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, Errorf(f.Pos, "field %q: invalid number %q", f.Name, f.Value)
		}
		return v, nil
	case KindIdent:
		switch strings.ToLower(f.Value) {
		case "inf", "infinity":
			return math.Inf(1), nil
		case "nan":
			return math.NaN(), nil
		}
	case KindUndefined, KindString, KindMessage:
	}
	return 0, f.kindError(KindNumber)
}

// AsInt returns the value of an integer number field.
func (f *Field) AsInt() (int64, error) {
	if f.Kind != KindNumber {
		return 0, f.kindError(KindNumber)
	}
	v, err := strconv.ParseInt(f.Value, 0, 64)
	if err != nil {
		return 0, Errorf(f.Pos, "field %q: invalid integer %q", f.Name, f.Value)
	}
	return v, nil
}

// AsBool accepts true/false identifiers as well as the numbers 0 and 1.
func (f *Field) AsBool() (bool, error) {
	switch f.Kind {
	case KindIdent:
		switch f.Value {
		case "true", "True", "t":
			return true, nil
		case "false", "False", "f":
			return false, nil
		}
	case KindNumber:
		switch f.Value {
		case "1":
			return true, nil
		case "0":
			return false, nil
		}
	case KindUndefined, KindString, KindMessage:
		return false, f.kindError(KindIdent)
	}
	return false, Errorf(f.Pos, "field %q: invalid boolean %q", f.Name, f.Value)
}

// AsEnum returns the identifier of an enum field.
func (f *Field) AsEnum() (string, error) {
	if f.Kind != KindIdent {
		return "", f.kindError(KindIdent)
	}
	return f.Value, nil
}

// AsMessage returns the nested message of a message field.
func (f *Field) AsMessage() (*Message, error) {
	if f.Kind != KindMessage {
		return nil, f.kindError(KindMessage)
	}
	return f.Message, nil
}
