package ddf

import (
	"errors"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/rotisserie/eris"
)

var ddfLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\\n])*"|'(?:\\.|[^'\\\n])*'`},
	{Name: "Number", Pattern: `[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?[fF]?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[{}:,;\[\]<>]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type astDocument struct {
	Fields []*astField `@@*`
}

// astField is either `name: scalar` or `name {...}` (the colon is optional for blocks).
type astField struct {
	Pos   lexer.Position
	Name  string     `@Ident`
	Colon bool       `@":"?`
	Block *astBlock  `( @@`
	Value *astScalar `| @@ ) ( "," | ";" )?`
}

type astBlock struct {
	Open   bool        `@"{"`
	Fields []*astField `@@* "}"`
}

type astScalar struct {
	Pos     lexer.Position
	Strings []string `  @String+`
	Number  *string  `| @Number`
	Ident   *string  `| @Ident`
}

var internalDDFParser = participle.MustBuild[astDocument](
	participle.Lexer(ddfLexer),
	participle.Elide("Whitespace", "Comment"),
)

// Parse reads a whole document from r. filename is only used in error positions.
func Parse(filename string, r io.Reader) (*Message, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read %s", filename)
	}
	return ParseString(filename, string(src))
}

// ParseString parses src into a Message tree. Syntax errors are returned as *Error.
func ParseString(filename, src string) (*Message, error) {
	root := &Message{Pos: Position{Filename: filename, Line: 1, Column: 1}}
	if strings.TrimSpace(src) == "" {
		return root, nil
	}

	doc, err := internalDDFParser.ParseString(filename, src)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, &Error{Pos: fromLexer(perr.Position()), Msg: perr.Message()}
		}
		return nil, &Error{Pos: Position{Filename: filename}, Msg: err.Error()}
	}

	if err := convertFields(root, doc.Fields); err != nil {
		return nil, err
	}
	return root, nil
}

func convertFields(parent *Message, fields []*astField) error {
	for _, af := range fields {
		pos := fromLexer(af.Pos)
		if af.Block != nil {
			child := &Message{Pos: pos}
			if err := convertFields(child, af.Block.Fields); err != nil {
				return err
			}
			parent.Fields = append(parent.Fields, &Field{Name: af.Name, Pos: pos, Kind: KindMessage, Message: child})
			continue
		}
		if !af.Colon {
			return Errorf(pos, "expected ':' after field name %q", af.Name)
		}
		f, err := convertScalar(af.Name, pos, af.Value)
		if err != nil {
			return err
		}
		parent.Fields = append(parent.Fields, f)
	}
	return nil
}

func convertScalar(name string, pos Position, v *astScalar) (*Field, error) {
	switch {
	case len(v.Strings) > 0:
		var sb strings.Builder
		for _, lit := range v.Strings {
			s, err := unquote(lit)
			if err != nil {
				return nil, Errorf(fromLexer(v.Pos), "field %q: %v", name, err)
			}
			sb.WriteString(s)
		}
		return &Field{Name: name, Pos: pos, Kind: KindString, Value: sb.String()}, nil
	case v.Number != nil:
		return &Field{Name: name, Pos: pos, Kind: KindNumber, Value: *v.Number}, nil
	case v.Ident != nil:
		return &Field{Name: name, Pos: pos, Kind: KindIdent, Value: *v.Ident}, nil
	default:
		return nil, Errorf(pos, "field %q has no value", name)
	}
}

func fromLexer(p lexer.Position) Position {
	return Position{Filename: p.Filename, Line: p.Line, Column: p.Column}
}
