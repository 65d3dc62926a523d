package toml

import "fmt"

// tokenKind classifies a lexeme
type tokenKind uint8

const (
	tokError tokenKind = iota
	tokEOF
	tokNewline

	tokKey    // bare key
	tokString // "basic" or 'literal'
	tokInt
	tokFloat
	tokBool

	tokEqual    // =
	tokDot      // .
	tokComma    // ,
	tokLBracket // [
	tokRBracket // ]
	tokLBrace   // {
	tokRBrace   // }
)

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokNewline:
		return "newline"
	case tokError:
		return t.text
	}
	if len(t.text) > 24 {
		return fmt.Sprintf("%q...", t.text[:24])
	}
	return fmt.Sprintf("%q", t.text)
}
