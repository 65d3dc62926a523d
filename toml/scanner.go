package toml

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// scanner splits TOML input into tokens, comments are dropped
type scanner struct {
	src  []byte
	pos  int
	line int
}

func newScanner(src []byte) *scanner {
	return &scanner{src: src, line: 1}
}

func (s *scanner) peek() rune {
	if s.pos >= len(s.src) {
		return 0
	}
	r, _ := utf8.DecodeRune(s.src[s.pos:])
	return r
}

func (s *scanner) advance() rune {
	if s.pos >= len(s.src) {
		return 0
	}
	r, w := utf8.DecodeRune(s.src[s.pos:])
	s.pos += w
	if r == '\n' {
		s.line++
	}
	return r
}

func (s *scanner) emit(kind tokenKind, text string) token {
	return token{kind: kind, text: text, line: s.line}
}

// next returns the next token, tokEOF at end of input
func (s *scanner) next() token {
	for {
		switch s.peek() {
		case ' ', '\t', '\r':
			s.advance()
			continue
		case '#':
			for s.pos < len(s.src) && s.peek() != '\n' {
				s.advance()
			}
			continue
		}
		break
	}

	if s.pos >= len(s.src) {
		return s.emit(tokEOF, "")
	}

	ch := s.peek()
	switch ch {
	case '\n':
		tok := s.emit(tokNewline, "\n")
		s.advance()
		return tok
	case '=':
		s.advance()
		return s.emit(tokEqual, "=")
	case '.':
		s.advance()
		return s.emit(tokDot, ".")
	case ',':
		s.advance()
		return s.emit(tokComma, ",")
	case '[':
		s.advance()
		return s.emit(tokLBracket, "[")
	case ']':
		s.advance()
		return s.emit(tokRBracket, "]")
	case '{':
		s.advance()
		return s.emit(tokLBrace, "{")
	case '}':
		s.advance()
		return s.emit(tokRBrace, "}")
	case '"':
		return s.basicString()
	case '\'':
		return s.literalString()
	}

	if isBareChar(ch) || ch == '+' {
		return s.bareOrNumber()
	}

	s.advance()
	return s.emit(tokError, "unexpected character "+string(ch))
}

func (s *scanner) basicString() token {
	s.advance() // opening quote
	var b strings.Builder
	for s.pos < len(s.src) {
		ch := s.advance()
		switch ch {
		case '\n':
			return s.emit(tokError, "newline in string")
		case '"':
			return s.emit(tokString, b.String())
		case '\\':
			esc := s.advance()
			switch esc {
			case '"', '\\':
				b.WriteRune(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'u', 'U':
				n := 4
				if esc == 'U' {
					n = 8
				}
				if s.pos+n > len(s.src) {
					return s.emit(tokError, "short unicode escape")
				}
				code, err := strconv.ParseUint(string(s.src[s.pos:s.pos+n]), 16, 32)
				if err != nil || !utf8.ValidRune(rune(code)) {
					return s.emit(tokError, "invalid unicode escape")
				}
				s.pos += n
				b.WriteRune(rune(code))
			default:
				return s.emit(tokError, "invalid escape \\"+string(esc))
			}
		default:
			b.WriteRune(ch)
		}
	}
	return s.emit(tokError, "unterminated string")
}

func (s *scanner) literalString() token {
	s.advance() // opening quote
	start := s.pos
	for s.pos < len(s.src) {
		switch s.peek() {
		case '\n':
			return s.emit(tokError, "newline in string")
		case '\'':
			text := string(s.src[start:s.pos])
			s.advance()
			return s.emit(tokString, text)
		}
		s.advance()
	}
	return s.emit(tokError, "unterminated string")
}

// bareOrNumber reads a bare key, boolean, integer or float
// '.' is only consumed when the lexeme so far is numeric, so dotted keys still split
func (s *scanner) bareOrNumber() token {
	start := s.pos
	first := s.peek()
	numeric := (first >= '0' && first <= '9') || first == '+' || first == '-'
	for s.pos < len(s.src) {
		ch := s.peek()
		switch {
		case isBareChar(ch) || ch == '+':
			if !isNumberChar(ch) {
				numeric = false
			}
			s.advance()
		case ch == '.' && numeric:
			s.advance()
		default:
			goto done
		}
	}
done:
	text := string(s.src[start:s.pos])

	switch {
	case text == "true" || text == "false":
		return s.emit(tokBool, text)
	case text == "inf" || text == "+inf" || text == "-inf" || text == "nan" || text == "+nan" || text == "-nan":
		return s.emit(tokFloat, text)
	case numeric && looksNumeric(text):
		if strings.ContainsAny(text, ".eE") && !strings.HasPrefix(strings.TrimLeft(text, "+-"), "0x") {
			return s.emit(tokFloat, text)
		}
		return s.emit(tokInt, text)
	}
	return s.emit(tokKey, text)
}

func looksNumeric(text string) bool {
	t := strings.TrimLeft(text, "+-")
	return t != "" && t[0] >= '0' && t[0] <= '9'
}

func isBareChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
}

func isNumberChar(r rune) bool {
	return (r >= '0' && r <= '9') || r == '_' || r == '+' || r == '-' || r == 'e' || r == 'E' ||
		r == 'x' || r == 'o' || r == 'b' || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
