package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// Document is a parsed TOML file: nested map[string]any, []any for arrays,
// []map[string]any for arrays of tables, int64 / float64 / string / bool leaves
type Document map[string]any

// Parse reads TOML data into a Document
func Parse(data []byte) (Document, error) {
	p := &parser{sc: newScanner(data), root: make(map[string]any)}
	p.scope = p.root
	p.advance()
	p.advance()
	if err := p.parse(); err != nil {
		return nil, err
	}
	return Document(p.root), nil
}

type parser struct {
	sc    *scanner
	cur   token
	peek  token
	root  map[string]any
	scope map[string]any // table receiving key/value pairs
}

func (p *parser) advance() {
	p.cur = p.peek
	p.peek = p.sc.next()
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.cur.line, fmt.Sprintf(format, args...))
}

func (p *parser) parse() error {
	for p.cur.kind != tokEOF {
		switch p.cur.kind {
		case tokNewline:
			p.advance()
			continue
		case tokLBracket:
			if err := p.tableHeader(); err != nil {
				return err
			}
		case tokKey, tokString, tokInt, tokBool:
			if err := p.keyValue(p.scope); err != nil {
				return err
			}
		case tokError:
			return p.errorf("%s", p.cur.text)
		default:
			return p.errorf("unexpected %s", p.cur)
		}

		if p.cur.kind != tokNewline && p.cur.kind != tokEOF {
			return p.errorf("expected end of line, got %s", p.cur)
		}
	}
	return nil
}

// tableHeader handles [a.b] and [[a.b]]
func (p *parser) tableHeader() error {
	array := p.peek.kind == tokLBracket
	p.advance()
	if array {
		p.advance()
	}

	path, err := p.keyPath()
	if err != nil {
		return err
	}

	closers := 1
	if array {
		closers = 2
	}
	for i := 0; i < closers; i++ {
		if p.cur.kind != tokRBracket {
			return p.errorf("expected ] after table name, got %s", p.cur)
		}
		p.advance()
	}

	parent, err := p.walk(p.root, path[:len(path)-1])
	if err != nil {
		return err
	}
	last := path[len(path)-1]

	if array {
		var tables []map[string]any
		if existing, ok := parent[last]; ok {
			tables, ok = existing.([]map[string]any)
			if !ok {
				return p.errorf("%s is not an array of tables", strings.Join(path, "."))
			}
		}
		table := make(map[string]any)
		parent[last] = append(tables, table)
		p.scope = table
		return nil
	}

	switch existing := parent[last].(type) {
	case nil:
		table := make(map[string]any)
		parent[last] = table
		p.scope = table
	case map[string]any:
		p.scope = existing
	default:
		return p.errorf("%s is not a table", strings.Join(path, "."))
	}
	return nil
}

// walk descends through intermediate tables, creating them as needed
// An array of tables on the way resolves to its last element
func (p *parser) walk(from map[string]any, path []string) (map[string]any, error) {
	cur := from
	for _, key := range path {
		switch next := cur[key].(type) {
		case nil:
			table := make(map[string]any)
			cur[key] = table
			cur = table
		case map[string]any:
			cur = next
		case []map[string]any:
			if len(next) == 0 {
				return nil, p.errorf("cannot descend into empty array %s", key)
			}
			cur = next[len(next)-1]
		default:
			return nil, p.errorf("%s is not a table", key)
		}
	}
	return cur, nil
}

func (p *parser) keyPath() ([]string, error) {
	var path []string
	for {
		switch p.cur.kind {
		case tokKey, tokString, tokInt, tokBool:
			path = append(path, p.cur.text)
		default:
			return nil, p.errorf("expected key, got %s", p.cur)
		}
		p.advance()
		if p.cur.kind != tokDot {
			return path, nil
		}
		p.advance()
	}
}

func (p *parser) keyValue(scope map[string]any) error {
	path, err := p.keyPath()
	if err != nil {
		return err
	}
	if p.cur.kind != tokEqual {
		return p.errorf("expected = after key %s, got %s", strings.Join(path, "."), p.cur)
	}
	p.advance()

	val, err := p.value()
	if err != nil {
		return err
	}

	table, err := p.walk(scope, path[:len(path)-1])
	if err != nil {
		return err
	}
	last := path[len(path)-1]
	if _, exists := table[last]; exists {
		return p.errorf("duplicate key %s", strings.Join(path, "."))
	}
	table[last] = val
	return nil
}

func (p *parser) value() (any, error) {
	tok := p.cur
	switch tok.kind {
	case tokString:
		p.advance()
		return tok.text, nil
	case tokBool:
		p.advance()
		return tok.text == "true", nil
	case tokInt:
		n, err := strconv.ParseInt(strings.ReplaceAll(tok.text, "_", ""), 0, 64)
		if err != nil {
			return nil, p.errorf("invalid integer %s", tok.text)
		}
		p.advance()
		return n, nil
	case tokFloat:
		f, err := strconv.ParseFloat(strings.ReplaceAll(tok.text, "_", ""), 64)
		if err != nil {
			return nil, p.errorf("invalid float %s", tok.text)
		}
		p.advance()
		return f, nil
	case tokLBracket:
		return p.array()
	case tokLBrace:
		return p.inlineTable()
	case tokError:
		return nil, p.errorf("%s", tok.text)
	}
	return nil, p.errorf("unexpected value %s", tok)
}

func (p *parser) skipNewlines() {
	for p.cur.kind == tokNewline {
		p.advance()
	}
}

func (p *parser) array() ([]any, error) {
	p.advance() // [
	items := make([]any, 0)
	for {
		p.skipNewlines()
		if p.cur.kind == tokRBracket {
			p.advance()
			return items, nil
		}

		val, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, val)

		p.skipNewlines()
		switch p.cur.kind {
		case tokComma:
			p.advance()
		case tokRBracket:
		default:
			return nil, p.errorf("expected , or ] in array, got %s", p.cur)
		}
	}
}

func (p *parser) inlineTable() (map[string]any, error) {
	p.advance() // {
	table := make(map[string]any)
	if p.cur.kind == tokRBrace {
		p.advance()
		return table, nil
	}
	for {
		if err := p.keyValue(table); err != nil {
			return nil, err
		}
		switch p.cur.kind {
		case tokComma:
			p.advance()
		case tokRBrace:
			p.advance()
			return table, nil
		default:
			return nil, p.errorf("expected , or } in inline table, got %s", p.cur)
		}
	}
}
