package steam

import (
	"errors"
	"strings"
	"unicode"
)

// vdfObject is a parsed KeyValues block. Keys are lowercased; values are
// either string or vdfObject.
type vdfObject map[string]any

var errMalformedVDF = errors.New("malformed vdf document")

// String returns the string value at key, or "" when absent or a block.
func (o vdfObject) String(key string) string {
	v, _ := o[strings.ToLower(key)].(string)
	return v
}

// Object returns the nested block at key, or nil.
func (o vdfObject) Object(key string) vdfObject {
	v, _ := o[strings.ToLower(key)].(vdfObject)
	return v
}

// parseVDF reads Valve's text KeyValues format. The parser is deliberately
// tolerant: unquoted tokens, stray whitespace, and comment lines are
// accepted, since Steam has shipped several dialects of these files.
func parseVDF(data []byte) (vdfObject, error) {
	p := &vdfParser{input: string(data)}
	root := vdfObject{}
	if err := p.parseInto(root, true); err != nil {
		return nil, err
	}
	return root, nil
}

type vdfParser struct {
	input string
	pos   int
}

func (p *vdfParser) parseInto(obj vdfObject, topLevel bool) error {
	for {
		tok, kind := p.next()
		switch kind {
		case tokenEOF:
			if !topLevel {
				return errMalformedVDF
			}
			return nil
		case tokenClose:
			if topLevel {
				return errMalformedVDF
			}
			return nil
		case tokenOpen:
			return errMalformedVDF
		}

		key := strings.ToLower(tok)
		val, kind := p.next()
		switch kind {
		case tokenString:
			obj[key] = val
		case tokenOpen:
			child := vdfObject{}
			if err := p.parseInto(child, false); err != nil {
				return err
			}
			obj[key] = child
		default:
			return errMalformedVDF
		}
	}
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenString
	tokenOpen
	tokenClose
)

func (p *vdfParser) next() (string, tokenKind) {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case unicode.IsSpace(rune(c)):
			p.pos++
		case c == '/' && p.pos+1 < len(p.input) && p.input[p.pos+1] == '/':
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
		case c == '{':
			p.pos++
			return "", tokenOpen
		case c == '}':
			p.pos++
			return "", tokenClose
		case c == '"':
			return p.quoted(), tokenString
		default:
			return p.bare(), tokenString
		}
	}
	return "", tokenEOF
}

func (p *vdfParser) quoted() string {
	p.pos++ // opening quote
	var b strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '\\' && p.pos+1 < len(p.input) {
			next := p.input[p.pos+1]
			switch next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(next)
			}
			p.pos += 2
			continue
		}
		if c == '"' {
			p.pos++
			break
		}
		b.WriteByte(c)
		p.pos++
	}
	return b.String()
}

func (p *vdfParser) bare() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if unicode.IsSpace(rune(c)) || c == '{' || c == '}' || c == '"' {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}
