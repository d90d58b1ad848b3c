package cmdbind

import (
	"fmt"
	"strconv"
)

// ParseUsage turns a compact one-line declaration into parameter schemas:
//
//	<srcPath> [dstPath] [rest...] [--force|-f] [--level=3] [--msg="hi there"]
//
// <name> is a required positional, [name] an optional one (empty-string
// default), [name...] a variadic tail. [--name] is a presence flag; with
// =literal it becomes an option whose kind is inferred from the literal
// (true/false, integer, float, otherwise string; quotes allow spaces).
// Aliases follow the name separated by '|'. Enum parameters have no
// shorthand; declare them with the builder. Everything produced here goes
// through the same binding validation as builder-declared parameters.
func ParseUsage(spec string) ([]*Param, error) {
	s := &usageScanner{src: spec}
	var params []*Param
	for {
		s.skipSpaces()
		c, ok := s.peek()
		if !ok {
			return params, nil
		}
		var (
			p   *Param
			err error
		)
		switch c {
		case '<':
			p, err = s.required()
		case '[':
			p, err = s.optional()
		default:
			err = s.errorf("expected '<' or '[', got %q", string(c))
		}
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
}

// MustParseUsage is ParseUsage for static declarations; it panics on a
// malformed spec.
func MustParseUsage(spec string) []*Param {
	params, err := ParseUsage(spec)
	if err != nil {
		panic(err)
	}
	return params
}

// usageScanner iterates byte-by-byte over a usage spec, tracking the offset
// for error messages.
type usageScanner struct {
	src string
	pos int
}

func (s *usageScanner) peek() (byte, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

func (s *usageScanner) next() (byte, bool) {
	c, ok := s.peek()
	if ok {
		s.pos++
	}
	return c, ok
}

func (s *usageScanner) skipSpaces() {
	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

// accept consumes lit if it is next in the input.
func (s *usageScanner) accept(lit string) bool {
	if len(s.src)-s.pos < len(lit) || s.src[s.pos:s.pos+len(lit)] != lit {
		return false
	}
	s.pos += len(lit)
	return true
}

func (s *usageScanner) expect(c byte) error {
	got, ok := s.next()
	if !ok {
		return s.errorf("expected %q, got end of spec", string(c))
	}
	if got != c {
		return s.errorf("expected %q, got %q", string(c), string(got))
	}
	return nil
}

func (s *usageScanner) errorf(format string, args ...any) error {
	return fmt.Errorf("usage spec offset %d: %s", s.pos, fmt.Sprintf(format, args...))
}

// ident reads a parameter name: letters, digits, '-' and '_'.
func (s *usageScanner) ident() (string, error) {
	start := s.pos
	for {
		c, ok := s.peek()
		if !ok || !identByte(c) {
			break
		}
		s.pos++
	}
	if s.pos == start {
		return "", s.errorf("expected a name")
	}
	return s.src[start:s.pos], nil
}

func identByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_'
}

// required parses "<name>".
func (s *usageScanner) required() (*Param, error) {
	s.pos++ // '<'
	name, err := s.ident()
	if err != nil {
		return nil, err
	}
	if s.accept("...") {
		return nil, s.errorf("variadic arguments are always optional; write [%s...]", name)
	}
	if err := s.expect('>'); err != nil {
		return nil, err
	}
	return String(name), nil
}

// optional parses "[name]", "[name...]" or "[--name|-a=literal]".
func (s *usageScanner) optional() (*Param, error) {
	s.pos++ // '['
	if c, ok := s.peek(); ok && c == '-' {
		return s.option()
	}
	name, err := s.ident()
	if err != nil {
		return nil, err
	}
	p := String(name)
	if s.accept("...") {
		p.Variadic()
	} else {
		p.Default("")
	}
	if err := s.expect(']'); err != nil {
		return nil, err
	}
	return p, nil
}

// option parses the bracket body of a named option.
func (s *usageScanner) option() (*Param, error) {
	if !s.accept("--") {
		return nil, s.errorf("options start with '--'")
	}
	name, err := s.ident()
	if err != nil {
		return nil, err
	}

	var aliases []string
	for s.accept("|") {
		if !s.accept("--") && !s.accept("-") {
			return nil, s.errorf("alias for --%s must start with a dash", name)
		}
		a, err := s.ident()
		if err != nil {
			return nil, err
		}
		aliases = append(aliases, a)
	}

	var p *Param
	if s.accept("=") {
		lit, err := s.literal()
		if err != nil {
			return nil, err
		}
		p = optionFromLiteral(name, lit)
	} else {
		p = Bool(name).Option()
	}
	if len(aliases) > 0 {
		p.Alias(aliases...)
	}
	if err := s.expect(']'); err != nil {
		return nil, err
	}
	return p, nil
}

// literal reads a default value: either a quoted string with backslash
// escapes, or a bare token ending at ']' or whitespace.
func (s *usageScanner) literal() (string, error) {
	if c, ok := s.peek(); ok && c == '"' {
		s.pos++
		var out []byte
		escaped := false
		for {
			c, ok := s.next()
			if !ok {
				return "", s.errorf("unterminated quoted default")
			}
			if escaped {
				out = append(out, c)
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				return string(out), nil
			}
			out = append(out, c)
		}
	}
	start := s.pos
	for {
		c, ok := s.peek()
		if !ok || c == ']' || c == ' ' || c == '\t' {
			break
		}
		s.pos++
	}
	if s.pos == start {
		return "", s.errorf("expected a default value after '='")
	}
	return s.src[start:s.pos], nil
}

// optionFromLiteral infers the option's kind from its default literal.
func optionFromLiteral(name, lit string) *Param {
	if lit == "true" || lit == "false" {
		return Bool(name).Option().Default(lit == "true")
	}
	if n, err := strconv.Atoi(lit); err == nil {
		return Int(name).Option().Default(n)
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		return Float(name).Option().Default(f)
	}
	return String(name).Option().Default(lit)
}
