package replace

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// pattern is a rule's regex rewritten for regexp2. Named groups are turned
// into plain groups so that every group is numbered left to right by its
// opening parenthesis, named or not; names resolve through the names map.
type pattern struct {
	expr   string
	groups int
	names  map[string]int
}

// translate accepts (?P<name>...), (?<name>...) and (?'name'...) groups,
// (?P=name) and \k<name> back references, and \Z as an absolute end of
// input anchor.
func translate(src string) (*pattern, error) {
	p := &pattern{names: map[string]int{}}

	var b strings.Builder

	b.Grow(len(src))

	inClass := false

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch {
		case c == '\\':
			if i+1 >= len(src) {
				b.WriteByte(c)

				continue
			}

			next := src[i+1]

			switch {
			case inClass:
				b.WriteByte(c)
				b.WriteByte(next)
			case next == 'Z':
				b.WriteString(`\z`)
			case next == 'k' && i+2 < len(src) && src[i+2] == '<':
				name, n, err := p.backref(src[i+3:], '>')
				if err != nil {
					return nil, err
				}

				b.WriteString(name)

				i += 2 + n

				continue
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}

			i++
		case inClass:
			if c == ']' {
				inClass = false
			}

			b.WriteByte(c)
		case c == '[':
			inClass = true

			b.WriteByte(c)

			// A ] right after the opening bracket (or its ^) is literal.
			j := i + 1
			if j < len(src) && src[j] == '^' {
				b.WriteByte('^')
				j++
			}

			if j < len(src) && src[j] == ']' {
				b.WriteByte(']')
				j++
			}

			i = j - 1
		case c == '(':
			n, err := p.group(src[i:], &b)
			if err != nil {
				return nil, err
			}

			i += n - 1
		default:
			b.WriteByte(c)
		}
	}

	p.expr = b.String()

	return p, nil
}

// group handles the construct starting at the "(" in s, writes its
// translation and returns how many bytes of s it consumed.
func (p *pattern) group(s string, b *strings.Builder) (int, error) {
	switch {
	case strings.HasPrefix(s, "(?P<"):
		return p.named(s, 4, '>', b)
	case strings.HasPrefix(s, "(?P="):
		ref, n, err := p.backref(s[4:], ')')
		if err != nil {
			return 0, err
		}

		b.WriteString(ref)

		return 4 + n, nil
	case strings.HasPrefix(s, "(?'"):
		return p.named(s, 3, '\'', b)
	case strings.HasPrefix(s, "(?<") && len(s) > 3 && s[3] != '=' && s[3] != '!':
		return p.named(s, 3, '>', b)
	case strings.HasPrefix(s, "(?"):
		b.WriteString("(?")

		return 2, nil
	default:
		p.groups++
		b.WriteByte('(')

		return 1, nil
	}
}

func (p *pattern) named(s string, start int, closer byte, b *strings.Builder) (int, error) {
	end := strings.IndexByte(s[start:], closer)
	if end < 0 {
		return 0, errors.New("unterminated group name")
	}

	name := s[start : start+end]
	if !validName(name) {
		return 0, errors.Newf("bad character in group name %q", name)
	}

	if _, dup := p.names[name]; dup {
		return 0, errors.Newf("redefinition of group name %q", name)
	}

	p.groups++
	p.names[name] = p.groups

	b.WriteByte('(')

	return start + end + 1, nil
}

// backref resolves a group name terminated by closer at the start of s and
// returns the numbered reference plus the bytes consumed, closer included.
func (p *pattern) backref(s string, closer byte) (string, int, error) {
	end := strings.IndexByte(s, closer)
	if end < 0 {
		return "", 0, errors.New("missing group name terminator")
	}

	name := s[:end]

	n, ok := p.names[name]
	if !ok {
		return "", 0, errors.Newf("unknown group name %q", name)
	}

	return `(?:\` + strconv.Itoa(n) + `)`, end + 1, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}

	for i := 0; i < len(name); i++ {
		c := name[i]

		switch {
		case c == '_' || isASCIILetter(c):
		case isDigit(c) && i > 0:
		default:
			return false
		}
	}

	return true
}
