package replace

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dlclark/regexp2"
)

// segment is either literal text or, when group >= 0, a capture group.
type segment struct {
	literal string
	group   int
}

// template is a parsed replacement string. Syntax:
//
//	\1 .. \99        numbered group
//	\g<1> \g<name>   numbered or named group
//	\n \t \r \f \v \a \b \\   control characters and backslash
//	\0 \0oo \ooo     octal character code
//
// Any other backslash followed by an ASCII letter is an error; followed by
// anything else the backslash is kept. "$" has no special meaning.
type template struct {
	segments []segment
}

var templateEscapes = map[byte]string{
	'a':  "\a",
	'b':  "\b",
	'f':  "\f",
	'n':  "\n",
	'r':  "\r",
	't':  "\t",
	'v':  "\v",
	'\\': "\\",
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// parseTemplate resolves every group reference against pat so that an unknown
// group is reported at compile time rather than during a replacement.
func parseTemplate(s string, pat *pattern) (*template, error) {
	t := &template{}

	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String(), group: -1})
			lit.Reset()
		}
	}

	addGroup := func(n int) error {
		if n > pat.groups {
			return errors.Newf("invalid group reference %d (pattern has %d groups)", n, pat.groups)
		}

		flush()
		t.segments = append(t.segments, segment{group: n})

		return nil
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			lit.WriteByte(c)

			continue
		}

		if i+1 >= len(s) {
			return nil, errors.New("bad escape (end of template)")
		}

		i++
		c = s[i]

		switch {
		case c == 'g':
			if i+1 >= len(s) || s[i+1] != '<' {
				return nil, errors.New(`missing < after \g`)
			}

			end := strings.IndexByte(s[i+2:], '>')
			if end < 0 {
				return nil, errors.New("missing >, unterminated name")
			}

			name := s[i+2 : i+2+end]
			i += 2 + end

			n, err := groupIndex(name, pat)
			if err != nil {
				return nil, err
			}

			if err := addGroup(n); err != nil {
				return nil, err
			}
		case c == '0':
			code := 0
			j := i + 1

			for ; j < len(s) && j < i+3 && isOctal(s[j]); j++ {
				code = code*8 + int(s[j]-'0')
			}

			lit.WriteRune(rune(code))

			i = j - 1
		case isDigit(c):
			if i+2 < len(s) && isOctal(c) && isOctal(s[i+1]) && isOctal(s[i+2]) {
				code, _ := strconv.ParseInt(s[i:i+3], 8, 32)
				if code > 0o377 {
					return nil, errors.Newf(`octal escape value \%s outside of range 0-0o377`, s[i:i+3])
				}

				lit.WriteRune(rune(code))

				i += 2

				continue
			}

			n := int(c - '0')
			if i+1 < len(s) && isDigit(s[i+1]) {
				n = n*10 + int(s[i+1]-'0')
				i++
			}

			if err := addGroup(n); err != nil {
				return nil, err
			}
		default:
			if esc, ok := templateEscapes[c]; ok {
				lit.WriteString(esc)
			} else if isASCIILetter(c) {
				return nil, errors.Newf(`bad escape \%c`, c)
			} else {
				lit.WriteByte('\\')
				lit.WriteByte(c)
			}
		}
	}

	flush()

	return t, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}

	return s != ""
}

func groupIndex(name string, pat *pattern) (int, error) {
	if name == "" {
		return 0, errors.New("missing group name")
	}

	if isDigits(name) {
		n, err := strconv.Atoi(name)
		if err != nil {
			return 0, errors.Newf("bad group number %q", name)
		}

		return n, nil
	}

	n, ok := pat.names[name]
	if !ok {
		return 0, errors.Newf("unknown group name %q", name)
	}

	return n, nil
}

// expand renders the replacement for one match. A group that did not
// participate in the match expands to "".
func (t *template) expand(m regexp2.Match) string {
	var b strings.Builder

	for _, seg := range t.segments {
		switch {
		case seg.group < 0:
			b.WriteString(seg.literal)
		case seg.group == 0:
			b.WriteString(m.String())
		default:
			if g := m.GroupByNumber(seg.group); g != nil && len(g.Captures) > 0 {
				b.WriteString(g.String())
			}
		}
	}

	return b.String()
}
