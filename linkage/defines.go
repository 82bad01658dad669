package linkage

import (
	"bufio"
	"io"
	"maps"
	"strconv"
	"strings"
)

// Defines maps a macro name to its replacement text.
type Defines map[string]string

// Has reports whether name is defined.
func (d Defines) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// Int returns the integer value of name. It reports false when name is not
// defined or its value is not an integer literal.
func (d Defines) Int(name string) (int, bool) {
	v, ok := d[name]
	if !ok {
		return 0, false
	}
	v = strings.TrimRight(strings.TrimSpace(v), "uUlL")
	n, err := strconv.ParseInt(v, 0, 64)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// Merge returns a new set holding d and other. Entries of other win.
func (d Defines) Merge(other Defines) Defines {
	out := make(Defines, len(d)+len(other))
	maps.Copy(out, d)
	maps.Copy(out, other)
	return out
}

// ParseDefines parses the output of "cc -dM -E". Lines that are not
// #define directives are skipped. Function-like macros are keyed by their
// bare name.
func ParseDefines(r io.Reader) (Defines, error) {
	defs := Defines{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		rest, ok := strings.CutPrefix(line, "#")
		if !ok {
			continue
		}
		rest, ok = strings.CutPrefix(strings.TrimSpace(rest), "define")
		if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		rest = strings.TrimSpace(rest)
		name, value := splitMacro(rest)
		if name == "" {
			continue
		}
		defs[name] = value
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return defs, nil
}

func splitMacro(s string) (name, value string) {
	end := strings.IndexAny(s, " \t(")
	if end < 0 {
		return s, ""
	}
	name = s[:end]
	rest := s[end:]
	if rest[0] == '(' {
		if rp := strings.IndexByte(rest, ')'); rp >= 0 {
			rest = rest[rp+1:]
		} else {
			rest = ""
		}
	}
	return name, strings.TrimSpace(rest)
}

// ParseFlags collects -D and -U flags from compiler arguments, the way
// they appear in CPPFLAGS or CFLAGS. Flags are applied in order, so a later
// -U removes an earlier -D. "-DNAME" defines NAME as 1.
func ParseFlags(args []string) Defines {
	defs := Defines{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var op byte
		var body string
		switch {
		case arg == "-D" || arg == "-U":
			if i+1 >= len(args) {
				continue
			}
			op, body = arg[1], args[i+1]
			i++
		case strings.HasPrefix(arg, "-D"), strings.HasPrefix(arg, "-U"):
			op, body = arg[1], arg[2:]
		default:
			continue
		}
		if op == 'U' {
			delete(defs, body)
			continue
		}
		name, value, ok := strings.Cut(body, "=")
		if !ok {
			value = "1"
		}
		if name != "" {
			defs[name] = value
		}
	}
	return defs
}
