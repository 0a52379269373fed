// Package proto implements the text serialization format for the
// form's action protocol.
//
// Action format (one per line):
//
//	<kind> <k>=<v> <k>=<v> ...
//
// String escaping: values that are empty or contain spaces, tabs,
// newlines, backslashes, quotes or '=' are quoted with double quotes.
// Inside quotes, \n, \t, \\, and \" are recognized escapes.
//
// Validation events (see Event) are a typed view of the key, focusin
// and focusout actions.
package proto

import (
	"fmt"
	"sort"
	"strings"
)

// Action is a semantic UI action.
type Action struct {
	Kind string
	KVs  map[string]string
}

// NewAction returns an action of the given kind built from
// alternating key/value arguments.
func NewAction(kind string, kvs ...string) *Action {
	a := &Action{Kind: kind, KVs: make(map[string]string, len(kvs)/2)}
	for i := 0; i+1 < len(kvs); i += 2 {
		a.KVs[kvs[i]] = kvs[i+1]
	}
	return a
}

// --- Escaping ---

var escaper = strings.NewReplacer(
	"\n", `\n`,
	"\t", `\t`,
	`\`, `\\`,
	`"`, `\"`,
)

// needsQuote reports whether the string needs quoting.
func needsQuote(s string) bool {
	return s == "" || strings.ContainsAny(s, " \t\n\\\"=")
}

// EscapeValue encodes a string for the protocol, quoting if necessary.
func EscapeValue(s string) string {
	if !needsQuote(s) {
		return s
	}
	return `"` + escaper.Replace(s) + `"`
}

// UnescapeValue decodes a possibly quoted protocol value.
// Unquoted values are returned as is.
func UnescapeValue(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\\', '"':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// FormatKV formats a key=value pair with proper escaping.
func FormatKV(k, v string) string {
	return k + "=" + EscapeValue(v)
}

// ParseKV parses a key=value token. Returns key, value, ok.
func ParseKV(token string) (string, string, bool) {
	k, v, ok := strings.Cut(token, "=")
	if !ok {
		return "", "", false
	}
	return k, UnescapeValue(v), true
}

// Tokenize splits a line into space-separated tokens. A double quote
// opens a span that runs to the next unescaped double quote, so
// k="a b" stays one token.
func Tokenize(line string) []string {
	var tokens []string
	start := -1
	quoted := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted && c == '\\' && i+1 < len(line):
			i++
		case c == '"':
			quoted = !quoted
			if start < 0 {
				start = i
			}
		case !quoted && (c == ' ' || c == '\t'):
			if start >= 0 {
				tokens = append(tokens, line[start:i])
				start = -1
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		tokens = append(tokens, line[start:])
	}
	return tokens
}

// SerializeAction encodes an action to the text protocol format.
// Keys are written in sorted order.
func SerializeAction(a *Action) string {
	keys := make([]string, 0, len(a.KVs))
	for k := range a.KVs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(a.Kind)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(FormatKV(k, a.KVs[k]))
	}
	return b.String()
}

// ParseAction decodes an action from the text protocol format.
func ParseAction(line string) (*Action, error) {
	tokens := Tokenize(strings.TrimSpace(line))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("proto: empty action")
	}
	a := &Action{
		Kind: tokens[0],
		KVs:  make(map[string]string),
	}
	for _, kv := range tokens[1:] {
		k, v, ok := ParseKV(kv)
		if !ok {
			return nil, fmt.Errorf("proto: %s: malformed pair %q", a.Kind, kv)
		}
		a.KVs[k] = v
	}
	return a, nil
}
