package exec

import (
	"fmt"
	"strings"

	"github.com/ucikit/ucictl/internal/core/domain"
)

// parseShow parses `uci show <config>` output into sections in store
// order. Lines look like:
//
//	network.lan=interface
//	network.lan.proto='static'
//	network.lan.dns='8.8.8.8' '1.1.1.1'
//	network.@globals[0]=globals
//
// A section-declaration line (no option part) opens a new section;
// option lines attach to the section they name. Values with multiple
// quoted words are list options.
func parseShow(config, out string) ([]domain.Section, error) {
	var sections []domain.Section
	index := make(map[string]int)

	prefix := config + "."
	for _, line := range splitLines(out) {
		if !strings.HasPrefix(line, prefix) {
			return nil, fmt.Errorf("unexpected show line %q for config %s", line, config)
		}
		rest := line[len(prefix):]

		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			return nil, fmt.Errorf("malformed show line %q", line)
		}
		lhs, rhs := rest[:eq], rest[eq+1:]

		dot := sectionOptionSplit(lhs)
		if dot < 0 {
			// Section declaration: lhs is the identity, rhs the type.
			id := lhs
			index[id] = len(sections)
			sections = append(sections, domain.Section{
				ID:        id,
				Type:      unquote(rhs),
				Anonymous: strings.HasPrefix(id, "@"),
				Options:   make(map[string]domain.Value),
			})
			continue
		}

		id, option := lhs[:dot], lhs[dot+1:]
		i, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("option line %q precedes its section", line)
		}
		sections[i].Options[option] = parseValue(rhs)
	}

	return sections, nil
}

// sectionOptionSplit finds the dot separating section from option.
// Anonymous selectors like "@globals[0]" contain no dot, so the first
// dot after the selector is the separator; -1 means a declaration line.
func sectionOptionSplit(lhs string) int {
	start := 0
	if strings.HasPrefix(lhs, "@") {
		if end := strings.IndexByte(lhs, ']'); end >= 0 {
			start = end
		}
	}
	dot := strings.IndexByte(lhs[start:], '.')
	if dot < 0 {
		return -1
	}
	return start + dot
}

// parseValue parses the right-hand side of an option line. The export
// format quotes each word with single quotes and separates list entries
// with spaces; an embedded quote appears as '\''.
func parseValue(rhs string) domain.Value {
	entries := splitQuoted(rhs)
	if len(entries) == 1 {
		return domain.String(entries[0])
	}
	return domain.List(entries...)
}

// splitQuoted tokenizes space-separated single-quoted words.
func splitQuoted(s string) []string {
	var entries []string
	var cur strings.Builder
	inQuote := false
	started := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			// '\'' escapes a literal quote inside a quoted word.
			if inQuote && strings.HasPrefix(s[i+1:], `\''`) {
				cur.WriteByte('\'')
				i += 3
				continue
			}
			inQuote = !inQuote
			started = true
		case c == ' ' && !inQuote:
			if started {
				entries = append(entries, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteByte(c)
			started = true
		}
	}
	if started {
		entries = append(entries, cur.String())
	}
	return entries
}

// unquote strips a single level of surrounding single quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}
