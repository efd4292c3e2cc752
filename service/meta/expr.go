package meta

import (
	"strings"
	"unicode"
)

const envPrefix = "${env."

// Lookup resolves a variable name; ok reports whether it is defined.
type Lookup func(key string) (value string, ok bool)

// Expand replaces every ${env.KEY} in text with lookup(KEY). Undefined keys
// expand to "". Malformed expressions are copied verbatim.
func Expand(text string, lookup Lookup) string {
	var sb strings.Builder
	rest := text
	for {
		idx := strings.Index(rest, envPrefix)
		if idx < 0 {
			sb.WriteString(rest)
			return sb.String()
		}
		sb.WriteString(rest[:idx])
		keyStart := idx + len(envPrefix)
		end := strings.IndexByte(rest[keyStart:], '}')
		if end < 0 {
			sb.WriteString(rest[idx:])
			return sb.String()
		}
		key := rest[keyStart : keyStart+end]
		if !isKey(key) {
			// keep the prefix and rescan what follows it
			sb.WriteString(envPrefix)
			rest = rest[keyStart:]
			continue
		}
		if value, ok := lookup(key); ok {
			sb.WriteString(value)
		}
		rest = rest[keyStart+end+1:]
	}
}

func isKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
