package extract

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agentstation/routemap/pkg/constants"
)

// baseName is the stem of an endpoint's definition names: the endpoint's
// own name, or with qualified names its path in lower camel case
// ("user.get" becomes "userGet").
func baseName(name, path string, qualified bool) string {
	if !qualified {
		return name
	}
	parts := strings.Split(path, constants.PathSeparator)
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}

// stems hands out qualified name stems, keyed by stem with the owning path
// as value. Camel-casing can map two paths to one stem ("user.get" and a
// root "userGet", or "a.get" and "a.Get"); later paths get "_2", "_3" and
// so on, so every path keeps its own definitions.
type stems map[string]string

func (s stems) claim(base, path string) string {
	stem := base
	for n := 2; ; n++ {
		owner, taken := s[stem]
		if !taken || owner == path {
			break
		}
		stem = base + "_" + strconv.Itoa(n)
	}
	s[stem] = path
	return stem
}

func inputName(base string) string {
	return base + constants.InputSchemaSuffix
}

func indexedInputName(base string, i int) string {
	return inputName(base) + "_" + strconv.Itoa(i)
}

func outputName(base string) string {
	return base + constants.OutputSchemaSuffix
}
