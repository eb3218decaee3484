package wine

import (
	"bufio"
	"strings"
)

// parseRegFile extracts string values from a WINE registry file (user.reg,
// system.reg). Keys in those files are relative to a hive; hive is prepended
// to produce absolute addresses in `HIVE\Sub\Key\valueName` form. Non-string
// values and malformed lines are ignored, matching how loosely WINE itself
// treats these files.
func parseRegFile(data []byte, hive string) map[string]string {
	entries := map[string]string{}
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	currentKey := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "["):
			end := strings.Index(line, "]")
			if end < 1 {
				currentKey = ""
				continue
			}
			currentKey = hive + `\` + unescapeReg(line[1:end])
		case strings.HasPrefix(line, `"`) && currentKey != "":
			name, value, ok := splitRegValue(line)
			if !ok {
				continue
			}
			entries[currentKey+`\`+name] = value
		}
	}
	return entries
}

// splitRegValue parses a `"name"="value"` line. Only quoted string values
// are of interest; dword and hex values report ok=false.
func splitRegValue(line string) (string, string, bool) {
	name, rest, ok := cutQuoted(line)
	if !ok {
		return "", "", false
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "=") {
		return "", "", false
	}
	rest = strings.TrimSpace(rest[1:])
	if !strings.HasPrefix(rest, `"`) {
		return "", "", false
	}
	value, _, ok := cutQuoted(rest)
	if !ok {
		return "", "", false
	}
	return name, value, true
}

// cutQuoted consumes a leading quoted, escape-aware string and returns it
// unescaped along with the remainder of the line.
func cutQuoted(s string) (string, string, bool) {
	if !strings.HasPrefix(s, `"`) {
		return "", "", false
	}
	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == '"' {
			return b.String(), s[i+1:], true
		}
		b.WriteByte(c)
		i++
	}
	return "", "", false
}

func unescapeReg(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
