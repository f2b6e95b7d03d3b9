package proc

import "strings"

// ParseLines splits raw command output into trimmed, non-empty lines.
func ParseLines(output []byte) []string {
	if len(output) == 0 {
		return nil
	}

	lines := strings.Split(string(output), "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}

	return result
}

// ParseKeyValue parses "key: value" lines, the format of informational
// commands like "p4 info".
func ParseKeyValue(lines []string) map[string]string {
	result := make(map[string]string)

	for _, line := range lines {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			result[key] = value
		}
	}

	return result
}

// JoinCommandLine renders a command vector for display, quoting arguments
// that contain spaces.
func JoinCommandLine(command []string) string {
	var b strings.Builder
	for i, c := range command {
		if i > 0 {
			b.WriteString(" ")
		}
		if strings.Contains(c, " ") {
			b.WriteString(`"` + c + `"`)
		} else {
			b.WriteString(c)
		}
	}
	return b.String()
}
