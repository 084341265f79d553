// Package dcf parses the Debian Control File format used by R package
// DESCRIPTION files.
package dcf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads DCF text into a field → value map. Continuation lines (leading
// whitespace) are folded into the preceding field; a lone "." continuation
// marks a blank line within the value.
func Parse(r io.Reader) (map[string]string, error) {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(r)

	var current string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			current = ""
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if current == "" {
				return nil, fmt.Errorf("line %d: continuation without a field", lineNo)
			}
			value := strings.TrimSpace(line)
			if value == "." {
				value = ""
			}
			fields[current] += "\n" + value
			continue
		}

		idx := strings.Index(line, ":")
		if idx < 0 {
			return nil, fmt.Errorf("line %d: malformed field %q", lineNo, line)
		}
		current = strings.TrimSpace(line[:idx])
		fields[current] = strings.TrimSpace(line[idx+1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read DCF input: %w", err)
	}

	return fields, nil
}
