package services

import "strings"

// parseDelimited splits a raw text blob into a header row plus data rows.
// The delimiter is sniffed from the first non-blank line: tab wins only when
// tabs strictly outnumber commas, otherwise comma. Blank lines are dropped
// wherever they appear and no field spans physical lines.
func parseDelimited(text string) ([]string, [][]string) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, nil
	}

	delimiter := sniffDelimiter(lines[0])
	headers := splitFields(lines[0], delimiter)
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, splitFields(line, delimiter))
	}

	return headers, rows
}

func sniffDelimiter(line string) rune {
	if strings.Count(line, "\t") > strings.Count(line, ",") {
		return '\t'
	}
	return ','
}

// splitFields splits one line on the delimiter. A delimiter inside an open
// quote is literal, a doubled quote inside an open quote is an escaped quote,
// and the enclosing quotes themselves are stripped. Fields are trimmed.
func splitFields(line string, delimiter rune) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == delimiter && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))

	return fields
}
