package billparse

import (
	"strings"
)

// MinFields is the smallest number of fields a data row must split into.
// Shorter rows are banner or footer noise.
const MinFields = 5

const byteOrderMark = "\ufeff"

// SplitLines splits decoded text on CRLF or LF line endings.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// SplitRow splits one comma-delimited line into trimmed fields. A comma is a
// delimiter only when an even number of double quotes follows it on the line,
// so commas inside a quoted segment stay part of the field. Exports do not
// escape quotes consistently, which rules out a strict RFC 4180 reader.
func SplitRow(line string) []string {
	remaining := strings.Count(line, `"`)
	fields := make([]string, 0, 16)

	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			remaining--
		case ',':
			if remaining%2 == 0 {
				fields = append(fields, cleanField(line[start:i]))
				start = i + 1
			}
		}
	}
	return append(fields, cleanField(line[start:]))
}

// SplitHeader splits a header line and removes a leading byte order mark.
func SplitHeader(line string) []string {
	return CleanHeaders(SplitRow(strings.TrimPrefix(strings.TrimSpace(line), byteOrderMark)))
}

// CleanHeaders strips byte order marks, quotes and whitespace from labels.
func CleanHeaders(labels []string) []string {
	out := make([]string, len(labels))
	for i, label := range labels {
		label = strings.TrimSpace(label)
		label = strings.TrimLeft(label, byteOrderMark+`"`)
		label = strings.TrimSuffix(label, `"`)
		out[i] = strings.TrimSpace(label)
	}
	return out
}

func cleanField(field string) string {
	field = strings.TrimSpace(field)
	field = strings.TrimPrefix(field, `"`)
	field = strings.TrimSuffix(field, `"`)
	return strings.TrimSpace(field)
}
