package lint

import "strings"

// fenceBlock describes one fenced code run found by scanFences. Line numbers
// are 1-based and relative to the scanned text.
type fenceBlock struct {
	Marker  byte
	Length  int
	Line    int
	Info    string
	Lang    string
	Content []string
	Closed  bool
}

// scanFences walks the text line by line applying the CommonMark fence rules:
// an opening fence is three or more backticks or tildes indented at most three
// spaces, and only a fence of the same marker with at least the opening length
// closes it. Backtick fences reject info strings containing backticks.
func scanFences(text string) []fenceBlock {
	lines := strings.Split(text, "\n")

	var blocks []fenceBlock
	var open *fenceBlock

	for i, line := range lines {
		marker, length, rest, ok := fenceMarker(line)

		if open != nil {
			if ok && marker == open.Marker && length >= open.Length && strings.TrimSpace(rest) == "" {
				open.Closed = true
				blocks = append(blocks, *open)
				open = nil
				continue
			}
			open.Content = append(open.Content, line)
			continue
		}

		if !ok {
			continue
		}
		info := strings.TrimSpace(rest)
		if marker == '`' && strings.ContainsRune(info, '`') {
			// Not a valid backtick fence opener; treat as prose.
			continue
		}
		open = &fenceBlock{
			Marker: marker,
			Length: length,
			Line:   i + 1,
			Info:   info,
			Lang:   strings.ToLower(firstField(info)),
		}
	}

	if open != nil {
		blocks = append(blocks, *open)
	}
	return blocks
}

// fenceMarker reports whether line starts a fence run after at most three
// spaces of indentation, returning the marker, run length, and trailing text.
func fenceMarker(line string) (byte, int, string, bool) {
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	if indent > 3 || indent >= len(line) {
		return 0, 0, "", false
	}

	marker := line[indent]
	if marker != '`' && marker != '~' {
		return 0, 0, "", false
	}

	length := 0
	pos := indent
	for pos < len(line) && line[pos] == marker {
		length++
		pos++
	}
	if length < 3 {
		return 0, 0, "", false
	}
	return marker, length, line[pos:], true
}

func firstField(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
