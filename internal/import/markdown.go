package import_parser

import (
	"bufio"
	"strings"

	"github.com/pstuifzand/tui-mixer/internal/model"
)

// MarkdownParser imports the bullet and numbered list items of a Markdown
// file. Headers and paragraphs are skipped.
type MarkdownParser struct{}

func (p *MarkdownParser) Name() string {
	return "Markdown"
}

// Parse converts markdown list items to tracks
func (p *MarkdownParser) Parse(content string) ([]model.Track, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var tracks []model.Track
	for scanner.Scan() {
		text, ok := parseListItem(scanner.Text())
		if !ok {
			continue
		}
		if t, ok := parseTrackLine(text); ok {
			tracks = append(tracks, t)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}

// parseListItem extracts the text of a "- item", "* item", "+ item" or
// "1. item" line
func parseListItem(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)

	// Check for list markers
	if len(trimmed) > 2 && (trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+') && trimmed[1] == ' ' {
		return strings.TrimSpace(trimmed[2:]), true
	}

	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits > 0 && len(trimmed) > digits+1 && (trimmed[digits] == '.' || trimmed[digits] == ')') && trimmed[digits+1] == ' ' {
		return strings.TrimSpace(trimmed[digits+2:]), true
	}

	return "", false
}
