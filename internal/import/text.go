package import_parser

import (
	"bufio"
	"strings"

	"github.com/pstuifzand/tui-mixer/internal/model"
)

// TextParser imports one "Artist - Title" track per line. Lines starting
// with # are comments.
type TextParser struct{}

func (p *TextParser) Name() string {
	return "Text"
}

func (p *TextParser) Parse(content string) ([]model.Track, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var tracks []model.Track
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if t, ok := parseTrackLine(line); ok {
			tracks = append(tracks, t)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}
