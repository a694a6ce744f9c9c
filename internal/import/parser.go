package import_parser

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pstuifzand/tui-mixer/internal/model"
)

// ImportFormat represents different file formats that can be imported
type ImportFormat string

const (
	FormatMarkdown ImportFormat = "markdown"
	FormatText     ImportFormat = "text"
	FormatM3U      ImportFormat = "m3u"
	FormatAuto     ImportFormat = "auto" // Auto-detect from extension
)

// Parser interface for different import formats
type Parser interface {
	Parse(content string) ([]model.Track, error)
	Name() string
}

// ImportFile parses a track list. Every track gets a fresh ID.
func ImportFile(filename, content string, format ImportFormat) ([]model.Track, error) {
	if format == FormatAuto || format == "" {
		format = DetectFormat(filename)
	}

	var parser Parser
	switch format {
	case FormatMarkdown:
		parser = &MarkdownParser{}
	case FormatText:
		parser = &TextParser{}
	case FormatM3U:
		parser = &M3UParser{}
	default:
		return nil, fmt.Errorf("unsupported import format: %s", format)
	}

	tracks, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse error (%s): %w", parser.Name(), err)
	}

	return tracks, nil
}

// DetectFormat attempts to detect the file format from extension
func DetectFormat(filename string) ImportFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".m3u", ".m3u8":
		return FormatM3U
	}
	// Default to one track per line
	return FormatText
}

// parseTrackLine reads "Artist - Title" with an optional "(m:ss)" or
// "(h:mm:ss)" duration at the end
func parseTrackLine(line string) (model.Track, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.Track{}, false
	}

	var d time.Duration
	if strings.HasSuffix(line, ")") {
		if open := strings.LastIndex(line, " ("); open >= 0 {
			if parsed, ok := parseClock(line[open+2 : len(line)-1]); ok {
				d = parsed
				line = strings.TrimSpace(line[:open])
			}
		}
	}

	t := model.ParseTrack(line)
	t.Duration = d
	return t, t.Title != ""
}

// parseClock parses m:ss or h:mm:ss
func parseClock(s string) (time.Duration, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second, true
}
