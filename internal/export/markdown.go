package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/pstuifzand/tui-mixer/internal/model"
)

// Format is a file format a playlist can be exported to
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// DetectFormat picks the format from the file extension. Anything that is
// not Markdown is written as plain text.
func DetectFormat(filePath string) Format {
	if strings.HasSuffix(filePath, ".md") || strings.HasSuffix(filePath, ".markdown") {
		return FormatMarkdown
	}
	return FormatText
}

// ExportFile writes the playlist to filePath in the format its extension
// asks for
func ExportFile(playlist *model.Playlist, filePath string) error {
	if DetectFormat(filePath) == FormatMarkdown {
		return ExportToMarkdown(playlist, filePath)
	}
	return ExportToText(playlist, filePath)
}

// ExportToMarkdown exports a playlist as a numbered Markdown list under the
// playlist title. Unselected tracks follow in their own section.
func ExportToMarkdown(playlist *model.Playlist, filePath string) error {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(playlist.Title)
	sb.WriteString("\n\n")
	for i, t := range playlist.Tracks {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, trackLine(t))
	}

	if len(playlist.Unselected) > 0 {
		sb.WriteString("\n## Unselected\n\n")
		for _, t := range playlist.Unselected {
			sb.WriteString("- ")
			sb.WriteString(trackLine(t))
			sb.WriteString("\n")
		}
	}

	if err := os.WriteFile(filePath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

// ExportToText writes one "Artist - Title (m:ss)" line per playlist track,
// the form the text importer reads back
func ExportToText(playlist *model.Playlist, filePath string) error {
	var sb strings.Builder
	for _, t := range playlist.Tracks {
		sb.WriteString(trackLine(t))
		sb.WriteString("\n")
	}

	if err := os.WriteFile(filePath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write text file: %w", err)
	}
	return nil
}

func trackLine(t model.Track) string {
	line := t.Label()
	if d := t.DurationString(); d != "" {
		line += " (" + d + ")"
	}
	return line
}
