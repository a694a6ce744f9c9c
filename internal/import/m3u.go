package import_parser

import (
	"bufio"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/pstuifzand/tui-mixer/internal/model"
)

// M3UParser imports (extended) M3U playlists. The #EXTINF line gives the
// label and length; entries without one are named after their file.
type M3UParser struct{}

func (p *M3UParser) Name() string {
	return "M3U"
}

func (p *M3UParser) Parse(content string) ([]model.Track, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var tracks []model.Track
	var pending *model.Track
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTINF:"):
			t := parseExtInf(line[len("#EXTINF:"):])
			pending = &t
		case strings.HasPrefix(line, "#"):
			continue
		default:
			// the location ends an entry
			if pending != nil {
				tracks = append(tracks, *pending)
				pending = nil
				continue
			}
			name := path.Base(strings.ReplaceAll(line, "\\", "/"))
			name = strings.TrimSuffix(name, path.Ext(name))
			if t, ok := parseTrackLine(name); ok {
				tracks = append(tracks, t)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}

// parseExtInf reads "<seconds>[ attributes],<label>"
func parseExtInf(s string) model.Track {
	info, label, _ := strings.Cut(s, ",")
	t := model.ParseTrack(strings.TrimSpace(label))
	if fields := strings.Fields(info); len(fields) > 0 {
		if secs, err := strconv.Atoi(fields[0]); err == nil && secs > 0 {
			t.Duration = time.Duration(secs) * time.Second
		}
	}
	return t
}
