package import_parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(t *testing.T, filename, content string) []string {
	t.Helper()
	tracks, err := ImportFile(filename, content, FormatAuto)
	require.NoError(t, err)
	var out []string
	for _, tr := range tracks {
		assert.NotEmpty(t, tr.ID)
		out = append(out, tr.Label())
	}
	return out
}

func TestImportText(t *testing.T) {
	content := "# picks\nNina Simone - Sinnerman (10:21)\n\n  Untitled  \n"
	assert.Equal(t, []string{"Nina Simone - Sinnerman", "Untitled"}, labels(t, "picks.txt", content))

	tracks, err := ImportFile("picks.txt", content, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute+21*time.Second, tracks[0].Duration)
}

func TestImportMarkdown(t *testing.T) {
	content := `# Friday

Some notes about the set.

1. Nina Simone - Sinnerman (10:21)
2) Can - Vitamin C

## Unselected

- Suicide - Ghost Rider
* Neu! - Hallogallo
`
	assert.Equal(t, []string{
		"Nina Simone - Sinnerman",
		"Can - Vitamin C",
		"Suicide - Ghost Rider",
		"Neu! - Hallogallo",
	}, labels(t, "friday.md", content))
}

func TestImportM3U(t *testing.T) {
	content := `#EXTM3U
#EXTINF:212,Can - Vitamin C
music/can/vitamin-c.flac
C:\Music\Suicide - Ghost Rider.mp3
#EXTINF:-1 tvg-id="x",Radio Stream
http://example.com/stream
`
	tracks, err := ImportFile("list.m3u", content, FormatAuto)
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	assert.Equal(t, "Can - Vitamin C", tracks[0].Label())
	assert.Equal(t, 212*time.Second, tracks[0].Duration)
	assert.Equal(t, "Suicide - Ghost Rider", tracks[1].Label())
	assert.Equal(t, "Radio Stream", tracks[2].Label())
	assert.Zero(t, tracks[2].Duration)
}

func TestParseTrackLineKeepsNonDurationParens(t *testing.T) {
	tr, ok := parseTrackLine("Prince - Purple Rain (Live)")
	require.True(t, ok)
	assert.Equal(t, "Purple Rain (Live)", tr.Title)
	assert.Zero(t, tr.Duration)
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := ImportFile("x", "", ImportFormat("xml"))
	assert.Error(t, err)
}
