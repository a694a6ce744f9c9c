package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-mixer/internal/theme"
)

func newTestScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	scr, err := NewScreenFrom(sim, theme.Default())
	require.NoError(t, err)
	sim.SetSize(w, h)
	scr.Size()
	t.Cleanup(func() { _ = scr.Close() })
	return scr, sim
}

// lineAt returns row y of what was last shown
func lineAt(sim tcell.SimulationScreen, y int) string {
	cells, w, _ := sim.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

func styleAt(sim tcell.SimulationScreen, x, y int) tcell.Style {
	cells, w, _ := sim.GetContents()
	return cells[y*w+x].Style
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(l interface{ HandleKey(*tcell.EventKey) bool }, s string) {
	for _, r := range s {
		l.HandleKey(keyRune(r))
	}
}
