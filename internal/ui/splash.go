package ui

// SplashContent is shown in place of an empty playlist
func SplashContent() []string {
	return []string{
		"~~ tmix ~~",
		"",
		"The playlist is empty.",
		"",
		"/            - search the catalog",
		"u            - browse unselected tracks",
		"tmix add ... - push tracks from a shell",
		"?            - help",
	}
}

// RenderSplash draws the splash block centered in a rectangle
func RenderSplash(screen *Screen, x, y, w, h int) {
	content := SplashContent()

	blockWidth := 0
	for _, line := range content {
		blockWidth = max(blockWidth, StringWidth(line))
	}
	startX := x + max((w-blockWidth)/2, 0)
	startY := y + max((h-len(content))/2, 0)

	for i, line := range content {
		if startY+i >= y+h {
			break
		}
		style := screen.StatusMessageStyle()
		if i == 0 {
			style = screen.HeaderStyle()
		}
		screen.DrawStringLimited(startX, startY+i, line, w-(startX-x), style)
	}
}
