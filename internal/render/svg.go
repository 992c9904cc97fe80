package render

import (
	"encoding/base64"
	"fmt"
	"html"

	"github.com/bluntdao/blunt_frame/internal/frame"
)

const (
	cardBackground = "#334155"
	cardForeground = "#ffffff"
)

// textCard draws a single centred line of text and returns it as a data URI.
func textCard(text, aspect string) string {
	width, height := 1146, 600
	if aspect == frame.AspectSquare {
		width, height = 600, 600
	}
	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<rect width="100%%" height="100%%" fill="%s"/>`+
		`<text x="50%%" y="50%%" fill="%s" font-family="sans-serif" font-size="44" text-anchor="middle" dominant-baseline="middle">%s</text>`+
		`</svg>`,
		width, height, width, height, cardBackground, cardForeground, html.EscapeString(text))
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
