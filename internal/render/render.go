// Package render turns frame responses into the documents Farcaster
// clients read: an HTML page with fc:frame meta tags, or a JSON card for
// frame debuggers.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/bluntdao/blunt_frame/internal/frame"
)

// Renderer resolves responses against the public URL of the frame endpoint.
type Renderer struct {
	frameURL string
}

// New builds a renderer for the frame served at frameURL.
func New(frameURL string) *Renderer {
	return &Renderer{frameURL: frameURL}
}

// Card is a response with every URL resolved.
type Card struct {
	Kind        frame.Kind   `json:"kind"`
	Image       string       `json:"image"`
	AspectRatio string       `json:"aspectRatio"`
	PostURL     string       `json:"postUrl"`
	Buttons     []CardButton `json:"buttons"`
}

// CardButton is a button with its final target.
type CardButton struct {
	Label  string       `json:"label"`
	Action frame.Action `json:"action"`
	Target string       `json:"target,omitempty"`
}

// Card resolves resp into a Card.
func (r *Renderer) Card(resp frame.Response) Card {
	card := Card{
		Kind:        resp.Kind,
		Image:       r.ImageURL(resp.Image, resp.AspectRatio),
		AspectRatio: resp.AspectRatio,
		PostURL:     r.frameURL,
		Buttons:     make([]CardButton, 0, len(resp.Buttons)),
	}
	for _, b := range resp.Buttons {
		card.Buttons = append(card.Buttons, CardButton{Label: b.Label, Action: b.Action, Target: r.ButtonTarget(b)})
	}
	return card
}

// ButtonTarget returns where a button points. Post buttons with a query
// point back at the frame endpoint carrying that query.
func (r *Renderer) ButtonTarget(b frame.Button) string {
	if b.Action != frame.ActionPost {
		return b.Target
	}
	if len(b.Query) == 0 {
		return ""
	}
	q := url.Values{}
	for k, v := range b.Query {
		q.Set(k, v)
	}
	sep := "?"
	if strings.Contains(r.frameURL, "?") {
		sep = "&"
	}
	return r.frameURL + sep + q.Encode()
}

// ImageURL returns the image URL, drawing text cards as SVG data URIs.
func (r *Renderer) ImageURL(img frame.Image, aspect string) string {
	if img.URL != "" {
		return img.URL
	}
	return textCard(img.Text, aspect)
}

// HTML renders resp as a frame document.
func (r *Renderer) HTML(resp frame.Response) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, r.Card(resp)); err != nil {
		return nil, fmt.Errorf("render frame: %w", err)
	}
	return buf.Bytes(), nil
}

var pageTmpl = template.Must(template.New("frame").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<title>BluntDao</title>
<meta property="og:image" content="{{.Image}}"/>
<meta property="fc:frame" content="vNext"/>
<meta property="fc:frame:image" content="{{.Image}}"/>
<meta property="fc:frame:image:aspect_ratio" content="{{.AspectRatio}}"/>
<meta property="fc:frame:post_url" content="{{.PostURL}}"/>
{{- range $i, $b := .Buttons}}
<meta property="fc:frame:button:{{inc $i}}" content="{{$b.Label}}"/>
<meta property="fc:frame:button:{{inc $i}}:action" content="{{$b.Action}}"/>
{{- if $b.Target}}
<meta property="fc:frame:button:{{inc $i}}:target" content="{{$b.Target}}"/>
{{- end}}
{{- end}}
</head>
<body></body>
</html>
`))
