package render

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/bluntdao/blunt_frame/internal/catalog"
	"github.com/bluntdao/blunt_frame/internal/frame"
)

const frameURL = "https://frame.example/frames"

func TestBrowseHTML(t *testing.T) {
	r := New(frameURL)
	resp := frame.Browse(catalog.Default(), 0)

	out, err := r.HTML(resp)
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	doc := string(out)
	for _, want := range []string{
		`<meta property="fc:frame" content="vNext"/>`,
		`<meta property="fc:frame:image:aspect_ratio" content="1:1"/>`,
		`<meta property="fc:frame:post_url" content="https://frame.example/frames"/>`,
		`<meta property="fc:frame:button:1:target" content="https://frame.example/frames?pageIndex=2"/>`,
		`<meta property="fc:frame:button:2:target" content="https://frame.example/frames?pageIndex=1"/>`,
		`<meta property="fc:frame:button:3" content="Mint Blunt"/>`,
		`<meta property="fc:frame:button:3:action" content="mint"/>`,
		`<meta property="fc:frame:button:3:target" content="eip155:7777777:0x6f64c4bc37afeec49815814139e27df1186ca43e:1"/>`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected %s in document:\n%s", want, doc)
		}
	}
}

func TestInitialHTMLHasNoTarget(t *testing.T) {
	out, err := New(frameURL).HTML(frame.Initial())
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	doc := string(out)
	if !strings.Contains(doc, `<meta property="fc:frame:button:1" content="Check Validator"/>`) {
		t.Fatalf("missing check validator button:\n%s", doc)
	}
	if strings.Contains(doc, "fc:frame:button:1:target") || strings.Contains(doc, "fc:frame:button:2") {
		t.Fatalf("unexpected extra button metadata:\n%s", doc)
	}
}

func TestEmptyHTMLHasNoButtons(t *testing.T) {
	out, err := New(frameURL).HTML(frame.Empty())
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if strings.Contains(string(out), "fc:frame:button") {
		t.Fatalf("empty card must not render buttons:\n%s", out)
	}
}

func TestTextCardImage(t *testing.T) {
	r := New(frameURL)
	img := r.ImageURL(frame.Image{Text: "You are <Validator>"}, frame.AspectWide)

	const prefix = "data:image/svg+xml;base64,"
	if !strings.HasPrefix(img, prefix) {
		t.Fatalf("expected svg data uri, got %s", img)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(img, prefix))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	svg := string(raw)
	if !strings.Contains(svg, "You are &lt;Validator&gt;") || !strings.Contains(svg, `width="1146"`) {
		t.Fatalf("unexpected svg %s", svg)
	}

	if got := r.ImageURL(frame.Image{URL: "https://img.example/a.png"}, frame.AspectSquare); got != "https://img.example/a.png" {
		t.Fatalf("expected remote url passthrough, got %s", got)
	}
}

func TestCardResolvesTargets(t *testing.T) {
	r := New(frameURL + "?v=1")
	card := r.Card(frame.Browse(catalog.Default(), 1))
	if card.Buttons[0].Target != "https://frame.example/frames?v=1&pageIndex=0" {
		t.Fatalf("unexpected prev target %s", card.Buttons[0].Target)
	}
	if card.Kind != frame.KindBrowse || card.PostURL != frameURL+"?v=1" {
		t.Fatalf("unexpected card %+v", card)
	}

	link := r.Card(frame.Validator("https://warpcast.com/~/compose?text=x"))
	if link.Buttons[0].Target != "https://warpcast.com/~/compose?text=x" || link.Buttons[0].Action != frame.ActionLink {
		t.Fatalf("unexpected link button %+v", link.Buttons[0])
	}
}
