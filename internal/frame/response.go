package frame

import (
	"net/url"
	"strconv"

	"github.com/bluntdao/blunt_frame/internal/catalog"
)

// Kind names the mutually exclusive response variants.
type Kind string

const (
	KindInitial   Kind = "initial"
	KindEmpty     Kind = "empty"
	KindBrowse    Kind = "browse"
	KindValidator Kind = "validator"
)

// Action is what a button does when pressed.
type Action string

const (
	ActionPost Action = "post"
	ActionLink Action = "link"
	ActionMint Action = "mint"
)

const (
	AspectWide   = "1.91:1"
	AspectSquare = "1:1"

	initialText   = "Join BluntDao Community on Farcaster"
	emptyText     = "No validators yet"
	validatorText = "You are Validator"
	shareText     = "Mint blunt NFT now."
)

// Image is either a remote image URL or a line of text to draw on a card.
type Image struct {
	URL  string `json:"url,omitempty"`
	Text string `json:"text,omitempty"`
}

// Button is one action on a card. Query is appended to the frame's own URL
// for post buttons; Target is the external destination of link and mint
// buttons.
type Button struct {
	Label  string            `json:"label"`
	Action Action            `json:"action"`
	Target string            `json:"target,omitempty"`
	Query  map[string]string `json:"query,omitempty"`
}

// Response is the next card to show.
type Response struct {
	Kind        Kind     `json:"kind"`
	Image       Image    `json:"image"`
	AspectRatio string   `json:"aspectRatio"`
	Buttons     []Button `json:"buttons"`
	Page        *int     `json:"page,omitempty"`
}

// Initial is the entry prompt.
func Initial() Response {
	return Response{
		Kind:        KindInitial,
		Image:       Image{Text: initialText},
		AspectRatio: AspectWide,
		Buttons:     []Button{{Label: "Check Validator", Action: ActionPost}},
	}
}

// Empty is shown when the collection has no owners yet.
func Empty() Response {
	return Response{
		Kind:        KindEmpty,
		Image:       Image{Text: emptyText},
		AspectRatio: AspectWide,
	}
}

// Validator is shown to requesters who own the collection.
func Validator(shareURL string) Response {
	return Response{
		Kind:        KindValidator,
		Image:       Image{Text: validatorText},
		AspectRatio: AspectWide,
		Buttons:     []Button{{Label: "Cast Now", Action: ActionLink, Target: shareURL}},
	}
}

// Browse shows catalog entry page with previous, next and mint buttons.
func Browse(c *catalog.Catalog, page int) Response {
	entry := c.At(page)
	if page < 0 || page >= c.Len() {
		page = 0
	}
	label := "Mint"
	if entry.Name != "" {
		label += " " + entry.Name
	}
	return Response{
		Kind:        KindBrowse,
		Image:       Image{URL: entry.DisplayRef},
		AspectRatio: AspectSquare,
		Buttons: []Button{
			{Label: "←", Action: ActionPost, Query: pageQuery(Prev(page, c.Len()))},
			{Label: "→", Action: ActionPost, Query: pageQuery(Next(page, c.Len()))},
			{Label: label, Action: ActionMint, Target: entry.MintTarget},
		},
		Page: &page,
	}
}

// ShareURL builds the Warpcast compose link that embeds the frame at publicHost.
func ShareURL(publicHost string) string {
	q := url.Values{
		"text":     {shareText},
		"embeds[]": {publicHost},
	}
	return "https://warpcast.com/~/compose?" + q.Encode()
}

func pageQuery(page int) map[string]string {
	return map[string]string{PageQueryParam: strconv.Itoa(page)}
}
