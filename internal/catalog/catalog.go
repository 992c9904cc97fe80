package catalog

import (
	"errors"

	"github.com/bluntdao/blunt_frame/internal/chain"
)

// ErrEmptyCatalog is returned when a catalog would have no entries.
var ErrEmptyCatalog = errors.New("catalog must contain at least one entry")

// Entry is one mintable item shown while browsing.
type Entry struct {
	Name       string
	DisplayRef string
	MintTarget string
}

// Catalog is an ordered, read-only list of entries. It is built once at
// startup and shared by all requests.
type Catalog struct {
	entries []Entry
}

// New copies entries into a catalog.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Catalog{entries: cp}, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// At returns entry i, or the first entry when i is out of range.
func (c *Catalog) At(i int) Entry {
	if i < 0 || i >= len(c.entries) {
		return c.entries[0]
	}
	return c.entries[i]
}

// Entries returns a copy of all entries.
func (c *Catalog) Entries() []Entry {
	cp := make([]Entry, len(c.entries))
	copy(cp, c.entries)
	return cp
}

const (
	defaultContract = "0x6f64c4bc37afeec49815814139e27df1186ca43e"
	imageBase       = "https://remote-image.decentralized-content.com/image?url=https%3A%2F%2Fmagic.decentralized-content.com%2Fipfs%2F"
)

// Default returns the BluntDao catalog minted on Zora.
func Default() *Catalog {
	c, _ := New([]Entry{
		{
			Name:       "Blunt",
			DisplayRef: imageBase + "bafybeibltcfgy4crxrij4yy63sefu2a6ega7jvf6sprbwh5wkxzzrarjb4&w=1920&q=75",
			MintTarget: chain.TokenURL(chain.Zora, defaultContract, "1"),
		},
		{
			Name:       "Joint",
			DisplayRef: imageBase + "bafybeiaqdkw6fzyi3yuec3sdkk6a5tsfyqsznytqwyssdrvqfzq5bpx4iu&w=1920&q=75",
			MintTarget: chain.TokenURL(chain.Zora, defaultContract, "2"),
		},
		{
			Name:       "Spliff",
			DisplayRef: imageBase + "bafybeiblargpzhwxgmbzzci6n6oubfhcw33cdqb4uqx62sxrvf5biwcszi&w=1920&q=75",
			MintTarget: chain.TokenURL(chain.Zora, defaultContract, "3"),
		},
	})
	return c
}
