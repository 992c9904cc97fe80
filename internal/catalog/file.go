package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bluntdao/blunt_frame/internal/chain"
)

type fileEntry struct {
	Name       string `yaml:"name"`
	Image      string `yaml:"image"`
	MintTarget string `yaml:"mint_target"`
	ChainID    uint64 `yaml:"chain_id"`
	Contract   string `yaml:"contract"`
	TokenID    string `yaml:"token_id"`
}

type fileCatalog struct {
	Entries []fileEntry `yaml:"entries"`
}

// Load reads a YAML catalog from path. When path is empty the default
// catalog is returned.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var doc fileCatalog
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Entries))
	for i, fe := range doc.Entries {
		if fe.Image == "" {
			return nil, fmt.Errorf("catalog entry %d: image is required", i)
		}
		target := fe.MintTarget
		if target == "" {
			if fe.Contract == "" || fe.TokenID == "" {
				return nil, fmt.Errorf("catalog entry %d: mint_target or contract and token_id are required", i)
			}
			if err := chain.ValidateAddress(fe.Contract); err != nil {
				return nil, fmt.Errorf("catalog entry %d: %w", i, err)
			}
			chainID := fe.ChainID
			if chainID == 0 {
				chainID = chain.Zora
			}
			target = chain.TokenURL(chainID, fe.Contract, fe.TokenID)
		}
		entries = append(entries, Entry{Name: fe.Name, DisplayRef: fe.Image, MintTarget: target})
	}

	return New(entries)
}
