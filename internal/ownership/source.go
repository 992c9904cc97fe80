package ownership

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Source is the upstream owner index. Results are unordered and may
// contain duplicates.
type Source interface {
	Owners(ctx context.Context, collection Collection) ([]string, error)
}

// AlchemySource reads owners from the Alchemy NFT API v3.
type AlchemySource struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAlchemySource builds an Alchemy-backed source. baseURL is the network
// endpoint, e.g. https://eth-sepolia.g.alchemy.com.
func NewAlchemySource(baseURL, apiKey string, client *http.Client) *AlchemySource {
	if client == nil {
		client = http.DefaultClient
	}
	return &AlchemySource{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: client}
}

// maxOwnerPages bounds pageKey following for a single call.
const maxOwnerPages = 50

type ownersResponse struct {
	Owners  []string `json:"owners"`
	PageKey *string  `json:"pageKey"`
}

// Owners issues getOwnersForContract, or one getOwnersForNFT call per token
// id when the collection names tokens.
func (s *AlchemySource) Owners(ctx context.Context, collection Collection) ([]string, error) {
	if len(collection.TokenIDs) == 0 {
		q := url.Values{
			"contractAddress":   {collection.Contract},
			"withTokenBalances": {"false"},
		}
		return s.get(ctx, "getOwnersForContract", q)
	}

	var owners []string
	for _, tokenID := range collection.TokenIDs {
		q := url.Values{
			"contractAddress": {collection.Contract},
			"tokenId":         {tokenID},
		}
		got, err := s.get(ctx, "getOwnersForNFT", q)
		if err != nil {
			return nil, err
		}
		owners = append(owners, got...)
	}
	return owners, nil
}

// get follows pageKey until the owner list is exhausted.
func (s *AlchemySource) get(ctx context.Context, method string, q url.Values) ([]string, error) {
	var owners []string
	for page := 0; page < maxOwnerPages; page++ {
		out, err := s.getPage(ctx, method, q)
		if err != nil {
			return nil, err
		}
		owners = append(owners, out.Owners...)
		if out.PageKey == nil || *out.PageKey == "" || *out.PageKey == q.Get("pageKey") {
			return owners, nil
		}
		q.Set("pageKey", *out.PageKey)
	}
	return nil, fmt.Errorf("alchemy %s: more than %d pages of owners", method, maxOwnerPages)
}

func (s *AlchemySource) getPage(ctx context.Context, method string, q url.Values) (ownersResponse, error) {
	endpoint := fmt.Sprintf("%s/nft/v3/%s/%s?%s", s.baseURL, url.PathEscape(s.apiKey), method, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ownersResponse{}, err
	}
	req.Header.Set("accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return ownersResponse{}, fmt.Errorf("alchemy %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ownersResponse{}, fmt.Errorf("alchemy %s: unexpected status %d", method, resp.StatusCode)
	}
	var out ownersResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ownersResponse{}, fmt.Errorf("alchemy %s: decode: %w", method, err)
	}
	return out, nil
}
