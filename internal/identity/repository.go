package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Directory is the upstream identity service.
type Directory interface {
	CustodyAddress(ctx context.Context, fid FID) (string, error)
	FIDForAddress(ctx context.Context, address string) (FID, bool, error)
}

// NeynarDirectory implements Directory on top of the Neynar v1 API.
type NeynarDirectory struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewNeynarDirectory builds a Neynar-backed directory. A nil client uses http.DefaultClient.
func NewNeynarDirectory(baseURL, apiKey string, client *http.Client) *NeynarDirectory {
	if client == nil {
		client = http.DefaultClient
	}
	return &NeynarDirectory{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: client}
}

type neynarUserResponse struct {
	Result struct {
		User struct {
			FID            FID    `json:"fid"`
			CustodyAddress string `json:"custodyAddress"`
		} `json:"user"`
	} `json:"result"`
}

// CustodyAddress fetches the custody address registered for fid.
func (d *NeynarDirectory) CustodyAddress(ctx context.Context, fid FID) (string, error) {
	q := url.Values{"fid": {strconv.FormatUint(uint64(fid), 10)}}
	var out neynarUserResponse
	if err := d.get(ctx, "/v1/farcaster/user", q, &out); err != nil {
		return "", err
	}
	if out.Result.User.CustodyAddress == "" {
		return "", ErrUserNotFound
	}
	return out.Result.User.CustodyAddress, nil
}

// FIDForAddress looks up the user that verified address. A 404 is reported
// as not found rather than as an error.
func (d *NeynarDirectory) FIDForAddress(ctx context.Context, address string) (FID, bool, error) {
	q := url.Values{"address": {address}}
	var out neynarUserResponse
	if err := d.get(ctx, "/v1/farcaster/user-by-verification", q, &out); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if out.Result.User.FID == 0 {
		return 0, false, nil
	}
	return out.Result.User.FID, true, nil
}

func (d *NeynarDirectory) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api_key", d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("neynar %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrUserNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("neynar %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("neynar %s: decode: %w", path, err)
	}
	return nil
}
