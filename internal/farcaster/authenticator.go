package farcaster

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Authenticator turns a frame packet into a trusted Message.
type Authenticator interface {
	Authenticate(ctx context.Context, packet Packet) (Message, error)
}

// HubAuthenticator validates packets against a Farcaster hub's
// validateMessage endpoint. Messages signed for frames on other hosts are
// rejected.
type HubAuthenticator struct {
	hubURL    string
	frameHost string
	client    *http.Client
}

// NewHubAuthenticator builds a hub-backed authenticator accepting actions
// on frames served from publicHost.
func NewHubAuthenticator(hubURL, publicHost string, client *http.Client) *HubAuthenticator {
	if client == nil {
		client = http.DefaultClient
	}
	return &HubAuthenticator{
		hubURL:    strings.TrimRight(hubURL, "/"),
		frameHost: hostOf(publicHost),
		client:    client,
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

type validateResponse struct {
	Valid   bool `json:"valid"`
	Message struct {
		Data struct {
			FID             uint64 `json:"fid"`
			FrameActionBody struct {
				URL         string `json:"url"`
				ButtonIndex int    `json:"buttonIndex"`
			} `json:"frameActionBody"`
		} `json:"data"`
	} `json:"message"`
}

// Authenticate posts the signed message bytes to the hub and trusts the
// fid only if the hub reports the message valid.
func (a *HubAuthenticator) Authenticate(ctx context.Context, packet Packet) (Message, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(packet.TrustedData.MessageBytes, "0x"))
	if err != nil || len(raw) == 0 {
		return Message{}, fmt.Errorf("%w: undecodable message bytes", ErrInvalidMessage)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.hubURL+"/v1/validateMessage", bytes.NewReader(raw))
	if err != nil {
		return Message{}, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := a.client.Do(req)
	if err != nil {
		return Message{}, fmt.Errorf("validate message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Message{}, fmt.Errorf("%w: hub status %d", ErrInvalidMessage, resp.StatusCode)
	}
	var out validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Message{}, fmt.Errorf("validate message: decode: %w", err)
	}
	if !out.Valid || out.Message.Data.FID == 0 {
		return Message{}, ErrInvalidMessage
	}
	actionURL := out.Message.Data.FrameActionBody.URL
	if a.frameHost != "" && hostOf(actionURL) != a.frameHost {
		return Message{}, fmt.Errorf("%w: action url %q is not served by %s", ErrInvalidMessage, actionURL, a.frameHost)
	}

	return Message{
		RequesterFID: out.Message.Data.FID,
		ButtonIndex:  out.Message.Data.FrameActionBody.ButtonIndex,
		URL:          actionURL,
	}, nil
}

// InsecureAuthenticator trusts the unsigned fid of the packet. It exists
// for local development with frame debuggers that cannot sign messages.
type InsecureAuthenticator struct{}

// Authenticate returns the packet's untrusted data as is.
func (InsecureAuthenticator) Authenticate(_ context.Context, packet Packet) (Message, error) {
	if packet.UntrustedData.FID == 0 {
		return Message{}, ErrInvalidMessage
	}
	return Message{
		RequesterFID: packet.UntrustedData.FID,
		ButtonIndex:  packet.UntrustedData.ButtonIndex,
		URL:          packet.UntrustedData.URL,
	}, nil
}
