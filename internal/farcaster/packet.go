package farcaster

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoPacket is returned when a request carries no frame signature packet.
	ErrNoPacket = errors.New("no frame packet")
	// ErrInvalidMessage is returned when a packet fails authentication.
	ErrInvalidMessage = errors.New("invalid frame message")
)

// CastID identifies the cast a frame was embedded in.
type CastID struct {
	FID  uint64 `json:"fid"`
	Hash string `json:"hash"`
}

// UntrustedData is the unsigned half of a frame signature packet.
type UntrustedData struct {
	FID         uint64 `json:"fid"`
	URL         string `json:"url"`
	MessageHash string `json:"messageHash"`
	Timestamp   int64  `json:"timestamp"`
	Network     int    `json:"network"`
	ButtonIndex int    `json:"buttonIndex"`
	InputText   string `json:"inputText,omitempty"`
	CastID      CastID `json:"castId"`
}

// TrustedData carries the hex-encoded signed message.
type TrustedData struct {
	MessageBytes string `json:"messageBytes"`
}

// Packet is the body Farcaster clients POST to a frame.
type Packet struct {
	UntrustedData UntrustedData `json:"untrustedData"`
	TrustedData   TrustedData   `json:"trustedData"`
}

// Message is the authenticated part of an interaction.
type Message struct {
	RequesterFID uint64
	ButtonIndex  int
	URL          string
}

// ParsePacket decodes a request body. Empty bodies yield ErrNoPacket.
func ParsePacket(body []byte) (Packet, error) {
	if len(body) == 0 {
		return Packet{}, ErrNoPacket
	}
	var p Packet
	if err := json.Unmarshal(body, &p); err != nil {
		return Packet{}, fmt.Errorf("%w: %v", ErrNoPacket, err)
	}
	if p.TrustedData.MessageBytes == "" && p.UntrustedData.FID == 0 {
		return Packet{}, ErrNoPacket
	}
	return p, nil
}
