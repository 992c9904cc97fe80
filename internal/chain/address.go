// Package chain holds the small amount of EVM knowledge the frame needs:
// address validation and the token URL format used for mint buttons.
package chain

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

var (
	// ErrInvalidAddress is returned for strings that are not 20-byte hex addresses.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrChecksumMismatch is returned for mixed-case addresses whose casing
	// does not match their EIP-55 checksum.
	ErrChecksumMismatch = errors.New("address checksum mismatch")
)

// ValidateAddress checks that addr is a 0x-prefixed 20-byte hex string.
// All-lower and all-upper addresses carry no checksum and are accepted as is.
func ValidateAddress(addr string) error {
	if !strings.HasPrefix(addr, "0x") || len(addr) != 42 {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	body := addr[2:]
	if _, err := hex.DecodeString(body); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return nil
	}
	if ChecksumAddress(addr) != addr {
		return fmt.Errorf("%w: %q", ErrChecksumMismatch, addr)
	}
	return nil
}

// ChecksumAddress returns the EIP-55 mixed-case form of addr. The input is
// expected to be a valid address; no validation happens here.
func ChecksumAddress(addr string) string {
	body := strings.ToLower(strings.TrimPrefix(addr, "0x"))

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(body))
	digest := hex.EncodeToString(h.Sum(nil))

	out := []byte(body)
	for i, c := range out {
		if c >= 'a' && c <= 'f' && digest[i] >= '8' {
			out[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(out)
}
