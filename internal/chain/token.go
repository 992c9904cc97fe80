package chain

import "fmt"

const (
	// Zora is the Zora network chain id.
	Zora uint64 = 7777777
	// Sepolia is the Ethereum Sepolia testnet chain id.
	Sepolia uint64 = 11155111
)

// TokenURL formats a mint target the way Farcaster clients expect for the
// "mint" button action: eip155:<chain>:<contract>:<token id>.
func TokenURL(chainID uint64, contract, tokenID string) string {
	return fmt.Sprintf("eip155:%d:%s:%s", chainID, contract, tokenID)
}
