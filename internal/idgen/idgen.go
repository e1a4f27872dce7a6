// Package idgen produces identifiers for synthetic records.
//
// Everything here draws from a caller-supplied stream so records are
// reproducible under a fixed seed. Hashes and addresses are shaped like
// Ethereum values (keccak digests, EIP-55 checksummed addresses) even for
// records tagged with other chains.
package idgen

import (
	"math/rand"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Short returns a lowercase base-36 id of length n.
func Short(r *rand.Rand, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(base36[r.Intn(len(base36))])
	}
	return sb.String()
}

// WithPrefix returns prefix + an 8 character base-36 id (e.g. "tx_", "alt_").
func WithPrefix(r *rand.Rand, prefix string) string {
	return prefix + Short(r, 8)
}

// TxHash returns a 0x-prefixed keccak256 digest of 32 random bytes.
func TxHash(r *rand.Rand) string {
	return crypto.Keccak256Hash(randomBytes(r, 32)).Hex()
}

// Address returns a random EIP-55 checksummed address.
func Address(r *rand.Rand) string {
	return common.BytesToAddress(randomBytes(r, common.AddressLength)).Hex()
}

// Abbrev shortens a 0x value to its first keep hex digits followed by "...".
// Values already short enough are returned unchanged.
func Abbrev(s string, keep int) string {
	if len(s) <= keep+2 {
		return s
	}
	return s[:keep+2] + "..."
}

func randomBytes(r *rand.Rand, n int) []byte {
	b := make([]byte, n)
	_, _ = r.Read(b)
	return b
}
