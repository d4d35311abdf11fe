package config

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// privateKeyLength is "0x" plus 64 hex digits
const privateKeyLength = 66

// ResolveAccounts applies the private-key format guard. The key is accepted only
// when it is 0x-prefixed and followed by exactly 64 hex digits; otherwise the
// account list is empty and signing fails later with domain.ErrAuthentication.
func ResolveAccounts(privateKey string) []string {
	if !strings.HasPrefix(privateKey, "0x") || len(privateKey) != privateKeyLength {
		return []string{}
	}
	if _, err := hexutil.Decode(privateKey); err != nil {
		return []string{}
	}
	return []string{privateKey}
}
