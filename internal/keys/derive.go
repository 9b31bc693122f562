package keys

import (
	"crypto/ed25519"
	"errors"

	sdkmnemonic "github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// ErrDegenerateKey is returned when a seed yields an unusable public key.
// The curve math should make this unreachable, but the check is explicit so a
// bad seed is discarded instead of silently producing a junk address.
var ErrDegenerateKey = errors.New("degenerate key from seed")

// Account is a derived keypair with its encoded address. Ephemeral unless the
// address matched a pattern.
type Account struct {
	priv    ed25519.PrivateKey
	Address string
}

// Derive maps a 32-byte seed to an account. Pure: the same seed always yields
// the same key material and address. The address string carries the SHA-512/256
// checksum and base32 encoding of the Algorand address format.
func Derive(seed [32]byte) (Account, error) {
	priv := ed25519.NewKeyFromSeed(seed[:])
	pub := priv.Public().(ed25519.PublicKey)

	var addr types.Address
	copy(addr[:], pub)
	if addr == (types.Address{}) {
		return Account{}, ErrDegenerateKey
	}
	return Account{priv: priv, Address: addr.String()}, nil
}

// Mnemonic encodes the private key as the 25-word Algorand mnemonic. Only
// called on the match path; the hot loop never pays for it.
func (a Account) Mnemonic() (string, error) {
	return sdkmnemonic.FromPrivateKey(a.priv)
}

// PrivateKey exposes the raw key material for verification.
func (a Account) PrivateKey() ed25519.PrivateKey { return a.priv }
