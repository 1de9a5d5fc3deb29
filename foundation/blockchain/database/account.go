package database

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// AccountID represents the public identity of an account. It is the hex
// encoding of the uncompressed secp256k1 public key and is used as the sender
// and recipient of transactions.
type AccountID string

// ToAccountID converts a hex-encoded string to an account and validates the
// hex-encoded string is formatted correctly.
func ToAccountID(hex string) (AccountID, error) {
	a := AccountID(hex)
	if !a.IsAccountID() {
		return "", errors.New("invalid account format")
	}

	return a.Canonical(), nil
}

// PublicKeyToAccountID converts the public key to an account value.
func PublicKeyToAccountID(pk ecdsa.PublicKey) AccountID {
	return AccountID(hex.EncodeToString(crypto.FromECDSAPub(&pk)))
}

// IsAccountID verifies whether the underlying data represents a valid
// hex-encoded public key.
func (a AccountID) IsAccountID() bool {
	_, err := a.PublicKey()
	return err == nil
}

// PublicKey decodes the account back into the uncompressed public key bytes.
func (a AccountID) PublicKey() ([]byte, error) {
	if has0xPrefix(a) {
		a = a[2:]
	}

	pub, err := hex.DecodeString(string(a))
	if err != nil {
		return nil, err
	}

	if _, err := crypto.UnmarshalPubkey(pub); err != nil {
		return nil, err
	}

	return pub, nil
}

// Canonical returns the form of the account used for comparing and
// fingerprinting. A hex-encoded public key loses any 0x prefix and is lower
// cased. Any other value is returned as is.
func (a AccountID) Canonical() AccountID {
	const size = 2 * 65

	b := a
	if has0xPrefix(b) {
		b = b[2:]
	}

	if len(b) != size {
		return a
	}

	if _, err := hex.DecodeString(string(b)); err != nil {
		return a
	}

	return AccountID(strings.ToLower(string(b)))
}

// Short returns an abbreviated form of the account for logging.
func (a AccountID) Short() string {
	const size = 12

	if len(a) <= size {
		return string(a)
	}

	return string(a[:size]) + "..."
}

// =============================================================================

// has0xPrefix validates the account starts with a 0x.
func has0xPrefix(a AccountID) bool {
	return len(a) >= 2 && a[0] == '0' && (a[1] == 'x' || a[1] == 'X')
}
