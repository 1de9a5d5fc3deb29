// Package signature provides helper functions for handling the blockchain
// hashing and signature needs.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros. It is used as the previous hash
// of the genesis block.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// HashFunc represents a deterministic digest function that produces a lower
// case hex string. The ledger does not depend on a specific algorithm family.
type HashFunc func(data []byte) string

// SHA256 is the default HashFunc.
func SHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Keccak256 is an alternate HashFunc using the Ethereum hashing algorithm.
func Keccak256(data []byte) string {
	return hex.EncodeToString(crypto.Keccak256(data))
}

// RetrieveHashFunc returns the HashFunc registered for the specified name.
func RetrieveHashFunc(name string) (HashFunc, error) {
	switch name {
	case "", "sha256":
		return SHA256, nil
	case "keccak256":
		return Keccak256, nil
	}

	return nil, fmt.Errorf("hash function %q does not exist", name)
}

// =============================================================================

// IsHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of 0's.
func IsHashSolved(difficulty uint, hash string) bool {
	if int(difficulty) > len(hash) {
		return false
	}

	for i := 0; i < int(difficulty); i++ {
		if hash[i] != '0' {
			return false
		}
	}

	return true
}

// =============================================================================

// Sign uses the specified private key to sign the digest. The signature is
// returned in the 65 byte [R|S|V] format.
func Sign(digest string, privateKey *ecdsa.PrivateKey) ([]byte, error) {
	if privateKey == nil {
		return nil, errors.New("private key is required")
	}

	// Prepare the digest for signing.
	data := stamp(digest)

	// Sign the hash with the private key to produce a signature.
	sig, err := crypto.Sign(data, privateKey)
	if err != nil {
		return nil, err
	}

	// Check the signature against the public key of the signer.
	rs := sig[:crypto.RecoveryIDOffset]
	if !crypto.VerifySignature(crypto.FromECDSAPub(&privateKey.PublicKey), data, rs) {
		return nil, errors.New("invalid signature")
	}

	return sig, nil
}

// Verify reports whether the signature was produced over the digest by the
// owner of the specified public key. Malformed input never verifies.
func Verify(publicKey []byte, digest string, sig []byte) bool {
	if len(sig) < crypto.RecoveryIDOffset {
		return false
	}

	if _, err := crypto.UnmarshalPubkey(publicKey); err != nil {
		return false
	}

	return crypto.VerifySignature(publicKey, stamp(digest), sig[:crypto.RecoveryIDOffset])
}

// PublicKeyFromSignature extracts the uncompressed public key of the account
// that signed the digest.
func PublicKeyFromSignature(digest string, sig []byte) ([]byte, error) {

	// NOTE: If the same exact digest for the given signature is not provided
	// we will get the wrong public key. The public key is being extracted
	// from the data and signature.

	if len(sig) != crypto.SignatureLength {
		return nil, fmt.Errorf("invalid signature length %d", len(sig))
	}

	return crypto.Ecrecover(stamp(digest), sig)
}

// SignatureString returns the signature as a string.
func SignatureString(sig []byte) string {
	if len(sig) == 0 {
		return ""
	}

	return hexutil.Encode(sig)
}

// =============================================================================

// stamp returns a hash of 32 bytes that represents the digest with the Ardan
// stamp embedded into the final hash. Any HashFunc output is reduced to a
// consistent length this way.
func stamp(digest string) []byte {

	// Hash the digest into a 32 byte array. This will provide a data length
	// consistency with all data.
	txHash := crypto.Keccak256([]byte(digest))

	// Convert the stamp into a slice of bytes. This stamp is used so
	// signatures we produce are always unique to the Ardan ledger.
	stamp := []byte("\x19Ardan Signed Message:\n32")

	// Hash the stamp and txHash together in a final 32 byte array
	// that represents the digest.
	return crypto.Keccak256(stamp, txHash)
}
