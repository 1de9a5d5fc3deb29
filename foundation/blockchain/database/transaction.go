package database

import (
	"crypto/ecdsa"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// Tx is the transactional information between two parties. A transaction
// without a from account is a reward minted by the ledger.
type Tx struct {
	FromID    AccountID `json:"from"`      // Account sending the value, empty for a mining reward.
	ToID      AccountID `json:"to"`        // Account receiving the benefit of the transaction.
	Value     uint64    `json:"value"`     // Monetary value received from this transaction.
	Signature []byte    `json:"signature"` // Signature in the [R|S|V] format over the fingerprint.
}

// NewTx constructs a new unsigned transaction.
func NewTx(fromID AccountID, toID AccountID, value uint64) Tx {
	return Tx{
		FromID: fromID.Canonical(),
		ToID:   toID.Canonical(),
		Value:  value,
	}
}

// NewRewardTx constructs the transaction used to pay a miner.
func NewRewardTx(toID AccountID, value uint64) Tx {
	return Tx{
		ToID:  toID.Canonical(),
		Value: value,
	}
}

// IsReward reports whether the transaction was minted by the ledger.
func (tx Tx) IsReward() bool {
	return tx.FromID == ""
}

// Fingerprint returns the digest of the from, to and value fields. This is
// what gets signed. The signature is not part of the fingerprint and the
// accounts are taken in their canonical form.
func (tx Tx) Fingerprint() string {
	fields := struct {
		FromID AccountID `json:"from"`
		ToID   AccountID `json:"to"`
		Value  uint64    `json:"value"`
	}{
		FromID: tx.FromID.Canonical(),
		ToID:   tx.ToID.Canonical(),
		Value:  tx.Value,
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return signature.ZeroHash
	}

	return signature.SHA256(data)
}

// Sign uses the specified private key to sign the transaction. The key must
// belong to the from account.
func (tx *Tx) Sign(privateKey *ecdsa.PrivateKey) error {
	if tx.IsReward() {
		return ErrNotSignable
	}

	if privateKey == nil || PublicKeyToAccountID(privateKey.PublicKey) != tx.FromID.Canonical() {
		return ErrIdentityMismatch
	}

	sig, err := signature.Sign(tx.Fingerprint(), privateKey)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}

	tx.Signature = sig

	return nil
}

// IsValid verifies the transaction carries a signature produced by the from
// account over the current fingerprint. Rewards are valid once their fields
// check out. A failed verification is reported as false, not as an error.
func (tx Tx) IsValid() (bool, error) {
	if err := tx.checkFields(); err != nil {
		return false, err
	}

	if tx.IsReward() {
		return true, nil
	}

	if len(tx.Signature) == 0 {
		return false, ErrMissingSignature
	}

	pub, err := tx.FromID.PublicKey()
	if err != nil {
		return false, nil
	}

	return signature.Verify(pub, tx.Fingerprint(), tx.Signature), nil
}

// SignerID extracts the account id that produced the signature. This only
// matches the from account when the fingerprint hasn't changed since signing.
func (tx Tx) SignerID() (AccountID, error) {
	pub, err := signature.PublicKeyFromSignature(tx.Fingerprint(), tx.Signature)
	if err != nil {
		return "", err
	}

	return AccountID(hex.EncodeToString(pub)), nil
}

// SignatureString returns the signature as a string.
func (tx Tx) SignatureString() string {
	return signature.SignatureString(tx.Signature)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	from := tx.FromID.Short()
	if tx.IsReward() {
		from = "reward"
	}

	return fmt.Sprintf("%s->%s:%d", from, tx.ToID.Short(), tx.Value)
}

// =============================================================================

// checkFields makes sure the accounts survive json encoding unchanged and
// the value can be folded into a signed balance.
func (tx Tx) checkFields() error {
	if !utf8.ValidString(string(tx.FromID)) || !utf8.ValidString(string(tx.ToID)) {
		return ErrMalformedAccount
	}

	if tx.Value > math.MaxInt64 {
		return ErrValueTooLarge
	}

	return nil
}
