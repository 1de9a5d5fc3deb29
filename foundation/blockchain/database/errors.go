package database

import (
	"errors"
	"fmt"
)

// Set of errors a transaction can fail with when it is signed, validated
// or submitted to the ledger.
var (
	ErrIdentityMismatch      = errors.New("you cannot sign transactions for other wallets")
	ErrNotSignable           = errors.New("reward transactions cannot be signed")
	ErrMissingSignature      = errors.New("no signature in this transaction")
	ErrIncompleteTransaction = errors.New("transaction must include from and to address")
	ErrInvalidTransaction    = errors.New("cannot add invalid transaction to chain")
	ErrMalformedAccount      = errors.New("account must be valid utf-8")
	ErrValueTooLarge         = errors.New("value does not fit a signed balance")
)

// TxError represents an error on a transaction.
type TxError struct {
	Tx  Tx
	Err error
}

// NewTxError wraps the error with the transaction it was raised for.
func NewTxError(tx Tx, err error) error {
	return &TxError{Tx: tx, Err: err}
}

// Error implements the error interface.
func (txe *TxError) Error() string {
	return fmt.Sprintf("tx[%s]: %s", txe.Tx, txe.Err)
}

// Unwrap provides support for errors.Is and errors.As.
func (txe *TxError) Unwrap() error {
	return txe.Err
}
