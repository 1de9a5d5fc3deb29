// Package nameservice reads a folder of private key files and creates a name
// service lookup for the ledger accounts.
package nameservice

import (
	"crypto/ecdsa"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyExtension is the file extension of the private key files.
const KeyExtension = ".ecdsa"

// NameService maintains a map of accounts for name lookup.
type NameService struct {
	accounts map[database.AccountID]string
	keys     map[string]*ecdsa.PrivateKey
}

// New constructs a name service with accounts from the key files found
// under the root folder. The file name without extension is the name.
func New(root string) (*NameService, error) {
	ns := NameService{
		accounts: make(map[database.AccountID]string),
		keys:     make(map[string]*ecdsa.PrivateKey),
	}

	fn := func(fileName string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if d.IsDir() || filepath.Ext(fileName) != KeyExtension {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return fmt.Errorf("loading %s: %w", fileName, err)
		}

		name := strings.TrimSuffix(filepath.Base(fileName), KeyExtension)
		ns.accounts[database.PublicKeyToAccountID(privateKey.PublicKey)] = name
		ns.keys[name] = privateKey

		return nil
	}

	if err := filepath.WalkDir(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified account. Unknown accounts are
// returned in their short form.
func (ns *NameService) Lookup(accountID database.AccountID) string {
	name, exists := ns.accounts[accountID.Canonical()]
	if !exists {
		return accountID.Short()
	}
	return name
}

// PrivateKey returns the signing key for the named account.
func (ns *NameService) PrivateKey(name string) (*ecdsa.PrivateKey, error) {
	pk, exists := ns.keys[name]
	if !exists {
		return nil, fmt.Errorf("account %q does not exist", name)
	}
	return pk, nil
}

// Copy returns a copy of the map of names and accounts.
func (ns *NameService) Copy() map[database.AccountID]string {
	cpy := make(map[database.AccountID]string, len(ns.accounts))
	for account, name := range ns.accounts {
		cpy[account] = name
	}
	return cpy
}
