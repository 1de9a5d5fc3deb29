package nameservice_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_NameService(t *testing.T) {
	t.Log("Given the need to name accounts from key files.")
	{
		root := t.TempDir()

		pk, err := crypto.HexToECDSA("fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a private key: %s", failed, err)
		}

		if err := crypto.SaveECDSA(filepath.Join(root, "kennedy.ecdsa"), pk); err != nil {
			t.Fatalf("\t%s\tShould be able to save the key file: %s", failed, err)
		}
		if err := os.WriteFile(filepath.Join(root, "README.txt"), []byte("ignored"), 0600); err != nil {
			t.Fatalf("\t%s\tShould be able to write a non key file: %s", failed, err)
		}

		ns, err := nameservice.New(root)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the name service: %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct the name service.", success)

		account := database.PublicKeyToAccountID(pk.PublicKey)
		if name := ns.Lookup(account); name != "kennedy" {
			t.Fatalf("\t%s\tShould get back the name for the account, got %q.", failed, name)
		}
		t.Logf("\t%s\tShould get back the name for the account.", success)

		if name := ns.Lookup("nscc-address"); name != "nscc-address" {
			t.Fatalf("\t%s\tShould get back an unknown account as is, got %q.", failed, name)
		}
		t.Logf("\t%s\tShould get back an unknown account as is.", success)

		key, err := ns.PrivateKey("kennedy")
		if err != nil || database.PublicKeyToAccountID(key.PublicKey) != account {
			t.Fatalf("\t%s\tShould get back the private key by name: %v", failed, err)
		}
		t.Logf("\t%s\tShould get back the private key by name.", success)

		if _, err := ns.PrivateKey("pavel"); err == nil {
			t.Fatalf("\t%s\tShould not find an unknown name.", failed)
		}
		t.Logf("\t%s\tShould not find an unknown name.", success)

		if len(ns.Copy()) != 1 {
			t.Fatalf("\t%s\tShould only load key files.", failed)
		}
		t.Logf("\t%s\tShould only load key files.", success)
	}
}
