package state

import (
	"context"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Tamper(t *testing.T) {
	type table struct {
		name   string
		tamper func(s *State)
	}

	tt := []table{
		{name: "value", tamper: func(s *State) { s.chain[2].Trans[1].Value = 1_000_000 }},
		{name: "dropped", tamper: func(s *State) { s.chain[2].Trans = s.chain[2].Trans[:1] }},
		{name: "nonce", tamper: func(s *State) { s.chain[1].Nonce++ }},
		{name: "prevhash", tamper: func(s *State) { s.chain[2].PrevBlockHash = s.chain[0].Hash }},
		{
			name: "rehashed",
			tamper: func(s *State) {
				s.chain[2].Trans[1].Value = 1_000_000
				s.chain[2].Hash = s.chain[2].Digest()
			},
		},
		{
			name: "recipient",
			tamper: func(s *State) {
				s.chain[2].Trans[0].ToID = "nscc-address\xfe"
			},
		},
		{
			name: "rehashed recipient",
			tamper: func(s *State) {
				s.chain[2].Trans[0].ToID += "\xff"
				s.chain[2].Hash = s.chain[2].Digest()
			},
		},
		{
			name: "relinked",
			tamper: func(s *State) {
				s.chain[1].Nonce++
				s.chain[1].Hash = s.chain[1].Digest()
			},
		},
	}

	pk, err := crypto.HexToECDSA("c271237fb892ef59ec229c4274c8f4585b55377f9a0beb4ada22d88f58c1b19a")
	if err != nil {
		t.Fatalf("\t%s\tShould be able to generate a private key: %s", failed, err)
	}
	me := database.PublicKeyToAccountID(pk.PublicKey)

	t.Log("Given the need to detect tampering with mined blocks.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				s, err := New(Config{Genesis: genesis.Default()})
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to construct the ledger: %s", failed, testID, err)
				}

				if _, err := s.MinePendingTransactions(context.Background(), me); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to mine: %s", failed, testID, err)
				}

				tx := database.NewTx(me, "bob", 10)
				if err := tx.Sign(pk); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to sign: %s", failed, testID, err)
				}
				if err := s.AddTransaction(tx); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to add the transaction: %s", failed, testID, err)
				}

				if _, err := s.MinePendingTransactions(context.Background(), "nscc-address"); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to mine: %s", failed, testID, err)
				}

				if !s.IsChainValid() {
					t.Fatalf("\t%s\tTest %d:\tShould be valid before tampering.", failed, testID)
				}

				tst.tamper(s)

				if s.IsChainValid() {
					t.Fatalf("\t%s\tTest %d:\tShould detect tampering with the %s.", failed, testID, tst.name)
				}
				t.Logf("\t%s\tTest %d:\tShould detect tampering with the %s.", success, testID, tst.name)
			}

			t.Run(tst.name, f)
		}
	}
}
