package mempool_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func sign(to database.AccountID, value uint64) (database.Tx, error) {
	pk, err := crypto.HexToECDSA("fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959")
	if err != nil {
		return database.Tx{}, err
	}

	tx := database.NewTx(database.PublicKeyToAccountID(pk.PublicKey), to, value)
	if err := tx.Sign(pk); err != nil {
		return database.Tx{}, err
	}

	return tx, nil
}

func TestCRUD(t *testing.T) {
	type table struct {
		name string
		txs  []database.Tx
	}

	tt := []table{
		{
			name: "basic",
			txs: []database.Tx{
				{ToID: "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", Value: 10},
				{ToID: "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4", Value: 50},
				{ToID: "0xbEE6ACE826eC3DE1B6349888B9151B92522F7F76", Value: 100},
				{ToID: "0x6Fe6CF3c8fF57c58d24BfC869668F48BCbDb3BD9", Value: 10},
			},
		},
	}

	t.Log("Given the need to validate mempool api.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of transaction.", testID)
			{
				f := func(t *testing.T) {
					mp := mempool.New()

					for i, userTx := range tst.txs {
						tx, err := sign(userTx.ToID, userTx.Value)
						if err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould be able to sign transaction.", failed, testID)
						}
						t.Logf("\t%s\tTest %d:\tShould be able to sign transaction.", success, testID)

						if n := mp.Append(tx); n != i+1 {
							t.Fatalf("\t%s\tTest %d:\tShould get back a count of %d, got %d.", failed, testID, i+1, n)
						}
						t.Logf("\t%s\tTest %d:\tShould be able to add new transaction: %s", success, testID, tx)
					}

					for i, tx := range mp.Copy() {
						if tx.ToID != tst.txs[i].ToID {
							t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, tx.ToID)
							t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.txs[i].ToID)
							t.Fatalf("\t%s\tTest %d:\tShould get back the transactions in order.", failed, testID)
						}
						t.Logf("\t%s\tTest %d:\tShould get back the transactions in order: %s", success, testID, tx.ToID[:6])
					}

					snapshot := mp.Copy()
					mp.Replace(database.NewRewardTx("miner", 100))
					if mp.Count() != 1 || mp.Copy()[0].ToID != "miner" {
						t.Fatalf("\t%s\tTest %d:\tShould be able to replace the pool.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to replace the pool.", success, testID)

					if len(snapshot) != len(tst.txs) {
						t.Fatalf("\t%s\tTest %d:\tShould not change an earlier snapshot.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould not change an earlier snapshot.", success, testID)

					mp.Replace()
					if l := len(mp.Copy()); l != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould be able to empty the mempool.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to empty the mempool.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
