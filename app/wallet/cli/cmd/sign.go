package cmd

import (
	"encoding/json"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var (
	to    string
	value uint64
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a transaction and print it as json.",
	RunE:  signRun,
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().StringVarP(&to, "to", "t", "", "Account receiving the value.")
	signCmd.Flags().Uint64VarP(&value, "value", "v", 0, "Value to send.")
	signCmd.MarkFlagRequired("to")
}

func signRun(cmd *cobra.Command, args []string) error {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		return err
	}

	tx := database.NewTx(database.PublicKeyToAccountID(privateKey.PublicKey), database.AccountID(to), value)
	if err := tx.Sign(privateKey); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(tx)
}
