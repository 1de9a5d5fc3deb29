package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/logger"
	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("LEDGER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Ledger struct {
			Difficulty   uint16        `conf:"default:2"`
			MiningReward uint64        `conf:"default:100"`
			HashFunc     string        `conf:"default:sha256"`
			GenesisFile  string        `conf:"help:optional genesis json file overriding difficulty and reward"`
			MineTimeout  time.Duration `conf:"default:30s"`
		}
		Keys struct {
			Folder string `conf:"default:zblock/accounts/"`
			Sender string `conf:"default:kennedy"`
		}
		Demo struct {
			Recipient     string `conf:"default:bob"`
			Amount        uint64 `conf:"default:10"`
			RewardAddress string `conf:"default:nscc-address"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	traceID := uuid.NewString()

	log.Infow("starting service", "version", build, "traceid", traceID)
	defer log.Infow("shutdown complete", "traceid", traceID)

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Name Service Support

	// The nameservice package provides name resolution for account ids.
	// The names come from the file names in the keys folder.
	ns, err := nameservice.New(cfg.Keys.Folder)
	if err != nil {
		return fmt.Errorf("unable to load account name service: %w", err)
	}

	// Logging the accounts for documentation in the logs.
	for account, name := range ns.Copy() {
		log.Infow("startup", "status", "nameservice", "name", name, "account", account.Short())
	}

	senderKey, err := ns.PrivateKey(cfg.Keys.Sender)
	if err != nil {
		return fmt.Errorf("unable to load private key for sender: %w", err)
	}
	sender := database.PublicKeyToAccountID(senderKey.PublicKey)

	// =========================================================================
	// Ledger Support

	gen := genesis.Default()
	gen.Difficulty = cfg.Ledger.Difficulty
	gen.MiningReward = cfg.Ledger.MiningReward
	if cfg.Ledger.GenesisFile != "" {
		if gen, err = genesis.Load(cfg.Ledger.GenesisFile); err != nil {
			return fmt.Errorf("unable to load genesis file: %w", err)
		}
	}

	hashFn, err := signature.RetrieveHashFunc(cfg.Ledger.HashFunc)
	if err != nil {
		return err
	}

	// The ledger packages accept a function of this signature to allow the
	// application to log. These raw messages are also sent to any subscriber
	// through the events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", traceID)
		evts.Send(s)
	}

	// Print the mining events to the console as they happen.
	var wg sync.WaitGroup
	wg.Add(1)
	_, ch := evts.Acquire()
	log.Infow("startup", "status", "events", "subscribers", evts.Count(), "traceid", traceID)
	go func() {
		defer wg.Done()
		for s := range ch {
			fmt.Println(s)
		}
	}()
	defer func() {
		evts.Shutdown()
		wg.Wait()
	}()

	ledger, err := state.New(state.Config{
		Genesis:   gen,
		HashFunc:  hashFn,
		EvHandler: ev,
	})
	if err != nil {
		return fmt.Errorf("unable to construct ledger: %w", err)
	}

	// =========================================================================
	// Demo

	mine := func(rewardID database.AccountID) error {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Ledger.MineTimeout)
		defer cancel()

		block, err := ledger.MinePendingTransactions(ctx, rewardID)
		if err != nil {
			return fmt.Errorf("mining block: %w", err)
		}

		log.Infow("demo", "status", "block mined", "hash", block.Hash, "trans", len(block.Trans), "traceid", traceID)
		return nil
	}

	// Remember that the reward is applied to the NEXT block that is mined.
	log.Infow("demo", "status", "starting the miner", "reward", ns.Lookup(sender), "traceid", traceID)
	if err := mine(sender); err != nil {
		return err
	}

	tx := database.NewTx(sender, database.AccountID(cfg.Demo.Recipient), cfg.Demo.Amount)
	if err := tx.Sign(senderKey); err != nil {
		return fmt.Errorf("signing transaction: %w", err)
	}

	if err := ledger.AddTransaction(tx); err != nil {
		return fmt.Errorf("adding transaction: %w", err)
	}
	signer, err := tx.SignerID()
	if err != nil {
		return fmt.Errorf("recovering signer: %w", err)
	}
	log.Infow("demo", "status", "transaction added", "tx", tx.String(), "signer", ns.Lookup(signer), "sig", tx.SignatureString(), "traceid", traceID)

	log.Infow("demo", "status", "starting the miner again", "reward", cfg.Demo.RewardAddress, "traceid", traceID)
	if err := mine(database.AccountID(cfg.Demo.RewardAddress)); err != nil {
		return err
	}

	// =========================================================================
	// Report

	balances := ledger.QueryBalances()
	accounts := make([]database.AccountID, 0, len(balances))
	for account := range balances {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i] < accounts[j] })

	for _, account := range accounts {
		log.Infow("report", "account", ns.Lookup(account), "balance", balances[account], "traceid", traceID)
	}

	log.Infow("report", "blocks", len(ledger.RetrieveBlocks()), "pending", ledger.QueryMempoolLength(), "valid", ledger.IsChainValid(), "traceid", traceID)

	return nil
}
