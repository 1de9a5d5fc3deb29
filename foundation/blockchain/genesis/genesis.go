// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ardanlabs/ledger/foundation/validate"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date         time.Time `json:"date"`                                                      // The timestamp of the genesis block.
	Difficulty   uint16    `json:"difficulty" validate:"min=1,max=64"`                        // How difficult it needs to be to solve the work problem.
	MiningReward uint64    `json:"mining_reward" validate:"required,max=9223372036854775807"` // Reward for mining a block.
}

// Default returns the genesis information the ledger starts with when no
// genesis file is provided.
func Default() Genesis {
	return Genesis{
		Date:         time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		Difficulty:   2,
		MiningReward: 100,
	}
}

// Validate checks the genesis values can be used to run a ledger. The
// mining reward has to fit a signed balance.
func (g Genesis) Validate() error {
	return validate.Check(g)
}

// =============================================================================

// Load opens and consumes the genesis file. Fields missing from the file
// keep their default values.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	err = json.Unmarshal(content, &genesis)
	if err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
