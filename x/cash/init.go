package cash

import (
	"github.com/geode-network/geode"
	"github.com/geode-network/geode/coin"
)

// GenesisAccount is used to parse the json from the genesis file. The
// address is in hex, not base64.
type GenesisAccount struct {
	Address geode.Address `json:"address"`
	Balance coin.Amount   `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ geode.Initializer = Initializer{}

// FromGenesis will parse initial account balances from genesis and save
// them to the database.
func (Initializer) FromGenesis(opts geode.Options, kv geode.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions("cash", &accts); err != nil {
		return err
	}
	bucket := NewWalletBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return err
		}
		wallet := Wallet{
			Metadata: &geode.Metadata{Schema: 1},
			Balance:  acct.Balance,
		}
		if err := bucket.Put(kv, acct.Address, &wallet); err != nil {
			return err
		}
	}
	return nil
}
