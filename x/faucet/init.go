package faucet

import (
	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ geode.Initializer = Initializer{}

// FromGenesis will parse the faucet configuration from genesis and save
// it to the database. A chain without a faucet configuration in genesis
// starts unconfigured, the first SetAdminMsg claims it.
func (Initializer) FromGenesis(opts geode.Options, kv geode.KVStore) error {
	conf := Configuration{
		Metadata: &geode.Metadata{Schema: 1},
	}
	err := gconf.InitConfig(kv, opts, "faucet", &conf)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
