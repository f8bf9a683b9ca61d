package migration

import (
	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/gconf"
)

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ geode.Initializer = Initializer{}

// FromGenesis will parse initial extension configuration from genesis
// and save it to the database
func (Initializer) FromGenesis(opts geode.Options, kv geode.KVStore) error {
	if err := gconf.InitConfig(kv, opts, "migration", &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}
	return nil
}
