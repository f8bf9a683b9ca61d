package faucet

import (
	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/gconf"
)

// Validate ensures the configuration is valid. An empty admin address is
// allowed, it means nobody claimed the faucet yet. Payout amounts and the
// rate limit window are not bound, the admin is trusted with any value.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if len(c.Admin) != 0 {
		errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	}
	if c.RateLimitWindow < 0 {
		errs = errors.AppendField(errs, "RateLimitWindow",
			errors.Wrap(errors.ErrInput, "negative duration"))
	}
	return errs
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "faucet", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

func saveConf(db geode.KVStore, conf *Configuration) error {
	return gconf.Save(db, "faucet", conf)
}
