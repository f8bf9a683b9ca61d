package cash

import (
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/migration"
	"github.com/geode-network/geode/orm"
)

func init() {
	migration.MustRegister(1, &Wallet{}, migration.NoModification)
}

var _ orm.Model = (*Wallet)(nil)

// Validate ensures the wallet is sane. A zero balance is valid.
func (w *Wallet) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", w.Metadata.Validate())
	return errs
}

// NewWalletBucket returns a bucket for keeping track of token balances,
// keyed by the account address.
func NewWalletBucket() orm.ModelBucket {
	b := orm.NewModelBucket("cash", &Wallet{})
	return migration.NewModelBucket("cash", b)
}
