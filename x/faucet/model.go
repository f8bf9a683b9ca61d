package faucet

import (
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/migration"
	"github.com/geode-network/geode/orm"
)

func init() {
	migration.MustRegister(1, &AccountRecord{}, migration.NoModification)
	migration.MustRegister(1, &AddressTags{}, migration.NoModification)
	migration.MustRegister(1, &Stats{}, migration.NoModification)
}

var _ orm.Model = (*AccountRecord)(nil)

// Validate ensures the account record is valid.
func (rec *AccountRecord) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", rec.Metadata.Validate())
	errs = errors.AppendField(errs, "LastClaim", rec.LastClaim.Validate())
	return errs
}

var _ orm.Model = (*AddressTags)(nil)

// Validate ensures the tag set is valid.
func (t *AddressTags) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", t.Metadata.Validate())
	for i, a := range t.Accounts {
		if err := a.Validate(); err != nil {
			errs = errors.Append(errs,
				errors.Wrapf(err, "account #%d", i))
		}
	}
	return errs
}

// Contains returns true if the given account already claimed with this
// address.
func (t *AddressTags) Contains(account []byte) bool {
	for _, a := range t.Accounts {
		if a.Equals(account) {
			return true
		}
	}
	return false
}

var _ orm.Model = (*Stats)(nil)

// Validate ensures the counters are valid.
func (s *Stats) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	return errs
}

// statsKey is the fixed key the Stats singleton is stored under.
var statsKey = []byte("global")

// NewAccountBucket returns a bucket for keeping claim records, one per
// account address.
func NewAccountBucket() *migration.ModelBucket {
	b := orm.NewModelBucket("faucet", &AccountRecord{})
	return migration.NewModelBucket("faucet", b)
}

// NewAddressBucket returns a bucket for keeping per network address tag
// sets, keyed by the claimed address bytes.
func NewAddressBucket() *migration.ModelBucket {
	b := orm.NewModelBucket("faucetaddr", &AddressTags{})
	return migration.NewModelBucket("faucet", b)
}

// NewStatsBucket returns a bucket holding the Stats singleton.
func NewStatsBucket() *migration.ModelBucket {
	b := orm.NewModelBucket("faucetstat", &Stats{})
	return migration.NewModelBucket("faucet", b)
}
