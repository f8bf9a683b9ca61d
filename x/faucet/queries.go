package faucet

import (
	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/migration"
)

// infoQuery answers "/faucet/info" with a single Info message combining
// the configuration and the running counters. Query data is ignored.
type infoQuery struct{}

var _ geode.QueryHandler = (*infoQuery)(nil)

func (q *infoQuery) Query(db geode.ReadOnlyKVStore, mod string, data []byte) ([]geode.Model, error) {
	if mod != geode.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %q", mod)
	}
	info := Info{}
	switch conf, err := loadConf(db); {
	case err == nil:
		info.Configuration = conf
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	stats, err := loadStats(NewStatsBucket(), db)
	if err != nil {
		return nil, err
	}
	info.Stats = stats
	raw, err := info.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal info")
	}
	return []geode.Model{{Key: []byte("faucet:info"), Value: raw}}, nil
}

// verifyQuery answers "/faucet/verify" with a single byte, 1 when the
// account ever claimed and 0 otherwise. The query data is the account
// address.
type verifyQuery struct {
	accounts *migration.ModelBucket
}

var _ geode.QueryHandler = (*verifyQuery)(nil)

func (q *verifyQuery) Query(db geode.ReadOnlyKVStore, mod string, data []byte) ([]geode.Model, error) {
	if mod != geode.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %q", mod)
	}
	account := geode.Address(data)
	if err := account.Validate(); err != nil {
		return nil, errors.Wrap(err, "account")
	}
	claimed, err := q.accounts.Has(db, account)
	if err != nil {
		return nil, errors.Wrap(err, "account record")
	}
	answer := byte(0)
	if claimed {
		answer = 1
	}
	return []geode.Model{{Key: data, Value: []byte{answer}}}, nil
}
