package faucet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/coin"
	"github.com/geode-network/geode/geodetest"
	"github.com/geode-network/geode/store"
)

func TestGenesisInitializer(t *testing.T) {
	db := store.MemStore()
	admin := geodetest.NewCondition().Address()

	opts := geode.Options{
		"conf": json.RawMessage(`{
			"faucet": {
				"metadata": {"schema": 1},
				"admin": "` + admin.String() + `",
				"eligible_payout": 1,
				"claim_payout": "25",
				"rate_limit_window": "1h",
				"address_quota": 3
			}
		}`),
	}

	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, admin, conf.Admin)
	assert.Equal(t, coin.Amount(1), conf.EligiblePayout)
	assert.Equal(t, coin.Amount(25), conf.ClaimPayout)
	assert.Equal(t, geode.UnixDuration(3600), conf.RateLimitWindow)
	assert.Equal(t, uint64(3), conf.AddressQuota)
}

func TestGenesisInitializerWithoutConfiguration(t *testing.T) {
	db := store.MemStore()

	// The faucet is optional in genesis. No configuration means an
	// unconfigured faucet that the first SetAdminMsg can claim.
	var ini Initializer
	require.NoError(t, ini.FromGenesis(geode.Options{}, db))

	_, err := loadConf(db)
	assert.Error(t, err)
}
