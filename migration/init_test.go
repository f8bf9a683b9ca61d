package migration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/geodetest"
	"github.com/geode-network/geode/store"
)

func TestGenesisInitializer(t *testing.T) {
	db := store.MemStore()
	admin := geodetest.NewCondition().Address()

	opts := geode.Options{
		"conf": json.RawMessage(`{
			"migration": {
				"metadata": {"schema": 1},
				"admin": "` + admin.String() + `"
			}
		}`),
	}

	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	got, err := CurrentAdmin(db)
	require.NoError(t, err)
	assert.Equal(t, admin, got)
}

func TestGenesisInitializerRequiresConfiguration(t *testing.T) {
	db := store.MemStore()

	var ini Initializer
	err := ini.FromGenesis(geode.Options{}, db)
	assert.Error(t, err)
}
