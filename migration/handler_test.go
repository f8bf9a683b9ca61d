package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/gconf"
	"github.com/geode-network/geode/geodetest"
	"github.com/geode-network/geode/store"
)

func TestUpgradeSchemaHandler(t *testing.T) {
	admin := geodetest.NewCondition()
	eve := geodetest.NewCondition()

	cases := map[string]struct {
		signer  geode.Condition
		msg     *UpgradeSchemaMsg
		wantErr *errors.Error
		wantVer uint32
	}{
		"admin can bump the schema": {
			signer: admin,
			msg: &UpgradeSchemaMsg{
				Metadata:  &geode.Metadata{Schema: 1},
				Pkg:       "mypkg",
				ToVersion: 2,
			},
			wantVer: 2,
		},
		"only the admin is authorized": {
			signer: eve,
			msg: &UpgradeSchemaMsg{
				Metadata:  &geode.Metadata{Schema: 1},
				Pkg:       "mypkg",
				ToVersion: 2,
			},
			wantErr: errors.ErrUnauthorized,
		},
		"version gaps are rejected": {
			signer: admin,
			msg: &UpgradeSchemaMsg{
				Metadata:  &geode.Metadata{Schema: 1},
				Pkg:       "mypkg",
				ToVersion: 4,
			},
			wantErr: errors.ErrInput,
		},
		"message must name a package": {
			signer: admin,
			msg: &UpgradeSchemaMsg{
				Metadata:  &geode.Metadata{Schema: 1},
				ToVersion: 2,
			},
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			MustInitPkg(db, "mypkg")
			require.NoError(t, gconf.Save(db, "migration", &Configuration{
				Metadata: &geode.Metadata{Schema: 1},
				Admin:    admin.Address(),
			}))

			auth := &geodetest.Auth{Signer: tc.signer}
			h := upgradeSchemaHandler{
				bucket: NewSchemaBucket(),
				auth:   auth,
			}
			tx := &geodetest.Tx{Msg: tc.msg}

			_, err := h.Deliver(nil, db, tx)
			if tc.wantErr != nil {
				assert.Truef(t, tc.wantErr.Is(err), "want %q, got %+v", tc.wantErr, err)
				return
			}
			require.NoError(t, err)

			ver, err := NewSchemaBucket().CurrentSchema(db, tc.msg.Pkg)
			require.NoError(t, err)
			assert.Equal(t, tc.wantVer, ver)
		})
	}
}

func TestSchemaMigratingHandlerUpgradesMessage(t *testing.T) {
	db := store.MemStore()

	// The package starts at schema 1 and is then bumped so that the
	// incoming schema 1 message must be migrated on the fly.
	reg := newRegister()
	reg.MustRegister(1, &toUpgradeMsg{}, NoModification)
	reg.MustRegister(2, &toUpgradeMsg{}, func(db geode.ReadOnlyKVStore, m Migratable) error {
		m.(*toUpgradeMsg).Content += " upgraded"
		return nil
	})

	ensureSchemaVersion(t, db, "mypkg", 2)

	var next geodetest.Handler
	h := schemaMigratingHandler{
		handler:     &next,
		packageName: "mypkg",
		schema:      NewSchemaBucket(),
		migrations:  reg,
	}

	msg := toUpgradeMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Content:  "payload",
	}
	_, err := h.Deliver(nil, db, &geodetest.Tx{Msg: &msg})
	require.NoError(t, err)
	assert.Equal(t, 1, next.DeliverCallCount())
	assert.Equal(t, uint32(2), msg.Metadata.Schema)
	assert.Equal(t, "payload upgraded", msg.Content)
}

func ensureSchemaVersion(t *testing.T, db geode.KVStore, pkg string, version uint32) {
	t.Helper()
	b := NewSchemaBucket()
	for v := uint32(1); v <= version; v++ {
		_, err := b.Create(db, &Schema{
			Metadata: &geode.Metadata{Schema: 1},
			Pkg:      pkg,
			Version:  v,
		})
		require.NoError(t, err)
	}
}

// toUpgradeMsg is a minimal migratable message for handler tests.
type toUpgradeMsg struct {
	Metadata *geode.Metadata
	Content  string
}

var _ geode.Msg = (*toUpgradeMsg)(nil)
var _ Migratable = (*toUpgradeMsg)(nil)

func (msg *toUpgradeMsg) GetMetadata() *geode.Metadata { return msg.Metadata }
func (msg *toUpgradeMsg) Validate() error              { return msg.Metadata.Validate() }
func (toUpgradeMsg) Path() string                      { return "testpkg/to_upgrade" }
func (msg *toUpgradeMsg) Marshal() ([]byte, error)     { return []byte(msg.Content), nil }
func (msg *toUpgradeMsg) Unmarshal(b []byte) error {
	msg.Content = string(b)
	return nil
}
