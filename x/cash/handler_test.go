package cash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/app"
	"github.com/geode-network/geode/coin"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/geodetest"
	"github.com/geode-network/geode/migration"
	"github.com/geode-network/geode/store"
)

func TestSendHandler(t *testing.T) {
	alice := geodetest.NewCondition()
	bob := geodetest.NewCondition()

	cases := map[string]struct {
		signer  geode.Condition
		msg     *SendMsg
		wantErr *errors.Error
	}{
		"successful transfer": {
			signer: alice,
			msg: &SendMsg{
				Metadata: &geode.Metadata{Schema: 1},
				Src:      alice.Address(),
				Dest:     bob.Address(),
				Amount:   20,
			},
		},
		"missing source signature": {
			signer: bob,
			msg: &SendMsg{
				Metadata: &geode.Metadata{Schema: 1},
				Src:      alice.Address(),
				Dest:     bob.Address(),
				Amount:   20,
			},
			wantErr: errors.ErrUnauthorized,
		},
		"zero amount": {
			signer: alice,
			msg: &SendMsg{
				Metadata: &geode.Metadata{Schema: 1},
				Src:      alice.Address(),
				Dest:     bob.Address(),
				Amount:   0,
			},
			wantErr: errors.ErrAmount,
		},
		"insufficient funds": {
			signer: alice,
			msg: &SendMsg{
				Metadata: &geode.Metadata{Schema: 1},
				Src:      alice.Address(),
				Dest:     bob.Address(),
				Amount:   1000,
			},
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "cash")

			control := NewController()
			require.NoError(t, control.IssueCoins(db, alice.Address(), 100))

			auth := &geodetest.Auth{Signer: tc.signer}
			rt := app.NewRouter()
			RegisterRoutes(rt, auth, control)

			tx := &geodetest.Tx{Msg: tc.msg}

			_, err := rt.Check(nil, db, tx)
			if tc.wantErr != nil {
				assert.Truef(t, tc.wantErr.Is(err) || err == nil,
					"unexpected check error: %+v", err)
			}

			_, err = rt.Deliver(nil, db, tx)
			if tc.wantErr != nil {
				assert.Truef(t, tc.wantErr.Is(err), "want %q, got %+v", tc.wantErr, err)
				return
			}
			require.NoError(t, err)

			balance, err := control.Balance(db, bob.Address())
			require.NoError(t, err)
			assert.Equal(t, coin.Amount(20), balance)
			balance, err = control.Balance(db, alice.Address())
			require.NoError(t, err)
			assert.Equal(t, coin.Amount(80), balance)
		})
	}
}
