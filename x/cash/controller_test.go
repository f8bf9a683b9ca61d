package cash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geode-network/geode/coin"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/geodetest"
	"github.com/geode-network/geode/migration"
	"github.com/geode-network/geode/store"
)

func TestControllerMoveCoins(t *testing.T) {
	db := store.MemStore()
	migration.MustInitPkg(db, "cash")

	alice := geodetest.NewCondition().Address()
	bob := geodetest.NewCondition().Address()

	control := NewController()
	require.NoError(t, control.IssueCoins(db, alice, 100))

	// plain happy path transfer, creating the destination wallet
	require.NoError(t, control.MoveCoins(db, alice, bob, 30))
	balance, err := control.Balance(db, alice)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(70), balance)
	balance, err = control.Balance(db, bob)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(30), balance)

	// cannot send more than what is owned
	err = control.MoveCoins(db, alice, bob, 71)
	assert.True(t, errors.ErrAmount.Is(err), "got %+v", err)

	// a zero transfer is refused
	err = control.MoveCoins(db, alice, bob, 0)
	assert.True(t, errors.ErrAmount.Is(err), "got %+v", err)

	// an account that was never funded cannot send
	carl := geodetest.NewCondition().Address()
	err = control.MoveCoins(db, carl, bob, 1)
	assert.True(t, errors.ErrEmpty.Is(err), "got %+v", err)
}

func TestControllerIssueCoins(t *testing.T) {
	db := store.MemStore()
	migration.MustInitPkg(db, "cash")

	addr := geodetest.NewCondition().Address()
	control := NewController()

	// a missing wallet reads as a zero balance
	balance, err := control.Balance(db, addr)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	require.NoError(t, control.IssueCoins(db, addr, 500))
	require.NoError(t, control.IssueCoins(db, addr, 7))
	balance, err = control.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(507), balance)

	// minting past the maximum amount is refused
	err = control.IssueCoins(db, addr, coin.MaxAmount)
	assert.True(t, errors.ErrOverflow.Is(err), "got %+v", err)
}

func TestControllerOverflowOnMove(t *testing.T) {
	db := store.MemStore()
	migration.MustInitPkg(db, "cash")

	rich := geodetest.NewCondition().Address()
	full := geodetest.NewCondition().Address()

	control := NewController()
	require.NoError(t, control.IssueCoins(db, rich, 100))
	require.NoError(t, control.IssueCoins(db, full, coin.MaxAmount))

	err := control.MoveCoins(db, rich, full, 1)
	assert.True(t, errors.ErrOverflow.Is(err), "got %+v", err)

	// sender balance must be untouched after a failed transfer
	balance, err := control.Balance(db, rich)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(100), balance)
}
