package faucet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/app"
	"github.com/geode-network/geode/coin"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/geodetest"
	"github.com/geode-network/geode/migration"
	"github.com/geode-network/geode/store"
	"github.com/geode-network/geode/x/cash"
)

var genesisTime = time.Unix(1500000000, 0)

// faucetTest wires a router with the faucet and a funded cash controller.
// Signers are attached per call via the context so a single fixture can
// play multiple identities.
type faucetTest struct {
	db      store.CacheableKVStore
	rt      *app.Router
	auth    *geodetest.CtxAuth
	control cash.Controller
}

func newFaucetTest(t *testing.T) *faucetTest {
	t.Helper()

	db := store.MemStore()
	migration.MustInitPkg(db, "cash", "faucet")

	auth := &geodetest.CtxAuth{Key: "auth"}
	control := cash.NewController()
	rt := app.NewRouter()
	RegisterRoutes(rt, auth, control)

	return &faucetTest{db: db, rt: rt, auth: auth, control: control}
}

// deliver dispatches the message signed by the given condition at the
// given block time.
func (f *faucetTest) deliver(signer geode.Condition, at time.Time, msg geode.Msg) (*geode.DeliverResult, error) {
	ctx := geode.WithBlockTime(context.Background(), at)
	ctx = f.auth.SetConditions(ctx, signer)
	return f.rt.Deliver(ctx, f.db, &geodetest.Tx{Msg: msg})
}

func (f *faucetTest) setAdmin(t *testing.T, signer, admin geode.Condition) {
	t.Helper()
	_, err := f.deliver(signer, genesisTime, &SetAdminMsg{
		Metadata: &geode.Metadata{Schema: 1},
		NewAdmin: admin.Address(),
	})
	require.NoError(t, err)
}

func (f *faucetTest) configure(t *testing.T, admin geode.Condition, msg *SetPayoutsMsg) {
	t.Helper()
	if msg.Metadata == nil {
		msg.Metadata = &geode.Metadata{Schema: 1}
	}
	_, err := f.deliver(admin, genesisTime, msg)
	require.NoError(t, err)
}

func (f *faucetTest) balance(t *testing.T, a geode.Address) coin.Amount {
	t.Helper()
	balance, err := f.control.Balance(f.db, a)
	require.NoError(t, err)
	return balance
}

func TestSetAdminLifecycle(t *testing.T) {
	f := newFaucetTest(t)
	alice := geodetest.NewCondition()
	bob := geodetest.NewCondition()
	eve := geodetest.NewCondition()

	// An unconfigured faucet accepts any first admin.
	f.setAdmin(t, alice, alice)

	conf, err := loadConf(f.db)
	require.NoError(t, err)
	assert.Equal(t, alice.Address(), conf.Admin)

	// Nobody but the admin can rotate.
	_, err = f.deliver(eve, genesisTime, &SetAdminMsg{
		Metadata: &geode.Metadata{Schema: 1},
		NewAdmin: eve.Address(),
	})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	conf, err = loadConf(f.db)
	require.NoError(t, err)
	assert.Equal(t, alice.Address(), conf.Admin)

	// The admin can hand over.
	f.setAdmin(t, alice, bob)

	conf, err = loadConf(f.db)
	require.NoError(t, err)
	assert.Equal(t, bob.Address(), conf.Admin)

	// The old admin lost the power.
	_, err = f.deliver(alice, genesisTime, &SetAdminMsg{
		Metadata: &geode.Metadata{Schema: 1},
		NewAdmin: alice.Address(),
	})
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestSetPayouts(t *testing.T) {
	f := newFaucetTest(t)
	admin := geodetest.NewCondition()
	eve := geodetest.NewCondition()

	msg := &SetPayoutsMsg{
		Metadata:        &geode.Metadata{Schema: 1},
		EligiblePayout:  1,
		ClaimPayout:     10,
		RateLimitWindow: 3600,
		AddressQuota:    2,
	}

	// Without an admin nobody can configure.
	_, err := f.deliver(admin, genesisTime, msg)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	f.setAdmin(t, admin, admin)

	// Still admin only.
	_, err = f.deliver(eve, genesisTime, msg)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	require.NoError(t, f.control.IssueCoins(f.db, admin.Address(), 1000))
	msg.Funding = 400
	f.configure(t, admin, msg)

	conf, err := loadConf(f.db)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(1), conf.EligiblePayout)
	assert.Equal(t, coin.Amount(10), conf.ClaimPayout)
	assert.Equal(t, geode.UnixDuration(3600), conf.RateLimitWindow)
	assert.Equal(t, uint64(2), conf.AddressQuota)

	assert.Equal(t, coin.Amount(400), f.balance(t, PoolAddress()))
	assert.Equal(t, coin.Amount(600), f.balance(t, admin.Address()))

	// Funding above the admin balance fails the whole update.
	msg.Funding = 100000
	_, err = f.deliver(admin, genesisTime, msg)
	assert.True(t, errors.ErrAmount.Is(err))
}

// setupClaimable returns a fixture with an admin, a 10 token claim
// payout, a one hour window, a quota of 2 accounts per address and a
// pool holding 1000 tokens.
func setupClaimable(t *testing.T) (*faucetTest, geode.Condition) {
	t.Helper()
	f := newFaucetTest(t)
	admin := geodetest.NewCondition()
	f.setAdmin(t, admin, admin)
	require.NoError(t, f.control.IssueCoins(f.db, admin.Address(), 1000))
	f.configure(t, admin, &SetPayoutsMsg{
		Metadata:        &geode.Metadata{Schema: 1},
		EligiblePayout:  1,
		ClaimPayout:     10,
		RateLimitWindow: 3600,
		AddressQuota:    2,
		Funding:         1000,
	})
	return f, admin
}

func TestClaimFirstAlwaysSucceeds(t *testing.T) {
	f, _ := setupClaimable(t)
	alice := geodetest.NewCondition()
	addr := []byte("192.0.2.7")

	res, err := f.deliver(alice, genesisTime, &ClaimMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  addr,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Tags)

	assert.Equal(t, coin.Amount(10), f.balance(t, alice.Address()))
	assert.Equal(t, coin.Amount(990), f.balance(t, PoolAddress()))

	var rec AccountRecord
	require.NoError(t, NewAccountBucket().One(f.db, alice.Address(), &rec))
	assert.Equal(t, coin.Amount(10), rec.TotalReceived)
	assert.Equal(t, geode.AsUnixTime(genesisTime), rec.LastClaim)
	assert.Equal(t, addr, rec.LastAddress)

	ok, err := VerifyAccount(f.db, alice.Address())
	require.NoError(t, err)
	assert.True(t, ok)

	stats, err := loadStats(NewStatsBucket(), f.db)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.AccountsOnboarded)
	assert.Equal(t, coin.Amount(10), stats.PayoutVolume)
}

func TestClaimRateLimit(t *testing.T) {
	f, _ := setupClaimable(t)
	alice := geodetest.NewCondition()
	claim := &ClaimMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  []byte("192.0.2.7"),
	}

	_, err := f.deliver(alice, genesisTime, claim)
	require.NoError(t, err)

	// A second claim within the window is rejected without mutation.
	_, err = f.deliver(alice, genesisTime.Add(time.Hour-time.Second), claim)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	var rec AccountRecord
	require.NoError(t, NewAccountBucket().One(f.db, alice.Address(), &rec))
	assert.Equal(t, coin.Amount(10), rec.TotalReceived)

	// A full window later the claim is accepted again.
	_, err = f.deliver(alice, genesisTime.Add(time.Hour), claim)
	require.NoError(t, err)

	require.NoError(t, NewAccountBucket().One(f.db, alice.Address(), &rec))
	assert.Equal(t, coin.Amount(20), rec.TotalReceived)

	// Onboarding is counted once per account.
	stats, err := loadStats(NewStatsBucket(), f.db)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.AccountsOnboarded)
	assert.Equal(t, coin.Amount(20), stats.PayoutVolume)
}

func TestClaimAddressQuota(t *testing.T) {
	f, admin := setupClaimable(t)
	f.configure(t, admin, &SetPayoutsMsg{
		Metadata:        &geode.Metadata{Schema: 1},
		ClaimPayout:     10,
		RateLimitWindow: 3600,
		AddressQuota:    1,
	})

	alice := geodetest.NewCondition()
	bob := geodetest.NewCondition()
	addr := []byte("192.0.2.7")

	_, err := f.deliver(alice, genesisTime, &ClaimMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  addr,
	})
	require.NoError(t, err)

	// The address is used up, another account is rejected.
	_, err = f.deliver(bob, genesisTime, &ClaimMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  addr,
	})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	ok, err := VerifyAccount(f.db, bob.Address())
	require.NoError(t, err)
	assert.False(t, ok)

	// The tagged account itself may keep using the address.
	_, err = f.deliver(alice, genesisTime.Add(2*time.Hour), &ClaimMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  addr,
	})
	require.NoError(t, err)

	// The tag set holds the account only once.
	var tags AddressTags
	require.NoError(t, NewAddressBucket().One(f.db, addr, &tags))
	assert.Len(t, tags.Accounts, 1)
}

func TestClaimDryPoolStillBookkeeps(t *testing.T) {
	f := newFaucetTest(t)
	admin := geodetest.NewCondition()
	f.setAdmin(t, admin, admin)
	require.NoError(t, f.control.IssueCoins(f.db, admin.Address(), 10))
	f.configure(t, admin, &SetPayoutsMsg{
		Metadata:        &geode.Metadata{Schema: 1},
		ClaimPayout:     10,
		RateLimitWindow: 3600,
		AddressQuota:    2,
		Funding:         10,
	})

	alice := geodetest.NewCondition()

	// The pool holds exactly the payout which is not strictly more, so
	// no tokens move but the claim is recorded anyway.
	res, err := f.deliver(alice, genesisTime, &ClaimMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  []byte("192.0.2.7"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Tags)

	assert.Equal(t, coin.Amount(0), f.balance(t, alice.Address()))
	assert.Equal(t, coin.Amount(10), f.balance(t, PoolAddress()))

	var rec AccountRecord
	require.NoError(t, NewAccountBucket().One(f.db, alice.Address(), &rec))
	assert.Equal(t, coin.Amount(10), rec.TotalReceived)

	stats, err := loadStats(NewStatsBucket(), f.db)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(10), stats.PayoutVolume)
}

func TestClaimTotalsSaturate(t *testing.T) {
	f, _ := setupClaimable(t)
	alice := geodetest.NewCondition()

	// Pre-seed a record close to the maximum representable total.
	rec := AccountRecord{
		Metadata:      &geode.Metadata{Schema: 1},
		LastClaim:     1,
		TotalReceived: coin.MaxAmount - 3,
	}
	require.NoError(t, NewAccountBucket().Put(f.db, alice.Address(), &rec))

	_, err := f.deliver(alice, genesisTime, &ClaimMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  []byte("192.0.2.7"),
	})
	require.NoError(t, err)

	require.NoError(t, NewAccountBucket().One(f.db, alice.Address(), &rec))
	assert.Equal(t, coin.MaxAmount, rec.TotalReceived)
}

func TestCheckEligibility(t *testing.T) {
	f, _ := setupClaimable(t)
	alice := geodetest.NewCondition()
	check := &CheckEligibilityMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  []byte("192.0.2.7"),
	}

	res, err := f.deliver(alice, genesisTime, check)
	require.NoError(t, err)
	assert.Equal(t, []byte{statusAllowed}, res.Data)
	assert.NotEmpty(t, res.Tags)
	assert.Equal(t, coin.Amount(1), f.balance(t, alice.Address()))

	// The check does not write any claim bookkeeping.
	var rec AccountRecord
	err = NewAccountBucket().One(f.db, alice.Address(), &rec)
	assert.True(t, errors.ErrNotFound.Is(err))
	ok, err := VerifyAccount(f.db, alice.Address())
	require.NoError(t, err)
	assert.False(t, ok)

	// After a claim the account is rate limited and the check denies.
	_, err = f.deliver(alice, genesisTime, &ClaimMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  check.Address,
	})
	require.NoError(t, err)

	res, err = f.deliver(alice, genesisTime.Add(time.Minute), check)
	require.NoError(t, err)
	assert.Equal(t, []byte{statusDenied}, res.Data)
	assert.Empty(t, res.Tags)
}

func TestCheckEligibilityDryPool(t *testing.T) {
	f := newFaucetTest(t)
	admin := geodetest.NewCondition()
	f.setAdmin(t, admin, admin)
	f.configure(t, admin, &SetPayoutsMsg{
		Metadata:        &geode.Metadata{Schema: 1},
		EligiblePayout:  1,
		ClaimPayout:     10,
		RateLimitWindow: 3600,
		AddressQuota:    2,
	})

	alice := geodetest.NewCondition()

	// An empty pool skips the transfer but the answer is still the
	// positive one and the notification carries the nominal amount.
	res, err := f.deliver(alice, genesisTime, &CheckEligibilityMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  []byte("192.0.2.7"),
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{statusAllowed}, res.Data)
	assert.NotEmpty(t, res.Tags)
	assert.Equal(t, coin.Amount(0), f.balance(t, alice.Address()))
}

func TestZeroPayoutConfiguration(t *testing.T) {
	f := newFaucetTest(t)
	admin := geodetest.NewCondition()
	f.setAdmin(t, admin, admin)
	require.NoError(t, f.control.IssueCoins(f.db, admin.Address(), 1000))
	f.configure(t, admin, &SetPayoutsMsg{
		Metadata:        &geode.Metadata{Schema: 1},
		EligiblePayout:  0,
		ClaimPayout:     0,
		RateLimitWindow: 3600,
		AddressQuota:    2,
		Funding:         100,
	})

	alice := geodetest.NewCondition()
	addr := []byte("192.0.2.7")

	// A zero payout has nothing to transfer and must not fail.
	res, err := f.deliver(alice, genesisTime, &CheckEligibilityMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  addr,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{statusAllowed}, res.Data)

	_, err = f.deliver(alice, genesisTime, &ClaimMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  addr,
	})
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(0), f.balance(t, alice.Address()))
	assert.Equal(t, coin.Amount(100), f.balance(t, PoolAddress()))

	// The claim is still recorded.
	var rec AccountRecord
	require.NoError(t, NewAccountBucket().One(f.db, alice.Address(), &rec))
	assert.Equal(t, coin.Amount(0), rec.TotalReceived)
	assert.Equal(t, geode.AsUnixTime(genesisTime), rec.LastClaim)
}

func TestUnconfiguredFaucetDenies(t *testing.T) {
	f := newFaucetTest(t)
	alice := geodetest.NewCondition()
	addr := []byte("192.0.2.7")

	// Without a stored configuration all settings act as zero. The
	// quota of zero denies everyone, there is no storage error.
	res, err := f.deliver(alice, genesisTime, &CheckEligibilityMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  addr,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{statusDenied}, res.Data)

	_, err = f.deliver(alice, genesisTime, &ClaimMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  addr,
	})
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestQueries(t *testing.T) {
	f, _ := setupClaimable(t)
	alice := geodetest.NewCondition()
	bob := geodetest.NewCondition()
	addr := []byte("192.0.2.7")

	_, err := f.deliver(alice, genesisTime, &ClaimMsg{
		Metadata: &geode.Metadata{Schema: 1},
		Address:  addr,
	})
	require.NoError(t, err)

	qr := geode.NewQueryRouter()
	RegisterQuery(qr)

	h := qr.Handler("/faucet/info")
	require.NotNil(t, h)
	models, err := h.Query(f.db, geode.KeyQueryMod, nil)
	require.NoError(t, err)
	require.Len(t, models, 1)
	var info Info
	require.NoError(t, info.Unmarshal(models[0].Value))
	require.NotNil(t, info.Configuration)
	assert.Equal(t, coin.Amount(10), info.Configuration.ClaimPayout)
	require.NotNil(t, info.Stats)
	assert.Equal(t, uint64(1), info.Stats.AccountsOnboarded)
	assert.Equal(t, coin.Amount(10), info.Stats.PayoutVolume)

	h = qr.Handler("/faucet/verify")
	require.NotNil(t, h)
	models, err = h.Query(f.db, geode.KeyQueryMod, alice.Address())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, []byte{1}, models[0].Value)

	models, err = h.Query(f.db, geode.KeyQueryMod, bob.Address())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, []byte{0}, models[0].Value)
}
