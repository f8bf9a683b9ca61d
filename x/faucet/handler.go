package faucet

import (
	"fmt"
	"strconv"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/coin"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/gconf"
	"github.com/geode-network/geode/migration"
	"github.com/geode-network/geode/x"
	"github.com/geode-network/geode/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	configTxCost int64 = 50
	payoutTxCost int64 = 100
)

// Status bytes returned in DeliverResult.Data by the eligibility check.
const (
	// statusDenied means the caller is not eligible for a payout.
	statusDenied byte = 0
	// statusAllowed means the caller is eligible. Tokens were moved
	// unless the pool balance was too low to cover the payout.
	statusAllowed byte = 1
	// statusFailed means the caller is eligible but the transfer of
	// the payout failed.
	statusFailed byte = 2
)

// poolCondition guards the wallet holding the faucet funds.
var poolCondition = geode.NewCondition("faucet", "pool", []byte("main"))

// PoolAddress returns the address of the wallet that holds the faucet
// funds. The admin tops it up via SetPayoutsMsg funding.
func PoolAddress() geode.Address {
	return poolCondition.Address()
}

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r geode.Registry, auth x.Authenticator, control cash.Controller) {
	r = migration.SchemaMigratingRegistry("faucet", r)

	r.Handle(&SetAdminMsg{}, NewSetAdminHandler(auth))
	r.Handle(&SetPayoutsMsg{}, NewSetPayoutsHandler(auth, control))
	r.Handle(&CheckEligibilityMsg{}, NewCheckEligibilityHandler(auth, control))
	r.Handle(&ClaimMsg{}, NewClaimHandler(auth, control))
}

// RegisterQuery will register faucet buckets and custom query endpoints.
func RegisterQuery(qr geode.QueryRouter) {
	NewAccountBucket().Register("faucet/accounts", qr)
	NewAddressBucket().Register("faucet/addresses", qr)
	qr.Register("/faucet/info", &infoQuery{})
	qr.Register("/faucet/verify", &verifyQuery{accounts: NewAccountBucket()})
}

// SetAdminHandler processes admin assignment. Until the first admin is
// set anyone may claim the position, afterwards only the current admin
// can rotate it.
type SetAdminHandler struct {
	auth x.Authenticator
}

var _ geode.Handler = (*SetAdminHandler)(nil)

// NewSetAdminHandler returns a handler for SetAdminMsg.
func NewSetAdminHandler(auth x.Authenticator) *SetAdminHandler {
	return &SetAdminHandler{auth: auth}
}

// Check implements geode.Handler interface.
func (h *SetAdminHandler) Check(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*geode.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &geode.CheckResult{GasAllocated: configTxCost}, nil
}

// Deliver implements geode.Handler interface.
func (h *SetAdminHandler) Deliver(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*geode.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf.Admin = msg.NewAdmin
	if err := saveConf(db, conf); err != nil {
		return nil, errors.Wrap(err, "save configuration")
	}
	return &geode.DeliverResult{}, nil
}

func (h *SetAdminHandler) validate(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*SetAdminMsg, *Configuration, error) {
	var msg SetAdminMsg
	if err := geode.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	switch {
	case errors.ErrNotFound.Is(err):
		conf = &Configuration{
			Metadata: &geode.Metadata{Schema: 1},
		}
	case err != nil:
		return nil, nil, err
	}
	if len(conf.Admin) != 0 && !h.auth.HasAddress(ctx, conf.Admin) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "admin signature missing")
	}
	return &msg, conf, nil
}

// SetPayoutsHandler processes faucet settings updates. It also moves the
// funding amount from the admin wallet into the faucet pool.
type SetPayoutsHandler struct {
	auth    x.Authenticator
	control cash.Controller
}

var _ geode.Handler = (*SetPayoutsHandler)(nil)

// NewSetPayoutsHandler returns a handler for SetPayoutsMsg.
func NewSetPayoutsHandler(auth x.Authenticator, control cash.Controller) *SetPayoutsHandler {
	return &SetPayoutsHandler{auth: auth, control: control}
}

// Check implements geode.Handler interface.
func (h *SetPayoutsHandler) Check(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*geode.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &geode.CheckResult{GasAllocated: configTxCost}, nil
}

// Deliver implements geode.Handler interface.
func (h *SetPayoutsHandler) Deliver(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*geode.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf.EligiblePayout = msg.EligiblePayout
	conf.ClaimPayout = msg.ClaimPayout
	conf.RateLimitWindow = msg.RateLimitWindow
	conf.AddressQuota = msg.AddressQuota
	if err := saveConf(db, conf); err != nil {
		return nil, errors.Wrap(err, "save configuration")
	}
	if !msg.Funding.IsZero() {
		if err := h.control.MoveCoins(db, conf.Admin, PoolAddress(), msg.Funding); err != nil {
			return nil, errors.Wrap(err, "fund pool")
		}
	}
	return &geode.DeliverResult{}, nil
}

func (h *SetPayoutsHandler) validate(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*SetPayoutsMsg, *Configuration, error) {
	var msg SetPayoutsMsg
	if err := geode.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if errors.ErrNotFound.Is(err) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no admin set")
	}
	if err != nil {
		return nil, nil, err
	}
	if len(conf.Admin) == 0 || !h.auth.HasAddress(ctx, conf.Admin) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "admin signature missing")
	}
	return &msg, conf, nil
}

// CheckEligibilityHandler answers whether the main signer may receive a
// payout right now and hands out the eligibility payout on success. It
// never mutates the claim bookkeeping, repeated calls are free.
type CheckEligibilityHandler struct {
	auth     x.Authenticator
	control  cash.Controller
	accounts *migration.ModelBucket
	tags     *migration.ModelBucket
}

var _ geode.Handler = (*CheckEligibilityHandler)(nil)

// NewCheckEligibilityHandler returns a handler for CheckEligibilityMsg.
func NewCheckEligibilityHandler(auth x.Authenticator, control cash.Controller) *CheckEligibilityHandler {
	return &CheckEligibilityHandler{
		auth:     auth,
		control:  control,
		accounts: NewAccountBucket(),
		tags:     NewAddressBucket(),
	}
}

// Check implements geode.Handler interface.
func (h *CheckEligibilityHandler) Check(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*geode.CheckResult, error) {
	var msg CheckEligibilityMsg
	if err := geode.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &geode.CheckResult{GasAllocated: payoutTxCost}, nil
}

// Deliver implements geode.Handler interface.
func (h *CheckEligibilityHandler) Deliver(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*geode.DeliverResult, error) {
	var msg CheckEligibilityMsg
	if err := geode.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := payoutConf(db)
	if err != nil {
		return nil, err
	}
	account, err := mainSigner(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}

	rec, _, err := loadRecord(h.accounts, db, account)
	if err != nil {
		return nil, err
	}
	tags, err := loadTags(h.tags, db, msg.Address)
	if err != nil {
		return nil, err
	}

	if !eligible(conf, rec, tags, now, account) {
		return &geode.DeliverResult{Data: []byte{statusDenied}}, nil
	}

	// Pay only when the pool stays above zero afterwards. Skipping the
	// transfer does not change the status, only a failed transfer does.
	// The payout notification always carries the nominal amount, even
	// when no tokens were moved.
	status := statusAllowed
	balance, err := h.control.Balance(db, PoolAddress())
	if err != nil {
		return nil, errors.Wrap(err, "pool balance")
	}
	if balance > conf.EligiblePayout && !conf.EligiblePayout.IsZero() {
		if err := h.control.MoveCoins(db, PoolAddress(), account, conf.EligiblePayout); err != nil {
			status = statusFailed
		}
	}
	return &geode.DeliverResult{
		Data: []byte{status},
		Tags: payoutTags(now, msg.Address, account, conf.EligiblePayout),
	}, nil
}

// ClaimHandler hands out the claim payout and updates records, address
// tags and the running counters.
type ClaimHandler struct {
	auth     x.Authenticator
	control  cash.Controller
	accounts *migration.ModelBucket
	tags     *migration.ModelBucket
	stats    *migration.ModelBucket
}

var _ geode.Handler = (*ClaimHandler)(nil)

// NewClaimHandler returns a handler for ClaimMsg.
func NewClaimHandler(auth x.Authenticator, control cash.Controller) *ClaimHandler {
	return &ClaimHandler{
		auth:     auth,
		control:  control,
		accounts: NewAccountBucket(),
		tags:     NewAddressBucket(),
		stats:    NewStatsBucket(),
	}
}

// Check implements geode.Handler interface.
func (h *ClaimHandler) Check(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*geode.CheckResult, error) {
	var msg ClaimMsg
	if err := geode.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &geode.CheckResult{GasAllocated: payoutTxCost}, nil
}

// Deliver implements geode.Handler interface.
func (h *ClaimHandler) Deliver(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*geode.DeliverResult, error) {
	var msg ClaimMsg
	if err := geode.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := payoutConf(db)
	if err != nil {
		return nil, err
	}
	account, err := mainSigner(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}

	rec, onboarded, err := loadRecord(h.accounts, db, account)
	if err != nil {
		return nil, err
	}
	tags, err := loadTags(h.tags, db, msg.Address)
	if err != nil {
		return nil, err
	}

	if !eligible(conf, rec, tags, now, account) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not eligible")
	}

	// A pool that cannot stay above zero skips the transfer but the
	// claim is still recorded. A zero payout has nothing to move. A
	// pool that can pay must pay, any transfer failure aborts the
	// whole claim.
	balance, err := h.control.Balance(db, PoolAddress())
	if err != nil {
		return nil, errors.Wrap(err, "pool balance")
	}
	if balance > conf.ClaimPayout && !conf.ClaimPayout.IsZero() {
		if err := h.control.MoveCoins(db, PoolAddress(), account, conf.ClaimPayout); err != nil {
			return nil, errors.Wrap(ErrPayoutFailed, err.Error())
		}
	}

	rec.LastClaim = now
	rec.LastAddress = msg.Address
	rec.TotalReceived = rec.TotalReceived.Add(conf.ClaimPayout)
	if err := h.accounts.Put(db, account, rec); err != nil {
		return nil, errors.Wrap(err, "store account record")
	}

	if !tags.Contains(account) {
		tags.Accounts = append(tags.Accounts, account)
		if err := h.tags.Put(db, msg.Address, tags); err != nil {
			return nil, errors.Wrap(err, "store address tags")
		}
	}

	stats, err := loadStats(h.stats, db)
	if err != nil {
		return nil, err
	}
	stats.PayoutVolume = stats.PayoutVolume.Add(conf.ClaimPayout)
	if !onboarded && stats.AccountsOnboarded < ^uint64(0) {
		stats.AccountsOnboarded++
	}
	if err := h.stats.Put(db, statsKey, stats); err != nil {
		return nil, errors.Wrap(err, "store stats")
	}

	return &geode.DeliverResult{
		Tags: payoutTags(now, msg.Address, account, conf.ClaimPayout),
	}, nil
}

// VerifyAccount returns true if the given account ever claimed tokens.
func VerifyAccount(db geode.ReadOnlyKVStore, account geode.Address) (bool, error) {
	return NewAccountBucket().Has(db, account)
}

func mainSigner(ctx geode.Context, auth x.Authenticator) (geode.Address, error) {
	signer := x.MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return signer.Address(), nil
}

// payoutConf loads the faucet configuration for the payout paths. A
// faucet that was never configured behaves as if all settings were
// zero, which denies everyone through the address quota.
func payoutConf(db gconf.ReadStore) (*Configuration, error) {
	conf, err := loadConf(db)
	switch {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{
			Metadata: &geode.Metadata{Schema: 1},
		}, nil
	default:
		return nil, err
	}
}

func blockNow(ctx geode.Context) (geode.UnixTime, error) {
	t, err := geode.BlockTime(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "block time")
	}
	return geode.AsUnixTime(t), nil
}

// loadRecord returns the claim record of the account and whether the
// account claimed before. A missing record is returned zeroed.
func loadRecord(b *migration.ModelBucket, db geode.ReadOnlyKVStore, account geode.Address) (*AccountRecord, bool, error) {
	var rec AccountRecord
	switch err := b.One(db, account, &rec); {
	case err == nil:
		return &rec, true, nil
	case errors.ErrNotFound.Is(err):
		return &AccountRecord{
			Metadata: &geode.Metadata{Schema: 1},
		}, false, nil
	default:
		return nil, false, errors.Wrap(err, "load account record")
	}
}

func loadTags(b *migration.ModelBucket, db geode.ReadOnlyKVStore, address []byte) (*AddressTags, error) {
	var tags AddressTags
	switch err := b.One(db, address, &tags); {
	case err == nil:
		return &tags, nil
	case errors.ErrNotFound.Is(err):
		return &AddressTags{
			Metadata: &geode.Metadata{Schema: 1},
		}, nil
	default:
		return nil, errors.Wrap(err, "load address tags")
	}
}

func loadStats(b *migration.ModelBucket, db geode.ReadOnlyKVStore) (*Stats, error) {
	var stats Stats
	switch err := b.One(db, statsKey, &stats); {
	case err == nil:
		return &stats, nil
	case errors.ErrNotFound.Is(err):
		return &Stats{
			Metadata: &geode.Metadata{Schema: 1},
		}, nil
	default:
		return nil, errors.Wrap(err, "load stats")
	}
}

// payoutTags is the notification attached to every payout attempt so
// that chain observers can follow faucet activity.
func payoutTags(now geode.UnixTime, address []byte, account geode.Address, amount coin.Amount) []common.KVPair {
	return []common.KVPair{
		geode.NewTag("faucet:action", "payout"),
		geode.NewTag("faucet:timestamp", strconv.FormatInt(int64(now), 10)),
		geode.NewTag("faucet:address", fmt.Sprintf("%X", address)),
		geode.NewTag("faucet:recipient", account.String()),
		geode.NewTag("faucet:amount", amount.String()),
	}
}
