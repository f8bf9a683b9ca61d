package faucet

import (
	"github.com/geode-network/geode"
)

// eligible is the single payout gate, shared by the eligibility check and
// the claim path.
//
// An account may receive tokens when the claimed network address still has
// quota headroom, or when the account already claimed with that address
// before. On top of that the account must either never have been paid, or
// its last claim must be at least a full rate limit window in the past.
//
// The time arithmetic is done on unsigned integers and wraps. A record
// carrying a future or corrupted timestamp still yields a defined answer
// instead of a panic.
func eligible(conf *Configuration, rec *AccountRecord, tags *AddressTags, now geode.UnixTime, account geode.Address) bool {
	addressOk := uint64(len(tags.Accounts)) < conf.AddressQuota ||
		tags.Contains(account)
	if !addressOk {
		return false
	}
	if rec.TotalReceived.IsZero() {
		return true
	}
	elapsed := uint64(now) - uint64(rec.LastClaim)
	return elapsed >= uint64(conf.RateLimitWindow)
}
