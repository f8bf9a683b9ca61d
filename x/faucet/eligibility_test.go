package faucet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/geodetest"
)

func TestEligible(t *testing.T) {
	alice := geodetest.NewCondition().Address()
	bob := geodetest.NewCondition().Address()

	cases := map[string]struct {
		conf Configuration
		rec  AccountRecord
		tags AddressTags
		now  geode.UnixTime
		want bool
	}{
		"fresh account, fresh address": {
			conf: Configuration{AddressQuota: 2, RateLimitWindow: 100},
			now:  1000,
			want: true,
		},
		"address quota exhausted by others": {
			conf: Configuration{AddressQuota: 1, RateLimitWindow: 100},
			tags: AddressTags{Accounts: []geode.Address{bob}},
			now:  1000,
			want: false,
		},
		"address quota exhausted but account already tagged": {
			conf: Configuration{AddressQuota: 1, RateLimitWindow: 100},
			rec:  AccountRecord{LastClaim: 100, TotalReceived: 5},
			tags: AddressTags{Accounts: []geode.Address{alice}},
			now:  1000,
			want: true,
		},
		"zero quota blocks any fresh address use": {
			conf: Configuration{AddressQuota: 0, RateLimitWindow: 0},
			now:  1000,
			want: false,
		},
		"claimed within the rate limit window": {
			conf: Configuration{AddressQuota: 2, RateLimitWindow: 100},
			rec:  AccountRecord{LastClaim: 950, TotalReceived: 5},
			now:  1000,
			want: false,
		},
		"claimed exactly one window ago": {
			conf: Configuration{AddressQuota: 2, RateLimitWindow: 100},
			rec:  AccountRecord{LastClaim: 900, TotalReceived: 5},
			now:  1000,
			want: true,
		},
		"never paid overrides a recent claim timestamp": {
			conf: Configuration{AddressQuota: 2, RateLimitWindow: 100},
			rec:  AccountRecord{LastClaim: 999, TotalReceived: 0},
			now:  1000,
			want: true,
		},
		"future timestamp wraps instead of panicking": {
			// A corrupted record dated after "now" produces a huge
			// unsigned delta and therefore passes the window test.
			conf: Configuration{AddressQuota: 2, RateLimitWindow: 100},
			rec:  AccountRecord{LastClaim: 2000, TotalReceived: 5},
			now:  1000,
			want: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := eligible(&tc.conf, &tc.rec, &tc.tags, tc.now, alice)
			assert.Equal(t, tc.want, got)
		})
	}
}
