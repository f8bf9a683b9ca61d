package faucet

import (
	"github.com/geode-network/geode/errors"
)

// ErrPayoutFailed is returned when the faucet pool holds enough tokens but
// the transfer to the recipient could not be completed.
var ErrPayoutFailed = errors.Register(1100, "payout failed")
