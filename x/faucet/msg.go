package faucet

import (
	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/migration"
)

func init() {
	migration.MustRegister(1, &SetAdminMsg{}, migration.NoModification)
	migration.MustRegister(1, &SetPayoutsMsg{}, migration.NoModification)
	migration.MustRegister(1, &CheckEligibilityMsg{}, migration.NoModification)
	migration.MustRegister(1, &ClaimMsg{}, migration.NoModification)
}

var _ geode.Msg = (*SetAdminMsg)(nil)

// Path implements geode.Msg interface.
func (SetAdminMsg) Path() string {
	return "faucet/set_admin"
}

// Validate implements geode.Msg interface.
func (msg *SetAdminMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "NewAdmin", msg.NewAdmin.Validate())
	return errs
}

var _ geode.Msg = (*SetPayoutsMsg)(nil)

// Path implements geode.Msg interface.
func (SetPayoutsMsg) Path() string {
	return "faucet/set_payouts"
}

// Validate implements geode.Msg interface. Payout values are accepted as
// provided, bounds are the admin's business.
func (msg *SetPayoutsMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if msg.RateLimitWindow < 0 {
		errs = errors.AppendField(errs, "RateLimitWindow",
			errors.Wrap(errors.ErrInput, "negative duration"))
	}
	return errs
}

var _ geode.Msg = (*CheckEligibilityMsg)(nil)

// Path implements geode.Msg interface.
func (CheckEligibilityMsg) Path() string {
	return "faucet/check_eligibility"
}

// Validate implements geode.Msg interface.
func (msg *CheckEligibilityMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if len(msg.Address) == 0 {
		errs = errors.AppendField(errs, "Address",
			errors.Wrap(errors.ErrEmpty, "network address required"))
	}
	return errs
}

var _ geode.Msg = (*ClaimMsg)(nil)

// Path implements geode.Msg interface.
func (ClaimMsg) Path() string {
	return "faucet/claim"
}

// Validate implements geode.Msg interface.
func (msg *ClaimMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if len(msg.Address) == 0 {
		errs = errors.AppendField(errs, "Address",
			errors.Wrap(errors.ErrEmpty, "network address required"))
	}
	return errs
}
