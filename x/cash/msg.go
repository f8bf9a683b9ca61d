package cash

import (
	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/migration"
)

func init() {
	migration.MustRegister(1, &SendMsg{}, migration.NoModification)
}

var _ geode.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Src", m.Src.Validate())
	errs = errors.AppendField(errs, "Dest", m.Dest.Validate())
	if m.Amount.IsZero() {
		errs = errors.AppendField(errs, "Amount",
			errors.Wrap(errors.ErrAmount, "transfer amount must be positive"))
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo",
			errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return errs
}
