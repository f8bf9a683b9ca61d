package cash

import (
	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/migration"
	"github.com/geode-network/geode/x"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r geode.Registry, auth x.Authenticator, control Controller) {
	r = migration.SchemaMigratingRegistry("cash", r)

	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// RegisterQuery will register the wallet bucket as "/wallets".
func RegisterQuery(qr geode.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
}

// SendHandler will handle sending tokens between accounts.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ geode.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the message is properly formed and authorized and returns
// the cost of executing it.
func (h SendHandler) Check(ctx geode.Context, store geode.KVStore, tx geode.Tx) (*geode.CheckResult, error) {
	var msg SendMsg
	if err := geode.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}

	res := geode.CheckResult{
		GasAllocated: sendTxCost,
	}
	return &res, nil
}

// Deliver moves the tokens from src to dest if all preconditions are met.
func (h SendHandler) Deliver(ctx geode.Context, store geode.KVStore, tx geode.Tx) (*geode.DeliverResult, error) {
	var msg SendMsg
	if err := geode.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}

	if err := h.control.MoveCoins(store, msg.Src, msg.Dest, msg.Amount); err != nil {
		return nil, err
	}
	return &geode.DeliverResult{}, nil
}
