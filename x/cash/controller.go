package cash

import (
	"github.com/geode-network/geode"
	"github.com/geode-network/geode/coin"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/orm"
)

// Controller is the functionality needed by other extensions that want to
// move or mint tokens. This is implemented by CashController and allows
// mocking out balance operations in tests.
type Controller interface {
	// Balance returns the amount held by the given account. A missing
	// wallet is reported as a zero balance.
	Balance(db geode.ReadOnlyKVStore, src geode.Address) (coin.Amount, error)

	// MoveCoins transfers the amount from src to dest. It fails if src
	// does not hold enough tokens.
	MoveCoins(db geode.KVStore, src geode.Address, dest geode.Address, amount coin.Amount) error

	// IssueCoins mints new tokens into the destination account.
	IssueCoins(db geode.KVStore, dest geode.Address, amount coin.Amount) error
}

// CashController is the standard implementation of the Controller interface,
// backed by the wallet bucket.
type CashController struct {
	bucket orm.ModelBucket
}

var _ Controller = CashController{}

// NewController returns a Controller backed by the wallet bucket.
func NewController() CashController {
	return CashController{bucket: NewWalletBucket()}
}

// Balance returns the token amount held by the given account.
func (c CashController) Balance(db geode.ReadOnlyKVStore, src geode.Address) (coin.Amount, error) {
	var wallet Wallet
	switch err := c.bucket.One(db, src, &wallet); {
	case err == nil:
		return wallet.Balance, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "cannot load wallet")
	}
}

// MoveCoins transfers the amount from src to dest.
func (c CashController) MoveCoins(db geode.KVStore, src geode.Address, dest geode.Address, amount coin.Amount) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}

	var sender Wallet
	if err := c.bucket.One(db, src, &sender); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrapf(errors.ErrEmpty, "no account %s", src)
		}
		return errors.Wrap(err, "cannot load sender wallet")
	}

	remaining, err := sender.Balance.Sub(amount)
	if err != nil {
		return errors.Wrapf(err, "insufficient funds in %s", src)
	}

	recipient, err := c.loadOrCreate(db, dest)
	if err != nil {
		return err
	}
	if coin.MaxAmount-recipient.Balance < amount {
		return errors.Wrapf(errors.ErrOverflow, "wallet %s cannot hold that much", dest)
	}

	sender.Balance = remaining
	recipient.Balance = recipient.Balance.Add(amount)

	if err := c.bucket.Put(db, src, &sender); err != nil {
		return errors.Wrap(err, "cannot store sender wallet")
	}
	if err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "cannot store recipient wallet")
	}
	return nil
}

// IssueCoins mints new tokens into the destination account.
func (c CashController) IssueCoins(db geode.KVStore, dest geode.Address, amount coin.Amount) error {
	recipient, err := c.loadOrCreate(db, dest)
	if err != nil {
		return err
	}
	if coin.MaxAmount-recipient.Balance < amount {
		return errors.Wrapf(errors.ErrOverflow, "wallet %s cannot hold that much", dest)
	}
	recipient.Balance = recipient.Balance.Add(amount)
	return c.bucket.Put(db, dest, recipient)
}

func (c CashController) loadOrCreate(db geode.ReadOnlyKVStore, addr geode.Address) (*Wallet, error) {
	var wallet Wallet
	switch err := c.bucket.One(db, addr, &wallet); {
	case err == nil:
		return &wallet, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &geode.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}
