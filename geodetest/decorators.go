package geodetest

import "github.com/geode-network/geode"

// Decorator is a mock implementation of the geode.Decorator interface.
//
// Set CheckErr or DeliverErr to force an error response for the
// corresponding method. If error attributes are not set then the wrapped
// handler method is called and its result returned.
// Each method call is counted regardless of the result.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ geode.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx geode.Context, db geode.KVStore, tx geode.Tx, next geode.Checker) (*geode.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx geode.Context, db geode.KVStore, tx geode.Tx, next geode.Deliverer) (*geode.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps a handler with a single decorator, returning a handler.
func Decorate(h geode.Handler, d geode.Decorator) geode.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn geode.Handler
	dc geode.Decorator
}

var _ geode.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*geode.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*geode.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
