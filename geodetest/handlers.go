package geodetest

import "github.com/geode-network/geode"

// Handler is a mock implementation of the geode.Handler interface.
//
// Set CheckResult, CheckErr, DeliverResult and DeliverErr to control what
// each method call returns. Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult geode.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult geode.DeliverResult
	DeliverErr    error
}

var _ geode.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*geode.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx geode.Context, db geode.KVStore, tx geode.Tx) (*geode.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
