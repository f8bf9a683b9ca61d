package app

import (
	"fmt"
	"regexp"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
)

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]geode.Handler
}

var _ geode.Registry = (*Router)(nil)
var _ geode.Handler = (*Router)(nil)

// isPath constrains message paths to a-z, 0-9, _ and / separated segments.
var isPath = regexp.MustCompile(`^[a-z0-9_]+(/[a-z0-9_]+)*$`).MatchString

// NewRouter initializes a router with no routes
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]geode.Handler),
	}
}

// Handle implements registry interface. It associates a handler with a
// message path so that every transaction carrying a message of the same
// type is processed by given handler. Handle panics on an invalid path
// or a duplicate registration as both are a setup time programmer error.
func (r *Router) Handle(m geode.Msg, h geode.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid message path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering message route: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this message, or a
// notFoundHandler if none was registered for its path.
func (r *Router) handler(m geode.Msg) geode.Handler {
	path := m.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on the message path
func (r *Router) Check(ctx geode.Context, store geode.KVStore, tx geode.Tx) (*geode.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path
func (r *Router) Deliver(ctx geode.Context, store geode.KVStore, tx geode.Tx) (*geode.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound for the path it was
// created with.
type notFoundHandler string

func (h notFoundHandler) Check(ctx geode.Context, store geode.KVStore, tx geode.Tx) (*geode.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(h))
}

func (h notFoundHandler) Deliver(ctx geode.Context, store geode.KVStore, tx geode.Tx) (*geode.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(h))
}
