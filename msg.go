package geode

import (
	"reflect"

	"github.com/geode-network/geode/errors"
)

// Msg is a message for the blockchain to take an action (make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Validate returns an error if the message content is not valid. This
	// is a stateless check, the database state is not relevant.
	Validate() error

	// Path returns the message path. This is used by the Router to locate
	// the proper Handler. Msg should be created alongside the Handler
	// that corresponds to it.
	//
	// Multiple message types may return the same path value and will end
	// up being processed by the same Handler.
	Path() string
}

// LoadMsg extracts the message from the transaction, ensures the message
// is valid and assigns the payload to the destination. Destination must be
// a pointer to the expected message type. This is a helper that most
// handler validation methods start with.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dVal := reflect.ValueOf(destination)
	if dVal.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}
	mVal := reflect.ValueOf(msg)
	if dVal.Type() != mVal.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dVal.Elem().Set(mVal.Elem())
	return nil
}
