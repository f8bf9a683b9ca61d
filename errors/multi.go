package errors

import (
	"fmt"
	"strings"
)

// Append combines together all provided errors. This function clubs together
// any group of errors, ignoring those that are nil. It returns nil if all
// provided errors are nil.
//
// When combining an error that was created by clubbing together several
// errors, the result is flattened.
func Append(errs ...error) error {
	var result multiError
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(multiError); ok {
			result = append(result, m...)
		} else {
			result = append(result, err)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// multiError represents a group of errors. It is a result of combining
// multiple error instances together.
type multiError []error

func (errs multiError) Error() string {
	switch len(errs) {
	case 0:
		return "<nil>"
	case 1:
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(errs), strings.Join(msgs, "\n\t"))
}

// Unpack implements the unpacker interface and returns all errors that this
// instance is clubbing together.
func (errs multiError) Unpack() []error {
	return errs
}

// unpacker is implemented by an error that represents a group of errors. It
// provides a way to access all clubbed errors.
type unpacker interface {
	Unpack() []error
}
