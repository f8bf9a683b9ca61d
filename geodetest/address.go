package geodetest

import (
	"testing"

	"github.com/geode-network/geode"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation, failing the test on malformed input.
func ParseAddress(t testing.TB, encodedAddress string) geode.Address {
	t.Helper()

	addr, err := geode.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
