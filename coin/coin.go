package coin

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/geode-network/geode/errors"
)

// MaxAmount is the greatest value an Amount can represent.
const MaxAmount Amount = math.MaxUint64

// Amount is a quantity of the native token expressed in the smallest
// indivisible unit. It is always non negative.
//
// Addition saturates at MaxAmount instead of wrapping around. A faucet
// keeps lifetime counters that only ever grow and a counter that silently
// wraps back to zero would corrupt every eligibility decision made after
// the wrap.
type Amount uint64

// NewAmount returns an amount of the given number of units.
func NewAmount(value uint64) Amount {
	return Amount(value)
}

// Add returns the sum of two amounts. If the sum does not fit into the
// amount range it is clamped to MaxAmount.
func (a Amount) Add(o Amount) Amount {
	if sum := a + o; sum >= a {
		return sum
	}
	return MaxAmount
}

// Sub returns the difference of two amounts. It fails with ErrAmount if
// the subtracted value is greater than the current one.
func (a Amount) Sub(o Amount) (Amount, error) {
	if o > a {
		return 0, errors.Wrapf(errors.ErrAmount, "cannot subtract %s from %s", o, a)
	}
	return a - o, nil
}

// IsZero returns true if the amount holds no value.
func (a Amount) IsZero() bool {
	return a == 0
}

// IsGTE returns true if the amount is greater than or equal to the other.
func (a Amount) IsGTE(o Amount) bool {
	return a >= o
}

// Compare returns 1 if a is larger, -1 if o is larger and 0 if equal.
func (a Amount) Compare(o Amount) int {
	switch {
	case a > o:
		return 1
	case a < o:
		return -1
	default:
		return 0
	}
}

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// MarshalJSON returns the amount serialized as a string. A JSON number
// cannot represent the full uint64 range without a precision loss.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts an amount serialized as either a JSON number or a
// string containing the decimal representation.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var repr string
	if err := json.Unmarshal(raw, &repr); err != nil {
		var n uint64
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrInput, "amount must be a number or a string")
		}
		*a = Amount(n)
		return nil
	}
	val, err := ParseAmount(repr)
	if err != nil {
		return err
	}
	*a = val
	return nil
}

// ParseAmount parses a decimal string representation of an amount.
func ParseAmount(raw string) (Amount, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "invalid amount: %q", raw)
	}
	return Amount(n), nil
}
