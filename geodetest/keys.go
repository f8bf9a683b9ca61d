package geodetest

import (
	"github.com/geode-network/geode"
	"github.com/geode-network/geode/crypto"
)

// NewKey returns a random ed25519 signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a newly generated key.
func NewCondition() geode.Condition {
	return NewKey().PublicKey().Condition()
}
