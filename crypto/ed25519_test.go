package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519SignVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()
	require.NoError(t, pub.Validate())

	msg := []byte("crunchy crunchy geodes")
	sig, err := priv.Sign(msg)
	require.NoError(t, err)
	assert.True(t, pub.Verify(msg, sig))

	// a modified message must not verify
	assert.False(t, pub.Verify([]byte("crunchy crunchy geode"), sig))

	// another key must not verify
	other := GenPrivKeyEd25519().PublicKey()
	assert.False(t, other.Verify(msg, sig))

	// nil and empty signatures must not verify
	assert.False(t, pub.Verify(msg, nil))
	assert.False(t, pub.Verify(msg, &Signature{}))
}

func TestEd25519FromSeedDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.Ed25519, b.Ed25519)

	cond := a.PublicKey().Condition()
	require.NotNil(t, cond)
	ext, typ, _, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, cond.Address(), b.PublicKey().Address())
}

func TestEd25519SerializeRoundtrip(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()

	bz, err := pub.Marshal()
	require.NoError(t, err)
	var loaded PublicKey
	require.NoError(t, loaded.Unmarshal(bz))
	assert.Equal(t, pub.Ed25519, loaded.Ed25519)

	msg := []byte("still verifies after a roundtrip")
	sig, err := priv.Sign(msg)
	require.NoError(t, err)
	assert.True(t, loaded.Verify(msg, sig))
}
