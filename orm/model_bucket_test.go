package orm

import (
	"encoding/binary"
	"testing"

	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// badCounter is not a counter and cannot be stored in a counter bucket.
type badCounter struct{ counter }

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	if err := b.Put(db, []byte("c1"), &counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var c1 counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1)
	}

	ok, err := b.Has(db, []byte("c1"))
	require.NoError(t, err)
	assert.True(t, ok)

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("deleting unknown counter must fail with not found error: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("deleted counter must not be found: %s", err)
	}
}

func TestModelBucketPutWrongModelType(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	if err := b.Put(db, []byte("bad"), &badCounter{}); !errors.ErrType.Is(err) {
		t.Fatalf("storing a wrong model type must fail: %s", err)
	}
}

func TestModelBucketOneWrongModelType(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	if err := b.Put(db, []byte("c1"), &counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var bad badCounter
	if err := b.One(db, []byte("c1"), &bad); !errors.ErrType.Is(err) {
		t.Fatalf("loading into a wrong model type must fail: %s", err)
	}
}

// counter is a minimal model implementation for tests. The value is
// serialized as a fixed size big endian number.
type counter struct {
	Count uint64
}

var _ Model = (*counter)(nil)

func (c *counter) Marshal() ([]byte, error) {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, c.Count)
	return raw, nil
}

func (c *counter) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.Wrapf(errors.ErrInput, "invalid length: %d", len(raw))
	}
	c.Count = binary.BigEndian.Uint64(raw)
	return nil
}

func (c *counter) Validate() error {
	return nil
}
