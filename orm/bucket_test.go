package orm

import (
	"testing"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketName(t *testing.T) {
	assert.Panics(t, func() {
		// name with invalid characters
		NewBucket("l33t", NewSimpleObj(nil, &counter{}))
	})
	assert.Panics(t, func() {
		// name too short
		NewBucket("ab", NewSimpleObj(nil, &counter{}))
	})
	b := NewBucket("good", NewSimpleObj(nil, &counter{}))
	assert.Equal(t, "good", b.Name())
}

func TestBucketDBKey(t *testing.T) {
	b := NewBucket("some", NewSimpleObj(nil, &counter{}))
	k1 := b.DBKey([]byte("one"))
	k2 := b.DBKey([]byte("two"))
	// consecutive calls must not share the backing array
	assert.Equal(t, []byte("some:one"), k1)
	assert.Equal(t, []byte("some:two"), k2)
}

func TestBucketGetSave(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", NewSimpleObj(nil, &counter{}))

	// a missing entity returns nil, not an error
	obj, err := b.Get(db, []byte("fresh"))
	require.NoError(t, err)
	assert.Nil(t, obj)

	err = b.Save(db, NewSimpleObj([]byte("fresh"), &counter{Count: 7}))
	require.NoError(t, err)

	obj, err = b.Get(db, []byte("fresh"))
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, []byte("fresh"), obj.Key())
	assert.Equal(t, uint64(7), obj.Value().(*counter).Count)

	// saving an object without a key must fail validation
	err = b.Save(db, NewSimpleObj(nil, &counter{Count: 1}))
	assert.Error(t, err)

	require.NoError(t, b.Delete(db, []byte("fresh")))
	obj, err = b.Get(db, []byte("fresh"))
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", NewSimpleObj(nil, &counter{}))

	require.NoError(t, b.Save(db, NewSimpleObj([]byte("aa"), &counter{Count: 1})))
	require.NoError(t, b.Save(db, NewSimpleObj([]byte("ab"), &counter{Count: 2})))
	require.NoError(t, b.Save(db, NewSimpleObj([]byte("zz"), &counter{Count: 3})))

	qr := geode.NewQueryRouter()
	b.Register("counters", qr)
	h := qr.Handler("/counters")
	require.NotNil(t, h)

	// exact key query
	models, err := h.Query(db, geode.KeyQueryMod, []byte("aa"))
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, []byte("cnts:aa"), models[0].Key)

	// a miss returns empty result
	models, err = h.Query(db, geode.KeyQueryMod, []byte("miss"))
	require.NoError(t, err)
	assert.Len(t, models, 0)

	// prefix query
	models, err = h.Query(db, geode.PrefixQueryMod, []byte("a"))
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, []byte("cnts:aa"), models[0].Key)
	assert.Equal(t, []byte("cnts:ab"), models[1].Key)

	// unknown modifier
	if _, err := h.Query(db, "unknown", nil); err == nil {
		t.Fatal("unknown query modifier must fail")
	}
}
