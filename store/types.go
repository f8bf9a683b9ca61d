package store

import "github.com/geode-network/geode"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = geode.ReadOnlyKVStore
type KVStore = geode.KVStore
type SetDeleter = geode.SetDeleter
type Batch = geode.Batch
type Iterator = geode.Iterator
type CacheableKVStore = geode.CacheableKVStore
type KVCacheWrap = geode.KVCacheWrap
type Model = geode.Model
