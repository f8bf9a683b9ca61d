package migration

import (
	"testing"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/store"
)

func TestMustInitPkg(t *testing.T) {
	db := store.MemStore()

	MustInitPkg(db, "mypkg", "otherpkg")

	b := NewSchemaBucket()
	ver, err := b.CurrentSchema(db, "mypkg")
	if err != nil {
		t.Fatalf("cannot get current schema: %s", err)
	}
	if ver != 1 {
		t.Fatalf("want schema version 1, got %d", ver)
	}

	// Calling this function many times must not fail.
	MustInitPkg(db, "mypkg")
	MustInitPkg(db, "mypkg", "yetanother")
}

func TestCurrentSchemaNotInitialized(t *testing.T) {
	db := store.MemStore()
	b := NewSchemaBucket()
	if _, err := b.CurrentSchema(db, "mypkg"); !errors.ErrNotFound.Is(err) {
		t.Fatalf("uninitialized package schema must not be found: %s", err)
	}
}

func TestSchemaVersionsAreSequential(t *testing.T) {
	db := store.MemStore()
	b := NewSchemaBucket()

	if _, err := b.Create(db, &Schema{
		Metadata: &geode.Metadata{Schema: 1},
		Pkg:      "mypkg",
		Version:  2,
	}); !errors.ErrInput.Is(err) {
		t.Fatalf("first registered version must be one: %s", err)
	}

	MustInitPkg(db, "mypkg")

	if _, err := b.Create(db, &Schema{
		Metadata: &geode.Metadata{Schema: 1},
		Pkg:      "mypkg",
		Version:  4,
	}); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("version gaps must not be allowed: %s", err)
	}

	if _, err := b.Create(db, &Schema{
		Metadata: &geode.Metadata{Schema: 1},
		Pkg:      "mypkg",
		Version:  2,
	}); err != nil {
		t.Fatalf("cannot register the next version: %s", err)
	}

	ver, err := b.CurrentSchema(db, "mypkg")
	if err != nil {
		t.Fatalf("cannot get current schema: %s", err)
	}
	if ver != 2 {
		t.Fatalf("want schema version 2, got %d", ver)
	}
}
