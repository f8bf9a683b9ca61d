package migration

import (
	"testing"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/store"
)

func TestRegisterTwice(t *testing.T) {
	reg := newRegister()
	if err := reg.Register(1, &Configuration{}, NoModification); err != nil {
		t.Fatalf("cannot register: %s", err)
	}
	if err := reg.Register(1, &Configuration{}, NoModification); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("double registration must fail: %s", err)
	}
}

func TestApplySequential(t *testing.T) {
	db := store.MemStore()
	reg := newRegister()

	var applied []uint32
	for _, v := range []uint32{2, 3} {
		v := v
		reg.MustRegister(v, &Configuration{}, func(db geode.ReadOnlyKVStore, m Migratable) error {
			applied = append(applied, v)
			return nil
		})
	}
	reg.MustRegister(1, &Configuration{}, NoModification)

	conf := Configuration{
		Metadata: &geode.Metadata{Schema: 1},
		Admin:    make(geode.Address, geode.AddressLength),
	}
	if err := reg.Apply(db, &conf, 3); err != nil {
		t.Fatalf("cannot apply migrations: %s", err)
	}
	if conf.Metadata.Schema != 3 {
		t.Fatalf("want schema 3, got %d", conf.Metadata.Schema)
	}
	if len(applied) != 2 || applied[0] != 2 || applied[1] != 3 {
		t.Fatalf("unexpected migration order: %v", applied)
	}

	// Applying again must be a noop, all migrations already applied.
	applied = nil
	if err := reg.Apply(db, &conf, 3); err != nil {
		t.Fatalf("cannot apply migrations: %s", err)
	}
	if len(applied) != 0 {
		t.Fatalf("no migration must be applied: %v", applied)
	}
}

func TestApplyMissingMigration(t *testing.T) {
	db := store.MemStore()
	reg := newRegister()
	reg.MustRegister(1, &Configuration{}, NoModification)

	conf := Configuration{
		Metadata: &geode.Metadata{Schema: 1},
		Admin:    make(geode.Address, geode.AddressLength),
	}
	if err := reg.Apply(db, &conf, 2); !errors.ErrSchema.Is(err) {
		t.Fatalf("applying without a registered migration must fail: %s", err)
	}
}

func TestApplyNilMetadata(t *testing.T) {
	db := store.MemStore()
	reg := newRegister()
	reg.MustRegister(1, &Configuration{}, NoModification)

	conf := Configuration{Admin: make(geode.Address, geode.AddressLength)}
	if err := reg.Apply(db, &conf, 1); !errors.ErrMetadata.Is(err) {
		t.Fatalf("applying to an entity without metadata must fail: %s", err)
	}
}
