package gconf

import (
	"encoding/json"
	"testing"

	"github.com/geode-network/geode"
	"github.com/geode-network/geode/errors"
	"github.com/geode-network/geode/store"
)

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	conf := testConf{Text: "foobar", Number: 852151421}
	if err := Save(db, "testpkg", &conf); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}

	var loaded testConf
	if err := Load(db, "testpkg", &loaded); err != nil {
		t.Fatalf("cannot load configuration: %s", err)
	}
	if loaded != conf {
		t.Fatalf("unexpected configuration loaded: %+v", loaded)
	}
}

func TestSaveInvalid(t *testing.T) {
	db := store.MemStore()
	conf := testConf{Text: "", Number: 1}
	if err := Save(db, "testpkg", &conf); !errors.ErrEmpty.Is(err) {
		t.Fatalf("saving an invalid configuration must fail: %s", err)
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var conf testConf
	if err := Load(db, "testpkg", &conf); !errors.ErrNotFound.Is(err) {
		t.Fatalf("loading a missing configuration must fail with not found: %s", err)
	}
}

func TestInitConfig(t *testing.T) {
	db := store.MemStore()

	opts := geode.Options{
		"conf": json.RawMessage(`{"testpkg": {"text": "genesis", "number": 42}}`),
	}
	var conf testConf
	if err := InitConfig(db, opts, "testpkg", &conf); err != nil {
		t.Fatalf("cannot initialize configuration: %s", err)
	}

	var loaded testConf
	if err := Load(db, "testpkg", &loaded); err != nil {
		t.Fatalf("cannot load configuration: %s", err)
	}
	if loaded.Text != "genesis" || loaded.Number != 42 {
		t.Fatalf("unexpected configuration loaded: %+v", loaded)
	}
}

func TestInitConfigMissingPackage(t *testing.T) {
	db := store.MemStore()

	opts := geode.Options{
		"conf": json.RawMessage(`{"otherpkg": {}}`),
	}
	var conf testConf
	if err := InitConfig(db, opts, "testpkg", &conf); !errors.ErrNotFound.Is(err) {
		t.Fatalf("initialization without genesis entry must fail: %s", err)
	}
}

// testConf is a minimal configuration implementation. Binary serialization
// uses JSON for simplicity, production configurations are protobuf messages.
type testConf struct {
	Text   string `json:"text"`
	Number int64  `json:"number"`
}

var _ Configuration = (*testConf)(nil)

func (c *testConf) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *testConf) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func (c *testConf) Validate() error {
	if c.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}
