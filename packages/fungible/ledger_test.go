package fungible

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/iotaledger/fungible/packages/eventsink"
	"github.com/iotaledger/fungible/packages/objects"
)

func TestLedger_CreateClass(t *testing.T) {
	tf := NewTestFramework(t)
	tf.CreateHolder("issuer")

	var created *ClassCreatedEvent
	tf.Ledger.Events.ClassCreated.Hook(event.NewClosure(func(event *ClassCreatedEvent) {
		created = event
	}))

	constructorRef, err := tf.Objects.CreateObject(tf.Holder("issuer"))
	require.NoError(t, err)

	metadata, mintRef, transferRef, burnRef, err := tf.Ledger.CreateClass(constructorRef, Capped(uint128.From64(1000)), "Test Coin", "TST", 6)
	require.NoError(t, err)
	assert.Equal(t, constructorRef.Address(), metadata.Address())
	assert.Equal(t, metadata, mintRef.Metadata())
	assert.Equal(t, metadata, transferRef.Metadata())
	assert.Equal(t, metadata, burnRef.Metadata())
	assert.True(t, tf.Ledger.ClassExists(metadata))

	name, err := tf.Ledger.Name(metadata)
	require.NoError(t, err)
	assert.Equal(t, "Test Coin", name)

	symbol, err := tf.Ledger.Symbol(metadata)
	require.NoError(t, err)
	assert.Equal(t, "TST", symbol)

	decimals, err := tf.Ledger.Decimals(metadata)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), decimals)

	maximum, capped, err := tf.Ledger.Maximum(metadata)
	require.NoError(t, err)
	assert.True(t, capped)
	assert.Equal(t, uint128.From64(1000), maximum)

	current, tracked, err := tf.Ledger.Supply(metadata)
	require.NoError(t, err)
	assert.True(t, tracked)
	assert.True(t, current.IsZero())

	require.NotNil(t, created)
	assert.Equal(t, metadata, created.Metadata)
	assert.Equal(t, CappedSupply, created.Policy.Type())

	_, _, _, _, err = tf.Ledger.CreateClass(constructorRef, Untracked(), "Again", "AGN", 0)
	assert.True(t, errors.Is(err, ErrClassExists))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestLedger_CreateClassBounds(t *testing.T) {
	tf := NewTestFramework(t)
	tf.CreateHolder("issuer")

	constructorRef, err := tf.Objects.CreateObject(tf.Holder("issuer"))
	require.NoError(t, err)

	_, _, _, _, err = tf.Ledger.CreateClass(constructorRef, Untracked(), strings.Repeat("n", MaxNameLength+1), "TST", 0)
	assert.True(t, errors.Is(err, ErrNameTooLong))
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, _, _, _, err = tf.Ledger.CreateClass(constructorRef, Untracked(), "Test", strings.Repeat("s", MaxSymbolLength+1), 0)
	assert.True(t, errors.Is(err, ErrSymbolTooLong))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, tf.Ledger.ClassExists(MetadataFromAddress(constructorRef.Address())))

	_, _, _, _, err = tf.Ledger.CreateClass(constructorRef, Untracked(), strings.Repeat("n", MaxNameLength), strings.Repeat("s", MaxSymbolLength), 0)
	assert.NoError(t, err)
}

func TestLedger_AccessorsNotFound(t *testing.T) {
	tf := NewTestFramework(t)

	var address objects.Address
	require.NoError(t, address.FromRandomness())
	metadata := MetadataFromAddress(address)

	_, _, err := tf.Ledger.Supply(metadata)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, _, err = tf.Ledger.Maximum(metadata)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = tf.Ledger.Name(metadata)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = tf.Ledger.Symbol(metadata)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = tf.Ledger.Decimals(metadata)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = tf.Ledger.Zero(metadata)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLedger_UntrackedSupply(t *testing.T) {
	tf := NewTestFramework(t)
	tf.CreateHolder("issuer")
	class := tf.CreateClass("Untracked", "issuer", Untracked())

	asset, err := tf.Ledger.Mint(class.MintRef, 500)
	require.NoError(t, err)

	_, tracked, err := tf.Ledger.Supply(class.Metadata)
	require.NoError(t, err)
	assert.False(t, tracked)

	_, capped, err := tf.Ledger.Maximum(class.Metadata)
	require.NoError(t, err)
	assert.False(t, capped)

	require.NoError(t, tf.Ledger.Burn(class.BurnRef, asset))
	assert.True(t, errors.Is(tf.Ledger.UpgradeToConcurrent(class.MintRef), ErrSupplyNotTracked))
}

// Mints beyond the maximum supply fail without touching the supply.
func TestLedger_MaxSupplyExceeded(t *testing.T) {
	tf := NewTestFramework(t)
	tf.CreateHolder("issuer")
	class := tf.CreateClass("Capped", "issuer", Capped(uint128.From64(1000)))

	first, err := tf.Ledger.Mint(class.MintRef, 600)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), first.Amount())

	_, err = tf.Ledger.Mint(class.MintRef, 500)
	assert.True(t, errors.Is(err, ErrMaxSupplyExceeded))
	tf.AssertSupply("Capped", 600)

	require.NoError(t, tf.Ledger.Burn(class.BurnRef, first))
	tf.AssertSupply("Capped", 0)
}

func TestLedger_MintZero(t *testing.T) {
	tf := NewTestFramework(t)
	tf.CreateHolder("issuer")
	tf.CreateHolder("alice")
	class := tf.CreateClass("Coin", "issuer", Tracked())
	tf.CreateStore("alice.coin", "alice", "Coin")

	_, err := tf.Ledger.Mint(class.MintRef, 0)
	assert.True(t, errors.Is(err, ErrZeroAmount))
	assert.True(t, errors.Is(tf.Ledger.MintTo(class.MintRef, tf.Store("alice.coin"), 0), ErrZeroAmount))
	tf.AssertSupply("Coin", 0)
}

func TestLedger_BurnUnderflow(t *testing.T) {
	tf := NewTestFramework(t)
	tf.CreateHolder("issuer")
	class := tf.CreateClass("Coin", "issuer", Tracked())

	asset, err := tf.Ledger.Mint(class.MintRef, 10)
	require.NoError(t, err)
	require.NoError(t, tf.Ledger.Burn(class.BurnRef, asset))
	assert.True(t, asset.IsConsumed())

	// forged handles can only be built inside the package but are still bounded by the supply counter
	forged := newFungibleAsset(class.Metadata, 1, nil)
	assert.True(t, errors.Is(tf.Ledger.Burn(class.BurnRef, forged), ErrSupplyUnderflow))
	assert.False(t, forged.IsConsumed())
	assert.True(t, errors.Is(tf.Ledger.Burn(class.BurnRef, asset), ErrAssetConsumed))
}

func TestLedger_UpgradeToConcurrent(t *testing.T) {
	tf := NewTestFramework(t, WithSupplyShards(4))
	tf.CreateHolder("issuer")
	tf.CreateHolder("alice")
	class := tf.CreateClass("Coin", "issuer", Capped(uint128.From64(100)))
	tf.CreateStore("alice.coin", "alice", "Coin")
	tf.MintTo("alice.coin", 70)

	require.NoError(t, tf.Ledger.UpgradeToConcurrent(class.MintRef))
	require.NoError(t, tf.Ledger.UpgradeToConcurrent(class.MintRef))
	tf.AssertSupply("Coin", 70)

	_, err := tf.Ledger.Mint(class.MintRef, 31)
	assert.True(t, errors.Is(err, ErrMaxSupplyExceeded))
	tf.MintTo("alice.coin", 30)
	tf.AssertSupply("Coin", 100)
	tf.AssertBalances(map[string]uint64{"alice.coin": 100})
}

func TestLedger_Persistence(t *testing.T) {
	database := mapdb.NewMapDB()
	objectsStore, err := database.WithRealm([]byte{0})
	require.NoError(t, err)
	ledgerStore, err := database.WithRealm([]byte{1})
	require.NoError(t, err)

	registry := objects.NewRegistry(objects.WithStore(objectsStore))
	ledger := New(registry, eventsink.New(), WithStore(ledgerStore), WithParallelSupply(true))

	var issuer, alice objects.Address
	require.NoError(t, issuer.FromRandomness())
	require.NoError(t, alice.FromRandomness())

	classCtor, err := registry.CreateObject(issuer)
	require.NoError(t, err)
	metadata, mintRef, _, _, err := ledger.CreateClass(classCtor, Capped(uint128.From64(1000)), "Coin", "CN", 2)
	require.NoError(t, err)

	storeCtor, err := registry.CreateObject(alice)
	require.NoError(t, err)
	store, err := ledger.CreateStore(storeCtor, metadata)
	require.NoError(t, err)
	require.NoError(t, ledger.MintTo(mintRef, store, 400))
	ledger.Shutdown()

	restored := New(registry, eventsink.New(), WithStore(ledgerStore))

	current, tracked, err := restored.Supply(metadata)
	require.NoError(t, err)
	assert.True(t, tracked)
	assert.Equal(t, uint128.From64(400), current)
	assert.Equal(t, uint64(400), restored.Balance(store))

	_, err = restored.Mint(mintRef, 601)
	assert.True(t, errors.Is(err, ErrMaxSupplyExceeded))

	asset, err := restored.Withdraw(objects.NewSigner(alice), store, 150)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), asset.Amount())
	require.NoError(t, restored.Deposit(store, asset))
}

func TestLedger_NestedRealms(t *testing.T) {
	database := mapdb.NewMapDB()
	objectsStore, err := database.WithRealm([]byte{0})
	require.NoError(t, err)
	ledgerStore, err := database.WithRealm([]byte{1})
	require.NoError(t, err)

	registry := objects.NewRegistry(objects.WithStore(objectsStore))
	ledger := New(registry, eventsink.New(), WithStore(ledgerStore))

	var issuer objects.Address
	require.NoError(t, issuer.FromRandomness())

	for i := 0; i < 3; i++ {
		classCtor, err := registry.CreateObject(issuer)
		require.NoError(t, err)
		metadata, _, _, _, err := ledger.CreateClass(classCtor, Tracked(), "Coin", "CN", 2)
		require.NoError(t, err)
		assert.True(t, registry.OwnsObject(metadata.Address(), issuer))
	}
	assert.Equal(t, []byte{1, PrefixMetadataStorage}, ledger.Storage.metadataStorage.Realm())
	assert.Equal(t, []byte{1, PrefixStoreStorage}, ledger.Storage.storeStorage.Realm())
}
