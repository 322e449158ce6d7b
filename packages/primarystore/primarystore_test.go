package primarystore

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/fungible/packages/fungible"
	"github.com/iotaledger/fungible/packages/objects"
)

func TestPrimaryStores_Transfer(t *testing.T) {
	tf := fungible.NewTestFramework(t)
	issuer, alice, bob := tf.CreateHolder("issuer"), tf.CreateHolder("alice"), tf.CreateHolder("bob")
	class := tf.CreateClass("Coin", "issuer", fungible.Tracked())

	primaryStores := New(tf.Ledger)
	assert.False(t, primaryStores.Exists(alice, class.Metadata))
	assert.Equal(t, uint64(0), primaryStores.Balance(alice, class.Metadata))
	assert.False(t, primaryStores.IsFrozen(alice, class.Metadata))

	require.NoError(t, primaryStores.MintTo(class.MintRef, alice, 100))
	assert.True(t, primaryStores.Exists(alice, class.Metadata))
	assert.Equal(t, Address(alice, class.Metadata), Store(alice, class.Metadata).Address())
	assert.True(t, tf.Objects.OwnsObject(Address(alice, class.Metadata), alice))

	require.NoError(t, primaryStores.Transfer(tf.Signer("alice"), class.Metadata, bob, 40))
	assert.Equal(t, uint64(60), primaryStores.Balance(alice, class.Metadata))
	assert.Equal(t, uint64(40), primaryStores.Balance(bob, class.Metadata))

	err := primaryStores.Transfer(tf.Signer("bob"), class.Metadata, issuer, 41)
	assert.True(t, errors.Is(err, fungible.ErrInsufficientBalance))
	assert.True(t, primaryStores.Exists(issuer, class.Metadata))

	asset, err := primaryStores.Withdraw(tf.Signer("bob"), class.Metadata, 40)
	require.NoError(t, err)
	require.NoError(t, primaryStores.Deposit(issuer, asset))
	assert.Equal(t, uint64(40), primaryStores.Balance(issuer, class.Metadata))
	tf.AssertSupply("Coin", 100)
}

func TestPrimaryStores_Ensure(t *testing.T) {
	tf := fungible.NewTestFramework(t)
	alice := tf.CreateHolder("alice")
	tf.CreateHolder("issuer")
	coin := tf.CreateClass("Coin", "issuer", fungible.Tracked())
	other := tf.CreateClass("Other", "issuer", fungible.Untracked())

	primaryStores := New(tf.Ledger)

	first, err := primaryStores.Ensure(alice, coin.Metadata)
	require.NoError(t, err)
	second, err := primaryStores.Ensure(alice, coin.Metadata)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	otherStore, err := primaryStores.Ensure(alice, other.Metadata)
	require.NoError(t, err)
	assert.NotEqual(t, first, otherStore)

	metadata, err := tf.Ledger.StoreMetadata(otherStore)
	require.NoError(t, err)
	assert.Equal(t, other.Metadata, metadata)

	var unknown objects.Address
	require.NoError(t, unknown.FromRandomness())
	_, err = primaryStores.Ensure(alice, fungible.MetadataFromAddress(unknown))
	assert.True(t, errors.Is(err, fungible.ErrNotFound))
}

func TestPrimaryStores_Frozen(t *testing.T) {
	tf := fungible.NewTestFramework(t)
	alice, bob := tf.CreateHolder("alice"), tf.CreateHolder("bob")
	tf.CreateHolder("issuer")
	class := tf.CreateClass("Coin", "issuer", fungible.Tracked())

	primaryStores := New(tf.Ledger)
	require.NoError(t, primaryStores.MintTo(class.MintRef, alice, 10))
	require.NoError(t, tf.Ledger.SetUngatedTransfer(class.TransferRef, Store(alice, class.Metadata), false))
	assert.True(t, primaryStores.IsFrozen(alice, class.Metadata))

	err := primaryStores.Transfer(tf.Signer("alice"), class.Metadata, bob, 1)
	assert.True(t, errors.Is(err, fungible.ErrUngatedTransferDisallowed))
	assert.Equal(t, uint64(10), primaryStores.Balance(alice, class.Metadata))
}
