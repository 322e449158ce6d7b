package objects

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateObject(t *testing.T) {
	registry := NewRegistry()

	var alice Address
	require.NoError(t, alice.FromRandomness())

	created := 0
	registry.Events.ObjectCreated.Hook(event.NewClosure(func(event *ObjectCreatedEvent) {
		assert.Equal(t, alice, event.Owner)
		created++
	}))

	first, err := registry.CreateObject(alice)
	require.NoError(t, err)
	second, err := registry.CreateObject(alice)
	require.NoError(t, err)

	assert.NotEqual(t, first.Address(), second.Address())
	assert.Equal(t, DeriveObjectAddress(alice, 0), first.Address())
	assert.Equal(t, DeriveObjectAddress(alice, 1), second.Address())
	assert.True(t, registry.Exists(first.Address()))
	assert.True(t, first.Deletable())
	assert.Equal(t, 2, created)

	owner, err := registry.Owner(first.Address())
	require.NoError(t, err)
	assert.Equal(t, alice, owner)
}

func TestRegistry_CreateNamedObject(t *testing.T) {
	registry := NewRegistry()

	var alice Address
	require.NoError(t, alice.FromRandomness())

	constructorRef, err := registry.CreateNamedObject(alice, []byte("seed"))
	require.NoError(t, err)
	assert.Equal(t, DeriveNamedObjectAddress(alice, []byte("seed")), constructorRef.Address())
	assert.False(t, constructorRef.Deletable())

	_, err = registry.CreateNamedObject(alice, []byte("seed"))
	assert.True(t, errors.Is(err, ErrObjectExists))

	_, err = constructorRef.GenerateDeleteRef()
	assert.True(t, errors.Is(err, ErrNotDeletable))
}

func TestRegistry_OwnsObject(t *testing.T) {
	registry := NewRegistry()

	var alice, bob Address
	require.NoError(t, alice.FromRandomness())
	require.NoError(t, bob.FromRandomness())

	parent, err := registry.CreateObject(alice)
	require.NoError(t, err)
	child, err := registry.CreateObject(parent.Address())
	require.NoError(t, err)

	assert.True(t, registry.OwnsObject(parent.Address(), alice))
	assert.True(t, registry.OwnsObject(child.Address(), parent.Address()))
	assert.True(t, registry.OwnsObject(child.Address(), alice))
	assert.False(t, registry.OwnsObject(child.Address(), bob))
	assert.False(t, registry.OwnsObject(bob, alice))
}

func TestRegistry_TransferObject(t *testing.T) {
	registry := NewRegistry()

	var alice, bob Address
	require.NoError(t, alice.FromRandomness())
	require.NoError(t, bob.FromRandomness())

	constructorRef, err := registry.CreateObject(alice)
	require.NoError(t, err)

	err = registry.TransferObject(NewSigner(bob), constructorRef.Address(), bob)
	assert.True(t, errors.Is(err, ErrNotOwner))

	var transferred *ObjectTransferredEvent
	registry.Events.ObjectTransferred.Hook(event.NewClosure(func(event *ObjectTransferredEvent) {
		transferred = event
	}))

	require.NoError(t, registry.TransferObject(NewSigner(alice), constructorRef.Address(), bob))
	assert.True(t, registry.OwnsObject(constructorRef.Address(), bob))
	assert.False(t, registry.OwnsObject(constructorRef.Address(), alice))
	require.NotNil(t, transferred)
	assert.Equal(t, alice, transferred.From)
	assert.Equal(t, bob, transferred.To)
}

func TestRegistry_Delete(t *testing.T) {
	registry := NewRegistry()

	var alice Address
	require.NoError(t, alice.FromRandomness())

	constructorRef, err := registry.CreateObject(alice)
	require.NoError(t, err)
	deleteRef, err := constructorRef.GenerateDeleteRef()
	require.NoError(t, err)
	assert.Equal(t, constructorRef.Address(), deleteRef.Object())

	require.NoError(t, registry.Delete(deleteRef))
	assert.False(t, registry.Exists(constructorRef.Address()))
	assert.True(t, errors.Is(registry.Delete(deleteRef), ErrObjectNotFound))

	_, err = registry.Owner(constructorRef.Address())
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestRegistry_DeleteGuard(t *testing.T) {
	registry := NewRegistry()

	var alice Address
	require.NoError(t, alice.FromRandomness())

	constructorRef, err := registry.CreateObject(alice)
	require.NoError(t, err)
	deleteRef, err := constructorRef.GenerateDeleteRef()
	require.NoError(t, err)

	errLocked := errors.New("object is locked")
	locked := true
	registry.RegisterDeleteGuard(func(object Address) error {
		if locked && object == constructorRef.Address() {
			return errLocked
		}

		return nil
	})

	assert.True(t, errors.Is(registry.Delete(deleteRef), errLocked))
	assert.True(t, registry.Exists(constructorRef.Address()))

	locked = false
	require.NoError(t, registry.Delete(deleteRef))
	assert.False(t, registry.Exists(constructorRef.Address()))
}

func TestAddress_Base58(t *testing.T) {
	var address Address
	require.NoError(t, address.FromRandomness())

	restored, err := AddressFromBase58(address.Base58())
	require.NoError(t, err)
	assert.Equal(t, address, restored)

	address.RegisterAlias("treasury")
	defer address.UnregisterAlias()
	assert.Equal(t, "Address(treasury)", address.String())
}

func TestAddressFromBase58_Malformed(t *testing.T) {
	var address Address
	require.NoError(t, address.FromRandomness())

	_, err := AddressFromBase58(base58.Encode(append(address.Bytes(), 1, 2, 3, 4, 5, 6, 7, 8)))
	assert.True(t, errors.Is(err, cerrors.ErrParseBytesFailed))

	_, err = AddressFromBase58(base58.Encode(address.Bytes()[:AddressLength-1]))
	assert.Error(t, err)

	_, err = AddressFromBase58("0OIl")
	assert.True(t, errors.Is(err, cerrors.ErrBase58DecodeFailed))
}
