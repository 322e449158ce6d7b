package fungible

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/iotaledger/fungible/packages/eventsink"
	"github.com/iotaledger/fungible/packages/objects"
)

// region TestFramework ////////////////////////////////////////////////////////////////////////////////////////////////

// TestFramework bundles a Ledger with its collaborators and allows to refer to holders, asset classes and Stores by
// their alias.
type TestFramework struct {
	Ledger  *Ledger
	Objects *objects.Registry
	Sink    *eventsink.Sink

	test              *testing.T
	holdersByAlias    map[string]objects.Address
	classesByAlias    map[string]*TestClass
	storesByAlias     map[string]Store
	storeCtorsByAlias map[string]*objects.ConstructorRef
}

// NewTestFramework creates a TestFramework with an empty Ledger.
func NewTestFramework(test *testing.T, opts ...Option) (new *TestFramework) {
	new = &TestFramework{
		Objects: objects.NewRegistry(),
		Sink:    eventsink.New(),

		test:              test,
		holdersByAlias:    make(map[string]objects.Address),
		classesByAlias:    make(map[string]*TestClass),
		storesByAlias:     make(map[string]Store),
		storeCtorsByAlias: make(map[string]*objects.ConstructorRef),
	}
	new.Ledger = New(new.Objects, new.Sink, opts...)

	return new
}

// CreateHolder creates a random account Address and registers it under the given alias.
func (t *TestFramework) CreateHolder(alias string) (holder objects.Address) {
	require.NoError(t.test, holder.FromRandomness())
	holder.RegisterAlias(alias)
	t.holdersByAlias[alias] = holder

	return holder
}

// Holder returns the account Address with the given alias.
func (t *TestFramework) Holder(alias string) (holder objects.Address) {
	holder, exists := t.holdersByAlias[alias]
	if !exists {
		panic(fmt.Sprintf("tried to retrieve holder with unknown alias: %s", alias))
	}

	return holder
}

// Signer returns a Signer for the holder with the given alias.
func (t *TestFramework) Signer(alias string) objects.Signer {
	return objects.NewSigner(t.Holder(alias))
}

// CreateClass creates an asset class on a new object of the given holder.
func (t *TestFramework) CreateClass(alias, ownerAlias string, policy SupplyPolicy) (class *TestClass) {
	constructorRef, err := t.Objects.CreateObject(t.Holder(ownerAlias))
	require.NoError(t.test, err)
	constructorRef.Address().RegisterAlias(alias)

	symbol := alias
	if len(symbol) > MaxSymbolLength {
		symbol = symbol[:MaxSymbolLength]
	}

	class = &TestClass{}
	class.Metadata, class.MintRef, class.TransferRef, class.BurnRef, err = t.Ledger.CreateClass(constructorRef, policy, alias, symbol, 8)
	require.NoError(t.test, err)
	t.classesByAlias[alias] = class

	return class
}

// Class returns the asset class with the given alias.
func (t *TestFramework) Class(alias string) (class *TestClass) {
	class, exists := t.classesByAlias[alias]
	if !exists {
		panic(fmt.Sprintf("tried to retrieve class with unknown alias: %s", alias))
	}

	return class
}

// CreateStore creates a Store of the given asset class on a new object of the given holder.
func (t *TestFramework) CreateStore(alias, ownerAlias, classAlias string) (store Store) {
	constructorRef, err := t.Objects.CreateObject(t.Holder(ownerAlias))
	require.NoError(t.test, err)
	constructorRef.Address().RegisterAlias(alias)

	store, err = t.Ledger.CreateStore(constructorRef, t.Class(classAlias).Metadata)
	require.NoError(t.test, err)
	t.storesByAlias[alias] = store
	t.storeCtorsByAlias[alias] = constructorRef

	return store
}

// Store returns the Store with the given alias.
func (t *TestFramework) Store(alias string) (store Store) {
	store, exists := t.storesByAlias[alias]
	if !exists {
		panic(fmt.Sprintf("tried to retrieve store with unknown alias: %s", alias))
	}

	return store
}

// StoreDeleteRef returns a DeleteRef for the object of the Store with the given alias.
func (t *TestFramework) StoreDeleteRef(alias string) (deleteRef *objects.DeleteRef) {
	constructorRef, exists := t.storeCtorsByAlias[alias]
	if !exists {
		panic(fmt.Sprintf("tried to retrieve store with unknown alias: %s", alias))
	}

	deleteRef, err := constructorRef.GenerateDeleteRef()
	require.NoError(t.test, err)

	return deleteRef
}

// MintTo mints the amount of the asset class of the Store directly into it.
func (t *TestFramework) MintTo(storeAlias string, amount uint64) {
	metadata, err := t.Ledger.StoreMetadata(t.Store(storeAlias))
	require.NoError(t.test, err)

	for _, class := range t.classesByAlias {
		if class.Metadata == metadata {
			require.NoError(t.test, t.Ledger.MintTo(class.MintRef, t.Store(storeAlias), amount))
			return
		}
	}

	panic(fmt.Sprintf("store %s belongs to an unknown class", storeAlias))
}

// AssertBalances checks the balances of the Stores with the given aliases.
func (t *TestFramework) AssertBalances(expectedBalances map[string]uint64) {
	for alias, expectedBalance := range expectedBalances {
		assert.Equalf(t.test, expectedBalance, t.Ledger.Balance(t.Store(alias)), "Store(%s): unexpected balance", alias)
	}
}

// AssertSupply checks the tracked supply of the asset class with the given alias.
func (t *TestFramework) AssertSupply(classAlias string, expectedSupply uint64) {
	current, tracked, err := t.Ledger.Supply(t.Class(classAlias).Metadata)
	require.NoError(t.test, err)
	require.Truef(t.test, tracked, "Class(%s): supply is not tracked", classAlias)
	assert.Equalf(t.test, uint128.From64(expectedSupply), current, "Class(%s): unexpected supply", classAlias)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TestClass ////////////////////////////////////////////////////////////////////////////////////////////////////

// TestClass bundles an asset class with its capabilities.
type TestClass struct {
	Metadata    Metadata
	MintRef     *MintRef
	TransferRef *TransferRef
	BurnRef     *BurnRef
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
