package primarystore

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"go.uber.org/zap"

	"github.com/iotaledger/fungible/packages/fungible"
	"github.com/iotaledger/fungible/packages/objects"
	"github.com/iotaledger/fungible/packages/syncutils"
)

// region PrimaryStores ////////////////////////////////////////////////////////////////////////////////////////////////

// PrimaryStores manages the canonical Store of every account for every asset class. The primary Store of an account
// lives at a deterministic Address, so senders can deposit into it before the recipient ever interacted with the asset
// class.
type PrimaryStores struct {
	ledger *fungible.Ledger
	mutex  *syncutils.KeyedMutex[objects.Address]
	log    *logger.Logger
}

// New returns PrimaryStores that live on top of the given Ledger.
func New(ledger *fungible.Ledger, opts ...Option) (new *PrimaryStores) {
	new = &PrimaryStores{
		ledger: ledger,
		mutex: syncutils.NewKeyedMutex[objects.Address](func(a, b objects.Address) bool {
			return bytes.Compare(a[:], b[:]) < 0
		}),
		log: zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		opt(new)
	}

	return new
}

// Address returns the Address of the primary Store of the owner for the given asset class.
func Address(owner objects.Address, metadata fungible.Metadata) objects.Address {
	return objects.DeriveNamedObjectAddress(owner, metadata.Address().Bytes())
}

// Store returns the primary Store reference of the owner (the Store does not need to exist).
func Store(owner objects.Address, metadata fungible.Metadata) fungible.Store {
	return fungible.StoreFromAddress(Address(owner, metadata))
}

// Exists returns true if the primary Store of the owner was created.
func (p *PrimaryStores) Exists(owner objects.Address, metadata fungible.Metadata) bool {
	return p.ledger.StoreExists(Address(owner, metadata))
}

// Ensure returns the primary Store of the owner and creates it if it does not exist yet.
func (p *PrimaryStores) Ensure(owner objects.Address, metadata fungible.Metadata) (store fungible.Store, err error) {
	address := Address(owner, metadata)
	store = fungible.StoreFromAddress(address)

	p.mutex.Lock(address)
	defer p.mutex.Unlock(address)

	if p.ledger.StoreExists(address) {
		return store, nil
	}
	if !p.ledger.ClassExists(metadata) {
		return store, errors.Errorf("failed to create primary store of %s for %s: %w", owner, metadata, fungible.ErrNotFound)
	}

	constructorRef, err := p.ledger.Objects().CreateNamedObject(owner, metadata.Address().Bytes())
	if err != nil {
		return store, errors.Errorf("failed to create primary store object of %s: %w", owner, err)
	}
	if store, err = p.ledger.CreateStore(constructorRef, metadata); err != nil {
		return store, errors.Errorf("failed to create primary store of %s: %w", owner, err)
	}

	p.log.Debugw("primary store created", "owner", owner, "metadata", metadata, "store", store)

	return store, nil
}

// Balance returns the balance of the primary Store of the owner (0 if it does not exist).
func (p *PrimaryStores) Balance(owner objects.Address, metadata fungible.Metadata) uint64 {
	return p.ledger.Balance(Store(owner, metadata))
}

// IsFrozen returns true if the transfer gate of the primary Store of the owner is closed.
func (p *PrimaryStores) IsFrozen(owner objects.Address, metadata fungible.Metadata) bool {
	return p.ledger.IsFrozen(Store(owner, metadata))
}

// Withdraw takes the amount out of the primary Store of the Signer.
func (p *PrimaryStores) Withdraw(signer objects.Signer, metadata fungible.Metadata, amount uint64) (asset *fungible.FungibleAsset, err error) {
	return p.ledger.Withdraw(signer, Store(signer.Address(), metadata), amount)
}

// Deposit moves the FungibleAsset into the primary Store of the owner and creates the Store if necessary.
func (p *PrimaryStores) Deposit(owner objects.Address, asset *fungible.FungibleAsset) (err error) {
	store, err := p.Ensure(owner, asset.Metadata())
	if err != nil {
		return err
	}

	return p.ledger.Deposit(store, asset)
}

// Transfer moves the amount from the primary Store of the Signer to the primary Store of the recipient, which is
// created if necessary.
func (p *PrimaryStores) Transfer(signer objects.Signer, metadata fungible.Metadata, recipient objects.Address, amount uint64) (err error) {
	to, err := p.Ensure(recipient, metadata)
	if err != nil {
		return err
	}

	return p.ledger.Transfer(signer, Store(signer.Address(), metadata), to, amount)
}

// MintTo mints the amount into the primary Store of the owner, which is created if necessary.
func (p *PrimaryStores) MintTo(mintRef *fungible.MintRef, owner objects.Address, amount uint64) (err error) {
	store, err := p.Ensure(owner, mintRef.Metadata())
	if err != nil {
		return err
	}

	return p.ledger.MintTo(mintRef, store, amount)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Option ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Option represents the return type of optional parameters that can be handed into the constructor of the
// PrimaryStores.
type Option func(*PrimaryStores)

// WithLogger is an Option that configures the Logger of the PrimaryStores.
func WithLogger(log *logger.Logger) Option {
	return func(p *PrimaryStores) {
		p.log = log
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
