package fungible

import (
	"github.com/cockroachdb/errors"

	"github.com/iotaledger/fungible/packages/objects"
)

// region store lifecycle //////////////////////////////////////////////////////////////////////////////////////////////

// CreateStore attaches an empty Store of the given asset class to the object of the ConstructorRef. The transfer gate
// of a new Store is open.
func (l *Ledger) CreateStore(constructorRef *objects.ConstructorRef, metadata Metadata) (store Store, err error) {
	store = StoreFromAddress(constructorRef.Address())

	if !l.Storage.HasMetadata(metadata) {
		return store, errors.Errorf("failed to create store of %s: %w", metadata, ErrNotFound)
	}

	if err = func() error {
		l.objectMutex.Lock(store.address)
		defer l.objectMutex.Unlock(store.address)

		if !l.objects.Exists(store.address) {
			return errors.Errorf("failed to create %s: %w", store, ErrNotFound)
		}
		if l.Storage.HasStore(store) {
			return errors.Errorf("failed to create %s: %w", store, ErrStoreExists)
		}

		update := &storeUpdate{store: store, record: &storeRecord{metadata: metadata, allowUngatedTransfer: true}}
		if err := l.Storage.storeStoreRecords(update); err != nil {
			return errors.Errorf("failed to create %s: %w", store, err)
		}
		l.storeEventHandles(store)

		return nil
	}(); err != nil {
		return store, err
	}

	l.log.Debugw("store created", "store", store, "metadata", metadata)
	l.Events.StoreCreated.Trigger(&StoreCreatedEvent{Store: store, Metadata: metadata})

	return store, nil
}

// RemoveStore irreversibly removes the Store from the object of the DeleteRef and tears down its event Handles. Only
// empty Stores can be removed.
func (l *Ledger) RemoveStore(deleteRef *objects.DeleteRef) (err error) {
	store := StoreFromAddress(deleteRef.Object())

	var metadata Metadata
	if err = func() error {
		l.objectMutex.Lock(store.address)
		defer l.objectMutex.Unlock(store.address)

		record, err := l.Storage.storeRecord(store)
		if err != nil {
			return errors.Errorf("failed to remove store: %w", err)
		}
		if record.balance != 0 {
			return errors.Errorf("failed to remove %s with balance %d: %w", store, record.balance, ErrStoreNotEmpty)
		}

		if err = l.Storage.deleteStoreRecord(store); err != nil {
			return errors.Errorf("failed to remove store: %w", err)
		}
		metadata = record.metadata

		l.storeEventsMutex.Lock()
		if handles, exists := l.storeEvents[store.address]; exists {
			handles.destroy()
			delete(l.storeEvents, store.address)
		}
		l.storeEventsMutex.Unlock()

		return nil
	}(); err != nil {
		return err
	}

	l.log.Debugw("store removed", "store", store, "metadata", metadata)
	l.Events.StoreRemoved.Trigger(&StoreRemovedEvent{Store: store, Metadata: metadata})

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region store queries ////////////////////////////////////////////////////////////////////////////////////////////////

// StoreExists returns true if a Store is attached to the object at the given Address.
func (l *Ledger) StoreExists(address objects.Address) bool {
	return l.Storage.HasStore(StoreFromAddress(address))
}

// Balance returns the balance of the Store (0 if the Store does not exist).
func (l *Ledger) Balance(store Store) (balance uint64) {
	l.objectMutex.RLock(store.address)
	defer l.objectMutex.RUnlock(store.address)

	record, err := l.Storage.storeRecord(store)
	if err != nil {
		return 0
	}

	return record.balance
}

// UngatedTransferAllowed returns true if the owner of the Store can move value in and out of it without a TransferRef
// (true if the Store does not exist).
func (l *Ledger) UngatedTransferAllowed(store Store) (allowed bool) {
	l.objectMutex.RLock(store.address)
	defer l.objectMutex.RUnlock(store.address)

	record, err := l.Storage.storeRecord(store)
	if err != nil {
		return true
	}

	return record.allowUngatedTransfer
}

// IsFrozen returns true if the transfer gate of the Store is closed.
func (l *Ledger) IsFrozen(store Store) bool {
	return !l.UngatedTransferAllowed(store)
}

// StoreMetadata returns the asset class of the Store.
func (l *Ledger) StoreMetadata(store Store) (metadata Metadata, err error) {
	l.objectMutex.RLock(store.address)
	defer l.objectMutex.RUnlock(store.address)

	record, err := l.Storage.storeRecord(store)
	if err != nil {
		return metadata, err
	}

	return record.metadata, nil
}

// storeEventHandles returns the event Handles of the Store and creates them for Stores that were loaded from storage.
func (l *Ledger) storeEventHandles(store Store) (handles *storeEventHandles) {
	l.storeEventsMutex.RLock()
	handles, exists := l.storeEvents[store.address]
	l.storeEventsMutex.RUnlock()
	if exists {
		return handles
	}

	l.storeEventsMutex.Lock()
	defer l.storeEventsMutex.Unlock()

	if handles, exists = l.storeEvents[store.address]; !exists {
		handles = newStoreEventHandles(l.sink, store)
		l.storeEvents[store.address] = handles
	}

	return handles
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region storeCheck ///////////////////////////////////////////////////////////////////////////////////////////////////

// storeCheck is a precondition that a storeRecord has to satisfy before value is moved in or out of it.
type storeCheck func(store Store, record *storeRecord) error

// ownedBy requires the Signer to own the object of the Store.
func (l *Ledger) ownedBy(signer objects.Signer) storeCheck {
	return func(store Store, _ *storeRecord) error {
		if !l.objects.OwnsObject(store.address, signer.Address()) {
			return errors.Errorf("failed to access %s as %s: %w", store, signer.Address(), ErrNotOwner)
		}

		return nil
	}
}

// gateOpen requires the transfer gate of the Store to be open.
func gateOpen(store Store, record *storeRecord) error {
	if !record.allowUngatedTransfer {
		return errors.Errorf("failed to access %s: %w", store, ErrUngatedTransferDisallowed)
	}

	return nil
}

// classOf requires the Store to belong to the given asset class.
func classOf(metadata Metadata) storeCheck {
	return func(store Store, record *storeRecord) error {
		if record.metadata != metadata {
			return errors.Errorf("failed to access %s of %s with capability of %s: %w", store, record.metadata, metadata, ErrClassMismatch)
		}

		return nil
	}
}

// runChecks executes the given storeChecks in order and returns the first error.
func runChecks(store Store, record *storeRecord, checks []storeCheck) (err error) {
	for _, check := range checks {
		if err = check(store, record); err != nil {
			return err
		}
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
