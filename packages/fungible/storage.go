package fungible

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/kvstore"
)

const (
	// PrefixMetadataStorage defines the storage prefix for the metadata records of asset classes.
	PrefixMetadataStorage byte = iota

	// PrefixStoreStorage defines the storage prefix for the store records.
	PrefixStoreStorage
)

// region Storage //////////////////////////////////////////////////////////////////////////////////////////////////////

// Storage is a Ledger component that bundles the API to access the persisted records of the Ledger.
type Storage struct {
	metadataStorage kvstore.KVStore
	storeStorage    kvstore.KVStore
}

// newStorage returns a new Storage instance for the given KVStore.
func newStorage(store kvstore.KVStore) (new *Storage) {
	return &Storage{
		metadataStorage: realm(store, PrefixMetadataStorage),
		storeStorage:    realm(store, PrefixStoreStorage),
	}
}

// HasMetadata returns true if a metadata record exists for the given Metadata.
func (s *Storage) HasMetadata(metadata Metadata) (exists bool) {
	exists, err := s.metadataStorage.Has(metadata.address.Bytes())
	if err != nil {
		panic(errors.Errorf("failed to check existence of %s (%v): %w", metadata, err, cerrors.ErrFatal))
	}

	return exists
}

// HasStore returns true if a store record exists for the given Store.
func (s *Storage) HasStore(store Store) (exists bool) {
	exists, err := s.storeStorage.Has(store.address.Bytes())
	if err != nil {
		panic(errors.Errorf("failed to check existence of %s (%v): %w", store, err, cerrors.ErrFatal))
	}

	return exists
}

// metadataRecord loads the metadataRecord of the given Metadata.
func (s *Storage) metadataRecord(metadata Metadata) (record *metadataRecord, err error) {
	recordBytes, err := s.metadataStorage.Get(metadata.address.Bytes())
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, errors.Errorf("failed to load %s: %w", metadata, ErrNotFound)
		}

		return nil, errors.Errorf("failed to load %s (%v): %w", metadata, err, cerrors.ErrFatal)
	}

	if record, err = metadataRecordFromBytes(recordBytes); err != nil {
		return nil, errors.Errorf("failed to parse %s: %w", metadata, err)
	}

	return record, nil
}

// storeMetadataRecord persists the metadataRecord of the given Metadata.
func (s *Storage) storeMetadataRecord(metadata Metadata, record *metadataRecord) (err error) {
	if err = s.metadataStorage.Set(metadata.address.Bytes(), record.Bytes()); err != nil {
		return errors.Errorf("failed to store %s (%v): %w", metadata, err, cerrors.ErrFatal)
	}

	return nil
}

// storeRecord loads the storeRecord of the given Store.
func (s *Storage) storeRecord(store Store) (record *storeRecord, err error) {
	recordBytes, err := s.storeStorage.Get(store.address.Bytes())
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, errors.Errorf("failed to load %s: %w", store, ErrNotFound)
		}

		return nil, errors.Errorf("failed to load %s (%v): %w", store, err, cerrors.ErrFatal)
	}

	if record, err = storeRecordFromBytes(recordBytes); err != nil {
		return nil, errors.Errorf("failed to parse %s: %w", store, err)
	}

	return record, nil
}

// storeStoreRecords persists the given storeRecords. If one of the writes fails, the records that were written before
// are restored to their previous state.
func (s *Storage) storeStoreRecords(updates ...*storeUpdate) (err error) {
	for i, update := range updates {
		if err = s.storeStorage.Set(update.store.address.Bytes(), update.record.Bytes()); err != nil {
			s.rollbackStoreRecords(updates[:i])

			return errors.Errorf("failed to store %s (%v): %w", update.store, err, cerrors.ErrFatal)
		}
	}

	return nil
}

// rollbackStoreRecords restores the previous state of the given (already written) updates.
func (s *Storage) rollbackStoreRecords(updates []*storeUpdate) {
	for i := len(updates) - 1; i >= 0; i-- {
		if err := s.storeStorage.Set(updates[i].store.address.Bytes(), updates[i].previous); err != nil {
			panic(errors.Errorf("failed to roll back %s (%v): %w", updates[i].store, err, cerrors.ErrFatal))
		}
	}
}

// deleteStoreRecord removes the storeRecord of the given Store.
func (s *Storage) deleteStoreRecord(store Store) (err error) {
	if err = s.storeStorage.Delete(store.address.Bytes()); err != nil {
		return errors.Errorf("failed to delete %s (%v): %w", store, err, cerrors.ErrFatal)
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region storeUpdate //////////////////////////////////////////////////////////////////////////////////////////////////

// storeUpdate is a pending modification of a storeRecord that remembers the previous state for rollbacks.
type storeUpdate struct {
	store    Store
	record   *storeRecord
	previous []byte
}

// newStoreUpdate starts tracking modifications of the given storeRecord.
func newStoreUpdate(store Store, record *storeRecord) *storeUpdate {
	return &storeUpdate{
		store:    store,
		record:   record,
		previous: record.Bytes(),
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// realm returns the sub-realm of the KVStore that is identified by the given prefix.
func realm(store kvstore.KVStore, prefix byte) kvstore.KVStore {
	withRealm, err := store.WithRealm(byteutils.ConcatBytes(store.Realm(), []byte{prefix}))
	if err != nil {
		panic(errors.Errorf("failed to create realm %d (%v): %w", prefix, err, cerrors.ErrFatal))
	}

	return withRealm
}
