package objects

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

const (
	// PrefixObjectStorage defines the storage prefix for the ownership records of objects.
	PrefixObjectStorage byte = iota

	// PrefixCreationCounterStorage defines the storage prefix for the per-owner creation counters.
	PrefixCreationCounterStorage
)

// region objectRecord /////////////////////////////////////////////////////////////////////////////////////////////////

// objectRecord is the persisted core of an object: who owns it and whether it may be deleted.
type objectRecord struct {
	owner     Address
	deletable bool
}

// objectRecordFromBytes unmarshals an objectRecord from a sequence of bytes.
func objectRecordFromBytes(bytes []byte) (record *objectRecord, err error) {
	marshalUtil := marshalutil.New(bytes)

	record = new(objectRecord)
	if err = record.owner.FromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse owner of object: %w", err)
	}
	if record.deletable, err = marshalUtil.ReadBool(); err != nil {
		return nil, errors.Errorf("failed to parse deletable flag (%v): %w", err, cerrors.ErrParseBytesFailed)
	}

	return record, nil
}

// Bytes returns a marshaled version of the objectRecord.
func (o *objectRecord) Bytes() []byte {
	return marshalutil.New(AddressLength + marshalutil.BoolSize).
		WriteBytes(o.owner.Bytes()).
		WriteBool(o.deletable).
		Bytes()
}

// String returns a human-readable version of the objectRecord.
func (o *objectRecord) String() string {
	return stringify.Struct("objectRecord",
		stringify.StructField("owner", o.owner),
		stringify.StructField("deletable", o.deletable),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region storage //////////////////////////////////////////////////////////////////////////////////////////////////////

// storage bundles the KVStore realms that hold the state of a Registry.
type storage struct {
	objects  kvstore.KVStore
	counters kvstore.KVStore
}

// newStorage returns a new storage that is scoped to the given KVStore.
func newStorage(store kvstore.KVStore) (new *storage) {
	return &storage{
		objects:  realm(store, PrefixObjectStorage),
		counters: realm(store, PrefixCreationCounterStorage),
	}
}

// objectRecord loads the objectRecord of the given Address.
func (s *storage) objectRecord(address Address) (record *objectRecord, err error) {
	recordBytes, err := s.objects.Get(address.Bytes())
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, errors.Errorf("failed to load %s: %w", address, ErrObjectNotFound)
		}

		return nil, errors.Errorf("failed to load %s (%v): %w", address, err, cerrors.ErrFatal)
	}

	return objectRecordFromBytes(recordBytes)
}

// hasObject returns true if an objectRecord exists for the given Address.
func (s *storage) hasObject(address Address) (exists bool) {
	exists, err := s.objects.Has(address.Bytes())
	if err != nil {
		panic(errors.Errorf("failed to check existence of %s (%v): %w", address, err, cerrors.ErrFatal))
	}

	return exists
}

// storeObjectRecord persists the objectRecord of the given Address.
func (s *storage) storeObjectRecord(address Address, record *objectRecord) (err error) {
	if err = s.objects.Set(address.Bytes(), record.Bytes()); err != nil {
		return errors.Errorf("failed to store %s (%v): %w", address, err, cerrors.ErrFatal)
	}

	return nil
}

// deleteObjectRecord removes the objectRecord of the given Address.
func (s *storage) deleteObjectRecord(address Address) (err error) {
	if err = s.objects.Delete(address.Bytes()); err != nil {
		return errors.Errorf("failed to delete %s (%v): %w", address, err, cerrors.ErrFatal)
	}

	return nil
}

// nextCreationNumber increases and returns the creation counter of the given owner.
func (s *storage) nextCreationNumber(owner Address) (creationNumber uint64, err error) {
	counterBytes, err := s.counters.Get(owner.Bytes())
	switch {
	case errors.Is(err, kvstore.ErrKeyNotFound):
		creationNumber = 0
	case err != nil:
		return 0, errors.Errorf("failed to load creation counter of %s (%v): %w", owner, err, cerrors.ErrFatal)
	default:
		if creationNumber, err = marshalutil.New(counterBytes).ReadUint64(); err != nil {
			return 0, errors.Errorf("failed to parse creation counter (%v): %w", err, cerrors.ErrParseBytesFailed)
		}
	}

	if err = s.counters.Set(owner.Bytes(), marshalutil.New(marshalutil.Uint64Size).WriteUint64(creationNumber+1).Bytes()); err != nil {
		return 0, errors.Errorf("failed to store creation counter of %s (%v): %w", owner, err, cerrors.ErrFatal)
	}

	return creationNumber, nil
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
