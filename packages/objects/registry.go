package objects

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// MaxOwnershipDepth is the maximum number of hops that are followed when resolving indirect ownership.
const MaxOwnershipDepth = 8

// region Registry /////////////////////////////////////////////////////////////////////////////////////////////////////

// Registry is the object system: it hands out addresses for new objects, keeps track of who owns them and allows to
// transfer and delete them. Records of other components are attached to objects by their Address.
type Registry struct {
	// Events is a dictionary for Registry related events.
	Events *Events

	storage      *storage
	options      *options
	deleteGuards []DeleteGuard
	mutex        sync.RWMutex
}

// NewRegistry returns a new Registry from the given options.
func NewRegistry(options ...Option) (new *Registry) {
	new = &Registry{
		Events:  newEvents(),
		options: newOptions(options...),
	}
	new.storage = newStorage(new.options.store)

	return new
}

// CreateObject creates a new deletable object that is owned by the given owner. Its Address is derived from the owner
// and the number of objects the owner created before.
func (r *Registry) CreateObject(owner Address) (constructorRef *ConstructorRef, err error) {
	r.mutex.Lock()
	creationNumber, err := r.storage.nextCreationNumber(owner)
	if err != nil {
		r.mutex.Unlock()
		return nil, errors.Errorf("failed to create object for %s: %w", owner, err)
	}

	address := DeriveObjectAddress(owner, creationNumber)
	if constructorRef, err = r.createObject(address, owner, true); err != nil {
		r.mutex.Unlock()
		return nil, err
	}
	r.mutex.Unlock()

	r.Events.ObjectCreated.Trigger(&ObjectCreatedEvent{Object: address, Owner: owner})

	return constructorRef, nil
}

// CreateNamedObject creates a non-deletable object at the Address that is derived from the owner and the given seed.
// It fails if the object exists already.
func (r *Registry) CreateNamedObject(owner Address, seed []byte) (constructorRef *ConstructorRef, err error) {
	address := DeriveNamedObjectAddress(owner, seed)

	r.mutex.Lock()
	if constructorRef, err = r.createObject(address, owner, false); err != nil {
		r.mutex.Unlock()
		return nil, err
	}
	r.mutex.Unlock()

	r.Events.ObjectCreated.Trigger(&ObjectCreatedEvent{Object: address, Owner: owner})

	return constructorRef, nil
}

// Exists returns true if an object exists at the given Address.
func (r *Registry) Exists(address Address) (exists bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.storage.hasObject(address)
}

// Owner returns the direct owner of the object at the given Address.
func (r *Registry) Owner(object Address) (owner Address, err error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	record, err := r.storage.objectRecord(object)
	if err != nil {
		return EmptyAddress, err
	}

	return record.owner, nil
}

// OwnsObject returns true if the given owner owns the object either directly or through a chain of objects that own
// each other.
func (r *Registry) OwnsObject(object, owner Address) (owns bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	owns, err := r.ownsObject(object, owner)

	return err == nil && owns
}

// TransferObject changes the owner of the object to the given Address. The Signer needs to own the object.
func (r *Registry) TransferObject(signer Signer, object, to Address) (err error) {
	r.mutex.Lock()
	record, err := r.storage.objectRecord(object)
	if err != nil {
		r.mutex.Unlock()
		return errors.Errorf("failed to transfer object: %w", err)
	}

	owns, err := r.ownsObject(object, signer.Address())
	if err != nil {
		r.mutex.Unlock()
		return errors.Errorf("failed to transfer object: %w", err)
	}
	if !owns {
		r.mutex.Unlock()
		return errors.Errorf("failed to transfer %s as %s: %w", object, signer.Address(), ErrNotOwner)
	}

	from := record.owner
	record.owner = to
	if err = r.storage.storeObjectRecord(object, record); err != nil {
		r.mutex.Unlock()
		return err
	}
	r.mutex.Unlock()

	r.Events.ObjectTransferred.Trigger(&ObjectTransferredEvent{Object: object, From: from, To: to})

	return nil
}

// RegisterDeleteGuard adds a DeleteGuard that is consulted before an object is deleted.
func (r *Registry) RegisterDeleteGuard(guard DeleteGuard) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.deleteGuards = append(r.deleteGuards, guard)
}

// Delete removes the object that the DeleteRef refers to. The deletion is refused if any of the registered
// DeleteGuards returns an error (e.g. the Ledger refuses to delete objects that still carry a balance). Records
// that other components attached to the object are not removed.
func (r *Registry) Delete(deleteRef *DeleteRef) (err error) {
	r.mutex.Lock()
	if !r.storage.hasObject(deleteRef.address) {
		r.mutex.Unlock()
		return errors.Errorf("failed to delete %s: %w", deleteRef.address, ErrObjectNotFound)
	}

	for _, guard := range r.deleteGuards {
		if err = guard(deleteRef.address); err != nil {
			r.mutex.Unlock()
			return errors.Errorf("failed to delete %s: %w", deleteRef.address, err)
		}
	}

	if err = r.storage.deleteObjectRecord(deleteRef.address); err != nil {
		r.mutex.Unlock()
		return err
	}
	r.mutex.Unlock()

	r.Events.ObjectDeleted.Trigger(&ObjectDeletedEvent{Object: deleteRef.address})

	return nil
}

// createObject stores the objectRecord of a new object (the caller needs to hold the write lock).
func (r *Registry) createObject(address, owner Address, deletable bool) (constructorRef *ConstructorRef, err error) {
	if r.storage.hasObject(address) {
		return nil, errors.Errorf("failed to create %s: %w", address, ErrObjectExists)
	}

	if err = r.storage.storeObjectRecord(address, &objectRecord{owner: owner, deletable: deletable}); err != nil {
		return nil, errors.Errorf("failed to create %s: %w", address, err)
	}

	return &ConstructorRef{address: address, deletable: deletable}, nil
}

// ownsObject walks up the ownership chain of the object (the caller needs to hold at least the read lock).
func (r *Registry) ownsObject(object, owner Address) (owns bool, err error) {
	current := object
	for depth := 0; depth < MaxOwnershipDepth; depth++ {
		record, err := r.storage.objectRecord(current)
		if err != nil {
			return false, err
		}

		if record.owner == owner {
			return true, nil
		}

		if !r.storage.hasObject(record.owner) {
			return false, nil
		}
		current = record.owner
	}

	return false, errors.Errorf("failed to resolve owner of %s: %w", object, ErrMaxOwnershipDepth)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region DeleteGuard //////////////////////////////////////////////////////////////////////////////////////////////////

// DeleteGuard is consulted by the Registry before an object is deleted and refuses the deletion by returning an error.
// It is called while the Registry is locked and must not call back into the Registry.
type DeleteGuard func(object Address) error

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
