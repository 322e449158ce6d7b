package fungible

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"lukechampine.com/uint128"

	"github.com/iotaledger/fungible/packages/eventsink"
	"github.com/iotaledger/fungible/packages/objects"
	"github.com/iotaledger/fungible/packages/supply"
	"github.com/iotaledger/fungible/packages/syncutils"
)

// region Ledger ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Ledger is the accounting core for fungible assets. Any object can become an asset class by having a metadata record
// attached to it and holders keep their balances in Stores that are bound to exactly one asset class. Privileged
// operations (minting, burning and forced transfers) require the capability tokens that are handed out once, when the
// asset class is created.
type Ledger struct {
	// Events is a dictionary for Ledger related events.
	Events *Events

	// Storage is a dictionary for storage related API endpoints.
	Storage *Storage

	objects          *objects.Registry
	sink             *eventsink.Sink
	supplies         map[objects.Address]supply.Counter
	suppliesMutex    sync.RWMutex
	storeEvents      map[objects.Address]*storeEventHandles
	storeEventsMutex sync.RWMutex
	objectMutex      *syncutils.KeyedMutex[objects.Address]
	options          *options
	log              *logger.Logger
}

// New returns a new Ledger that attaches its records to the objects of the given Registry and emits the events of
// Stores through the given Sink.
func New(registry *objects.Registry, sink *eventsink.Sink, opts ...Option) (ledger *Ledger) {
	ledger = &Ledger{
		Events:      newEvents(),
		objects:     registry,
		sink:        sink,
		supplies:    make(map[objects.Address]supply.Counter),
		storeEvents: make(map[objects.Address]*storeEventHandles),
		objectMutex: syncutils.NewKeyedMutex[objects.Address](storeLess),
		options:     newOptions(opts...),
	}
	ledger.Storage = newStorage(ledger.options.store)
	ledger.log = ledger.options.log

	registry.RegisterDeleteGuard(ledger.guardStoreDeletion)

	return ledger
}

// guardStoreDeletion refuses the deletion of objects that carry a Store with a non-zero balance.
func (l *Ledger) guardStoreDeletion(object objects.Address) (err error) {
	record, err := l.Storage.storeRecord(StoreFromAddress(object))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		return err
	}

	if record.balance != 0 {
		return errors.Errorf("%s holds %d: %w", StoreFromAddress(object), record.balance, ErrStoreNotEmpty)
	}

	return nil
}

// Objects returns the Registry that the Ledger attaches its records to.
func (l *Ledger) Objects() *objects.Registry {
	return l.objects
}

// CreateClass turns the object of the given ConstructorRef into an asset class and returns the capabilities that
// control it. This is the only way to obtain a MintRef, TransferRef or BurnRef.
func (l *Ledger) CreateClass(constructorRef *objects.ConstructorRef, policy SupplyPolicy, name, symbol string, decimals uint8) (metadata Metadata, mintRef *MintRef, transferRef *TransferRef, burnRef *BurnRef, err error) {
	if len(name) > MaxNameLength {
		return metadata, nil, nil, nil, errors.Errorf("failed to create asset class with name of length %d: %w", len(name), ErrNameTooLong)
	}
	if len(symbol) > MaxSymbolLength {
		return metadata, nil, nil, nil, errors.Errorf("failed to create asset class with symbol of length %d: %w", len(symbol), ErrSymbolTooLong)
	}

	metadata = MetadataFromAddress(constructorRef.Address())

	l.objectMutex.Lock(metadata.address)
	defer l.objectMutex.Unlock(metadata.address)

	if !l.objects.Exists(metadata.address) {
		return metadata, nil, nil, nil, errors.Errorf("failed to create asset class on %s: %w", metadata.address, ErrNotFound)
	}
	if l.Storage.HasMetadata(metadata) {
		return metadata, nil, nil, nil, errors.Errorf("failed to create asset class on %s: %w", metadata.address, ErrClassExists)
	}

	record := &metadataRecord{
		name:     name,
		symbol:   symbol,
		decimals: decimals,
		policy:   policy,
		parallel: l.options.parallelSupply,
	}
	if err = l.Storage.storeMetadataRecord(metadata, record); err != nil {
		return metadata, nil, nil, nil, errors.Errorf("failed to create asset class: %w", err)
	}

	l.suppliesMutex.Lock()
	l.supplies[metadata.address] = l.newSupplyCounter(record)
	l.suppliesMutex.Unlock()

	l.log.Debugw("asset class created", "metadata", metadata, "name", name, "symbol", symbol, "policy", policy)
	l.Events.ClassCreated.Trigger(&ClassCreatedEvent{
		Metadata: metadata,
		Name:     name,
		Symbol:   symbol,
		Decimals: decimals,
		Policy:   policy,
	})

	return metadata, &MintRef{metadata: metadata}, &TransferRef{metadata: metadata}, &BurnRef{metadata: metadata}, nil
}

// ClassExists returns true if the given Metadata refers to an existing asset class.
func (l *Ledger) ClassExists(metadata Metadata) bool {
	return l.Storage.HasMetadata(metadata)
}

// Supply returns the current supply of the asset class and a flag that indicates whether the supply is tracked.
func (l *Ledger) Supply(metadata Metadata) (current uint128.Uint128, tracked bool, err error) {
	err = l.withSupplyCounter(metadata, func(counter supply.Counter) error {
		if tracked = counter != nil; tracked {
			current = counter.Read()
		}

		return nil
	})

	return current, tracked, err
}

// Maximum returns the maximum supply of the asset class and a flag that indicates whether a maximum exists.
func (l *Ledger) Maximum(metadata Metadata) (maximum uint128.Uint128, capped bool, err error) {
	record, err := l.Storage.metadataRecord(metadata)
	if err != nil {
		return uint128.Zero, false, err
	}

	if maximum, capped = record.policy.Maximum(); !capped {
		return uint128.Zero, false, nil
	}

	return maximum, true, nil
}

// Name returns the display name of the asset class.
func (l *Ledger) Name(metadata Metadata) (name string, err error) {
	record, err := l.Storage.metadataRecord(metadata)
	if err != nil {
		return "", err
	}

	return record.name, nil
}

// Symbol returns the ticker symbol of the asset class.
func (l *Ledger) Symbol(metadata Metadata) (symbol string, err error) {
	record, err := l.Storage.metadataRecord(metadata)
	if err != nil {
		return "", err
	}

	return record.symbol, nil
}

// Decimals returns the number of decimals that are used to display amounts of the asset class.
func (l *Ledger) Decimals(metadata Metadata) (decimals uint8, err error) {
	record, err := l.Storage.metadataRecord(metadata)
	if err != nil {
		return 0, err
	}

	return record.decimals, nil
}

// UpgradeToConcurrent switches the supply counter of the asset class to the parallelizable implementation. The value
// and the maximum of the supply are preserved.
func (l *Ledger) UpgradeToConcurrent(mintRef *MintRef) (err error) {
	record, err := l.Storage.metadataRecord(mintRef.metadata)
	if err != nil {
		return errors.Errorf("failed to upgrade supply: %w", err)
	}
	if !record.policy.IsTracked() {
		return errors.Errorf("failed to upgrade supply of %s: %w", mintRef.metadata, ErrSupplyNotTracked)
	}

	if err = l.loadSupplyCounter(mintRef.metadata); err != nil {
		return errors.Errorf("failed to upgrade supply: %w", err)
	}

	l.suppliesMutex.Lock()
	defer l.suppliesMutex.Unlock()

	counter := l.supplies[mintRef.metadata.address]
	if counter.Parallelizable() {
		return nil
	}

	record.parallel = true
	record.current = counter.Read()
	if err = l.Storage.storeMetadataRecord(mintRef.metadata, record); err != nil {
		return errors.Errorf("failed to upgrade supply: %w", err)
	}
	l.supplies[mintRef.metadata.address] = supply.Upgrade(counter, l.supplyOptions()...)

	l.log.Debugw("supply upgraded to concurrent counter", "metadata", mintRef.metadata)

	return nil
}

// Zero returns an empty FungibleAsset of the given asset class.
func (l *Ledger) Zero(metadata Metadata) (asset *FungibleAsset, err error) {
	if !l.Storage.HasMetadata(metadata) {
		return nil, errors.Errorf("failed to create empty asset of %s: %w", metadata, ErrNotFound)
	}

	return l.newAsset(metadata, 0), nil
}

// Shutdown checkpoints the values of all supply counters into the metadata records.
func (l *Ledger) Shutdown() {
	l.suppliesMutex.Lock()
	defer l.suppliesMutex.Unlock()

	for address, counter := range l.supplies {
		if counter == nil {
			continue
		}

		metadata := MetadataFromAddress(address)
		record, err := l.Storage.metadataRecord(metadata)
		if err != nil {
			l.Events.Error.Trigger(errors.Errorf("failed to checkpoint supply: %w", err))
			continue
		}

		record.current = counter.Read()
		if err = l.Storage.storeMetadataRecord(metadata, record); err != nil {
			l.Events.Error.Trigger(errors.Errorf("failed to checkpoint supply: %w", err))
		}
	}
}

// increaseSupply adds the amount to the supply counter of the asset class (no-op for untracked asset classes).
func (l *Ledger) increaseSupply(metadata Metadata, amount uint64) (current uint128.Uint128, tracked bool, err error) {
	err = l.withSupplyCounter(metadata, func(counter supply.Counter) error {
		if tracked = counter != nil; !tracked {
			return nil
		}

		if err := counter.Add(uint128.From64(amount)); err != nil {
			return err
		}
		current = counter.Read()

		return nil
	})

	return current, tracked, err
}

// decreaseSupply subtracts the amount from the supply counter of the asset class (no-op for untracked asset classes).
func (l *Ledger) decreaseSupply(metadata Metadata, amount uint64) (current uint128.Uint128, tracked bool, err error) {
	err = l.withSupplyCounter(metadata, func(counter supply.Counter) error {
		if tracked = counter != nil; !tracked {
			return nil
		}

		if err := counter.Sub(uint128.From64(amount)); err != nil {
			return err
		}
		current = counter.Read()

		return nil
	})

	return current, tracked, err
}

// withSupplyCounter executes the callback with the supply counter of the asset class (nil for untracked asset
// classes). The counter can not be swapped while the callback runs.
func (l *Ledger) withSupplyCounter(metadata Metadata, callback func(counter supply.Counter) error) (err error) {
	if err = l.loadSupplyCounter(metadata); err != nil {
		return err
	}

	l.suppliesMutex.RLock()
	defer l.suppliesMutex.RUnlock()

	return callback(l.supplies[metadata.address])
}

// loadSupplyCounter restores the supply counter of the asset class from its last checkpoint if it is not loaded yet.
func (l *Ledger) loadSupplyCounter(metadata Metadata) (err error) {
	l.suppliesMutex.RLock()
	_, loaded := l.supplies[metadata.address]
	l.suppliesMutex.RUnlock()
	if loaded {
		return nil
	}

	record, err := l.Storage.metadataRecord(metadata)
	if err != nil {
		return err
	}

	l.suppliesMutex.Lock()
	defer l.suppliesMutex.Unlock()

	if _, loaded = l.supplies[metadata.address]; !loaded {
		l.supplies[metadata.address] = l.newSupplyCounter(record)
	}

	return nil
}

// newSupplyCounter creates the supply counter that the metadataRecord describes (nil for untracked asset classes).
func (l *Ledger) newSupplyCounter(record *metadataRecord) (counter supply.Counter) {
	if !record.policy.IsTracked() {
		return nil
	}

	counter = supply.New(record.policy.maximum, record.parallel, l.supplyOptions()...)
	if err := counter.Add(record.current); err != nil {
		panic(errors.Errorf("failed to restore supply checkpoint %s: %w", record.current, err))
	}

	return counter
}

// supplyOptions returns the options that parallelizable supply counters are created with.
func (l *Ledger) supplyOptions() (opts []supply.Option) {
	if l.options.supplyShards > 0 {
		opts = append(opts, supply.WithShards(l.options.supplyShards))
	}

	return opts
}

// newAsset creates a FungibleAsset that is covered by the leak detection if it is enabled.
func (l *Ledger) newAsset(metadata Metadata, amount uint64) *FungibleAsset {
	if !l.options.leakDetection {
		return newFungibleAsset(metadata, amount, nil)
	}

	return newFungibleAsset(metadata, amount, l.reportLeak)
}

// reportLeak is called for FungibleAssets that were garbage collected while they still carried value.
func (l *Ledger) reportLeak(metadata Metadata, amount uint64) {
	err := errors.Errorf("fungible asset of %s with amount %d was dropped without being consumed", metadata, amount)

	l.log.Errorw("fungible asset leaked", "metadata", metadata, "amount", amount)
	l.Events.Error.Trigger(err)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
