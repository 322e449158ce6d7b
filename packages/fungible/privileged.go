package fungible

import (
	"github.com/cockroachdb/errors"
)

// region minting //////////////////////////////////////////////////////////////////////////////////////////////////////

// Mint creates new units of the asset class of the MintRef and returns them as a FungibleAsset.
func (l *Ledger) Mint(mintRef *MintRef, amount uint64) (asset *FungibleAsset, err error) {
	if amount == 0 {
		return nil, errors.Errorf("failed to mint: %w", ErrZeroAmount)
	}

	current, tracked, err := l.increaseSupply(mintRef.metadata, amount)
	if err != nil {
		return nil, errors.Errorf("failed to mint %d of %s: %w", amount, mintRef.metadata, err)
	}

	l.log.Debugw("minted", "metadata", mintRef.metadata, "amount", amount, "supply", current)
	l.Events.Minted.Trigger(&SupplyChangedEvent{Metadata: mintRef.metadata, Amount: amount, Supply: current, Tracked: tracked})

	return l.newAsset(mintRef.metadata, amount), nil
}

// MintTo creates new units of the asset class of the MintRef directly in the Store. The transfer gate of the Store is
// ignored.
func (l *Ledger) MintTo(mintRef *MintRef, store Store, amount uint64) (err error) {
	if amount == 0 {
		return errors.Errorf("failed to mint: %w", ErrZeroAmount)
	}

	var depositEvent *DepositEvent
	var mintedEvent *SupplyChangedEvent
	if err = func() error {
		l.objectMutex.Lock(store.address)
		defer l.objectMutex.Unlock(store.address)

		record, err := l.Storage.storeRecord(store)
		if err != nil {
			return errors.Errorf("failed to mint: %w", err)
		}
		if err = checkDeposit(store, record, mintRef.metadata, amount); err != nil {
			return errors.Errorf("failed to mint: %w", err)
		}

		current, tracked, err := l.increaseSupply(mintRef.metadata, amount)
		if err != nil {
			return errors.Errorf("failed to mint %d of %s: %w", amount, mintRef.metadata, err)
		}

		update := newStoreUpdate(store, record)
		record.balance += amount
		if err = l.Storage.storeStoreRecords(update); err != nil {
			l.revertSupplyIncrease(mintRef.metadata, amount)
			return errors.Errorf("failed to mint: %w", err)
		}

		depositEvent = l.emitDeposit(store, record, amount)
		mintedEvent = &SupplyChangedEvent{Metadata: mintRef.metadata, Amount: amount, Supply: current, Tracked: tracked}

		return nil
	}(); err != nil {
		return err
	}

	l.log.Debugw("minted", "metadata", mintRef.metadata, "store", store, "amount", amount, "supply", mintedEvent.Supply)
	l.Events.Minted.Trigger(mintedEvent)
	l.Events.Deposit.Trigger(depositEvent)

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region burning //////////////////////////////////////////////////////////////////////////////////////////////////////

// Burn destroys the value of the FungibleAsset and consumes it. The FungibleAsset needs to belong to the asset class of
// the BurnRef.
func (l *Ledger) Burn(burnRef *BurnRef, asset *FungibleAsset) (err error) {
	if asset.consumed {
		return errors.Errorf("failed to burn %s: %w", asset, ErrAssetConsumed)
	}
	if asset.metadata != burnRef.metadata {
		return errors.Errorf("failed to burn %s with capability of %s: %w", asset, burnRef.metadata, ErrClassMismatch)
	}

	amount := asset.amount
	current, tracked, err := l.decreaseSupply(burnRef.metadata, amount)
	if err != nil {
		return errors.Errorf("failed to burn %d of %s: %w", amount, burnRef.metadata, err)
	}
	asset.consume()

	l.log.Debugw("burned", "metadata", burnRef.metadata, "amount", amount, "supply", current)
	l.Events.Burned.Trigger(&SupplyChangedEvent{Metadata: burnRef.metadata, Amount: amount, Supply: current, Tracked: tracked})

	return nil
}

// BurnFrom destroys the given amount directly in the Store. The transfer gate of the Store is ignored.
func (l *Ledger) BurnFrom(burnRef *BurnRef, store Store, amount uint64) (err error) {
	var withdrawEvent *WithdrawEvent
	var burnedEvent *SupplyChangedEvent
	if err = func() error {
		l.objectMutex.Lock(store.address)
		defer l.objectMutex.Unlock(store.address)

		record, err := l.Storage.storeRecord(store)
		if err != nil {
			return errors.Errorf("failed to burn: %w", err)
		}
		if err = classOf(burnRef.metadata)(store, record); err != nil {
			return errors.Errorf("failed to burn: %w", err)
		}
		if err = checkWithdrawal(store, record, amount); err != nil {
			return errors.Errorf("failed to burn: %w", err)
		}

		current, tracked, err := l.decreaseSupply(burnRef.metadata, amount)
		if err != nil {
			return errors.Errorf("failed to burn %d of %s: %w", amount, burnRef.metadata, err)
		}

		update := newStoreUpdate(store, record)
		record.balance -= amount
		if err = l.Storage.storeStoreRecords(update); err != nil {
			l.revertSupplyDecrease(burnRef.metadata, amount)
			return errors.Errorf("failed to burn: %w", err)
		}

		withdrawEvent = l.emitWithdraw(store, record, amount)
		burnedEvent = &SupplyChangedEvent{Metadata: burnRef.metadata, Amount: amount, Supply: current, Tracked: tracked}

		return nil
	}(); err != nil {
		return err
	}

	l.log.Debugw("burned", "metadata", burnRef.metadata, "store", store, "amount", amount, "supply", burnedEvent.Supply)
	l.Events.Withdraw.Trigger(withdrawEvent)
	l.Events.Burned.Trigger(burnedEvent)

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region forced transfers /////////////////////////////////////////////////////////////////////////////////////////////

// WithdrawWithRef takes the given amount out of the Store regardless of its owner and its transfer gate.
func (l *Ledger) WithdrawWithRef(transferRef *TransferRef, store Store, amount uint64) (asset *FungibleAsset, err error) {
	return l.withdraw(store, amount, classOf(transferRef.metadata))
}

// DepositWithRef moves the value of the FungibleAsset into the Store regardless of its transfer gate.
func (l *Ledger) DepositWithRef(transferRef *TransferRef, store Store, asset *FungibleAsset) (err error) {
	return l.deposit(store, asset, classOf(transferRef.metadata))
}

// TransferWithRef moves the given amount between two Stores regardless of their owners and their transfer gates.
func (l *Ledger) TransferWithRef(transferRef *TransferRef, from, to Store, amount uint64) (err error) {
	return l.transfer(from, to, amount, []storeCheck{classOf(transferRef.metadata)}, []storeCheck{classOf(transferRef.metadata)})
}

// SetUngatedTransfer opens or closes the transfer gate of the Store.
func (l *Ledger) SetUngatedTransfer(transferRef *TransferRef, store Store, allow bool) (err error) {
	var gateChangedEvent *GateChangedEvent
	if err = func() error {
		l.objectMutex.Lock(store.address)
		defer l.objectMutex.Unlock(store.address)

		record, err := l.Storage.storeRecord(store)
		if err != nil {
			return errors.Errorf("failed to set transfer gate: %w", err)
		}
		if err = classOf(transferRef.metadata)(store, record); err != nil {
			return errors.Errorf("failed to set transfer gate: %w", err)
		}

		update := newStoreUpdate(store, record)
		record.allowUngatedTransfer = allow
		if err = l.Storage.storeStoreRecords(update); err != nil {
			return errors.Errorf("failed to set transfer gate: %w", err)
		}

		l.storeEventHandles(store).gateChanged.Emit(GateChanged{Allowed: allow})
		gateChangedEvent = &GateChangedEvent{Store: store, Metadata: record.metadata, Allowed: allow}

		return nil
	}(); err != nil {
		return err
	}

	l.log.Debugw("transfer gate changed", "store", store, "allowed", allow)
	l.Events.GateChanged.Trigger(gateChangedEvent)

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

// revertSupplyIncrease undoes a supply increase whose store write failed.
func (l *Ledger) revertSupplyIncrease(metadata Metadata, amount uint64) {
	if _, _, err := l.decreaseSupply(metadata, amount); err != nil {
		l.Events.Error.Trigger(errors.Errorf("failed to revert supply increase of %s: %w", metadata, err))
	}
}

// revertSupplyDecrease undoes a supply decrease whose store write failed.
func (l *Ledger) revertSupplyDecrease(metadata Metadata, amount uint64) {
	if _, _, err := l.increaseSupply(metadata, amount); err != nil {
		l.Events.Error.Trigger(errors.Errorf("failed to revert supply decrease of %s: %w", metadata, err))
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
