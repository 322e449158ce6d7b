package fungible

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/iotaledger/fungible/packages/objects"
)

// region ordinary transfers ///////////////////////////////////////////////////////////////////////////////////////////

// Withdraw takes the given amount out of the Store. The Signer needs to own the Store and its transfer gate needs to be
// open.
func (l *Ledger) Withdraw(signer objects.Signer, store Store, amount uint64) (asset *FungibleAsset, err error) {
	return l.withdraw(store, amount, l.ownedBy(signer), gateOpen)
}

// Deposit moves the value of the FungibleAsset into the Store and consumes the FungibleAsset. The transfer gate of the
// Store needs to be open.
func (l *Ledger) Deposit(store Store, asset *FungibleAsset) (err error) {
	return l.deposit(store, asset, gateOpen)
}

// Transfer moves the given amount between two Stores of the same asset class. The Signer needs to own the source and
// the gates of both Stores need to be open. Either both balances change or none does.
func (l *Ledger) Transfer(signer objects.Signer, from, to Store, amount uint64) (err error) {
	return l.transfer(from, to, amount, []storeCheck{l.ownedBy(signer), gateOpen}, []storeCheck{gateOpen})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region internal transfers ///////////////////////////////////////////////////////////////////////////////////////////

// withdraw takes the amount out of the Store after the given checks passed.
func (l *Ledger) withdraw(store Store, amount uint64, checks ...storeCheck) (asset *FungibleAsset, err error) {
	var withdrawEvent *WithdrawEvent
	if err = func() error {
		l.objectMutex.Lock(store.address)
		defer l.objectMutex.Unlock(store.address)

		record, err := l.Storage.storeRecord(store)
		if err != nil {
			return errors.Errorf("failed to withdraw: %w", err)
		}
		if err = runChecks(store, record, checks); err != nil {
			return errors.Errorf("failed to withdraw: %w", err)
		}
		if err = checkWithdrawal(store, record, amount); err != nil {
			return errors.Errorf("failed to withdraw: %w", err)
		}

		update := newStoreUpdate(store, record)
		record.balance -= amount
		if err = l.Storage.storeStoreRecords(update); err != nil {
			return errors.Errorf("failed to withdraw: %w", err)
		}

		withdrawEvent = l.emitWithdraw(store, record, amount)

		return nil
	}(); err != nil {
		return nil, err
	}

	l.log.Debugw("withdraw", "store", store, "amount", amount, "balance", withdrawEvent.Balance)
	l.Events.Withdraw.Trigger(withdrawEvent)

	return l.newAsset(withdrawEvent.Metadata, amount), nil
}

// deposit moves the value of the FungibleAsset into the Store after the given checks passed. Empty FungibleAssets are
// consumed without touching the Store.
func (l *Ledger) deposit(store Store, asset *FungibleAsset, checks ...storeCheck) (err error) {
	if asset.consumed {
		return errors.Errorf("failed to deposit %s: %w", asset, ErrAssetConsumed)
	}

	var depositEvent *DepositEvent
	if err = func() error {
		l.objectMutex.Lock(store.address)
		defer l.objectMutex.Unlock(store.address)

		record, err := l.Storage.storeRecord(store)
		if err != nil {
			return errors.Errorf("failed to deposit: %w", err)
		}
		if err = runChecks(store, record, checks); err != nil {
			return errors.Errorf("failed to deposit: %w", err)
		}
		if err = checkDeposit(store, record, asset.metadata, asset.amount); err != nil {
			return errors.Errorf("failed to deposit: %w", err)
		}

		if asset.amount == 0 {
			asset.consume()
			return nil
		}

		update := newStoreUpdate(store, record)
		record.balance += asset.amount
		if err = l.Storage.storeStoreRecords(update); err != nil {
			return errors.Errorf("failed to deposit: %w", err)
		}

		depositEvent = l.emitDeposit(store, record, asset.amount)
		asset.consume()

		return nil
	}(); err != nil {
		return err
	}

	if depositEvent != nil {
		l.log.Debugw("deposit", "store", store, "amount", depositEvent.Amount, "balance", depositEvent.Balance)
		l.Events.Deposit.Trigger(depositEvent)
	}

	return nil
}

// transfer moves the amount between two Stores. All checks of both sides pass before the first record is written.
func (l *Ledger) transfer(from, to Store, amount uint64, fromChecks, toChecks []storeCheck) (err error) {
	var withdrawEvent *WithdrawEvent
	var depositEvent *DepositEvent
	if err = func() error {
		l.objectMutex.LockAll(from.address, to.address)
		defer l.objectMutex.UnlockAll(from.address, to.address)

		fromRecord, err := l.Storage.storeRecord(from)
		if err != nil {
			return errors.Errorf("failed to transfer: %w", err)
		}
		toRecord := fromRecord
		if to != from {
			if toRecord, err = l.Storage.storeRecord(to); err != nil {
				return errors.Errorf("failed to transfer: %w", err)
			}
		}

		if err = runChecks(from, fromRecord, fromChecks); err != nil {
			return errors.Errorf("failed to transfer: %w", err)
		}
		if err = runChecks(to, toRecord, toChecks); err != nil {
			return errors.Errorf("failed to transfer: %w", err)
		}
		if err = checkWithdrawal(from, fromRecord, amount); err != nil {
			return errors.Errorf("failed to transfer: %w", err)
		}

		if from == to {
			withdrawEvent = l.emitWithdraw(from, &storeRecord{metadata: fromRecord.metadata, balance: fromRecord.balance - amount}, amount)
			depositEvent = l.emitDeposit(to, fromRecord, amount)

			return nil
		}

		if err = checkDeposit(to, toRecord, fromRecord.metadata, amount); err != nil {
			return errors.Errorf("failed to transfer: %w", err)
		}

		fromUpdate, toUpdate := newStoreUpdate(from, fromRecord), newStoreUpdate(to, toRecord)
		fromRecord.balance -= amount
		toRecord.balance += amount
		if err = l.Storage.storeStoreRecords(fromUpdate, toUpdate); err != nil {
			return errors.Errorf("failed to transfer: %w", err)
		}

		withdrawEvent = l.emitWithdraw(from, fromRecord, amount)
		depositEvent = l.emitDeposit(to, toRecord, amount)

		return nil
	}(); err != nil {
		return err
	}

	l.log.Debugw("transfer", "from", from, "to", to, "amount", amount)
	l.Events.Withdraw.Trigger(withdrawEvent)
	l.Events.Deposit.Trigger(depositEvent)

	return nil
}

// emitWithdraw records the withdrawal through the Handle of the Store and returns the matching Ledger event.
func (l *Ledger) emitWithdraw(store Store, record *storeRecord, amount uint64) *WithdrawEvent {
	l.storeEventHandles(store).withdraw.Emit(Withdraw{Amount: amount})

	return &WithdrawEvent{Store: store, Metadata: record.metadata, Amount: amount, Balance: record.balance}
}

// emitDeposit records the deposit through the Handle of the Store and returns the matching Ledger event.
func (l *Ledger) emitDeposit(store Store, record *storeRecord, amount uint64) *DepositEvent {
	l.storeEventHandles(store).deposit.Emit(Deposit{Amount: amount})

	return &DepositEvent{Store: store, Metadata: record.metadata, Amount: amount, Balance: record.balance}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

// checkWithdrawal verifies that the amount can be taken out of the Store.
func checkWithdrawal(store Store, record *storeRecord, amount uint64) error {
	if amount == 0 {
		return errors.Errorf("failed to withdraw from %s: %w", store, ErrZeroAmount)
	}
	if amount > record.balance {
		return errors.Errorf("failed to withdraw %d from %s with balance %d: %w", amount, store, record.balance, ErrInsufficientBalance)
	}

	return nil
}

// checkDeposit verifies that value of the given asset class and amount can be added to the Store.
func checkDeposit(store Store, record *storeRecord, metadata Metadata, amount uint64) error {
	if record.metadata != metadata {
		return errors.Errorf("failed to deposit %s into %s of %s: %w", metadata, store, record.metadata, ErrClassMismatch)
	}
	if amount > math.MaxUint64-record.balance {
		return errors.Errorf("failed to deposit %d into %s with balance %d: %w", amount, store, record.balance, ErrAmountOverflow)
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
