package statestore

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipfs/go-datastore"
	itypes "github.com/wcgcyx/texec/types"
)

// transactionImpl implements Transaction.
type transactionImpl struct {
	s     *stateStoreImpl
	batch datastore.Batch
	done  bool
}

// NewTransaction creates a new transaction to write.
func (s *stateStoreImpl) NewTransaction() (Transaction, error) {
	batch, err := s.ds.Batch(s.ctx)
	if err != nil {
		return nil, err
	}
	return &transactionImpl{s: s, batch: batch}, nil
}

// writeCtx creates a context for a single write.
func (t *transactionImpl) writeCtx() (context.Context, context.CancelFunc) {
	if t.s.opts.WriteTimeout <= 0 {
		return context.WithCancel(t.s.ctx)
	}
	return context.WithTimeout(t.s.ctx, t.s.opts.WriteTimeout)
}

func (t *transactionImpl) put(key datastore.Key, val []byte) error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	ctx, cancel := t.writeCtx()
	defer cancel()
	return t.batch.Put(ctx, key, val)
}

func (t *transactionImpl) delete(key datastore.Key) error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	ctx, cancel := t.writeCtx()
	defer cancel()
	return t.batch.Delete(ctx, key)
}

// PutPersistedHeight records the height and hash of the committed block.
func (t *transactionImpl) PutPersistedHeight(height uint64, blockHash common.Hash) error {
	err := t.put(persistedHeightKey(), encodePersistedHeight(height, blockHash))
	if err != nil {
		return err
	}
	err = t.put(getBlockHashKey(height), encodeStorage(blockHash))
	if err != nil {
		return err
	}
	if height >= MaxRecentHashes {
		return t.delete(getBlockHashKey(height - MaxRecentHashes))
	}
	return nil
}

// PutAccount puts the account value.
func (t *transactionImpl) PutAccount(addr common.Address, acct itypes.AccountValue) error {
	err := t.scheduleGC(addr, acct.Version)
	if err != nil {
		return err
	}
	err = t.put(getAccountValueKey(addr), encodeAccountValue(acct))
	if err != nil {
		return err
	}
	// Delete account version if any
	return t.delete(getAccountVersionKey(addr))
}

// DeleteAccount deletes the account.
func (t *transactionImpl) DeleteAccount(addr common.Address, version uint64) error {
	err := t.scheduleGC(addr, version)
	if err != nil {
		return err
	}
	err = t.delete(getAccountValueKey(addr))
	if err != nil {
		return err
	}
	return t.put(getAccountVersionKey(addr), encodeAccountVersion(version))
}

// scheduleGC notifies GC to clear every committed version older than the given one.
func (t *transactionImpl) scheduleGC(addr common.Address, version uint64) error {
	acct, _, err := t.s.GetAccountValue(addr)
	if err != nil {
		return err
	}
	for i := acct.Version; i < version; i++ {
		err = t.put(getGCKey(addr, i), []byte{})
		if err != nil {
			return err
		}
	}
	return nil
}

// PutStorage puts the storage value, a zero value deletes the slot.
func (t *transactionImpl) PutStorage(addr common.Address, version uint64, key common.Hash, val common.Hash) error {
	if val == (common.Hash{}) {
		return t.delete(getStorageKey(addr, version, key))
	}
	return t.put(getStorageKey(addr, version, key), encodeStorage(val))
}

// PutCode puts the code for given hash.
func (t *transactionImpl) PutCode(codeHash common.Hash, code []byte) error {
	return t.put(getCodeKey(codeHash), encodeCode(code))
}

// Commit commits all changes.
func (t *transactionImpl) Commit() error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	t.done = true
	ctx, cancel := t.writeCtx()
	defer cancel()
	err := t.batch.Commit(ctx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		log.Errorf("Timeout committing state transaction: %v", err.Error())
	}
	return err
}

// Discard discards all changes.
func (t *transactionImpl) Discard() {
	t.done = true
}
