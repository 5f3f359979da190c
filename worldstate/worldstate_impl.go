package worldstate

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
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/wcgcyx/texec/statestore"
	itypes "github.com/wcgcyx/texec/types"
)

// worldStateImpl implements WorldState.
type worldStateImpl struct {
	sstore statestore.StateStore

	// Loaded accounts and the ones changed since last commit
	accounts      map[common.Address]*account
	dirtyAccounts map[common.Address]bool

	// Revert functions, the snapshots are indices into it
	journals  []func()
	snapshots []int

	// First store failure
	err error
}

// NewWorldState creates a new WorldState on top of the state store.
func NewWorldState(sstore statestore.StateStore) WorldState {
	return &worldStateImpl{
		sstore:        sstore,
		accounts:      make(map[common.Address]*account),
		dirtyAccounts: make(map[common.Address]bool),
		journals:      make([]func(), 0),
		snapshots:     make([]int, 0),
	}
}

// setError records the first store failure.
func (s *worldStateImpl) setError(err error) {
	if s.err == nil {
		log.Errorf("World state store failure: %v", err.Error())
		s.err = err
	}
}

// loadAccount loads the account from memory or from the store.
func (s *worldStateImpl) loadAccount(addr common.Address) *account {
	acct, ok := s.accounts[addr]
	if ok {
		return acct
	}
	val, exists, err := s.sstore.GetAccountValue(addr)
	if err != nil {
		s.setError(fmt.Errorf("fail to load account %v: %w", addr, err))
		val = itypes.AccountValue{Balance: uint256.NewInt(0), CodeHash: types.EmptyCodeHash}
		exists = false
	}
	acct = newAccount(addr, val, exists)
	s.accounts[addr] = acct
	return acct
}

// recordJournal is used to record a revert function.
func (s *worldStateImpl) recordJournal(revert func()) {
	s.journals = append(s.journals, revert)
}

// writeAccount loads the account for a write and marks it dirty.
func (s *worldStateImpl) writeAccount(addr common.Address) *account {
	acct := s.loadAccount(addr)
	if !s.dirtyAccounts[addr] {
		s.dirtyAccounts[addr] = true
		s.recordJournal(func() { delete(s.dirtyAccounts, addr) })
	}
	return acct
}

// Exists checks if the account exists.
func (s *worldStateImpl) Exists(addr common.Address) bool {
	return s.loadAccount(addr).exists
}

// Balance gets the balance of the account, zero if not existed.
func (s *worldStateImpl) Balance(addr common.Address) *uint256.Int {
	return new(uint256.Int).Set(s.loadAccount(addr).balance)
}

// Nonce gets the nonce of the account, zero if not existed.
func (s *worldStateImpl) Nonce(addr common.Address) uint64 {
	return s.loadAccount(addr).nonce
}

// CodeHash gets the code hash of the account.
func (s *worldStateImpl) CodeHash(addr common.Address) common.Hash {
	return s.loadAccount(addr).codeHash
}

// Code gets the code of the account, empty if none.
func (s *worldStateImpl) Code(addr common.Address) []byte {
	acct := s.loadAccount(addr)
	if acct.codeHash == types.EmptyCodeHash {
		return []byte{}
	}
	if acct.code == nil {
		code, err := s.sstore.GetCodeByHash(acct.codeHash)
		if err != nil {
			s.setError(fmt.Errorf("fail to load code %v of %v: %w", acct.codeHash, addr, err))
			return []byte{}
		}
		acct.code = code
	}
	return acct.code
}

// StorageAt gets the storage value of the account at given key.
func (s *worldStateImpl) StorageAt(addr common.Address, key common.Hash) common.Hash {
	acct := s.loadAccount(addr)
	val, ok := acct.storedAt(key)
	if ok {
		return val
	}
	val, err := s.sstore.GetStorage(addr, acct.version, key)
	if err != nil {
		s.setError(fmt.Errorf("fail to load storage %v of %v: %w", key, addr, err))
		return common.Hash{}
	}
	acct.originStorage[key] = val
	return val
}

// SetStorage sets the storage value of the account at given key.
func (s *worldStateImpl) SetStorage(addr common.Address, key common.Hash, val common.Hash) {
	log.Debugf("SetStorage(%v, %v, %v)", addr, key, val)
	s.recordJournal(s.writeAccount(addr).setStorage(key, val))
}

// AddBalance adds amount to the balance of the account.
func (s *worldStateImpl) AddBalance(addr common.Address, amt *uint256.Int) {
	acct := s.writeAccount(addr)
	bal, overflow := new(uint256.Int).AddOverflow(acct.balance, amt)
	if overflow {
		log.Panicf("balance overflow for %v adding %v", addr, amt)
	}
	s.recordJournal(acct.setBalance(bal))
}

// SubBalance subtracts amount from the balance of the account.
func (s *worldStateImpl) SubBalance(addr common.Address, amt *uint256.Int) {
	acct := s.writeAccount(addr)
	if acct.balance.Lt(amt) {
		log.Panicf("insufficient balance for %v: have %v want %v", addr, acct.balance, amt)
	}
	s.recordJournal(acct.setBalance(new(uint256.Int).Sub(acct.balance, amt)))
}

// TransferBalance moves amount from one account to another.
func (s *worldStateImpl) TransferBalance(from common.Address, to common.Address, amt *uint256.Int) {
	s.SubBalance(from, amt)
	s.AddBalance(to, amt)
}

// IncNonce increments the nonce of the account.
func (s *worldStateImpl) IncNonce(addr common.Address) {
	acct := s.writeAccount(addr)
	s.recordJournal(acct.setNonce(acct.nonce + 1))
}

// NewContract replaces the account with a fresh one holding the given balance.
func (s *worldStateImpl) NewContract(addr common.Address, balance *uint256.Int) {
	log.Debugf("NewContract(%v, %v)", addr, balance)
	s.recordJournal(s.writeAccount(addr).reset(true, balance))
}

// InitCode sets the code of a newly created contract.
func (s *worldStateImpl) InitCode(addr common.Address, code []byte) {
	log.Debugf("InitCode(%v, %v bytes)", addr, len(code))
	s.recordJournal(s.writeAccount(addr).setCode(code))
}

// KillAccount removes the account together with its storage.
func (s *worldStateImpl) KillAccount(addr common.Address) {
	log.Debugf("KillAccount(%v)", addr)
	s.recordJournal(s.writeAccount(addr).reset(false, uint256.NewInt(0)))
}

// Snapshot starts a new nested checkpoint.
func (s *worldStateImpl) Snapshot() {
	s.snapshots = append(s.snapshots, len(s.journals))
}

// RevertSnapshot discards all changes since the innermost checkpoint.
func (s *worldStateImpl) RevertSnapshot() {
	if len(s.snapshots) == 0 {
		log.Panicf("revert snapshot without snapshot")
	}
	mark := s.snapshots[len(s.snapshots)-1]
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
	reverts := s.journals[mark:]
	s.journals = s.journals[:mark]
	for j := len(reverts) - 1; j >= 0; j-- {
		reverts[j]()
	}
}

// ClearSnapshot keeps all changes since the innermost checkpoint.
func (s *worldStateImpl) ClearSnapshot() {
	if len(s.snapshots) == 0 {
		log.Panicf("clear snapshot without snapshot")
	}
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
	if len(s.snapshots) == 0 {
		// Nothing can revert past this point.
		s.journals = s.journals[:0]
	}
}

// Error returns the first store failure encountered, if any.
func (s *worldStateImpl) Error() error {
	return s.err
}

// Commit writes all changes to the store as the state of the given block.
func (s *worldStateImpl) Commit(ctx context.Context, height uint64, blockHash common.Hash) error {
	if s.err != nil {
		return s.err
	}
	if len(s.snapshots) > 0 {
		return fmt.Errorf("cannot commit with %v open snapshots", len(s.snapshots))
	}
	txn, err := s.sstore.NewTransaction()
	if err != nil {
		return err
	}
	defer txn.Discard()

	addrs := make([]common.Address, 0, len(s.dirtyAccounts))
	for addr := range s.dirtyAccounts {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return bytes.Compare(addrs[i][:], addrs[j][:]) < 0 })

	for _, addr := range addrs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = s.commitAccount(txn, s.accounts[addr])
		if err != nil {
			return fmt.Errorf("fail to commit account %v: %w", addr, err)
		}
	}
	err = txn.PutPersistedHeight(height, blockHash)
	if err != nil {
		return err
	}
	err = txn.Commit()
	if err != nil {
		return err
	}
	for _, addr := range addrs {
		s.accounts[addr].committed()
	}
	s.dirtyAccounts = make(map[common.Address]bool)
	s.journals = s.journals[:0]
	log.Infof("Committed %v accounts at height %v", len(addrs), height)
	return nil
}

// commitAccount writes a single dirty account into the transaction.
func (s *worldStateImpl) commitAccount(txn statestore.Transaction, acct *account) error {
	if !acct.exists {
		if acct.persisted || acct.version != acct.persistedVersion {
			return txn.DeleteAccount(acct.addr, acct.version)
		}
		return nil
	}
	if acct.codeDirty {
		err := txn.PutCode(acct.codeHash, acct.code)
		if err != nil {
			return err
		}
	}
	for k, v := range acct.dirtyStorage {
		err := txn.PutStorage(acct.addr, acct.version, k, v)
		if err != nil {
			return err
		}
	}
	return txn.PutAccount(acct.addr, acct.value())
}
