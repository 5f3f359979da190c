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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	itypes "github.com/wcgcyx/texec/types"
)

// account is the in-memory view of an account while transactions mutate it.
// Every mutation returns a function that undoes it.
type account struct {
	addr common.Address

	// account value
	exists   bool
	nonce    uint64
	balance  *uint256.Int
	codeHash common.Hash
	version  uint64

	// code
	code      []byte // lazy-init
	codeDirty bool

	// storage
	dirtyStorage  map[common.Hash]common.Hash
	originStorage map[common.Hash]common.Hash

	// persisted state, as last read from or written to the store
	persisted        bool
	persistedVersion uint64
}

func newAccount(addr common.Address, acct itypes.AccountValue, exists bool) *account {
	balance := uint256.NewInt(0)
	if acct.Balance != nil {
		balance.Set(acct.Balance)
	}
	return &account{
		addr:             addr,
		exists:           exists,
		nonce:            acct.Nonce,
		balance:          balance,
		codeHash:         acct.CodeHash,
		version:          acct.Version,
		dirtyStorage:     make(map[common.Hash]common.Hash),
		originStorage:    make(map[common.Hash]common.Hash),
		persisted:        exists,
		persistedVersion: acct.Version,
	}
}

// touch makes sure the account exists.
func (acct *account) touch() (revert func()) {
	if acct.exists {
		return func() {}
	}
	acct.exists = true
	return func() { acct.exists = false }
}

func (acct *account) setNonce(nonce uint64) (revert func()) {
	revertTouch := acct.touch()
	original := acct.nonce
	acct.nonce = nonce
	return func() {
		acct.nonce = original
		revertTouch()
	}
}

func (acct *account) setBalance(balance *uint256.Int) (revert func()) {
	revertTouch := acct.touch()
	original := acct.balance
	acct.balance = new(uint256.Int).Set(balance)
	return func() {
		acct.balance = original
		revertTouch()
	}
}

func (acct *account) setCode(code []byte) (revert func()) {
	revertTouch := acct.touch()
	originalHash, originalCode, originalDirty := acct.codeHash, acct.code, acct.codeDirty
	acct.code = append([]byte(nil), code...)
	acct.codeHash = crypto.Keccak256Hash(code)
	acct.codeDirty = len(code) > 0
	return func() {
		acct.codeHash, acct.code, acct.codeDirty = originalHash, originalCode, originalDirty
		revertTouch()
	}
}

func (acct *account) setStorage(key common.Hash, val common.Hash) (revert func()) {
	revertTouch := acct.touch()
	original, ok := acct.dirtyStorage[key]
	acct.dirtyStorage[key] = val
	return func() {
		if ok {
			acct.dirtyStorage[key] = original
		} else {
			delete(acct.dirtyStorage, key)
		}
		revertTouch()
	}
}

// reset replaces the account with an empty one whose storage starts afresh.
// The account exists afterwards only if keep is set.
func (acct *account) reset(keep bool, balance *uint256.Int) (revert func()) {
	original := *acct
	storageUsed := acct.exists || len(acct.dirtyStorage) > 0
	acct.exists = keep
	acct.nonce = 0
	acct.balance = new(uint256.Int).Set(balance)
	acct.codeHash = types.EmptyCodeHash
	acct.code = []byte{}
	acct.codeDirty = false
	if storageUsed {
		acct.version++
		acct.dirtyStorage = make(map[common.Hash]common.Hash)
	}
	return func() {
		*acct = original
	}
}

// storedAt returns the storage value if it is already known in memory.
func (acct *account) storedAt(key common.Hash) (common.Hash, bool) {
	if val, ok := acct.dirtyStorage[key]; ok {
		return val, true
	}
	if acct.version != acct.persistedVersion {
		// Storage has been reset since the last commit.
		return common.Hash{}, true
	}
	val, ok := acct.originStorage[key]
	return val, ok
}

// value gets the account value to persist.
func (acct *account) value() itypes.AccountValue {
	return itypes.AccountValue{
		Nonce:    acct.nonce,
		Balance:  new(uint256.Int).Set(acct.balance),
		CodeHash: acct.codeHash,
		Version:  acct.version,
	}
}

// committed marks the in-memory account as persisted.
func (acct *account) committed() {
	if acct.version != acct.persistedVersion {
		acct.originStorage = make(map[common.Hash]common.Hash)
	}
	for k, v := range acct.dirtyStorage {
		acct.originStorage[k] = v
	}
	acct.dirtyStorage = make(map[common.Hash]common.Hash)
	acct.codeDirty = false
	acct.persisted = acct.exists
	acct.persistedVersion = acct.version
}
