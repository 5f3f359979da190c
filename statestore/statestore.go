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
	"github.com/ethereum/go-ethereum/common"
	itypes "github.com/wcgcyx/texec/types"
)

// MaxRecentHashes is the number of block hashes kept, the BLOCKHASH window.
const MaxRecentHashes = 256

//go:generate mockgen -source=statestore.go -destination=mock_statestore.go -package=statestore

// StateStore persists accounts, storage and code between transactions.
type StateStore interface {
	// GetPersistedHeight gets the height and hash of the last committed block.
	GetPersistedHeight() (uint64, common.Hash, error)

	// GetRecentHashes gets the hashes of the last committed blocks, most
	// recent first, at most count and never more than MaxRecentHashes.
	GetRecentHashes(count int) ([]common.Hash, error)

	// GetAccountValue gets the persisted account value for given address.
	// For a non-existing account, it returns false together with a zero
	// account carrying the last storage version used at this address.
	GetAccountValue(addr common.Address) (itypes.AccountValue, bool, error)

	// GetStorage gets the persisted storage value for given key.
	GetStorage(addr common.Address, version uint64, key common.Hash) (common.Hash, error)

	// GetCodeByHash gets the persisted code for given hash.
	GetCodeByHash(codeHash common.Hash) ([]byte, error)

	// NewTransaction creates a new transaction to write.
	NewTransaction() (Transaction, error)

	// Shutdown safely shuts the statestore down.
	Shutdown()
}

type Transaction interface {
	// PutPersistedHeight records the height and hash of the committed block.
	// Hashes older than MaxRecentHashes blocks are dropped.
	PutPersistedHeight(height uint64, blockHash common.Hash) error

	// PutAccount puts the account value.
	// Storage of any version older than the account's version is scheduled for GC.
	PutAccount(addr common.Address, acct itypes.AccountValue) error

	// DeleteAccount deletes the account. The given version is the storage
	// version the next incarnation at this address will start with, any
	// older version is scheduled for GC.
	DeleteAccount(addr common.Address, version uint64) error

	// PutStorage puts the storage value, a zero value deletes the slot.
	PutStorage(addr common.Address, version uint64, key common.Hash, val common.Hash) error

	// PutCode puts the code for given hash.
	PutCode(codeHash common.Hash, code []byte) error

	// Commit commits all changes.
	Commit() error

	// Discard discards all changes.
	Discard()
}
