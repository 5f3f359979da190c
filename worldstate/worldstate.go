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
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	logging "github.com/ipfs/go-log"
)

// Logger
var log = logging.Logger("worldstate")

// WorldState is the mutable account state seen by transaction execution.
// Changes are kept in memory until Commit. Snapshots nest: every Snapshot
// must be closed by exactly one RevertSnapshot or ClearSnapshot, innermost first.
//
// Failures of the underlying store do not surface from the accessors, they
// are recorded and reported by Error.
type WorldState interface {
	// Exists checks if the account exists.
	Exists(addr common.Address) bool

	// Balance gets the balance of the account, zero if not existed.
	Balance(addr common.Address) *uint256.Int

	// Nonce gets the nonce of the account, zero if not existed.
	Nonce(addr common.Address) uint64

	// Code gets the code of the account, empty if none.
	Code(addr common.Address) []byte

	// CodeHash gets the code hash of the account.
	CodeHash(addr common.Address) common.Hash

	// StorageAt gets the storage value of the account at given key.
	StorageAt(addr common.Address, key common.Hash) common.Hash

	// SetStorage sets the storage value of the account at given key.
	SetStorage(addr common.Address, key common.Hash, val common.Hash)

	// AddBalance adds amount to the balance of the account.
	AddBalance(addr common.Address, amt *uint256.Int)

	// SubBalance subtracts amount from the balance of the account.
	// It panics if the balance is insufficient.
	SubBalance(addr common.Address, amt *uint256.Int)

	// TransferBalance moves amount from one account to another.
	TransferBalance(from common.Address, to common.Address, amt *uint256.Int)

	// IncNonce increments the nonce of the account.
	IncNonce(addr common.Address)

	// NewContract replaces the account with a fresh one holding the given balance.
	NewContract(addr common.Address, balance *uint256.Int)

	// InitCode sets the code of a newly created contract.
	InitCode(addr common.Address, code []byte)

	// KillAccount removes the account together with its storage.
	KillAccount(addr common.Address)

	// Snapshot starts a new nested checkpoint.
	Snapshot()

	// RevertSnapshot discards all changes since the innermost checkpoint.
	RevertSnapshot()

	// ClearSnapshot keeps all changes since the innermost checkpoint and
	// merges them into the enclosing one.
	ClearSnapshot()

	// Error returns the first store failure encountered, if any.
	Error() error

	// Commit writes all changes to the store as the state of the given block.
	Commit(ctx context.Context, height uint64, blockHash common.Hash) error
}
