package vm

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
	"github.com/holiman/uint256"
	"github.com/wcgcyx/texec/schedule"
	itypes "github.com/wcgcyx/texec/types"
)

//go:generate mockgen -source=ext.go -destination=mock_ext.go -package=vm

// ContractCreateResult is the outcome of a CREATE issued by running code.
type ContractCreateResult struct {
	// Created is false if the creation failed.
	Created bool

	// Address of the new contract
	Address common.Address

	// Gas left after the creation
	GasLeft uint64
}

// MessageCallResult is the outcome of a CALL issued by running code.
type MessageCallResult struct {
	// Success is false if the call failed.
	Success bool

	// Gas left after the call
	GasLeft uint64
}

// Ext is the view of the world seen by running code.
type Ext interface {
	// StorageAt gets the storage value of the running contract.
	StorageAt(key common.Hash) common.Hash

	// SetStorage sets the storage value of the running contract.
	SetStorage(key common.Hash, value common.Hash)

	// Exists checks if the account exists.
	Exists(addr common.Address) bool

	// Balance gets the balance of the account.
	Balance(addr common.Address) *uint256.Int

	// BlockHash gets the hash of a recent block, empty if not available.
	BlockHash(number uint64) common.Hash

	// Create creates a new contract with given init code.
	Create(gas uint64, value *uint256.Int, code []byte) ContractCreateResult

	// Call calls another contract. A nil value means the call inherits the
	// value of the running code without transferring it. Output is written
	// into the given buffer up to its length.
	Call(
		gas uint64,
		sender common.Address,
		receiver common.Address,
		value *uint256.Int,
		data []byte,
		codeAddress common.Address,
		output []byte,
	) MessageCallResult

	// ExtCode gets the code of the account.
	ExtCode(addr common.Address) []byte

	// Log emits a log entry for the running contract.
	Log(topics []common.Hash, data []byte)

	// Ret handles the data returned by the running code and gives back the
	// gas left after doing so.
	Ret(gas uint64, data []byte) (uint64, error)

	// Suicide destroys the running contract and moves its balance to the refund address.
	Suicide(refundAddress common.Address)

	// Schedule gets the consensus rules in force.
	Schedule() *schedule.Schedule

	// EnvInfo gets the block context.
	EnvInfo() *itypes.EnvInfo

	// Depth gets the depth of the running code.
	Depth() uint64

	// IncSstoreClears records that a storage slot was cleared.
	IncSstoreClears()
}
