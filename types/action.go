package types

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
)

// ActionValue is the value attached to a call or create.
// A transfer value moves balance from sender to receiver, while an apparent
// value is only observed by the callee (delegate call).
type ActionValue struct {
	transfer bool
	amount   *uint256.Int
}

// NewTransferValue creates a value that is transferred.
func NewTransferValue(amount *uint256.Int) ActionValue {
	return ActionValue{transfer: true, amount: valueOrZero(amount)}
}

// NewApparentValue creates a value that is only apparent to the callee.
func NewApparentValue(amount *uint256.Int) ActionValue {
	return ActionValue{transfer: false, amount: valueOrZero(amount)}
}

// IsTransfer returns true if the value moves balance.
func (v ActionValue) IsTransfer() bool {
	return v.transfer
}

// Value returns a copy of the amount.
func (v ActionValue) Value() *uint256.Int {
	return valueOrZero(v.amount)
}

func valueOrZero(amount *uint256.Int) *uint256.Int {
	if amount == nil {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(amount)
}

// ActionParams describes one call or create invocation.
type ActionParams struct {
	// Address of the code being executed
	CodeAddress common.Address

	// Receiver, whose storage and balance are in context
	Address common.Address

	// Sender of the call
	Sender common.Address

	// Transaction initiator
	Origin common.Address

	// Gas offered to the invocation
	Gas uint64

	// Gas price of the transaction
	GasPrice *uint256.Int

	// Value of the invocation
	Value ActionValue

	// Code to be executed, empty if none
	Code []byte

	// Input data of a call, empty for create
	Data []byte
}

// IsDelegateCall returns true if code of another address runs in the receiver context.
func (p *ActionParams) IsDelegateCall() bool {
	return p.CodeAddress != p.Address
}
