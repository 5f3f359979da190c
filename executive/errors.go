package executive

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
	"fmt"
	"math/big"

	"github.com/wcgcyx/texec/vm"
)

// ErrInternal is returned when execution hit a fault that is not caused by
// the transaction, the transaction is not applied.
var ErrInternal = vm.ErrInternal

// TransactionMalformedError is returned when the sender can not be recovered
// or the transaction carries values out of range.
type TransactionMalformedError struct {
	Reason string
}

func (e *TransactionMalformedError) Error() string {
	return fmt.Sprintf("transaction malformed: %v", e.Reason)
}

// NotEnoughBaseGasError is returned when the transaction gas does not cover the intrinsic cost.
type NotEnoughBaseGasError struct {
	Required uint64
	Got      uint64
}

func (e *NotEnoughBaseGasError) Error() string {
	return fmt.Sprintf("not enough base gas: required %v, got %v", e.Required, e.Got)
}

// InvalidNonceError is returned when the transaction nonce differs from the account nonce.
type InvalidNonceError struct {
	Expected uint64
	Got      uint64
}

func (e *InvalidNonceError) Error() string {
	return fmt.Sprintf("invalid nonce: expected %v, got %v", e.Expected, e.Got)
}

// BlockGasLimitReachedError is returned when the transaction does not fit in the block.
type BlockGasLimitReachedError struct {
	GasLimit uint64
	GasUsed  uint64
	Gas      uint64
}

func (e *BlockGasLimitReachedError) Error() string {
	return fmt.Sprintf("block gas limit reached: limit %v, used %v, gas %v", e.GasLimit, e.GasUsed, e.Gas)
}

// NotEnoughCashError is returned when the sender can not pay value and gas.
type NotEnoughCashError struct {
	Required *big.Int
	Got      *big.Int
}

func (e *NotEnoughCashError) Error() string {
	return fmt.Sprintf("not enough cash: required %v, got %v", e.Required, e.Got)
}
