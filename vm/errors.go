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
	"errors"
	"fmt"
)

var (
	// ErrOutOfGas is returned when execution needs more gas than it has.
	ErrOutOfGas = errors.New("out of gas")

	// ErrInternal is returned when execution hits a fault outside of the code
	// being run, such as a broken state store.
	ErrInternal = errors.New("internal error")
)

// BadJumpDestinationError is returned on a jump to a position that is not a JUMPDEST.
type BadJumpDestinationError struct {
	Destination uint64
}

func (e *BadJumpDestinationError) Error() string {
	return fmt.Sprintf("bad jump destination %v", e.Destination)
}

// BadInstructionError is returned on an undefined or disabled instruction.
type BadInstructionError struct {
	Instruction byte
}

func (e *BadInstructionError) Error() string {
	return fmt.Sprintf("bad instruction 0x%x", e.Instruction)
}

// StackUnderflowError is returned when an instruction needs more stack items than present.
type StackUnderflowError struct {
	Instruction string
	Wanted      int
	OnStack     int
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow for %v: wanted %v, on stack %v", e.Instruction, e.Wanted, e.OnStack)
}

// OutOfStackError is returned when an instruction would exceed the stack limit.
type OutOfStackError struct {
	Instruction string
	Wanted      int
	Limit       int
}

func (e *OutOfStackError) Error() string {
	return fmt.Sprintf("out of stack for %v: wanted %v, limit %v", e.Instruction, e.Wanted, e.Limit)
}

// IsRevertError checks if the error belongs to the class of failures
// whose state changes must be rolled back.
func IsRevertError(err error) bool {
	if err == nil {
		return false
	}
	var (
		badJump    *BadJumpDestinationError
		badInst    *BadInstructionError
		underflow  *StackUnderflowError
		outOfStack *OutOfStackError
	)
	return errors.Is(err, ErrOutOfGas) ||
		errors.As(err, &badJump) ||
		errors.As(err, &badInst) ||
		errors.As(err, &underflow) ||
		errors.As(err, &outOfStack)
}
