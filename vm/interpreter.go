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
	gethvm "github.com/ethereum/go-ethereum/core/vm"
	"github.com/wcgcyx/texec/schedule"
	itypes "github.com/wcgcyx/texec/types"
)

// frame is the execution context of one code invocation.
type frame struct {
	params *itypes.ActionParams
	ext    Ext
	sched  *schedule.Schedule
	stack  *Stack
	memory *Memory
	jumps  bitvec
	gas    uint64
}

// interpreter is the bytecode interpreter.
type interpreter struct {
	jumpdests *jumpdestCache
}

// Exec runs the code of the given params and returns the gas left.
// Output of RETURN is passed to the externalities, which decide how much
// gas is left afterwards.
func (in *interpreter) Exec(params *itypes.ActionParams, ext Ext) (uint64, error) {
	if len(params.Code) == 0 {
		return params.Gas, nil
	}
	sched := ext.Schedule()
	f := &frame{
		params: params,
		ext:    ext,
		sched:  sched,
		stack:  newStack(),
		memory: newMemory(),
		jumps:  in.jumpdests.get(params.Code),
		gas:    params.Gas,
	}
	table := instructionSetFor(sched)
	code := params.Code
	for pc := uint64(0); pc < uint64(len(code)); pc++ {
		op := gethvm.OpCode(code[pc])
		operation := table[op]
		if operation == nil {
			return 0, &BadInstructionError{Instruction: byte(op)}
		}
		// Validate stack
		if sLen := f.stack.len(); sLen < operation.pops {
			return 0, &StackUnderflowError{Instruction: op.String(), Wanted: operation.pops, OnStack: sLen}
		} else if uint64(sLen-operation.pops+operation.pushes) > sched.StackLimit {
			return 0, &OutOfStackError{Instruction: op.String(), Wanted: operation.pushes, Limit: int(sched.StackLimit)}
		}
		cost := sched.TierStepGas[operation.tier]
		var memorySize uint64
		if operation.memorySize != nil {
			memSize, overflow := operation.memorySize(f.stack)
			if overflow {
				return 0, ErrOutOfGas
			}
			if memSize > maxMemorySize {
				return 0, ErrOutOfGas
			}
			memorySize = toWordSize(memSize) * 32
		}
		if operation.dynamicGas != nil {
			dynamicCost, err := operation.dynamicGas(f, memorySize)
			if err != nil {
				return 0, err
			}
			if cost, err = add(cost, dynamicCost); err != nil {
				return 0, err
			}
		}
		if f.gas < cost {
			return 0, ErrOutOfGas
		}
		f.gas -= cost
		if memorySize > 0 {
			f.memory.resize(memorySize)
		}
		res, err := operation.execute(&pc, f)
		if err != nil {
			return 0, err
		}
		if operation.returns {
			return ext.Ret(f.gas, res)
		}
		if operation.halts {
			return f.gas, nil
		}
	}
	return f.gas, nil
}
