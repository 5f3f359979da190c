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
)

type executionFunc func(pc *uint64, f *frame) ([]byte, error)

type operation struct {
	// execute is the operation function
	execute executionFunc
	// tier selects the step gas from the schedule
	tier int
	// dynamicGas is charged on top of the tier gas
	dynamicGas gasFunc
	// pops and pushes of the stack
	pops   int
	pushes int
	// memorySize returns the memory size required for the operation
	memorySize memorySizeFunc
	// halts stops execution without output
	halts bool
	// returns stops execution and hands the output to the externalities
	returns bool
}

// JumpTable contains the operations supported at a given rule set.
type JumpTable [256]*operation

var (
	frontierInstructionSet  = newFrontierInstructionSet()
	homesteadInstructionSet = newHomesteadInstructionSet()
)

// instructionSetFor returns the jump table matching the schedule.
func instructionSetFor(sched *schedule.Schedule) *JumpTable {
	if sched.HaveDelegateCall {
		return &homesteadInstructionSet
	}
	return &frontierInstructionSet
}

func newHomesteadInstructionSet() JumpTable {
	instructionSet := newFrontierInstructionSet()
	instructionSet[gethvm.DELEGATECALL] = &operation{
		execute:    opDelegateCall,
		tier:       schedule.TierSpecial,
		dynamicGas: gasDelegateCall,
		pops:       6,
		pushes:     1,
		memorySize: memoryDelegateCall,
	}
	return instructionSet
}

func newFrontierInstructionSet() JumpTable {
	tbl := JumpTable{
		gethvm.STOP: {
			execute: opStop,
			tier:    schedule.TierZero,
			halts:   true,
		},
		gethvm.ADD: {
			execute: opAdd,
			tier:    schedule.TierVeryLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.MUL: {
			execute: opMul,
			tier:    schedule.TierLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.SUB: {
			execute: opSub,
			tier:    schedule.TierVeryLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.DIV: {
			execute: opDiv,
			tier:    schedule.TierLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.SDIV: {
			execute: opSdiv,
			tier:    schedule.TierLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.MOD: {
			execute: opMod,
			tier:    schedule.TierLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.SMOD: {
			execute: opSmod,
			tier:    schedule.TierLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.ADDMOD: {
			execute: opAddmod,
			tier:    schedule.TierMid,
			pops:    3,
			pushes:  1,
		},
		gethvm.MULMOD: {
			execute: opMulmod,
			tier:    schedule.TierMid,
			pops:    3,
			pushes:  1,
		},
		gethvm.EXP: {
			execute:    opExp,
			tier:       schedule.TierSpecial,
			dynamicGas: gasExp,
			pops:       2,
			pushes:     1,
		},
		gethvm.SIGNEXTEND: {
			execute: opSignExtend,
			tier:    schedule.TierLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.LT: {
			execute: opLt,
			tier:    schedule.TierVeryLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.GT: {
			execute: opGt,
			tier:    schedule.TierVeryLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.SLT: {
			execute: opSlt,
			tier:    schedule.TierVeryLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.SGT: {
			execute: opSgt,
			tier:    schedule.TierVeryLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.EQ: {
			execute: opEq,
			tier:    schedule.TierVeryLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.ISZERO: {
			execute: opIszero,
			tier:    schedule.TierVeryLow,
			pops:    1,
			pushes:  1,
		},
		gethvm.AND: {
			execute: opAnd,
			tier:    schedule.TierVeryLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.OR: {
			execute: opOr,
			tier:    schedule.TierVeryLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.XOR: {
			execute: opXor,
			tier:    schedule.TierVeryLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.NOT: {
			execute: opNot,
			tier:    schedule.TierVeryLow,
			pops:    1,
			pushes:  1,
		},
		gethvm.BYTE: {
			execute: opByte,
			tier:    schedule.TierVeryLow,
			pops:    2,
			pushes:  1,
		},
		gethvm.KECCAK256: {
			execute:    opSha3,
			tier:       schedule.TierSpecial,
			dynamicGas: gasSha3,
			pops:       2,
			pushes:     1,
			memorySize: memorySha3,
		},
		gethvm.ADDRESS: {
			execute: opAddress,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.BALANCE: {
			execute:    opBalance,
			tier:       schedule.TierSpecial,
			dynamicGas: gasBalance,
			pops:       1,
			pushes:     1,
		},
		gethvm.ORIGIN: {
			execute: opOrigin,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.CALLER: {
			execute: opCaller,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.CALLVALUE: {
			execute: opCallValue,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.CALLDATALOAD: {
			execute: opCallDataLoad,
			tier:    schedule.TierVeryLow,
			pops:    1,
			pushes:  1,
		},
		gethvm.CALLDATASIZE: {
			execute: opCallDataSize,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.CALLDATACOPY: {
			execute:    opCallDataCopy,
			tier:       schedule.TierVeryLow,
			dynamicGas: gasCallDataCopy,
			pops:       3,
			memorySize: memoryCallDataCopy,
		},
		gethvm.CODESIZE: {
			execute: opCodeSize,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.CODECOPY: {
			execute:    opCodeCopy,
			tier:       schedule.TierVeryLow,
			dynamicGas: gasCodeCopy,
			pops:       3,
			memorySize: memoryCodeCopy,
		},
		gethvm.GASPRICE: {
			execute: opGasprice,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.EXTCODESIZE: {
			execute:    opExtCodeSize,
			tier:       schedule.TierSpecial,
			dynamicGas: gasExtCodeSize,
			pops:       1,
			pushes:     1,
		},
		gethvm.EXTCODECOPY: {
			execute:    opExtCodeCopy,
			tier:       schedule.TierSpecial,
			dynamicGas: gasExtCodeCopy,
			pops:       4,
			memorySize: memoryExtCodeCopy,
		},
		gethvm.BLOCKHASH: {
			execute: opBlockhash,
			tier:    schedule.TierExt,
			pops:    1,
			pushes:  1,
		},
		gethvm.COINBASE: {
			execute: opCoinbase,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.TIMESTAMP: {
			execute: opTimestamp,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.NUMBER: {
			execute: opNumber,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.DIFFICULTY: {
			execute: opDifficulty,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.GASLIMIT: {
			execute: opGasLimit,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.POP: {
			execute: opPop,
			tier:    schedule.TierBase,
			pops:    1,
		},
		gethvm.MLOAD: {
			execute:    opMload,
			tier:       schedule.TierVeryLow,
			dynamicGas: gasMemory,
			pops:       1,
			pushes:     1,
			memorySize: memoryMLoad,
		},
		gethvm.MSTORE: {
			execute:    opMstore,
			tier:       schedule.TierVeryLow,
			dynamicGas: gasMemory,
			pops:       2,
			memorySize: memoryMStore,
		},
		gethvm.MSTORE8: {
			execute:    opMstore8,
			tier:       schedule.TierVeryLow,
			dynamicGas: gasMemory,
			pops:       2,
			memorySize: memoryMStore8,
		},
		gethvm.SLOAD: {
			execute:    opSload,
			tier:       schedule.TierSpecial,
			dynamicGas: gasSLoad,
			pops:       1,
			pushes:     1,
		},
		gethvm.SSTORE: {
			execute:    opSstore,
			tier:       schedule.TierSpecial,
			dynamicGas: gasSStore,
			pops:       2,
		},
		gethvm.JUMP: {
			execute: opJump,
			tier:    schedule.TierMid,
			pops:    1,
		},
		gethvm.JUMPI: {
			execute: opJumpi,
			tier:    schedule.TierHigh,
			pops:    2,
		},
		gethvm.PC: {
			execute: opPc,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.MSIZE: {
			execute: opMsize,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.GAS: {
			execute: opGas,
			tier:    schedule.TierBase,
			pushes:  1,
		},
		gethvm.JUMPDEST: {
			execute:    opJumpdest,
			tier:       schedule.TierSpecial,
			dynamicGas: gasJumpDest,
		},
		gethvm.CREATE: {
			execute:    opCreate,
			tier:       schedule.TierSpecial,
			dynamicGas: gasCreate,
			pops:       3,
			pushes:     1,
			memorySize: memoryCreate,
		},
		gethvm.CALL: {
			execute:    opCall,
			tier:       schedule.TierSpecial,
			dynamicGas: gasCall,
			pops:       7,
			pushes:     1,
			memorySize: memoryCall,
		},
		gethvm.CALLCODE: {
			execute:    opCallCode,
			tier:       schedule.TierSpecial,
			dynamicGas: gasCallCode,
			pops:       7,
			pushes:     1,
			memorySize: memoryCall,
		},
		gethvm.RETURN: {
			execute:    opReturn,
			tier:       schedule.TierZero,
			dynamicGas: gasMemory,
			pops:       2,
			memorySize: memoryReturn,
			returns:    true,
		},
		gethvm.SELFDESTRUCT: {
			execute: opSuicide,
			tier:    schedule.TierZero,
			pops:    1,
			halts:   true,
		},
	}
	for i := 0; i < 32; i++ {
		tbl[int(gethvm.PUSH1)+i] = &operation{
			execute: makePush(uint64(i + 1)),
			tier:    schedule.TierVeryLow,
			pushes:  1,
		}
	}
	for i := 0; i < 16; i++ {
		tbl[int(gethvm.DUP1)+i] = &operation{
			execute: makeDup(i + 1),
			tier:    schedule.TierVeryLow,
			pops:    i + 1,
			pushes:  i + 2,
		}
		tbl[int(gethvm.SWAP1)+i] = &operation{
			execute: makeSwap(i + 1),
			tier:    schedule.TierVeryLow,
			pops:    i + 2,
			pushes:  i + 2,
		}
	}
	for i := 0; i <= 4; i++ {
		tbl[int(gethvm.LOG0)+i] = &operation{
			execute:    makeLog(i),
			tier:       schedule.TierSpecial,
			dynamicGas: makeGasLog(uint64(i)),
			pops:       i + 2,
			memorySize: memoryLog,
		}
	}
	return tbl
}
