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
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/wcgcyx/texec/schedule"
)

// maxMemorySize is the largest memory size whose gas cost fits in an uint64.
const maxMemorySize = 0x1FFFFFFFE0

// gasFunc returns the gas of an instruction on top of its tier step gas.
// The memory size is already rounded up to whole words.
type gasFunc func(f *frame, memorySize uint64) (uint64, error)

func toWordSize(size uint64) uint64 {
	if size > ^uint64(0)-31 {
		return ^uint64(0)/32 + 1
	}
	return (size + 31) / 32
}

func memoryFee(sched *schedule.Schedule, words uint64) uint64 {
	return words*sched.MemoryGas + words*words/sched.QuadCoeffDiv
}

// memoryGasCost returns the gas for expanding the memory to newMemSize.
func memoryGasCost(f *frame, newMemSize uint64) (uint64, error) {
	if newMemSize == 0 || newMemSize <= uint64(f.memory.Len()) {
		return 0, nil
	}
	if newMemSize > maxMemorySize {
		return 0, ErrOutOfGas
	}
	oldWords := uint64(f.memory.Len()) / 32
	newWords := toWordSize(newMemSize)
	return memoryFee(f.sched, newWords) - memoryFee(f.sched, oldWords), nil
}

// add sums gas amounts, any overflow is out of gas.
func add(vals ...uint64) (uint64, error) {
	var total uint64
	var overflow bool
	for _, v := range vals {
		if total, overflow = math.SafeAdd(total, v); overflow {
			return 0, ErrOutOfGas
		}
	}
	return total, nil
}

// wordGas returns perWord gas for each word of size.
func wordGas(size uint64, perWord uint64) (uint64, error) {
	res, overflow := math.SafeMul(toWordSize(size), perWord)
	if overflow {
		return 0, ErrOutOfGas
	}
	return res, nil
}

func gasMemory(f *frame, memorySize uint64) (uint64, error) {
	return memoryGasCost(f, memorySize)
}

func gasExp(f *frame, memorySize uint64) (uint64, error) {
	expByteLen := uint64((f.stack.back(1).BitLen() + 7) / 8)
	return add(f.sched.ExpGas, expByteLen*f.sched.ExpByteGas)
}

func gasSha3(f *frame, memorySize uint64) (uint64, error) {
	mem, err := memoryGasCost(f, memorySize)
	if err != nil {
		return 0, err
	}
	size, overflow := f.stack.back(1).Uint64WithOverflow()
	if overflow {
		return 0, ErrOutOfGas
	}
	words, err := wordGas(size, f.sched.Sha3WordGas)
	if err != nil {
		return 0, err
	}
	return add(f.sched.Sha3Gas, words, mem)
}

// memoryCopierGas creates the gas function of a copy instruction,
// whose length argument is at the given stack position.
func memoryCopierGas(stackpos int) gasFunc {
	return func(f *frame, memorySize uint64) (uint64, error) {
		mem, err := memoryGasCost(f, memorySize)
		if err != nil {
			return 0, err
		}
		size, overflow := f.stack.back(stackpos).Uint64WithOverflow()
		if overflow {
			return 0, ErrOutOfGas
		}
		words, err := wordGas(size, f.sched.CopyGas)
		if err != nil {
			return 0, err
		}
		return add(words, mem)
	}
}

var (
	gasCallDataCopy = memoryCopierGas(2)
	gasCodeCopy     = memoryCopierGas(2)
)

func gasExtCodeCopy(f *frame, memorySize uint64) (uint64, error) {
	copyGas, err := memoryCopierGas(3)(f, memorySize)
	if err != nil {
		return 0, err
	}
	return add(f.sched.ExtcodeCopyBaseGas, copyGas)
}

func gasBalance(f *frame, memorySize uint64) (uint64, error) {
	return f.sched.BalanceGas, nil
}

func gasExtCodeSize(f *frame, memorySize uint64) (uint64, error) {
	return f.sched.ExtcodeSizeGas, nil
}

func gasSLoad(f *frame, memorySize uint64) (uint64, error) {
	return f.sched.SloadGas, nil
}

func gasSStore(f *frame, memorySize uint64) (uint64, error) {
	key := f.stack.back(0).Bytes32()
	val := f.stack.back(1)
	current := f.ext.StorageAt(key)
	if current == (common.Hash{}) && !val.IsZero() {
		return f.sched.SstoreSetGas, nil
	}
	return f.sched.SstoreResetGas, nil
}

func gasJumpDest(f *frame, memorySize uint64) (uint64, error) {
	return f.sched.JumpdestGas, nil
}

func makeGasLog(n uint64) gasFunc {
	return func(f *frame, memorySize uint64) (uint64, error) {
		mem, err := memoryGasCost(f, memorySize)
		if err != nil {
			return 0, err
		}
		size, overflow := f.stack.back(1).Uint64WithOverflow()
		if overflow {
			return 0, ErrOutOfGas
		}
		data, overflow := math.SafeMul(size, f.sched.LogDataGas)
		if overflow {
			return 0, ErrOutOfGas
		}
		return add(f.sched.LogGas, n*f.sched.LogTopicGas, data, mem)
	}
}

func gasCreate(f *frame, memorySize uint64) (uint64, error) {
	mem, err := memoryGasCost(f, memorySize)
	if err != nil {
		return 0, err
	}
	return add(f.sched.CreateGas, mem)
}

// makeGasCall creates the gas function of a message call. The gas
// requested for the callee is charged up front and returned after the call.
func makeGasCall(hasValue bool, chargeNewAccount bool) gasFunc {
	return func(f *frame, memorySize uint64) (uint64, error) {
		mem, err := memoryGasCost(f, memorySize)
		if err != nil {
			return 0, err
		}
		requested, overflow := f.stack.back(0).Uint64WithOverflow()
		if overflow {
			return 0, ErrOutOfGas
		}
		gas := []uint64{f.sched.CallGas, requested, mem}
		if hasValue && !f.stack.back(2).IsZero() {
			gas = append(gas, f.sched.CallValueTransferGas)
		}
		if chargeNewAccount {
			addr := f.stack.back(1).Bytes20()
			if !f.ext.Exists(addr) {
				gas = append(gas, f.sched.CallNewAccountGas)
			}
		}
		return add(gas...)
	}
}

var (
	gasCall         = makeGasCall(true, true)
	gasCallCode     = makeGasCall(true, false)
	gasDelegateCall = makeGasCall(false, false)
)
